package stats

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/songguessr/songguessr-go/internal/dependencies/clock"
	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/storage"
)

// History limits
const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100
)

// Config holds configuration for the stats aggregator
type Config struct {
	// WinRatio is the fraction of the max possible score that counts
	// as a win. A session with totalScore >= ceil(WinRatio * max) is won.
	WinRatio float64
}

// DefaultConfig returns default stats configuration
func DefaultConfig() Config {
	return Config{
		WinRatio: 0.6,
	}
}

// Aggregator folds completed sessions into user statistics.
// All mutations for a given user are serialized through a per-user lock,
// so incremental folds never interleave with a full recalculation.
type Aggregator struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger

	mu        sync.Mutex
	userLocks map[model.UserID]*sync.Mutex
}

// New creates a new stats Aggregator
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Aggregator {
	if cfg.WinRatio == 0 {
		cfg.WinRatio = DefaultConfig().WinRatio
	}
	return &Aggregator{
		storage:   storage,
		clock:     clock,
		cfg:       cfg,
		logger:    logger,
		userLocks: make(map[model.UserID]*sync.Mutex),
	}
}

// lockUser returns the serialization point for a user, creating it lazily
func (a *Aggregator) lockUser(userID model.UserID) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		a.userLocks[userID] = lock
	}
	return lock
}

// winThreshold returns the minimum score counted as a win
func (a *Aggregator) winThreshold(maxPossibleScore int) int {
	return int(math.Ceil(a.cfg.WinRatio * float64(maxPossibleScore)))
}

// RecordCompletion folds a completed session into the user's aggregates
// and persists the history record and the session itself in one apply,
// atomically with respect to concurrent completions for the same user.
// On storage failure the prior aggregates and the stored session are
// left unchanged, so the caller can retry the completion.
func (a *Aggregator) RecordCompletion(ctx context.Context, userID model.UserID, session *model.GameSession) error {
	lock := a.lockUser(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := a.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	record := &model.GameRecord{
		SessionID:        session.ID,
		UserID:           userID,
		PlaylistID:       session.PlaylistID,
		Mode:             session.Mode,
		TotalRounds:      session.TotalRounds,
		Score:            session.TotalScore,
		MaxPossibleScore: session.MaxPossibleScore(),
		Won:              session.TotalScore >= a.winThreshold(session.MaxPossibleScore()),
		CompletedAt:      a.clock.Now(),
	}

	fold(user, record)
	user.UpdatedAt = a.clock.Now()

	if err := a.storage.ApplyCompletion(ctx, user, record, session); err != nil {
		a.logger.Error("failed to apply completion",
			slog.String("user_id", string(userID)),
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}

	a.logger.Info("session recorded",
		slog.String("user_id", string(userID)),
		slog.String("session_id", string(session.ID)),
		slog.Int("score", record.Score),
		slog.Bool("won", record.Won),
	)

	return nil
}

// Recalculate rebuilds the user's aggregates from the full persisted
// history, replacing whatever the incremental folds left behind. The
// result is identical to replaying every record from a zeroed state.
func (a *Aggregator) Recalculate(ctx context.Context, userID model.UserID) error {
	lock := a.lockUser(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := a.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	records, err := a.storage.GetRecords(ctx, userID, 0)
	if err != nil {
		return err
	}

	user.ResetStats()
	// Records come back most recent first; replay in play order
	for i := len(records) - 1; i >= 0; i-- {
		fold(user, records[i])
	}
	user.UpdatedAt = a.clock.Now()

	if err := a.storage.SaveUser(ctx, user); err != nil {
		return err
	}

	a.logger.Info("stats recalculated",
		slog.String("user_id", string(userID)),
		slog.Int("games_played", user.GamesPlayed),
	)

	return nil
}

// History returns the user's completed-session summaries, most recent
// first. A limit <= 0 uses the default; the cap bounds the response size.
func (a *Aggregator) History(ctx context.Context, userID model.UserID, limit int) ([]*model.GameRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	return a.storage.GetRecords(ctx, userID, limit)
}

// fold applies one completed-session record to the aggregates
func fold(user *model.User, record *model.GameRecord) {
	user.GamesPlayed++
	if record.Won {
		user.GamesWon++
	}
	user.TotalScore += record.Score
	if record.Score > user.BestScore {
		user.BestScore = record.Score
	}
	user.AverageScore = float64(user.TotalScore) / float64(user.GamesPlayed)
}
