package session

import (
	"context"
	"log/slog"

	"github.com/songguessr/songguessr-go/internal/dependencies/clock"
	"github.com/songguessr/songguessr-go/internal/dependencies/random"
	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/services/catalog"
	"github.com/songguessr/songguessr-go/internal/services/selector"
	"github.com/songguessr/songguessr-go/internal/services/stats"
	"github.com/songguessr/songguessr-go/internal/storage"
)

// Manager owns the session lifecycle: start, per-round advancement, and
// completion handoff to the stats aggregator.
type Manager struct {
	storage  storage.Storage
	selector *selector.Service
	catalog  *catalog.Service
	stats    *stats.Aggregator
	clock    clock.Clock
	random   random.Random
	logger   *slog.Logger
}

// NewManager creates a new session Manager
func NewManager(
	storage storage.Storage,
	selector *selector.Service,
	catalog *catalog.Service,
	stats *stats.Aggregator,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Manager {
	return &Manager{
		storage:  storage,
		selector: selector,
		catalog:  catalog,
		stats:    stats,
		clock:    clock,
		random:   random,
		logger:   logger,
	}
}

// StartSession creates a session bound to a playlist and game mode and
// serves the first prompt song. totalRounds of 0 takes the default;
// otherwise it must lie in [MinTotalRounds, MaxTotalRounds]. An empty
// userID starts a guest session.
func (m *Manager) StartSession(ctx context.Context, playlistID model.PlaylistID, mode model.GameMode, totalRounds int, userID model.UserID) (*model.GameSession, *model.Song, error) {
	if !mode.Valid() {
		return nil, nil, model.ErrInvalidGameMode
	}
	if totalRounds == 0 {
		totalRounds = model.DefaultTotalRounds
	}
	if totalRounds < model.MinTotalRounds || totalRounds > model.MaxTotalRounds {
		return nil, nil, model.ErrInvalidRoundCount
	}

	playlist, err := m.storage.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, nil, err
	}

	song, err := m.selector.NextSong(ctx, playlist, nil)
	if err != nil {
		return nil, nil, err
	}

	now := m.clock.Now()
	session := &model.GameSession{
		ID:            model.SessionID(m.random.ID("sess_")),
		PlaylistID:    playlistID,
		UserID:        userID,
		Mode:          mode,
		TotalRounds:   totalRounds,
		CurrentRound:  1,
		TotalScore:    0,
		Status:        model.SessionStatusActive,
		CurrentSongID: song.ID,
		PlayedSongIDs: []model.SongID{song.ID},
		IsGuest:       userID == "",
		StartedAt:     now,
		UpdatedAt:     now,
	}

	if err := m.storage.SaveSession(ctx, session); err != nil {
		m.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	m.logger.Info("session started",
		slog.String("session_id", string(session.ID)),
		slog.String("playlist_id", string(playlistID)),
		slog.String("mode", string(mode)),
		slog.Int("total_rounds", totalRounds),
		slog.Bool("guest", session.IsGuest),
	)

	return session, song, nil
}

// AdvanceRound applies one round's score and moves the session forward.
// The final advance transitions the session to completed; authenticated
// sessions finalize through the stats aggregator so the stored session
// and the user's aggregates move in one atomic apply. On failure neither
// is persisted and the advance can be retried without folding twice.
// Returns the next prompt song, or nil once the session is complete.
func (m *Manager) AdvanceRound(ctx context.Context, sessionID model.SessionID, roundScore int) (*model.GameSession, *model.Song, error) {
	session, err := m.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	if session.IsCompleted() {
		return nil, nil, model.ErrSessionCompleted
	}
	if roundScore < 0 || roundScore > model.MaxRoundScore {
		return nil, nil, model.ErrInvalidRoundScore
	}

	// Lifetime counters on the served song are best-effort
	if err := m.catalog.RecordPlay(ctx, session.CurrentSongID, roundScore > 0); err != nil {
		m.logger.Warn("failed to record song play",
			slog.String("song_id", string(session.CurrentSongID)),
			slog.String("error", err.Error()),
		)
	}

	session.TotalScore += roundScore
	session.UpdatedAt = m.clock.Now()

	if session.CurrentRound >= session.TotalRounds {
		session.Status = model.SessionStatusCompleted
		session.CurrentSongID = ""

		if session.IsGuest {
			if err := m.storage.SaveSession(ctx, session); err != nil {
				return nil, nil, err
			}
		} else if err := m.stats.RecordCompletion(ctx, session.UserID, session); err != nil {
			return nil, nil, err
		}

		m.logger.Info("session completed",
			slog.String("session_id", string(session.ID)),
			slog.Int("total_score", session.TotalScore),
			slog.Int("max_possible_score", session.MaxPossibleScore()),
		)

		return session, nil, nil
	}

	playlist, err := m.storage.GetPlaylist(ctx, session.PlaylistID)
	if err != nil {
		return nil, nil, err
	}

	song, err := m.selector.NextSong(ctx, playlist, session.PlayedSet())
	if err != nil {
		return nil, nil, err
	}

	session.CurrentRound++
	session.CurrentSongID = song.ID
	session.PlayedSongIDs = append(session.PlayedSongIDs, song.ID)

	if err := m.storage.SaveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	return session, song, nil
}

// GetSession retrieves a session by ID
func (m *Manager) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	return m.storage.GetSession(ctx, id)
}

// Interface for dependency injection
type ManagerInterface interface {
	StartSession(ctx context.Context, playlistID model.PlaylistID, mode model.GameMode, totalRounds int, userID model.UserID) (*model.GameSession, *model.Song, error)
	AdvanceRound(ctx context.Context, sessionID model.SessionID, roundScore int) (*model.GameSession, *model.Song, error)
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
}

var _ ManagerInterface = (*Manager)(nil)
