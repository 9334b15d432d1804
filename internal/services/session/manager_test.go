package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/songguessr/songguessr-go/internal/dependencies/mocks"
	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/services/catalog"
	"github.com/songguessr/songguessr-go/internal/services/selector"
	"github.com/songguessr/songguessr-go/internal/services/stats"
	"github.com/songguessr/songguessr-go/internal/storage"
	"github.com/songguessr/songguessr-go/internal/storage/memory"
	"github.com/songguessr/songguessr-go/internal/testutil"
)

type ManagerSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	random  *mocks.MockRandom
	manager *Manager
	ctx     context.Context

	playlistID model.PlaylistID
	userID     model.UserID
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()

	logger := testutil.NopLogger()
	catalogService := catalog.New(s.storage, s.clock, s.random, logger)
	songSelector := selector.New(s.storage, s.random, logger)
	statsAggregator := stats.New(s.storage, s.clock, stats.DefaultConfig(), logger)
	s.manager = NewManager(s.storage, songSelector, catalogService, statsAggregator, s.clock, s.random, logger)
	s.ctx = context.Background()

	// Seed a user, six songs, and a playlist over them
	user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))
	s.userID = user.ID

	songIDs := make([]model.SongID, 0, 6)
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		song := &model.Song{
			ID:        model.SongID(id),
			Title:     "Song " + id,
			Artist:    "Artist",
			AudioURL:  "https://example.com/" + id + ".mp3",
			Active:    true,
			CreatedAt: s.clock.Now(),
		}
		s.Require().NoError(s.storage.SaveSong(s.ctx, song))
		songIDs = append(songIDs, song.ID)
	}

	playlist := &model.Playlist{ID: "pl-1", Name: "Test Playlist", SongIDs: songIDs}
	s.Require().NoError(s.storage.SavePlaylist(s.ctx, playlist))
	s.playlistID = playlist.ID
}

// StartSession tests

func (s *ManagerSuite) TestStartSessionSucceeds() {
	sess, song, err := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)
	s.Require().NoError(err)

	s.Equal(model.SessionStatusActive, sess.Status)
	s.Equal(1, sess.CurrentRound)
	s.Equal(5, sess.TotalRounds)
	s.Equal(25, sess.MaxPossibleScore())
	s.Equal(0, sess.TotalScore)
	s.False(sess.IsGuest)
	s.Require().NotNil(song)
	s.Equal(song.ID, sess.CurrentSongID)
	s.Equal([]model.SongID{song.ID}, sess.PlayedSongIDs)
}

func (s *ManagerSuite) TestStartSessionPersists() {
	sess, _, err := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)
	s.Require().NoError(err)

	stored, err := s.storage.GetSession(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.ID, stored.ID)
	s.Equal(s.playlistID, stored.PlaylistID)
}

func (s *ManagerSuite) TestStartSessionAsGuest() {
	sess, _, err := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, "")
	s.Require().NoError(err)

	s.True(sess.IsGuest)
	s.Empty(sess.UserID)
}

func (s *ManagerSuite) TestStartSessionDefaultsRoundCount() {
	sess, _, err := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 0, s.userID)
	s.Require().NoError(err)

	s.Equal(model.DefaultTotalRounds, sess.TotalRounds)
}

func (s *ManagerSuite) TestStartSessionRejectsUnknownMode() {
	_, _, err := s.manager.StartSession(s.ctx, s.playlistID, "freestyle", 5, s.userID)
	s.ErrorIs(err, model.ErrInvalidGameMode)
}

func (s *ManagerSuite) TestStartSessionRejectsRoundCountOutOfBounds() {
	_, _, err := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 21, s.userID)
	s.ErrorIs(err, model.ErrInvalidRoundCount)

	_, _, err = s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, -1, s.userID)
	s.ErrorIs(err, model.ErrInvalidRoundCount)
}

func (s *ManagerSuite) TestStartSessionFailsForUnknownPlaylist() {
	_, _, err := s.manager.StartSession(s.ctx, "nope", model.GameModeClassic, 5, s.userID)
	s.ErrorIs(err, model.ErrPlaylistNotFound)
}

// AdvanceRound tests

func (s *ManagerSuite) TestAdvanceRoundMovesToNextSong() {
	sess, first, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)

	updated, next, err := s.manager.AdvanceRound(s.ctx, sess.ID, 3)
	s.Require().NoError(err)

	s.Equal(2, updated.CurrentRound)
	s.Equal(3, updated.TotalScore)
	s.Equal(model.SessionStatusActive, updated.Status)
	s.Require().NotNil(next)
	s.NotEqual(first.ID, next.ID)
	s.Contains(updated.PlayedSongIDs, next.ID)
}

func (s *ManagerSuite) TestAdvanceRoundNeverRepeatsWhilePoolLasts() {
	sess, _, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)

	for i := 0; i < 4; i++ {
		_, _, err := s.manager.AdvanceRound(s.ctx, sess.ID, 1)
		s.Require().NoError(err)
	}

	stored, _ := s.storage.GetSession(s.ctx, sess.ID)
	seen := map[model.SongID]bool{}
	for _, id := range stored.PlayedSongIDs {
		s.False(seen[id], "song %s served twice", id)
		seen[id] = true
	}
}

func (s *ManagerSuite) TestAdvanceRoundRejectsScoreOutOfBounds() {
	sess, _, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)

	_, _, err := s.manager.AdvanceRound(s.ctx, sess.ID, 6)
	s.ErrorIs(err, model.ErrInvalidRoundScore)

	_, _, err = s.manager.AdvanceRound(s.ctx, sess.ID, -1)
	s.ErrorIs(err, model.ErrInvalidRoundScore)
}

func (s *ManagerSuite) TestAdvanceRoundBumpsSongCounters() {
	sess, first, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)

	_, _, err := s.manager.AdvanceRound(s.ctx, sess.ID, 4)
	s.Require().NoError(err)

	song, _ := s.storage.GetSong(s.ctx, first.ID)
	s.Equal(1, song.PlayCount)
	s.Equal(1, song.CorrectGuesses)
}

func (s *ManagerSuite) TestAdvanceRoundZeroScoreIsNotAGuess() {
	sess, first, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)

	_, _, err := s.manager.AdvanceRound(s.ctx, sess.ID, 0)
	s.Require().NoError(err)

	song, _ := s.storage.GetSong(s.ctx, first.ID)
	s.Equal(1, song.PlayCount)
	s.Equal(0, song.CorrectGuesses)
}

func (s *ManagerSuite) TestFullSessionLifecycle() {
	sess, _, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)

	scores := []int{5, 3, 0, 4, 5}
	var final *model.GameSession
	for i, score := range scores {
		updated, next, err := s.manager.AdvanceRound(s.ctx, sess.ID, score)
		s.Require().NoError(err)
		if i < len(scores)-1 {
			s.NotNil(next)
			s.Equal(model.SessionStatusActive, updated.Status)
		} else {
			s.Nil(next)
		}
		final = updated
	}

	s.Equal(model.SessionStatusCompleted, final.Status)
	s.Equal(17, final.TotalScore)
	s.Equal(25, final.MaxPossibleScore())
	s.Empty(final.CurrentSongID)
}

func (s *ManagerSuite) TestCompletionFoldsIntoUserStats() {
	sess, _, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)

	for _, score := range []int{5, 3, 0, 4, 5} {
		_, _, err := s.manager.AdvanceRound(s.ctx, sess.ID, score)
		s.Require().NoError(err)
	}

	user, err := s.storage.GetUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(1, user.GamesPlayed)
	s.Equal(1, user.GamesWon) // 17 >= ceil(0.6 * 25)
	s.Equal(17, user.TotalScore)
	s.Equal(17, user.BestScore)

	records, err := s.storage.GetRecords(s.ctx, s.userID, 0)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(sess.ID, records[0].SessionID)
}

// flakyCompletionStorage fails the completion apply a set number of
// times before delegating, simulating a transient storage outage on the
// final advance.
type flakyCompletionStorage struct {
	storage.Storage
	failures int
}

func (f *flakyCompletionStorage) ApplyCompletion(ctx context.Context, user *model.User, record *model.GameRecord, session *model.GameSession) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("storage unavailable")
	}
	return f.Storage.ApplyCompletion(ctx, user, record, session)
}

func (s *ManagerSuite) TestCompletionFailureFoldsNothingAndRetriesOnce() {
	flaky := &flakyCompletionStorage{Storage: s.storage, failures: 1}
	logger := testutil.NopLogger()
	catalogService := catalog.New(flaky, s.clock, s.random, logger)
	songSelector := selector.New(flaky, s.random, logger)
	statsAggregator := stats.New(flaky, s.clock, stats.DefaultConfig(), logger)
	manager := NewManager(flaky, songSelector, catalogService, statsAggregator, s.clock, s.random, logger)

	sess, _, err := manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 1, s.userID)
	s.Require().NoError(err)

	_, _, err = manager.AdvanceRound(s.ctx, sess.ID, 5)
	s.Require().Error(err)

	// Nothing persisted: aggregates untouched, session still active
	user, err := s.storage.GetUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(0, user.GamesPlayed)
	s.Equal(0, user.TotalScore)

	stored, err := s.storage.GetSession(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(model.SessionStatusActive, stored.Status)

	// Retrying the advance completes the session and folds it exactly once
	final, next, err := manager.AdvanceRound(s.ctx, sess.ID, 5)
	s.Require().NoError(err)
	s.Nil(next)
	s.Equal(model.SessionStatusCompleted, final.Status)
	s.Equal(5, final.TotalScore)

	user, err = s.storage.GetUser(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(1, user.GamesPlayed)
	s.Equal(5, user.TotalScore)

	records, err := s.storage.GetRecords(s.ctx, s.userID, 0)
	s.Require().NoError(err)
	s.Len(records, 1)
}

func (s *ManagerSuite) TestGuestCompletionLeavesNoRecords() {
	sess, _, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 1, "")

	final, next, err := s.manager.AdvanceRound(s.ctx, sess.ID, 5)
	s.Require().NoError(err)
	s.Nil(next)
	s.Equal(model.SessionStatusCompleted, final.Status)
}

func (s *ManagerSuite) TestAdvanceCompletedSessionFails() {
	sess, _, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 1, s.userID)

	_, _, err := s.manager.AdvanceRound(s.ctx, sess.ID, 5)
	s.Require().NoError(err)

	_, _, err = s.manager.AdvanceRound(s.ctx, sess.ID, 5)
	s.ErrorIs(err, model.ErrSessionCompleted)
}

func (s *ManagerSuite) TestAdvanceUnknownSessionFails() {
	_, _, err := s.manager.AdvanceRound(s.ctx, "nope", 3)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// GetSession tests

func (s *ManagerSuite) TestGetSession() {
	sess, _, _ := s.manager.StartSession(s.ctx, s.playlistID, model.GameModeClassic, 5, s.userID)

	got, err := s.manager.GetSession(s.ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.ID, got.ID)
}
