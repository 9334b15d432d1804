package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/songguessr/songguessr-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := &model.User{
		ID:        "u1",
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	}

	err := s.storage.SaveUser(s.ctx, user)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(user.ID, retrieved.ID)
	s.Equal(user.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	_ = s.storage.SaveUser(s.ctx, user)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByEmail() {
	user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	_ = s.storage.SaveUser(s.ctx, user)

	retrieved, err := s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), retrieved.ID)

	_, err = s.storage.GetUserByEmail(s.ctx, "bob@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestSaveUserReplacesIndexes() {
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"})
	_ = s.storage.SaveUser(s.ctx, &model.User{ID: "u1", Username: "alicia", Email: "alicia@example.com"})

	_, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.ErrorIs(err, model.ErrUserNotFound)
	_, err = s.storage.GetUserByEmail(s.ctx, "alice@example.com")
	s.ErrorIs(err, model.ErrUserNotFound)

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alicia")
	s.Require().NoError(err)
	s.Equal(model.UserID("u1"), retrieved.ID)
}

func (s *StorageSuite) TestGetUserReturnsACopy() {
	user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	_ = s.storage.SaveUser(s.ctx, user)

	first, _ := s.storage.GetUser(s.ctx, "u1")
	first.GamesPlayed = 99

	second, _ := s.storage.GetUser(s.ctx, "u1")
	s.Equal(0, second.GamesPlayed)
}

// Playlist tests

func (s *StorageSuite) TestSaveAndGetPlaylist() {
	playlist := &model.Playlist{
		ID:      "pl-1",
		Name:    "80s Hits",
		SongIDs: []model.SongID{"a", "b"},
	}

	err := s.storage.SavePlaylist(s.ctx, playlist)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlaylist(s.ctx, "pl-1")
	s.Require().NoError(err)
	s.Equal(playlist.Name, retrieved.Name)
	s.Equal(playlist.SongIDs, retrieved.SongIDs)
}

func (s *StorageSuite) TestGetPlaylistNotFound() {
	_, err := s.storage.GetPlaylist(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlaylistNotFound)
}

func (s *StorageSuite) TestGetPlaylistByName() {
	playlist := &model.Playlist{ID: "pl-1", Name: "80s Hits"}
	_ = s.storage.SavePlaylist(s.ctx, playlist)

	retrieved, err := s.storage.GetPlaylistByName(s.ctx, "80s Hits")
	s.Require().NoError(err)
	s.Equal(model.PlaylistID("pl-1"), retrieved.ID)

	_, err = s.storage.GetPlaylistByName(s.ctx, "90s Hits")
	s.ErrorIs(err, model.ErrPlaylistNotFound)
}

func (s *StorageSuite) TestListPlaylistsSortedByName() {
	_ = s.storage.SavePlaylist(s.ctx, &model.Playlist{ID: "pl-1", Name: "Zeta"})
	_ = s.storage.SavePlaylist(s.ctx, &model.Playlist{ID: "pl-2", Name: "Alpha"})

	playlists, err := s.storage.ListPlaylists(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(playlists, 2)
	s.Equal("Alpha", playlists[0].Name)
	s.Equal("Zeta", playlists[1].Name)
}

// Song tests

func (s *StorageSuite) TestSaveAndGetSong() {
	song := &model.Song{ID: "a", Title: "One", Artist: "Artist"}

	err := s.storage.SaveSong(s.ctx, song)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSong(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(song.Title, retrieved.Title)
}

func (s *StorageSuite) TestGetSongNotFound() {
	_, err := s.storage.GetSong(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSongNotFound)
}

func (s *StorageSuite) TestCountAndOffsetFollowInsertionOrder() {
	_ = s.storage.SaveSong(s.ctx, &model.Song{ID: "a", Title: "One"})
	_ = s.storage.SaveSong(s.ctx, &model.Song{ID: "b", Title: "Two"})
	_ = s.storage.SaveSong(s.ctx, &model.Song{ID: "c", Title: "Three"})

	count, err := s.storage.CountSongs(s.ctx)
	s.Require().NoError(err)
	s.Equal(3, count)

	song, err := s.storage.GetSongByOffset(s.ctx, 1)
	s.Require().NoError(err)
	s.Equal(model.SongID("b"), song.ID)
}

func (s *StorageSuite) TestResaveDoesNotDuplicateOffsetOrder() {
	_ = s.storage.SaveSong(s.ctx, &model.Song{ID: "a", Title: "One"})
	_ = s.storage.SaveSong(s.ctx, &model.Song{ID: "a", Title: "One (edited)"})

	count, _ := s.storage.CountSongs(s.ctx)
	s.Equal(1, count)
}

func (s *StorageSuite) TestGetSongByOffsetOutOfRange() {
	_ = s.storage.SaveSong(s.ctx, &model.Song{ID: "a", Title: "One"})

	_, err := s.storage.GetSongByOffset(s.ctx, 5)
	s.ErrorIs(err, model.ErrSongNotFound)
}

func (s *StorageSuite) TestIncrementSongPlay() {
	_ = s.storage.SaveSong(s.ctx, &model.Song{ID: "a", Title: "One"})
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.storage.IncrementSongPlay(s.ctx, "a", true, now))
	s.Require().NoError(s.storage.IncrementSongPlay(s.ctx, "a", false, now))

	song, err := s.storage.GetSong(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(2, song.PlayCount)
	s.Equal(1, song.CorrectGuesses)
	s.Equal(now, song.UpdatedAt)
}

func (s *StorageSuite) TestIncrementSongPlayUnknownSong() {
	err := s.storage.IncrementSongPlay(s.ctx, "missing", true, time.Now())
	s.ErrorIs(err, model.ErrSongNotFound)
}

func (s *StorageSuite) TestIncrementSongPlayConcurrent() {
	_ = s.storage.SaveSong(s.ctx, &model.Song{ID: "a", Title: "One"})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.storage.IncrementSongPlay(s.ctx, "a", true, time.Now())
		}()
	}
	wg.Wait()

	song, err := s.storage.GetSong(s.ctx, "a")
	s.Require().NoError(err)
	s.Equal(20, song.PlayCount)
	s.Equal(20, song.CorrectGuesses)
}

// Session tests

func (s *StorageSuite) TestSaveGetDeleteSession() {
	session := &model.GameSession{
		ID:            "sess-1",
		PlaylistID:    "pl-1",
		Mode:          model.GameModeClassic,
		TotalRounds:   5,
		CurrentRound:  1,
		Status:        model.SessionStatusActive,
		PlayedSongIDs: []model.SongID{"a"},
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(session.PlayedSongIDs, retrieved.PlayedSongIDs)

	err = s.storage.DeleteSession(s.ctx, "sess-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "sess-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// History tests

func completedSession(id model.SessionID) *model.GameSession {
	return &model.GameSession{ID: id, UserID: "u1", Status: model.SessionStatusCompleted}
}

func (s *StorageSuite) TestApplyCompletionSavesAllThree() {
	user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com", GamesPlayed: 1}
	record := &model.GameRecord{SessionID: "sess-1", UserID: "u1", Score: 17}

	err := s.storage.ApplyCompletion(s.ctx, user, record, completedSession("sess-1"))
	s.Require().NoError(err)

	stored, err := s.storage.GetUser(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(1, stored.GamesPlayed)

	records, err := s.storage.GetRecords(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal(17, records[0].Score)

	session, err := s.storage.GetSession(s.ctx, "sess-1")
	s.Require().NoError(err)
	s.Equal(model.SessionStatusCompleted, session.Status)
}

func (s *StorageSuite) TestGetRecordsMostRecentFirst() {
	user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	_ = s.storage.ApplyCompletion(s.ctx, user, &model.GameRecord{SessionID: "sess-1", UserID: "u1"}, completedSession("sess-1"))
	_ = s.storage.ApplyCompletion(s.ctx, user, &model.GameRecord{SessionID: "sess-2", UserID: "u1"}, completedSession("sess-2"))

	records, err := s.storage.GetRecords(s.ctx, "u1", 0)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal(model.SessionID("sess-2"), records[0].SessionID)
	s.Equal(model.SessionID("sess-1"), records[1].SessionID)
}

func (s *StorageSuite) TestGetRecordsRespectsLimit() {
	user := &model.User{ID: "u1", Username: "alice", Email: "alice@example.com"}
	for _, id := range []model.SessionID{"sess-1", "sess-2", "sess-3"} {
		_ = s.storage.ApplyCompletion(s.ctx, user, &model.GameRecord{SessionID: id, UserID: "u1"}, completedSession(id))
	}

	records, err := s.storage.GetRecords(s.ctx, "u1", 2)
	s.Require().NoError(err)
	s.Len(records, 2)
}
