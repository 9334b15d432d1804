package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gosimple/slug"

	"github.com/songguessr/songguessr-go/internal/dependencies/clock"
	"github.com/songguessr/songguessr-go/internal/dependencies/random"
	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/storage"
)

// Service manages the playlist and song catalog
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new catalog Service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// CreatePlaylist creates a playlist with a unique name. The slug is
// derived from the name. An empty createdBy marks a system playlist.
func (s *Service) CreatePlaylist(ctx context.Context, name, description string, songIDs []model.SongID, createdBy model.UserID) (*model.Playlist, error) {
	if _, err := s.storage.GetPlaylistByName(ctx, name); err == nil {
		return nil, model.ErrPlaylistNameTaken
	} else if !errors.Is(err, model.ErrPlaylistNotFound) {
		return nil, err
	}

	// Every referenced song must exist before the playlist can serve prompts
	for _, id := range songIDs {
		if _, err := s.storage.GetSong(ctx, id); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now()
	playlist := &model.Playlist{
		ID:          model.PlaylistID(s.random.ID("pl_")),
		Name:        name,
		Description: description,
		Slug:        slug.Make(name),
		SongIDs:     songIDs,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.storage.SavePlaylist(ctx, playlist); err != nil {
		return nil, err
	}

	s.logger.Info("playlist created",
		slog.String("playlist_id", string(playlist.ID)),
		slog.String("slug", playlist.Slug),
		slog.Int("song_count", len(songIDs)),
	)

	return playlist, nil
}

// GetPlaylist retrieves a playlist by ID
func (s *Service) GetPlaylist(ctx context.Context, id model.PlaylistID) (*model.Playlist, error) {
	return s.storage.GetPlaylist(ctx, id)
}

// ListPlaylists returns all playlists
func (s *Service) ListPlaylists(ctx context.Context) ([]*model.Playlist, error) {
	return s.storage.ListPlaylists(ctx)
}

// CreateSong adds a song to the catalog
func (s *Service) CreateSong(ctx context.Context, song *model.Song) (*model.Song, error) {
	if song.Difficulty == "" {
		song.Difficulty = model.DifficultyMedium
	}
	if !song.Difficulty.Valid() {
		return nil, model.ErrInvalidDifficulty
	}

	now := s.clock.Now()
	song.ID = model.SongID(s.random.ID("song_"))
	song.Active = true
	song.PlayCount = 0
	song.CorrectGuesses = 0
	song.CreatedAt = now
	song.UpdatedAt = now

	if err := s.storage.SaveSong(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

// GetSong retrieves a song by ID
func (s *Service) GetSong(ctx context.Context, id model.SongID) (*model.Song, error) {
	return s.storage.GetSong(ctx, id)
}

// SongPatch is a partial song update; nil fields are left unchanged
type SongPatch struct {
	Title       *string
	Artist      *string
	StartOffset *int
	Difficulty  *model.Difficulty
	Active      *bool
	Genre       *string
	Mood        *string
	Energy      *int
	Popularity  *string
	ReleaseYear *int
}

// UpdateSong applies a patch to a song. Lifetime counters are not
// patchable; they only move through RecordPlay.
func (s *Service) UpdateSong(ctx context.Context, id model.SongID, patch SongPatch) (*model.Song, error) {
	song, err := s.storage.GetSong(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		song.Title = *patch.Title
	}
	if patch.Artist != nil {
		song.Artist = *patch.Artist
	}
	if patch.StartOffset != nil {
		song.StartOffset = *patch.StartOffset
	}
	if patch.Difficulty != nil {
		if !patch.Difficulty.Valid() {
			return nil, model.ErrInvalidDifficulty
		}
		song.Difficulty = *patch.Difficulty
	}
	if patch.Active != nil {
		song.Active = *patch.Active
	}
	if patch.Genre != nil {
		song.Genre = *patch.Genre
	}
	if patch.Mood != nil {
		song.Mood = *patch.Mood
	}
	if patch.Energy != nil {
		song.Energy = *patch.Energy
	}
	if patch.Popularity != nil {
		song.Popularity = *patch.Popularity
	}
	if patch.ReleaseYear != nil {
		song.ReleaseYear = *patch.ReleaseYear
	}
	song.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveSong(ctx, song); err != nil {
		return nil, err
	}
	return song, nil
}

// RecordPlay bumps a song's lifetime counters after a round is served.
// The increment lives at the storage layer so concurrent rounds serving
// the same song never lose an update, and CorrectGuesses can never
// outrun PlayCount.
func (s *Service) RecordPlay(ctx context.Context, id model.SongID, correct bool) error {
	return s.storage.IncrementSongPlay(ctx, id, correct, s.clock.Now())
}
