package selector

import (
	"context"
	"log/slog"

	"github.com/songguessr/songguessr-go/internal/dependencies/random"
	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/storage"
)

// Service picks the next prompt song for a session
type Service struct {
	storage storage.Storage
	random  random.Random
	logger  *slog.Logger
}

// New creates a new song selector
func New(storage storage.Storage, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		random:  random,
		logger:  logger,
	}
}

// NextSong picks a uniform-random song from the playlist's set, skipping
// excluded IDs. When the exclusion set covers the whole playlist the pick
// falls back to the full set (repeats allowed) so a session never stalls.
// A playlist with no song set draws from the entire catalog by offset.
func (s *Service) NextSong(ctx context.Context, playlist *model.Playlist, exclude map[model.SongID]bool) (*model.Song, error) {
	if playlist.HasSongSet() {
		pool := make([]model.SongID, 0, len(playlist.SongIDs))
		for _, id := range playlist.SongIDs {
			if !exclude[id] {
				pool = append(pool, id)
			}
		}
		if len(pool) == 0 {
			s.logger.Info("playlist exhausted, allowing repeats",
				slog.String("playlist_id", string(playlist.ID)),
			)
			pool = playlist.SongIDs
		}
		return s.storage.GetSong(ctx, pool[s.random.Intn(len(pool))])
	}

	count, err := s.storage.CountSongs(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, model.ErrNoSongsAvailable
	}

	return s.storage.GetSongByOffset(ctx, s.random.Intn(count))
}

// Interface for dependency injection
type ServiceInterface interface {
	NextSong(ctx context.Context, playlist *model.Playlist, exclude map[model.SongID]bool) (*model.Song, error)
}

var _ ServiceInterface = (*Service)(nil)
