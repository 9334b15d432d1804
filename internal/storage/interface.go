package storage

import (
	"context"
	"time"

	"github.com/songguessr/songguessr-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Playlist operations
	SavePlaylist(ctx context.Context, playlist *model.Playlist) error
	GetPlaylist(ctx context.Context, id model.PlaylistID) (*model.Playlist, error)
	GetPlaylistByName(ctx context.Context, name string) (*model.Playlist, error)
	ListPlaylists(ctx context.Context) ([]*model.Playlist, error)

	// Song operations
	SaveSong(ctx context.Context, song *model.Song) error
	GetSong(ctx context.Context, id model.SongID) (*model.Song, error)
	CountSongs(ctx context.Context) (int, error)
	GetSongByOffset(ctx context.Context, offset int) (*model.Song, error)
	// IncrementSongPlay bumps a song's play counter, and the correct-guess
	// counter when correct is set. Concurrent increments must not lose
	// updates.
	IncrementSongPlay(ctx context.Context, id model.SongID, correct bool, now time.Time) error

	// Session operations
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// Game history operations.
	// ApplyCompletion persists the updated user aggregates, the new record,
	// and the completed session as one atomic apply: concurrent completions
	// for the same user must not lose an update, and a failure must leave
	// all three untouched.
	ApplyCompletion(ctx context.Context, user *model.User, record *model.GameRecord, session *model.GameSession) error
	// GetRecords returns a user's records most recent first.
	// A limit <= 0 returns the full history.
	GetRecords(ctx context.Context, userID model.UserID, limit int) ([]*model.GameRecord, error)
}
