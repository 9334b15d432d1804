package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// The client owns a connection pool with an explicit init/close lifecycle.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance and verifies the connection
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection pool
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}

	prev, err := s.GetUser(ctx, user.ID)
	if err != nil && !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	// Pipeline keeps the record and its lookup indexes in step; superseded
	// index entries are dropped so stale lookups cannot resolve
	pipe := s.client.Pipeline()
	if prev != nil && prev.Username != user.Username {
		pipe.Del(ctx, usernameIndexKey(prev.Username))
	}
	if prev != nil && prev.Email != user.Email {
		pipe.Del(ctx, emailIndexKey(prev.Email))
	}
	pipe.Set(ctx, userKey(user.ID), data, 0)
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	pipe.Set(ctx, emailIndexKey(user.Email), string(user.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	data, err := s.client.Get(ctx, userKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUserByIndex(ctx, usernameIndexKey(username))
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUserByIndex(ctx, emailIndexKey(email))
}

func (s *Storage) getUserByIndex(ctx context.Context, indexKey string) (*model.User, error) {
	idStr, err := s.client.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(idStr))
}

// Playlist operations

func (s *Storage) SavePlaylist(ctx context.Context, playlist *model.Playlist) error {
	data, err := json.Marshal(playlist)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playlistKey(playlist.ID), data, 0)
	pipe.Set(ctx, playlistNameIndexKey(playlist.Name), string(playlist.ID), 0)
	pipe.SAdd(ctx, playlistsIndexKey(), string(playlist.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlaylist(ctx context.Context, id model.PlaylistID) (*model.Playlist, error) {
	data, err := s.client.Get(ctx, playlistKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlaylistNotFound
		}
		return nil, err
	}

	var playlist model.Playlist
	if err := json.Unmarshal(data, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *Storage) GetPlaylistByName(ctx context.Context, name string) (*model.Playlist, error) {
	idStr, err := s.client.Get(ctx, playlistNameIndexKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlaylistNotFound
		}
		return nil, err
	}
	return s.GetPlaylist(ctx, model.PlaylistID(idStr))
}

func (s *Storage) ListPlaylists(ctx context.Context) ([]*model.Playlist, error) {
	ids, err := s.client.SMembers(ctx, playlistsIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Playlist{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playlistKey(model.PlaylistID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	playlists := make([]*model.Playlist, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var playlist model.Playlist
		if err := json.Unmarshal([]byte(val.(string)), &playlist); err != nil {
			continue
		}
		playlists = append(playlists, &playlist)
	}

	return playlists, nil
}

// Song operations

func (s *Storage) SaveSong(ctx context.Context, song *model.Song) error {
	data, err := json.Marshal(song)
	if err != nil {
		return err
	}

	// ZAdd is idempotent per member, so re-saving keeps the offset order
	pipe := s.client.Pipeline()
	pipe.Set(ctx, songKey(song.ID), data, 0)
	pipe.ZAddNX(ctx, songsIndexKey(), redis.Z{
		Score:  float64(song.CreatedAt.UnixNano()),
		Member: string(song.ID),
	})
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetSong(ctx context.Context, id model.SongID) (*model.Song, error) {
	data, err := s.client.Get(ctx, songKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSongNotFound
		}
		return nil, err
	}

	var song model.Song
	if err := json.Unmarshal(data, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

func (s *Storage) CountSongs(ctx context.Context) (int, error) {
	count, err := s.client.ZCard(ctx, songsIndexKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *Storage) GetSongByOffset(ctx context.Context, offset int) (*model.Song, error) {
	ids, err := s.client.ZRange(ctx, songsIndexKey(), int64(offset), int64(offset)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, model.ErrSongNotFound
	}
	return s.GetSong(ctx, model.SongID(ids[0]))
}

// Increments retry on WATCH conflicts this many times before giving up
const maxIncrementRetries = 5

// IncrementSongPlay bumps the counters under an optimistic WATCH so
// concurrent increments retry instead of overwriting each other.
func (s *Storage) IncrementSongPlay(ctx context.Context, id model.SongID, correct bool, now time.Time) error {
	key := songKey(id)

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrSongNotFound
			}
			return err
		}

		var song model.Song
		if err := json.Unmarshal(data, &song); err != nil {
			return err
		}

		song.PlayCount++
		if correct {
			song.CorrectGuesses++
		}
		song.UpdatedAt = now

		updated, err := json.Marshal(&song)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxIncrementRetries; attempt++ {
		err := s.client.Watch(ctx, txn, key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return redis.TxFailedErr
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Guest sessions expire; authenticated sessions persist for stats folding
	var ttl time.Duration
	if session.IsGuest {
		ttl = s.cfg.GuestSessionTTL
	}

	return s.client.Set(ctx, sessionKey(session.ID), data, ttl).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// Game history operations

func (s *Storage) ApplyCompletion(ctx context.Context, user *model.User, record *model.GameRecord, session *model.GameSession) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	recordData, err := json.Marshal(record)
	if err != nil {
		return err
	}
	sessionData, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// TxPipeline so the aggregate update, the history entry, and the
	// completed session land together. Only authenticated sessions fold
	// into stats, so the session key carries no TTL.
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, userKey(user.ID), userData, 0)
	pipe.LPush(ctx, recordsKey(record.UserID), recordData)
	pipe.Set(ctx, sessionKey(session.ID), sessionData, 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRecords(ctx context.Context, userID model.UserID, limit int) ([]*model.GameRecord, error) {
	end := int64(-1)
	if limit > 0 {
		end = int64(limit) - 1
	}

	values, err := s.client.LRange(ctx, recordsKey(userID), 0, end).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*model.GameRecord, 0, len(values))
	for _, val := range values {
		var record model.GameRecord
		if err := json.Unmarshal([]byte(val), &record); err != nil {
			continue
		}
		records = append(records, &record)
	}

	return records, nil
}
