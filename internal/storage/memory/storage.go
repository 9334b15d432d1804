package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	emailIndex    map[string]model.UserID

	playlists     map[model.PlaylistID]*model.Playlist
	playlistNames map[string]model.PlaylistID

	songs     map[model.SongID]*model.Song
	songOrder []model.SongID // insertion order, for offset draws

	sessions map[model.SessionID]*model.GameSession

	records map[model.UserID][]*model.GameRecord // most recent first
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		emailIndex:    make(map[string]model.UserID),
		playlists:     make(map[model.PlaylistID]*model.Playlist),
		playlistNames: make(map[string]model.PlaylistID),
		songs:         make(map[model.SongID]*model.Song),
		sessions:      make(map[model.SessionID]*model.GameSession),
		records:       make(map[model.UserID][]*model.GameRecord),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveUserLocked(user)
	return nil
}

func (s *Storage) saveUserLocked(user *model.User) {
	// Drop superseded index entries so a changed username or email
	// cannot leave a stale lookup behind
	if prev, ok := s.users[user.ID]; ok {
		if prev.Username != user.Username {
			delete(s.usernameIndex, prev.Username)
		}
		if prev.Email != user.Email {
			delete(s.emailIndex, prev.Email)
		}
	}
	u := *user
	s.users[u.ID] = &u
	s.usernameIndex[u.Username] = u.ID
	s.emailIndex[u.Email] = u.ID
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	id, ok := s.usernameIndex[username]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.GetUser(ctx, id)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	id, ok := s.emailIndex[email]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return s.GetUser(ctx, id)
}

// Playlist operations

func (s *Storage) SavePlaylist(ctx context.Context, playlist *model.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := *playlist
	p.SongIDs = append([]model.SongID(nil), playlist.SongIDs...)
	s.playlists[p.ID] = &p
	s.playlistNames[p.Name] = p.ID
	return nil
}

func (s *Storage) GetPlaylist(ctx context.Context, id model.PlaylistID) (*model.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playlist, ok := s.playlists[id]
	if !ok {
		return nil, model.ErrPlaylistNotFound
	}
	p := *playlist
	p.SongIDs = append([]model.SongID(nil), playlist.SongIDs...)
	return &p, nil
}

func (s *Storage) GetPlaylistByName(ctx context.Context, name string) (*model.Playlist, error) {
	s.mu.RLock()
	id, ok := s.playlistNames[name]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrPlaylistNotFound
	}
	return s.GetPlaylist(ctx, id)
}

func (s *Storage) ListPlaylists(ctx context.Context) ([]*model.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playlists := make([]*model.Playlist, 0, len(s.playlists))
	for _, playlist := range s.playlists {
		p := *playlist
		p.SongIDs = append([]model.SongID(nil), playlist.SongIDs...)
		playlists = append(playlists, &p)
	}
	sort.Slice(playlists, func(i, j int) bool {
		return playlists[i].Name < playlists[j].Name
	})
	return playlists, nil
}

// Song operations

func (s *Storage) SaveSong(ctx context.Context, song *model.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.songs[song.ID]; !exists {
		s.songOrder = append(s.songOrder, song.ID)
	}
	sg := *song
	s.songs[sg.ID] = &sg
	return nil
}

func (s *Storage) GetSong(ctx context.Context, id model.SongID) (*model.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	song, ok := s.songs[id]
	if !ok {
		return nil, model.ErrSongNotFound
	}
	sg := *song
	return &sg, nil
}

func (s *Storage) CountSongs(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.songOrder), nil
}

func (s *Storage) GetSongByOffset(ctx context.Context, offset int) (*model.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if offset < 0 || offset >= len(s.songOrder) {
		return nil, model.ErrSongNotFound
	}
	song, ok := s.songs[s.songOrder[offset]]
	if !ok {
		return nil, model.ErrSongNotFound
	}
	sg := *song
	return &sg, nil
}

func (s *Storage) IncrementSongPlay(ctx context.Context, id model.SongID, correct bool, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	song, ok := s.songs[id]
	if !ok {
		return model.ErrSongNotFound
	}
	song.PlayCount++
	if correct {
		song.CorrectGuesses++
	}
	song.UpdatedAt = now
	return nil
}

// Session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveSessionLocked(session)
	return nil
}

func (s *Storage) saveSessionLocked(session *model.GameSession) {
	sess := *session
	sess.PlayedSongIDs = append([]model.SongID(nil), session.PlayedSongIDs...)
	s.sessions[sess.ID] = &sess
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	sess := *session
	sess.PlayedSongIDs = append([]model.SongID(nil), session.PlayedSongIDs...)
	return &sess, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Game history operations

func (s *Storage) ApplyCompletion(ctx context.Context, user *model.User, record *model.GameRecord, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveUserLocked(user)
	rec := *record
	s.records[rec.UserID] = append([]*model.GameRecord{&rec}, s.records[rec.UserID]...)
	s.saveSessionLocked(session)
	return nil
}

func (s *Storage) GetRecords(ctx context.Context, userID model.UserID, limit int) ([]*model.GameRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.records[userID]
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}
	result := make([]*model.GameRecord, len(records))
	for i, record := range records {
		rec := *record
		result[i] = &rec
	}
	return result, nil
}
