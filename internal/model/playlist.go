package model

import "time"

// PlaylistID uniquely identifies a playlist
type PlaylistID string

// Playlist is a named set of song references. A playlist with an empty
// song set draws prompts from the entire catalog instead.
type Playlist struct {
	ID          PlaylistID
	Name        string // unique
	Description string
	Slug        string
	SongIDs     []SongID
	CreatedBy   UserID // empty for system playlists
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasSongSet reports whether the playlist declares an explicit song set
func (p *Playlist) HasSongSet() bool {
	return len(p.SongIDs) > 0
}

// Contains reports whether the playlist's song set includes id
func (p *Playlist) Contains(id SongID) bool {
	for _, s := range p.SongIDs {
		if s == id {
			return true
		}
	}
	return false
}
