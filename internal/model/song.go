package model

import "time"

// SongID uniquely identifies a song in the catalog
type SongID string

// Difficulty tiers for a song
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a member of the difficulty enumeration
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Song is a guessable track in the catalog
type Song struct {
	ID     SongID
	Title  string
	Artist string

	// Playback
	AudioURL        string // external audio source locator
	ExternalTrackID string // identifier on the external provider
	StartOffset     int    // seconds into the track where the prompt begins

	Difficulty Difficulty
	Active     bool

	// Descriptive metadata
	Genre       string
	Mood        string
	Energy      int // 0-100
	Popularity  string
	ReleaseYear int

	// Lifetime counters; CorrectGuesses never exceeds PlayCount
	PlayCount      int
	CorrectGuesses int

	CreatedAt time.Time
	UpdatedAt time.Time
}
