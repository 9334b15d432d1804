package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// GameMode is a closed set of scoring/presentation variants
type GameMode string

const (
	GameModeClassic  GameMode = "classic"
	GameModeSpeed    GameMode = "speed"
	GameModeSurvival GameMode = "survival"
)

// Valid reports whether m is a member of the game mode enumeration
func (m GameMode) Valid() bool {
	switch m {
	case GameModeClassic, GameModeSpeed, GameModeSurvival:
		return true
	}
	return false
}

// SessionStatus represents the lifecycle phase of a session.
// Transitions only move forward: active -> completed.
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// Round count and scoring bounds
const (
	MinTotalRounds     = 1
	MaxTotalRounds     = 20
	DefaultTotalRounds = 10
	MaxRoundScore      = 5
)

// GameSession is one play-through of a playlist across a fixed round count
type GameSession struct {
	ID         SessionID
	PlaylistID PlaylistID
	UserID     UserID // empty for guest sessions
	Mode       GameMode

	TotalRounds  int // fixed at start, within [MinTotalRounds, MaxTotalRounds]
	CurrentRound int // 1-indexed, never exceeds TotalRounds
	TotalScore   int // sum of per-round scores, each capped at MaxRoundScore

	Status SessionStatus

	// CurrentSongID is the prompt for the current round.
	// PlayedSongIDs accumulates every prompt served, for exclusion.
	CurrentSongID SongID
	PlayedSongIDs []SongID

	IsGuest   bool
	StartedAt time.Time
	UpdatedAt time.Time
}

// MaxPossibleScore returns the score ceiling for the session
func (s *GameSession) MaxPossibleScore() int {
	return s.TotalRounds * MaxRoundScore
}

// IsCompleted reports whether the session has finished
func (s *GameSession) IsCompleted() bool {
	return s.Status == SessionStatusCompleted
}

// PlayedSet returns the served songs as a lookup set
func (s *GameSession) PlayedSet() map[SongID]bool {
	set := make(map[SongID]bool, len(s.PlayedSongIDs))
	for _, id := range s.PlayedSongIDs {
		set[id] = true
	}
	return set
}
