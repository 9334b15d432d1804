package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User represents a registered account and its running game statistics.
// PasswordHash is never serialized to clients.
type User struct {
	ID           UserID
	Username     string // unique
	Email        string // unique, used for login
	PasswordHash string // bcrypt hash

	// Aggregate statistics, maintained only by the stats aggregator
	TotalScore   int
	GamesPlayed  int
	GamesWon     int
	AverageScore float64 // TotalScore / GamesPlayed, 0 when no games played
	BestScore    int     // highest single-session score

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResetStats zeroes the aggregate fields ahead of a full recalculation
func (u *User) ResetStats() {
	u.TotalScore = 0
	u.GamesPlayed = 0
	u.GamesWon = 0
	u.AverageScore = 0
	u.BestScore = 0
}
