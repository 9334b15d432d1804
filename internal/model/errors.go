package model

import "errors"

// Common errors used across the application
var (
	// Not-found errors
	ErrUserNotFound     = errors.New("user not found")
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrSongNotFound     = errors.New("song not found")
	ErrSessionNotFound  = errors.New("session not found")
	ErrNoSongsAvailable = errors.New("no songs available")

	// Conflict errors
	ErrUsernameExists    = errors.New("username already exists")
	ErrEmailExists       = errors.New("email already registered")
	ErrPlaylistNameTaken = errors.New("playlist name already taken")

	// Validation errors
	ErrInvalidGameMode   = errors.New("invalid game mode")
	ErrInvalidRoundCount = errors.New("total rounds out of range")
	ErrInvalidRoundScore = errors.New("round score out of range")
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// State errors
	ErrSessionCompleted = errors.New("session is already completed")
)
