package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/songguessr/songguessr-go/internal/model"
	"github.com/songguessr/songguessr-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidGameMode    = "INVALID_GAME_MODE"
	CodeInvalidRoundCount  = "INVALID_ROUND_COUNT"
	CodeInvalidRoundScore  = "INVALID_ROUND_SCORE"
	CodeInvalidDifficulty  = "INVALID_DIFFICULTY"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodePlaylistNotFound   = "PLAYLIST_NOT_FOUND"
	CodeSongNotFound       = "SONG_NOT_FOUND"
	CodeSessionNotFound    = "SESSION_NOT_FOUND"
	CodeNoSongsAvailable   = "NO_SONGS_AVAILABLE"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodePlaylistNameTaken  = "PLAYLIST_NAME_TAKEN"
	CodeSessionCompleted   = "SESSION_COMPLETED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Validation errors
	case errors.Is(err, model.ErrInvalidGameMode):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGameMode, "Game mode is not recognized"}}
	case errors.Is(err, model.ErrInvalidRoundCount):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoundCount, "Total rounds must be between 1 and 20"}}
	case errors.Is(err, model.ErrInvalidRoundScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoundScore, "Round score must be between 0 and 5"}}
	case errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDifficulty, "Difficulty must be easy, medium, or hard"}}

	// Not-found errors
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrPlaylistNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlaylistNotFound, "Playlist not found"}}
	case errors.Is(err, model.ErrSongNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSongNotFound, "Song not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrNoSongsAvailable):
		return &httpError{http.StatusNotFound, APIError{CodeNoSongsAvailable, "No songs available to play"}}

	// Conflict errors
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrEmailExists):
		return &httpError{http.StatusConflict, APIError{CodeEmailExists, "Email already registered"}}
	case errors.Is(err, model.ErrPlaylistNameTaken):
		return &httpError{http.StatusConflict, APIError{CodePlaylistNameTaken, "Playlist name already taken"}}

	// State errors
	case errors.Is(err, model.ErrSessionCompleted):
		return &httpError{http.StatusConflict, APIError{CodeSessionCompleted, "Session is already completed"}}

	// Auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid email or password"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
