package response

import (
	"time"

	"github.com/songguessr/songguessr-go/internal/model"
)

// User represents a user profile in API responses.
// The password hash never leaves the model layer.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	TotalScore   int       `json:"totalScore"`
	GamesPlayed  int       `json:"gamesPlayed"`
	GamesWon     int       `json:"gamesWon"`
	AverageScore float64   `json:"averageScore"`
	BestScore    int       `json:"bestScore"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:           string(u.ID),
		Username:     u.Username,
		Email:        u.Email,
		TotalScore:   u.TotalScore,
		GamesPlayed:  u.GamesPlayed,
		GamesWon:     u.GamesWon,
		AverageScore: u.AverageScore,
		BestScore:    u.BestScore,
		CreatedAt:    u.CreatedAt,
	}
}

// AuthResponse is the response for signup and login
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ValidateResponse is the response for the credential validation endpoint
type ValidateResponse struct {
	Valid bool `json:"valid"`
	User  User `json:"user"`
}

// Song represents a song in API responses
type Song struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	AudioURL        string `json:"audioUrl"`
	ExternalTrackID string `json:"externalTrackId,omitempty"`
	StartOffset     int    `json:"startOffset"`
	Difficulty      string `json:"difficulty"`
	Active          bool   `json:"active"`
	Genre           string `json:"genre,omitempty"`
	Mood            string `json:"mood,omitempty"`
	Energy          int    `json:"energy,omitempty"`
	Popularity      string `json:"popularity,omitempty"`
	ReleaseYear     int    `json:"releaseYear,omitempty"`
	PlayCount       int    `json:"playCount"`
	CorrectGuesses  int    `json:"correctGuesses"`
}

// SongFromModel converts a model.Song to a response Song
func SongFromModel(s *model.Song) Song {
	return Song{
		ID:              string(s.ID),
		Title:           s.Title,
		Artist:          s.Artist,
		AudioURL:        s.AudioURL,
		ExternalTrackID: s.ExternalTrackID,
		StartOffset:     s.StartOffset,
		Difficulty:      string(s.Difficulty),
		Active:          s.Active,
		Genre:           s.Genre,
		Mood:            s.Mood,
		Energy:          s.Energy,
		Popularity:      s.Popularity,
		ReleaseYear:     s.ReleaseYear,
		PlayCount:       s.PlayCount,
		CorrectGuesses:  s.CorrectGuesses,
	}
}

// Playlist represents a playlist in API responses
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Slug        string    `json:"slug"`
	SongIDs     []string  `json:"songIds"`
	SongCount   int       `json:"songCount"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlaylistFromModel converts a model.Playlist to a response Playlist
func PlaylistFromModel(p *model.Playlist) Playlist {
	songIDs := make([]string, len(p.SongIDs))
	for i, id := range p.SongIDs {
		songIDs[i] = string(id)
	}
	return Playlist{
		ID:          string(p.ID),
		Name:        p.Name,
		Description: p.Description,
		Slug:        p.Slug,
		SongIDs:     songIDs,
		SongCount:   len(p.SongIDs),
		CreatedBy:   string(p.CreatedBy),
		CreatedAt:   p.CreatedAt,
	}
}

// PlaylistsResponse is the response for the playlist listing endpoint
type PlaylistsResponse struct {
	Playlists []Playlist `json:"playlists"`
}

// Session represents a game session in API responses
type Session struct {
	ID               string    `json:"id"`
	PlaylistID       string    `json:"playlistId"`
	GameMode         string    `json:"gameMode"`
	TotalRounds      int       `json:"totalRounds"`
	CurrentRound     int       `json:"currentRound"`
	TotalScore       int       `json:"totalScore"`
	MaxPossibleScore int       `json:"maxPossibleScore"`
	Status           string    `json:"status"`
	IsGuest          bool      `json:"isGuest"`
	StartedAt        time.Time `json:"startedAt"`
	CurrentSong      *Song     `json:"currentSong,omitempty"`
}

// SessionFromModel converts a model.GameSession plus its current prompt
// (nil once completed) to a response Session
func SessionFromModel(s *model.GameSession, currentSong *model.Song) Session {
	resp := Session{
		ID:               string(s.ID),
		PlaylistID:       string(s.PlaylistID),
		GameMode:         string(s.Mode),
		TotalRounds:      s.TotalRounds,
		CurrentRound:     s.CurrentRound,
		TotalScore:       s.TotalScore,
		MaxPossibleScore: s.MaxPossibleScore(),
		Status:           string(s.Status),
		IsGuest:          s.IsGuest,
		StartedAt:        s.StartedAt,
	}
	if currentSong != nil {
		song := SongFromModel(currentSong)
		resp.CurrentSong = &song
	}
	return resp
}

// GameRecord represents one completed-session summary
type GameRecord struct {
	SessionID        string    `json:"sessionId"`
	PlaylistID       string    `json:"playlistId"`
	GameMode         string    `json:"gameMode"`
	TotalRounds      int       `json:"totalRounds"`
	Score            int       `json:"score"`
	MaxPossibleScore int       `json:"maxPossibleScore"`
	Won              bool      `json:"won"`
	CompletedAt      time.Time `json:"completedAt"`
}

// GameRecordFromModel converts a model.GameRecord
func GameRecordFromModel(r *model.GameRecord) GameRecord {
	return GameRecord{
		SessionID:        string(r.SessionID),
		PlaylistID:       string(r.PlaylistID),
		GameMode:         string(r.Mode),
		TotalRounds:      r.TotalRounds,
		Score:            r.Score,
		MaxPossibleScore: r.MaxPossibleScore,
		Won:              r.Won,
		CompletedAt:      r.CompletedAt,
	}
}

// HistoryResponse is the response for the game-history endpoint
type HistoryResponse struct {
	History []GameRecord `json:"history"`
}

// HistoryFromModel converts a record slice to a HistoryResponse
func HistoryFromModel(records []*model.GameRecord) HistoryResponse {
	history := make([]GameRecord, len(records))
	for i, r := range records {
		history[i] = GameRecordFromModel(r)
	}
	return HistoryResponse{History: history}
}
