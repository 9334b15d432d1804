package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case ValidateResult:
		o.printValidateResult(v)
	case Session:
		o.printSession(v)
	case Song:
		o.printSong(v)
	case Playlist:
		o.printPlaylist(v)
	case PlaylistList:
		o.printPlaylistList(v)
	case History:
		o.printHistory(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	TotalScore   int     `json:"totalScore"`
	GamesPlayed  int     `json:"gamesPlayed"`
	GamesWon     int     `json:"gamesWon"`
	AverageScore float64 `json:"averageScore"`
	BestScore    int     `json:"bestScore"`
}

// AuthResult combines user and token
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ValidateResult response type
type ValidateResult struct {
	Valid bool `json:"valid"`
	User  User `json:"user"`
}

// Song response type
type Song struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	AudioURL       string `json:"audioUrl"`
	StartOffset    int    `json:"startOffset"`
	Difficulty     string `json:"difficulty"`
	Active         bool   `json:"active"`
	Genre          string `json:"genre,omitempty"`
	PlayCount      int    `json:"playCount"`
	CorrectGuesses int    `json:"correctGuesses"`
}

// Session response type
type Session struct {
	ID               string `json:"id"`
	PlaylistID       string `json:"playlistId"`
	GameMode         string `json:"gameMode"`
	TotalRounds      int    `json:"totalRounds"`
	CurrentRound     int    `json:"currentRound"`
	TotalScore       int    `json:"totalScore"`
	MaxPossibleScore int    `json:"maxPossibleScore"`
	Status           string `json:"status"`
	IsGuest          bool   `json:"isGuest"`
	CurrentSong      *Song  `json:"currentSong,omitempty"`
}

// Playlist response type
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
	SongCount   int    `json:"songCount"`
}

// PlaylistList response type
type PlaylistList struct {
	Playlists []Playlist `json:"playlists"`
}

// GameRecord response type
type GameRecord struct {
	SessionID        string    `json:"sessionId"`
	PlaylistID       string    `json:"playlistId"`
	GameMode         string    `json:"gameMode"`
	Score            int       `json:"score"`
	MaxPossibleScore int       `json:"maxPossibleScore"`
	Won              bool      `json:"won"`
	CompletedAt      time.Time `json:"completedAt"`
}

// History response type
type History struct {
	History []GameRecord `json:"history"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s (%s)\n", u.Username, u.ID)
	fmt.Printf("Email: %s\n", u.Email)
	fmt.Printf("Games: %d played, %d won\n", u.GamesPlayed, u.GamesWon)
	fmt.Printf("Scores: %d total, %d best, %.2f average\n", u.TotalScore, u.BestScore, u.AverageScore)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.Token)
}

func (o *Output) printValidateResult(v ValidateResult) {
	fmt.Printf("Valid: %t\n", v.Valid)
	o.printUser(v.User)
}

func (o *Output) printSong(s Song) {
	fmt.Printf("Song: %s - %s (%s)\n", s.Artist, s.Title, s.ID)
	fmt.Printf("Audio: %s (offset %ds)\n", s.AudioURL, s.StartOffset)
	fmt.Printf("Difficulty: %s\n", s.Difficulty)
	if s.Genre != "" {
		fmt.Printf("Genre: %s\n", s.Genre)
	}
	fmt.Printf("Plays: %d (%d guessed)\n", s.PlayCount, s.CorrectGuesses)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s\n", s.ID)
	fmt.Printf("Playlist: %s\n", s.PlaylistID)
	fmt.Printf("Mode: %s\n", s.GameMode)
	fmt.Printf("Round: %d/%d\n", s.CurrentRound, s.TotalRounds)
	fmt.Printf("Score: %d/%d\n", s.TotalScore, s.MaxPossibleScore)
	fmt.Printf("Status: %s\n", s.Status)
	if s.CurrentSong != nil {
		fmt.Println("\nCurrent Song:")
		o.printSong(*s.CurrentSong)
	}
}

func (o *Output) printPlaylist(p Playlist) {
	fmt.Printf("Playlist: %s (%s)\n", p.Name, p.ID)
	if p.Description != "" {
		fmt.Printf("Description: %s\n", p.Description)
	}
	fmt.Printf("Slug: %s\n", p.Slug)
	fmt.Printf("Songs: %d\n", p.SongCount)
}

func (o *Output) printPlaylistList(l PlaylistList) {
	fmt.Printf("Playlists (%d):\n", len(l.Playlists))
	for _, p := range l.Playlists {
		fmt.Printf("  - %s (%s) - %d songs\n", p.Name, p.ID, p.SongCount)
	}
}

func (o *Output) printHistory(h History) {
	fmt.Printf("History (%d):\n", len(h.History))
	for _, r := range h.History {
		result := "lost"
		if r.Won {
			result = "won"
		}
		fmt.Printf("  - %s: %d/%d (%s, %s) at %s\n",
			r.SessionID, r.Score, r.MaxPossibleScore, r.GameMode, result,
			r.CompletedAt.Format(time.RFC3339))
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
