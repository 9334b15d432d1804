package request

// SignupRequest is the request body for creating an account
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// StartSessionRequest is the request body for starting a game session
type StartSessionRequest struct {
	PlaylistID  string `json:"playlistId"`
	GameMode    string `json:"gameMode"`
	TotalRounds int    `json:"totalRounds,omitempty"`
}

// NextSongRequest is the request body for drawing a standalone prompt
type NextSongRequest struct {
	PlaylistID string   `json:"playlistId"`
	ExcludeIDs []string `json:"excludeIds,omitempty"`
}

// AdvanceRoundRequest is the request body for submitting a round result
type AdvanceRoundRequest struct {
	RoundScore int `json:"roundScore"`
}

// CreatePlaylistRequest is the request body for creating a playlist
type CreatePlaylistRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	SongIDs     []string `json:"songIds,omitempty"`
}

// CreateSongRequest is the request body for adding a song to the catalog
type CreateSongRequest struct {
	Title           string `json:"title"`
	Artist          string `json:"artist"`
	AudioURL        string `json:"audioUrl"`
	ExternalTrackID string `json:"externalTrackId,omitempty"`
	StartOffset     int    `json:"startOffset,omitempty"`
	Difficulty      string `json:"difficulty,omitempty"`
	Genre           string `json:"genre,omitempty"`
	Mood            string `json:"mood,omitempty"`
	Energy          int    `json:"energy,omitempty"`
	Popularity      string `json:"popularity,omitempty"`
	ReleaseYear     int    `json:"releaseYear,omitempty"`
}

// UpdateSongRequest is the request body for patching a song.
// Nil fields are left unchanged.
type UpdateSongRequest struct {
	Title       *string `json:"title,omitempty"`
	Artist      *string `json:"artist,omitempty"`
	StartOffset *int    `json:"startOffset,omitempty"`
	Difficulty  *string `json:"difficulty,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	Genre       *string `json:"genre,omitempty"`
	Mood        *string `json:"mood,omitempty"`
	Energy      *int    `json:"energy,omitempty"`
	Popularity  *string `json:"popularity,omitempty"`
	ReleaseYear *int    `json:"releaseYear,omitempty"`
}
