package redis

import (
	"fmt"

	"github.com/songguessr/songguessr-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "songguessr"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// emailIndexKey returns the Redis key for the email -> user_id index
func emailIndexKey(email string) string {
	return fmt.Sprintf("%s:idx:email:%s", keyPrefix, email)
}

// playlistKey returns the Redis key for a Playlist
func playlistKey(id model.PlaylistID) string {
	return fmt.Sprintf("%s:playlist:%s", keyPrefix, id)
}

// playlistNameIndexKey returns the Redis key for the name -> playlist_id index
func playlistNameIndexKey(name string) string {
	return fmt.Sprintf("%s:idx:playlist_name:%s", keyPrefix, name)
}

// playlistsIndexKey returns the Redis key for the SET of all playlist IDs
func playlistsIndexKey() string {
	return fmt.Sprintf("%s:idx:playlists", keyPrefix)
}

// songKey returns the Redis key for a Song
func songKey(id model.SongID) string {
	return fmt.Sprintf("%s:song:%s", keyPrefix, id)
}

// songsIndexKey returns the Redis key for the sorted set of song IDs,
// scored by insertion time so offset draws are stable
func songsIndexKey() string {
	return fmt.Sprintf("%s:idx:songs", keyPrefix)
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// recordsKey returns the Redis key for a user's game record list
func recordsKey(userID model.UserID) string {
	return fmt.Sprintf("%s:records:%s", keyPrefix, userID)
}
