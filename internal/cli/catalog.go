package cli

import (
	"github.com/spf13/cobra"
)

func newPlaylistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlist",
		Short: "Playlist commands",
	}

	cmd.AddCommand(newPlaylistListCmd())
	cmd.AddCommand(newPlaylistGetCmd())
	cmd.AddCommand(newPlaylistCreateCmd())

	return cmd
}

func newPlaylistListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all playlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlaylistList

			if err := client.Get("/api/v1/playlists", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlaylistGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <playlist-id>",
		Short: "Show a playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Playlist

			if err := client.Get("/api/v1/playlists/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlaylistCreateCmd() *cobra.Command {
	var name, description string
	var songIDs []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a playlist",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name": name,
			}
			if description != "" {
				req["description"] = description
			}
			if len(songIDs) > 0 {
				req["songIds"] = songIDs
			}

			var result Playlist
			if err := client.Post("/api/v1/playlists", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Playlist name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Playlist description")
	cmd.Flags().StringSliceVar(&songIDs, "songs", nil, "Song IDs to include")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSongCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "song",
		Short: "Song catalog commands",
	}

	cmd.AddCommand(newSongGetCmd())
	cmd.AddCommand(newSongAddCmd())
	cmd.AddCommand(newSongUpdateCmd())

	return cmd
}

func newSongGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <song-id>",
		Short: "Show a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Song

			if err := client.Get("/api/v1/songs/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSongAddCmd() *cobra.Command {
	var title, artist, audioURL, difficulty, genre string
	var startOffset int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a song to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"title":    title,
				"artist":   artist,
				"audioUrl": audioURL,
			}
			if startOffset > 0 {
				req["startOffset"] = startOffset
			}
			if difficulty != "" {
				req["difficulty"] = difficulty
			}
			if genre != "" {
				req["genre"] = genre
			}

			var result Song
			if err := client.Post("/api/v1/songs", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Song title (required)")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist name (required)")
	cmd.Flags().StringVar(&audioURL, "audio-url", "", "Audio preview URL (required)")
	cmd.Flags().IntVar(&startOffset, "offset", 0, "Playback start offset in seconds")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	cmd.Flags().StringVar(&genre, "genre", "", "Genre")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("artist")
	_ = cmd.MarkFlagRequired("audio-url")

	return cmd
}

func newSongUpdateCmd() *cobra.Command {
	var title, artist, difficulty string
	var startOffset int
	var active bool

	cmd := &cobra.Command{
		Use:   "update <song-id>",
		Short: "Update a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only send fields the caller set
			req := map[string]any{}
			if cmd.Flags().Changed("title") {
				req["title"] = title
			}
			if cmd.Flags().Changed("artist") {
				req["artist"] = artist
			}
			if cmd.Flags().Changed("difficulty") {
				req["difficulty"] = difficulty
			}
			if cmd.Flags().Changed("offset") {
				req["startOffset"] = startOffset
			}
			if cmd.Flags().Changed("active") {
				req["active"] = active
			}

			var result Song
			if err := client.Patch("/api/v1/songs/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Song title")
	cmd.Flags().StringVar(&artist, "artist", "", "Artist name")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Difficulty: easy, medium, hard")
	cmd.Flags().IntVar(&startOffset, "offset", 0, "Playback start offset in seconds")
	cmd.Flags().BoolVar(&active, "active", true, "Whether the song is selectable")

	return cmd
}
