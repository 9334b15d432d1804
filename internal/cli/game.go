package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game session commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameAdvanceCmd())
	cmd.AddCommand(newGameNextSongCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var playlistID, mode string
	var rounds int
	var guest bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"playlistId": playlistID,
				"gameMode":   mode,
			}
			if rounds > 0 {
				req["totalRounds"] = rounds
			}

			path := "/api/v1/game/start"
			if guest {
				path = "/api/v1/game/guest/start"
			}

			var result Session
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playlistID, "playlist", "", "Playlist ID (required)")
	cmd.Flags().StringVar(&mode, "mode", "classic", "Game mode: classic, speed, survival")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Total rounds (default 10)")
	cmd.Flags().BoolVar(&guest, "guest", false, "Start as guest (no account)")
	_ = cmd.MarkFlagRequired("playlist")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <session-id>",
		Short: "Show a game session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/game/sessions/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameAdvanceCmd() *cobra.Command {
	var score int

	cmd := &cobra.Command{
		Use:   "advance <session-id>",
		Short: "Submit a round score and advance the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if score < 0 || score > 5 {
				return fmt.Errorf("--score must be between 0 and 5")
			}

			req := map[string]int{"roundScore": score}
			var result Session

			if err := client.Post("/api/v1/game/sessions/"+args[0]+"/advance", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "score", 0, "Round score, 0-5 (required)")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newGameNextSongCmd() *cobra.Command {
	var playlistID string
	var exclude []string

	cmd := &cobra.Command{
		Use:   "next-song",
		Short: "Draw a prompt song outside any session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"playlistId": playlistID,
			}
			if len(exclude) > 0 {
				req["excludeIds"] = exclude
			}

			var result Song
			if err := client.Post("/api/v1/game/guest/next-song", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playlistID, "playlist", "", "Playlist ID (required)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Song IDs to exclude")
	_ = cmd.MarkFlagRequired("playlist")

	return cmd
}
