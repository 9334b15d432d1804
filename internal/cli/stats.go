package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Statistics commands",
	}

	cmd.AddCommand(newStatsHistoryCmd())
	cmd.AddCommand(newStatsRecalculateCmd())

	return cmd
}

func newStatsHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show completed-game history",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/me/game-history"
			if limit > 0 {
				path = fmt.Sprintf("%s?limit=%d", path, limit)
			}

			var result History
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max entries to return")

	return cmd
}

func newStatsRecalculateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recalculate",
		Short: "Rebuild aggregates from full history",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Post("/api/v1/me/recalculate-stats", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
