package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player and score commands",
	}

	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerStatsCmd())
	cmd.AddCommand(newPlayerLeaderboardCmd())
	cmd.AddCommand(newPlayerSubmitScoreCmd())

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []User

			if _, err := client.Get("/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a score-only player record (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"username": name}
			var result User

			if _, err := client.Post("/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player username (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayerStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <username>",
		Short: "Show a player's statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PlayerStats

			if _, err := client.Get("/players/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerLeaderboardCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the fastest solvers",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/players/leaderboard"
			if limit > 0 {
				path += "?limit=" + strconv.Itoa(limit)
			}

			var result []LeaderboardEntry
			if _, err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of entries")

	return cmd
}

func newPlayerSubmitScoreCmd() *cobra.Command {
	var name, riddleID string
	var timeToSolve int64

	cmd := &cobra.Command{
		Use:   "submit-score",
		Short: "Record a solve time for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"username":    name,
				"riddleId":    riddleID,
				"timeToSolve": timeToSolve,
			}

			env, err := client.Post("/players/submit-score", req, nil)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(env.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Player username (required)")
	cmd.Flags().StringVar(&riddleID, "riddle", "", "Riddle ID (required)")
	cmd.Flags().Int64Var(&timeToSolve, "time", 0, "Time to solve in milliseconds (required)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("riddle")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}
