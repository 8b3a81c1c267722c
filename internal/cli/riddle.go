package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newRiddleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "riddle",
		Short: "Riddle management commands",
	}

	cmd.AddCommand(newRiddleListCmd())
	cmd.AddCommand(newRiddleGetCmd())
	cmd.AddCommand(newRiddleRandomCmd())
	cmd.AddCommand(newRiddleCreateCmd())
	cmd.AddCommand(newRiddleUpdateCmd())
	cmd.AddCommand(newRiddleDeleteCmd())
	cmd.AddCommand(newRiddleLoadInitialCmd())

	return cmd
}

func newRiddleListCmd() *cobra.Command {
	var level string
	var limit, skip int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List riddles",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if level != "" {
				query.Set("level", level)
			}
			if limit > 0 {
				query.Set("limit", fmt.Sprintf("%d", limit))
			}
			if skip > 0 {
				query.Set("skip", fmt.Sprintf("%d", skip))
			}

			path := "/riddles"
			if len(query) > 0 {
				path += "?" + query.Encode()
			}

			var result []Riddle
			if _, err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&level, "level", "", "Filter by level: easy, medium, hard")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of riddles to return")
	cmd.Flags().IntVar(&skip, "skip", 0, "Number of riddles to skip")

	return cmd
}

func newRiddleGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a riddle by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Riddle

			if _, err := client.Get("/riddles/"+url.PathEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRiddleRandomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Fetch a random riddle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Riddle

			if _, err := client.Get("/riddles/random", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRiddleCreateCmd() *cobra.Command {
	var question, answer, level string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new riddle",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"question": question,
				"answer":   answer,
			}
			if level != "" {
				req["level"] = level
			}
			var result Riddle

			if _, err := client.Post("/riddles", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&question, "question", "", "Riddle question (required)")
	cmd.Flags().StringVar(&answer, "answer", "", "Riddle answer (required)")
	cmd.Flags().StringVar(&level, "level", "", "Difficulty: easy, medium, hard")
	_ = cmd.MarkFlagRequired("question")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func newRiddleUpdateCmd() *cobra.Command {
	var question, answer, level string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing riddle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if question != "" {
				req["question"] = question
			}
			if answer != "" {
				req["answer"] = answer
			}
			if level != "" {
				req["level"] = level
			}
			var result Riddle

			if _, err := client.Put("/riddles/"+url.PathEscape(args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&question, "question", "", "New question text")
	cmd.Flags().StringVar(&answer, "answer", "", "New answer text")
	cmd.Flags().StringVar(&level, "level", "", "New difficulty: easy, medium, hard")

	return cmd
}

func newRiddleDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a riddle (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := client.Delete("/riddles/"+url.PathEscape(args[0]), nil)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(env.Message)
			return nil
		},
	}
}

func newRiddleLoadInitialCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "load-initial",
		Short: "Seed the riddle database (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var req map[string]string
			if path != "" {
				req = map[string]string{"path": path}
			}

			env, err := client.Post("/riddles/load-initial", req, nil)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(env.Message)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Server-side path to the seed file")

	return cmd
}
