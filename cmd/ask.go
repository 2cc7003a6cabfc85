package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"spotsolve-be/assistant"
	"spotsolve-be/config"
)

func askCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask the assistant about a user's reports",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := userFilter(userID)
			if err != nil {
				return err
			}
			if filter.UserID == nil {
				return errors.New("--user is required")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			repo, closeDB, err := openIssues(ctx, config.Load())
			if err != nil {
				return err
			}
			defer closeDB()

			issues, err := repo.List(ctx, filter)
			if err != nil {
				return err
			}

			reply := assistant.Match(strings.Join(args, " "), issues)
			fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User whose reports are consulted (hex id)")
	return cmd
}
