package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spotsolve-be/analytics"
	"spotsolve-be/config"
	"spotsolve-be/repository"
)

func statsCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print the analytics summary as JSON",
		Long: `Stats loads issues from MongoDB and prints the same summary the
dashboard shows. With --user only that citizen's issues are counted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := userFilter(userID)
			if err != nil {
				return err
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

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(analytics.Summarize(issues, time.Now()))
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "Restrict to one user's issues (hex id)")
	return cmd
}

func userFilter(userID string) (repository.IssueFilter, error) {
	if userID == "" {
		return repository.IssueFilter{}, nil
	}
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return repository.IssueFilter{}, fmt.Errorf("invalid user id %q", userID)
	}
	return repository.IssueFilter{UserID: &oid}, nil
}
