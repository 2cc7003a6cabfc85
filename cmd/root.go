package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"spotsolve-be/config"
	"spotsolve-be/repository"
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "spotsolve",
		Short:        "SpotSolve issue reporting backend",
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd(), statsCmd(), askCmd())
	return cmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openIssues connects to MongoDB for the offline commands. The returned
// func disconnects the client.
func openIssues(ctx context.Context, cfg *config.Config) (*repository.IssueRepository, func(), error) {
	client, db, err := config.ConnectDB(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewIssueRepository(db), disconnect(client), nil
}

func disconnect(client *mongo.Client) func() {
	return func() { _ = client.Disconnect(context.Background()) }
}
