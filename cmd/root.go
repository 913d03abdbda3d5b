package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cmdflash [set]",
	Short: "Spaced-repetition flashcards for shell commands",
	Long: `cmdflash drills the commands you keep looking up (terminal, git, clasp, gcloud)
with spaced repetition. Cards you miss come back sooner; cards you know drift out
to weeks between reviews.

Run with a set ID to start a review, or without one to list the available sets.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runSets(cmd)
		}
		return runReview(cmd, args[0])
	},
}

// Execute runs the root command, cancelling its context on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CMDFLASH_DB env var)")
	rootCmd.PersistentFlags().String("content", "", "Directory of extra card set JSON files (overrides CMDFLASH_CONTENT env var)")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
