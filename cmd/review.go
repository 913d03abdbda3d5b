package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/cmdflash/internal/review"
)

var reviewCmd = &cobra.Command{
	Use:   "review <set>",
	Short: "Start a spaced-repetition review of a card set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReview(cmd, args[0])
	},
}

func init() {
	reviewCmd.Flags().Int("max", 0, "Maximum cards in the session (default CMDFLASH_MAX_CARDS or 20)")
}

// runReview opens the store and launches the review TUI for one set.
func runReview(cmd *cobra.Command, setArg string) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	set, err := e.lib.Resolve(setArg)
	if err != nil {
		return err
	}

	maxCards := e.cfg.MaxCards
	if cmd.Flags().Lookup("max") != nil {
		if n, _ := cmd.Flags().GetInt("max"); n > 0 {
			maxCards = n
		}
	}

	session := e.sched.StartSession(ctx, set.ID, set.CardIDs(), maxCards)
	summary, err := review.Run(ctx, set, session)
	if err != nil {
		return err
	}

	if summary.Answered > 0 {
		fmt.Printf("%s: %d/%d correct in %s\n",
			set.ID, summary.Correct, summary.Answered, summary.Duration.Round(time.Second))
	}
	return nil
}
