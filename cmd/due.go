package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var dueCmd = &cobra.Command{
	Use:   "due <set>",
	Short: "List the cards due for review, or the next study order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, _ := cmd.Flags().GetBool("order")
		maxCards, _ := cmd.Flags().GetInt("max")

		ctx := cmd.Context()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		set, err := e.lib.Resolve(args[0])
		if err != nil {
			return err
		}

		var ids []string
		if order {
			if maxCards <= 0 {
				maxCards = e.cfg.MaxCards
			}
			ids = e.sched.GetStudyOrder(ctx, set.ID, set.CardIDs(), maxCards)
		} else {
			ids = e.sched.GetDueCards(ctx, set.ID, set.CardIDs())
		}

		if len(ids) == 0 {
			if days, ok := e.sched.DaysUntilNextReview(ctx, set.ID, set.CardIDs()); ok {
				fmt.Printf("Nothing due. Next review in %d day(s).\n", days)
			} else {
				fmt.Println("Nothing due. Come back later!")
			}
			return nil
		}

		// Header.
		fmt.Printf("%-16s  %-9s  %-7s  %s\n", "ID", "Mastery", "Reviews", "Task")
		fmt.Println(strings.Repeat("─", 80))

		for _, id := range ids {
			card, _ := set.Card(id)
			cp := e.sched.GetCardProgress(ctx, set.ID, id)
			fmt.Printf("%-16s  %-9s  %7d  %s\n", id, cp.MasteryLevel, cp.ReviewCount, truncate(card.Task, 40))
		}

		fmt.Printf("\n%d cards\n", len(ids))
		return nil
	},
}

func init() {
	dueCmd.Flags().Bool("order", false, "Show the prioritized study order instead of every due card")
	dueCmd.Flags().Int("max", 0, "Maximum cards in the study order (default CMDFLASH_MAX_CARDS or 20)")
}
