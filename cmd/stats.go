package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/cmdflash/internal/content"
	"github.com/abhisek/cmdflash/internal/spacedrep"
	"github.com/abhisek/cmdflash/internal/ui/components"
	"github.com/abhisek/cmdflash/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats [set]",
	Short: "Show learning statistics for one set or all sets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		sets := e.lib.Sets()
		if len(args) == 1 {
			set, err := e.lib.Resolve(args[0])
			if err != nil {
				return err
			}
			sets = []*content.CardSet{set}
		}

		for i, set := range sets {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(renderStats(set, e.sched.GetSetStats(ctx, set.ID, set.CardIDs())))
		}
		return nil
	},
}

// renderStats formats one set's statistics as a styled block.
func renderStats(set *content.CardSet, st spacedrep.SetStats) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(set.Title))
	b.WriteString(theme.Subtitle.Render("  " + set.ID))
	b.WriteString("\n")

	bar := components.NewProgressBar("Mastered", components.Fraction(st.MasteredCards, st.TotalCards), true, 50)
	b.WriteString(bar.View())
	b.WriteString("\n")

	row := func(label string, n int, style lipgloss.Style) {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", label, style.Render(fmt.Sprint(n))))
	}
	row("Total", st.TotalCards, theme.Body)
	row("New", st.NewCards, theme.Body)
	row("Learning", st.LearningCards, theme.Body)
	row("Review", st.ReviewCards, theme.Body)
	row("Mastered", st.MasteredCards, theme.Correct)
	row("Due", st.DueForReview, theme.Due)

	if st.StreakDays > 0 {
		b.WriteString(theme.Hint.Render("  Studied within the last day"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
