package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var setsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the available card sets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSets(cmd)
	},
}

func runSets(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := loadLibrary(cmd, cfg)
	if err != nil {
		return err
	}
	sets := lib.Sets()

	// Header.
	fmt.Printf("%-20s  %-28s  %-12s  %5s\n", "ID", "Title", "Difficulty", "Cards")
	fmt.Println(strings.Repeat("─", 72))

	for _, s := range sets {
		fmt.Printf("%-20s  %-28s  %-12s  %5d\n", s.ID, truncate(s.Title, 28), s.Difficulty, len(s.Cards))
	}

	fmt.Printf("\n%d sets. Start a review with: cmdflash review <set>\n", len(sets))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
