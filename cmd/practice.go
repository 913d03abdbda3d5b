package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cmdflash/internal/practice"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <set>",
	Short: "Drill every card in a set by typing commands (progress is not recorded)",
	Long: `Type the command for each card in a shuffled set.

With --hard, a wrong answer keeps you on the card until you type it correctly
three times in a row. Practice never changes review scheduling.`,
	Args: cobra.ExactArgs(1),
	RunE: runPracticeCmd,
}

func init() {
	practiceCmd.Flags().Bool("hard", false, "Require three correct retries after a wrong answer")
	practiceCmd.Flags().Uint64("seed", 0, "Random seed for a repeatable card order (0 picks one)")
}

func runPracticeCmd(cmd *cobra.Command, args []string) error {
	hard, _ := cmd.Flags().GetBool("hard")
	seed, _ := cmd.Flags().GetUint64("seed")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	lib, err := loadLibrary(cmd, cfg)
	if err != nil {
		return err
	}
	set, err := lib.Resolve(args[0])
	if err != nil {
		return err
	}

	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	d := practice.New(set.Cards, hard, rng)

	mode := ""
	if hard {
		mode = ", hard mode"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Practice: %s (%d cards%s)\n\n", set.Title, d.Len(), mode)
	runPractice(cmd.InOrStdin(), cmd.OutOrStdout(), d)

	correct, attempts := d.Score()
	fmt.Fprintf(cmd.OutOrStdout(), "── Score: %d/%d cards, %d attempts ──\n", correct, d.Len(), attempts)
	return nil
}

// runPractice drives d with lines read from in until the drill ends or in
// is exhausted. Blank lines re-prompt without counting as an attempt.
func runPractice(in io.Reader, out io.Writer, d *practice.Drill) {
	scanner := bufio.NewScanner(in)

	for !d.Done() {
		card, _ := d.Current()
		if r := d.RetryAttempt(); r > 0 {
			fmt.Fprintf(out, "── Card %d/%d (retry %d/%d) ──\n", d.Position()+1, d.Len(), r, practice.HardModeRetries)
		} else {
			fmt.Fprintf(out, "── Card %d/%d ──\n", d.Position()+1, d.Len())
		}
		fmt.Fprintln(out, card.Task)

		fmt.Fprint(out, "\n$ ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			return
		}
		reply := strings.TrimSpace(scanner.Text())
		if reply == "" {
			fmt.Fprintln(out, "(type a command)")
			fmt.Fprintln(out)
			continue
		}

		res, err := d.Submit(reply)
		if err != nil {
			return
		}
		switch {
		case res.Correct && res.Retry > 0:
			fmt.Fprintf(out, "\033[32m✓ Correct!\033[0m Again (%d/%d)\n", res.Retry, practice.HardModeRetries)
		case res.Correct:
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		case res.Retry > 0:
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\nType it %d times to continue.\n", res.Expected, practice.HardModeRetries)
		default:
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", res.Expected)
		}
		if res.Advanced && card.Description != "" {
			fmt.Fprintf(out, "%s\n", card.Description)
		}
		fmt.Fprintln(out)
	}
}
