package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cmdflash/internal/answer"
	"github.com/abhisek/cmdflash/internal/quiz"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <set>",
	Short: "Take a multiple-choice quiz on a card set (progress is not recorded)",
	Long: `Answer multiple-choice questions built from a card set.

Pick an option by number or type the command. Quizzes are practice only and
never change review scheduling.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuizCmd,
}

func init() {
	quizCmd.Flags().Int("count", 10, "Number of questions (0 for every card)")
	quizCmd.Flags().Uint64("seed", 0, "Random seed for a repeatable quiz (0 picks one)")
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
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

	g := quiz.New(nil)
	if seed != 0 {
		g = quiz.NewSeeded(seed)
	}
	questions := g.Pick(g.Questions(set, lib.AllAnswers()), count)

	fmt.Fprintf(cmd.OutOrStdout(), "Quiz: %s (%d questions)\n\n", set.Title, len(questions))
	score := runQuiz(cmd.InOrStdin(), cmd.OutOrStdout(), questions)

	fmt.Fprintf(cmd.OutOrStdout(), "── Score: %d/%d (%d%%) ──\n%s\n",
		score.Correct, score.Total, score.Percent(), score.Message())
	return nil
}

// runQuiz asks each question on out and reads answers from in. It stops
// early if in is exhausted; unanswered questions still count toward the
// total.
func runQuiz(in io.Reader, out io.Writer, questions []quiz.Question) quiz.Score {
	scanner := bufio.NewScanner(in)
	score := quiz.Score{Total: len(questions)}

	for i, q := range questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, len(questions))
		fmt.Fprintln(out, q.Question)
		for j, o := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, o)
		}

		fmt.Fprint(out, "\nYour answer: ")
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		reply := strings.TrimSpace(scanner.Text())
		if reply == "" {
			fmt.Fprintf(out, "(skipped) Answer: %s\n\n", q.CorrectAnswer)
			continue
		}

		if checkChoice(reply, q) {
			score.Correct++
			fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectAnswer)
		}

		if q.Explanation != "" {
			fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)
		}
		fmt.Fprintln(out)
	}
	return score
}

// checkChoice accepts an option number or the command itself.
func checkChoice(reply string, q quiz.Question) bool {
	if n, err := strconv.Atoi(reply); err == nil {
		return n >= 1 && n <= len(q.Options) && q.Options[n-1] == q.CorrectAnswer
	}
	return answer.IsCorrect(reply, q.CorrectAnswer)
}
