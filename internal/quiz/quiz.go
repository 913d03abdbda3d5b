// Package quiz turns a card set into multiple-choice questions.
package quiz

import (
	"math/rand/v2"

	"github.com/abhisek/cmdflash/internal/content"
)

// WrongOptions is the number of distractors offered with each question.
const WrongOptions = 3

// Question is one multiple-choice question built from a card.
type Question struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	CorrectAnswer string   `json:"correctAnswer"`
	Options       []string `json:"options"`
	Hint          string   `json:"hint,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
}

// Generator builds quizzes. The zero value is not usable; use New.
type Generator struct {
	rng *rand.Rand
}

// New creates a Generator drawing randomness from rng. A nil rng uses a
// randomly seeded source.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// NewSeeded creates a Generator with a deterministic source.
func NewSeeded(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// Questions builds one question per card in set order. Distractors are drawn
// from pool, the answers of every card available.
func (g *Generator) Questions(set *content.CardSet, pool []string) []Question {
	questions := make([]Question, 0, len(set.Cards))
	for _, c := range set.Cards {
		options := append([]string{c.Answer}, g.wrongOptions(c.Answer, pool, WrongOptions)...)
		g.shuffle(options)

		questions = append(questions, Question{
			ID:            c.ID,
			Question:      c.Task,
			CorrectAnswer: c.Answer,
			Options:       options,
			Hint:          c.WhenToUse,
			Explanation:   c.Description,
		})
	}
	return questions
}

// wrongOptions picks up to count distinct answers from pool other than
// correct.
func (g *Generator) wrongOptions(correct string, pool []string, count int) []string {
	seen := map[string]bool{correct: true}
	var candidates []string
	for _, a := range pool {
		if seen[a] {
			continue
		}
		seen[a] = true
		candidates = append(candidates, a)
	}

	g.shuffle(candidates)
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates
}

// Pick returns up to n of questions in random order. n <= 0 keeps all of
// them. questions is not modified.
func (g *Generator) Pick(questions []Question, n int) []Question {
	out := append([]Question(nil), questions...)
	g.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

func (g *Generator) shuffle(s []string) {
	g.rng.Shuffle(len(s), func(i, j int) { s[i], s[j] = s[j], s[i] })
}

// Score is the result of a finished quiz.
type Score struct {
	Correct int
	Total   int
}

// Percent returns the score as a rounded percentage. An empty quiz scores 0.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return (s.Correct*200 + s.Total) / (2 * s.Total)
}

// Message returns encouragement matching the score.
func (s Score) Message() string {
	p := s.Percent()
	switch {
	case p == 100:
		return "Perfect! You know every command."
	case p >= 80:
		return "Excellent work! You know most commands."
	case p >= 60:
		return "Good effort! Keep practicing."
	case p >= 40:
		return "Nice try! Review and try again."
	default:
		return "Keep learning! You'll get there."
	}
}
