// Package practice runs unscheduled drills over a card set. Answers here
// never touch review progress.
package practice

import (
	"errors"
	"math/rand/v2"

	"github.com/abhisek/cmdflash/internal/answer"
	"github.com/abhisek/cmdflash/internal/content"
)

// HardModeRetries is how many correct answers in a row hard mode demands
// after a miss before the card counts as done.
const HardModeRetries = 3

// ErrDrillDone is returned when submitting past the last card.
var ErrDrillDone = errors.New("drill has no more cards")

// Drill walks a shuffled copy of a set's cards.
type Drill struct {
	cards []content.Card
	hard  bool

	pos      int
	retry    int // pending retry attempt in hard mode, 0 when none
	score    int
	attempts int
}

// Outcome is the result of one submission.
type Outcome struct {
	Correct  bool
	Expected string

	// Retry is the retry attempt now required on the same card, 1 to
	// HardModeRetries. Zero means the card is finished.
	Retry int

	// Advanced reports whether the drill moved on to the next card.
	Advanced bool
}

// New creates a drill over cards shuffled with rng. A nil rng uses a
// randomly seeded source.
func New(cards []content.Card, hard bool, rng *rand.Rand) *Drill {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	shuffled := append([]content.Card(nil), cards...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return &Drill{cards: shuffled, hard: hard}
}

// Len returns the number of cards in the drill.
func (d *Drill) Len() int { return len(d.cards) }

// Position returns the zero-based index of the current card.
func (d *Drill) Position() int { return d.pos }

// Done reports whether every card is finished.
func (d *Drill) Done() bool { return d.pos >= len(d.cards) }

// Current returns the card being drilled, or false once the drill is done.
func (d *Drill) Current() (content.Card, bool) {
	if d.Done() {
		return content.Card{}, false
	}
	return d.cards[d.pos], true
}

// RetryAttempt returns the pending hard-mode retry attempt, or 0.
func (d *Drill) RetryAttempt() int { return d.retry }

// Score returns the number of finished cards answered correctly and the
// number of submissions made.
func (d *Drill) Score() (correct, attempts int) { return d.score, d.attempts }

// Submit checks input against the current card.
//
// In hard mode a miss starts a retry sequence on the same card; the card is
// finished, and scored as correct, only after HardModeRetries correct
// answers in a row. A miss during the sequence restarts it.
func (d *Drill) Submit(input string) (Outcome, error) {
	card, ok := d.Current()
	if !ok {
		return Outcome{}, ErrDrillDone
	}

	d.attempts++
	correct := answer.IsCorrect(input, card.Answer)
	out := Outcome{Correct: correct, Expected: card.Answer}

	if d.hard && !correct {
		d.retry = 1
		out.Retry = d.retry
		return out, nil
	}
	if d.hard && d.retry > 0 && d.retry < HardModeRetries {
		d.retry++
		out.Retry = d.retry
		return out, nil
	}

	if correct {
		d.score++
	}
	d.retry = 0
	d.pos++
	out.Advanced = true
	return out, nil
}
