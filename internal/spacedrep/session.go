package spacedrep

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionDone is returned when answering past the last card.
	ErrSessionDone = errors.New("session has no more cards")

	// ErrAlreadyAnswered is returned when the current card was already answered.
	ErrAlreadyAnswered = errors.New("current card already answered")
)

// Session is one review pass over a set. Its study order is computed once
// when the session starts and never changes, so recording answers cannot
// reorder or drop the cards still ahead.
type Session struct {
	ID        uuid.UUID
	SetID     string
	StartedAt time.Time

	sched    *Scheduler
	order    []string
	pos      int
	answered bool
	results  []SessionAnswer
}

// SessionAnswer is one recorded answer in a session.
type SessionAnswer struct {
	CardID   string
	Correct  bool
	Progress CardProgress
}

// SessionSummary reports how a session went.
type SessionSummary struct {
	Total    int
	Answered int
	Correct  int
	Duration time.Duration
}

// StartSession snapshots the current study order for setID and returns a
// session over it.
func (s *Scheduler) StartSession(ctx context.Context, setID string, cardIDs []string, maxCards int) *Session {
	return &Session{
		ID:        uuid.New(),
		SetID:     setID,
		StartedAt: s.now(),
		sched:     s,
		order:     s.GetStudyOrder(ctx, setID, cardIDs, maxCards),
	}
}

// Order returns a copy of the frozen study order.
func (ss *Session) Order() []string {
	return append([]string(nil), ss.order...)
}

// Len returns the number of cards in the session.
func (ss *Session) Len() int { return len(ss.order) }

// Position returns the zero-based index of the current card.
func (ss *Session) Position() int { return ss.pos }

// Done reports whether every card has been passed.
func (ss *Session) Done() bool { return ss.pos >= len(ss.order) }

// Answered reports whether the current card has been answered.
func (ss *Session) Answered() bool { return ss.answered }

// Current returns the current card ID, or false once the session is done.
func (ss *Session) Current() (string, bool) {
	if ss.Done() {
		return "", false
	}
	return ss.order[ss.pos], true
}

// Answer records the result for the current card.
func (ss *Session) Answer(ctx context.Context, correct bool) (CardProgress, error) {
	cardID, ok := ss.Current()
	if !ok {
		return CardProgress{}, ErrSessionDone
	}
	if ss.answered {
		return CardProgress{}, ErrAlreadyAnswered
	}

	cp := ss.sched.UpdateCardProgress(ctx, ss.SetID, cardID, correct)
	ss.answered = true
	ss.results = append(ss.results, SessionAnswer{CardID: cardID, Correct: correct, Progress: cp})
	return cp, nil
}

// Advance moves to the next card, skipping the current one if it was not
// answered. It returns false once the session is done.
func (ss *Session) Advance() bool {
	if ss.Done() {
		return false
	}
	ss.pos++
	ss.answered = false
	return !ss.Done()
}

// Results returns the answers recorded so far.
func (ss *Session) Results() []SessionAnswer {
	return append([]SessionAnswer(nil), ss.results...)
}

// Summary tallies the session so far.
func (ss *Session) Summary() SessionSummary {
	sum := SessionSummary{
		Total:    len(ss.order),
		Answered: len(ss.results),
		Duration: ss.sched.now().Sub(ss.StartedAt),
	}
	for _, r := range ss.results {
		if r.Correct {
			sum.Correct++
		}
	}
	return sum
}
