package spacedrep

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// Scheduler tracks per-card mastery and computes due cards, study order and
// statistics. Every operation loads the persisted store, works on it in
// memory and, for mutations, saves it back before returning.
//
// The Scheduler assumes a single writer. Two processes updating the same
// store concurrently can lose updates.
type Scheduler struct {
	storage Storage
	now     func() time.Time
	warn    io.Writer
}

// NewScheduler creates a scheduler persisting through storage.
func NewScheduler(storage Storage) *Scheduler {
	return &Scheduler{
		storage: storage,
		now:     time.Now,
		warn:    os.Stderr,
	}
}

func (s *Scheduler) warnf(format string, args ...any) {
	fmt.Fprintf(s.warn, "warning: "+format+"\n", args...)
}

// GetSetProgress returns the progress for a set, or an empty one if the set
// has never been studied.
func (s *Scheduler) GetSetProgress(ctx context.Context, setID string) *SetProgress {
	if sp := s.LoadStore(ctx)[setID]; sp != nil {
		return sp
	}
	return newSetProgress(setID)
}

// GetCardProgress returns the progress for a card. Cards without a record get
// a fresh default record, which is not persisted.
func (s *Scheduler) GetCardProgress(ctx context.Context, setID, cardID string) CardProgress {
	cp, _ := s.LookupCardProgress(ctx, setID, cardID)
	return cp
}

// LookupCardProgress is GetCardProgress that also reports whether the card
// had a stored record.
func (s *Scheduler) LookupCardProgress(ctx context.Context, setID, cardID string) (CardProgress, bool) {
	sp := s.GetSetProgress(ctx, setID)
	if cp := sp.Cards[cardID]; cp != nil {
		return *cp, true
	}
	return *newCardProgress(setID, cardID, s.now()), false
}

// UpdateCardProgress records one answer for a card and persists the result.
// The updated record is returned even if persisting it failed.
func (s *Scheduler) UpdateCardProgress(ctx context.Context, setID, cardID string, correct bool) CardProgress {
	now := s.now()
	ps := s.LoadStore(ctx)

	sp := ps[setID]
	if sp == nil {
		sp = newSetProgress(setID)
		ps[setID] = sp
	}
	cp := sp.Cards[cardID]
	if cp == nil {
		cp = newCardProgress(setID, cardID, now)
		sp.Cards[cardID] = cp
	}

	cp.apply(correct, now)

	sp.TotalReviews++
	studied := now
	sp.LastStudyDate = &studied

	s.SaveStore(ctx, ps)
	return *cp
}

// GetDueCards returns the cards that are due, in input order. Cards without a
// record are always due.
func (s *Scheduler) GetDueCards(ctx context.Context, setID string, cardIDs []string) []string {
	sp := s.GetSetProgress(ctx, setID)
	now := s.now()

	due := make([]string, 0, len(cardIDs))
	for _, id := range cardIDs {
		cp := sp.Cards[id]
		if cp == nil || cp.IsDue(now) {
			due = append(due, id)
		}
	}
	return due
}

// DaysUntilNextReview returns the days until the soonest upcoming review
// among cards that are not yet due. It reports false when no card is
// waiting, including when every card is already due.
func (s *Scheduler) DaysUntilNextReview(ctx context.Context, setID string, cardIDs []string) (int, bool) {
	sp := s.GetSetProgress(ctx, setID)
	now := s.now()

	soonest, found := 0, false
	for _, id := range cardIDs {
		cp := sp.Cards[id]
		if cp == nil || cp.IsDue(now) {
			continue
		}
		if d := cp.DaysUntilReview(now); !found || d < soonest {
			soonest, found = d, true
		}
	}
	return soonest, found
}

// GetNewCards returns the cards that have never been answered, in input order.
func (s *Scheduler) GetNewCards(ctx context.Context, setID string, cardIDs []string) []string {
	sp := s.GetSetProgress(ctx, setID)

	fresh := make([]string, 0, len(cardIDs))
	for _, id := range cardIDs {
		cp := sp.Cards[id]
		if cp == nil || cp.IsNew() {
			fresh = append(fresh, id)
		}
	}
	return fresh
}

// GetCardsByMastery returns the cards at the given mastery level, in input
// order. Cards without a record count as LevelNew.
func (s *Scheduler) GetCardsByMastery(ctx context.Context, setID string, cardIDs []string, level MasteryLevel) []string {
	sp := s.GetSetProgress(ctx, setID)

	var matched []string
	for _, id := range cardIDs {
		cp := sp.Cards[id]
		if cp == nil {
			if level == LevelNew {
				matched = append(matched, id)
			}
			continue
		}
		if cp.MasteryLevel == level {
			matched = append(matched, id)
		}
	}
	return matched
}

// GetStudyOrder returns the cards to study next: due cards by descending
// priority, then new cards in input order, capped at maxCards. Reviewed
// cards that are not yet due are left out. maxCards <= 0 selects
// DefaultMaxCards.
//
// The order changes as answers are recorded. Callers running a review
// session should use StartSession, which fixes the order once.
func (s *Scheduler) GetStudyOrder(ctx context.Context, setID string, cardIDs []string, maxCards int) []string {
	if maxCards <= 0 {
		maxCards = DefaultMaxCards
	}
	sp := s.GetSetProgress(ctx, setID)
	now := s.now()

	type dueCard struct {
		id       string
		priority int
	}
	var due []dueCard
	var fresh []string

	for _, id := range cardIDs {
		cp := sp.Cards[id]
		switch {
		case cp == nil || cp.IsNew():
			fresh = append(fresh, id)
		case cp.IsDue(now):
			due = append(due, dueCard{id: id, priority: cp.priority()})
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return due[i].priority > due[j].priority
	})

	order := make([]string, 0, min(maxCards, len(due)+len(fresh)))
	for _, d := range due {
		order = append(order, d.id)
	}
	order = append(order, fresh...)
	if len(order) > maxCards {
		order = order[:maxCards]
	}
	return order
}

// ResetSetProgress removes all progress for one set.
func (s *Scheduler) ResetSetProgress(ctx context.Context, setID string) {
	ps := s.LoadStore(ctx)
	if _, ok := ps[setID]; !ok {
		return
	}
	delete(ps, setID)
	s.SaveStore(ctx, ps)
}

// ResetAllProgress clears the whole store.
func (s *Scheduler) ResetAllProgress(ctx context.Context) {
	if err := s.storage.Delete(ctx, StorageKey); err != nil {
		s.warnf("failed to reset progress: %v", err)
	}
}
