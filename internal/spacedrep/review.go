package spacedrep

import (
	"math"
	"time"
)

// Result is the outcome of the most recent answer for a card.
type Result string

const (
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
)

// CardProgress holds the spaced repetition state for a single card.
type CardProgress struct {
	CardID         string       `json:"cardId"`
	SetID          string       `json:"setId"`
	MasteryLevel   MasteryLevel `json:"masteryLevel"`
	EaseFactor     float64      `json:"easeFactor"`
	Interval       int          `json:"interval"`
	NextReviewDate time.Time    `json:"nextReviewDate"`
	ReviewCount    int          `json:"reviewCount"`
	CorrectStreak  int          `json:"correctStreak"`
	LastReviewDate *time.Time   `json:"lastReviewDate"`
	LastResult     Result       `json:"lastResult,omitempty"`
}

// newCardProgress returns the default record for a card that has never been
// answered. It is due immediately.
func newCardProgress(setID, cardID string, now time.Time) *CardProgress {
	return &CardProgress{
		CardID:         cardID,
		SetID:          setID,
		MasteryLevel:   LevelNew,
		EaseFactor:     DefaultEase,
		Interval:       0,
		NextReviewDate: now,
	}
}

// IsDue returns true if the card is at or past its review date.
func (cp *CardProgress) IsDue(now time.Time) bool {
	return !now.Before(cp.NextReviewDate)
}

// IsNew returns true if the card has never been answered.
func (cp *CardProgress) IsNew() bool {
	return cp.ReviewCount == 0
}

// DaysUntilReview returns the number of days until the next review, rounded
// up. Returns 0 if already due.
func (cp *CardProgress) DaysUntilReview(now time.Time) int {
	if cp.IsDue(now) {
		return 0
	}
	return int(math.Ceil(cp.NextReviewDate.Sub(now).Hours() / 24.0))
}

// priority ranks a due card for the study order. Lower mastery and a failed
// last answer both pull a card forward.
func (cp *CardProgress) priority() int {
	p := int(MaxLevel - cp.MasteryLevel)
	if cp.LastResult == ResultIncorrect {
		p += 2
	}
	return p
}

// apply runs the state transition for one answer at time now.
func (cp *CardProgress) apply(correct bool, now time.Time) {
	if correct {
		cp.MasteryLevel = min(MaxLevel, cp.MasteryLevel+1)
		cp.CorrectStreak++
		cp.EaseFactor = math.Min(MaxEase, cp.EaseFactor+easeBonus)
	} else {
		// A card that has been seen before never drops back to New.
		floor := LevelNew
		if cp.ReviewCount > 0 {
			floor = LevelLearning
		}
		cp.MasteryLevel = max(floor, cp.MasteryLevel-2)
		cp.CorrectStreak = 0
		cp.EaseFactor = math.Max(MinEase, cp.EaseFactor-easePenalty)
	}

	cp.Interval = int(math.Round(float64(baseInterval(cp.MasteryLevel)) * cp.EaseFactor))
	cp.NextReviewDate = now.AddDate(0, 0, cp.Interval)

	cp.ReviewCount++
	reviewed := now
	cp.LastReviewDate = &reviewed
	if correct {
		cp.LastResult = ResultCorrect
	} else {
		cp.LastResult = ResultIncorrect
	}
}

// SetProgress aggregates the progress of every card in one set.
type SetProgress struct {
	SetID         string                   `json:"setId"`
	Cards         map[string]*CardProgress `json:"cards"`
	TotalReviews  int                      `json:"totalReviews"`
	LastStudyDate *time.Time               `json:"lastStudyDate"`
}

func newSetProgress(setID string) *SetProgress {
	return &SetProgress{
		SetID: setID,
		Cards: make(map[string]*CardProgress),
	}
}

// ProgressStore is the full persisted state: set ID to set progress.
type ProgressStore map[string]*SetProgress
