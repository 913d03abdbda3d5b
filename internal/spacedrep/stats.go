package spacedrep

import (
	"context"
	"math"
)

// SetStats summarizes a set's progress for display.
type SetStats struct {
	TotalCards    int `json:"totalCards"`
	NewCards      int `json:"newCards"`
	LearningCards int `json:"learningCards"`
	ReviewCards   int `json:"reviewCards"`
	MasteredCards int `json:"masteredCards"`
	DueForReview  int `json:"dueForReview"`
	StreakDays    int `json:"streakDays"`
}

// GetSetStats classifies every card in cardIDs in a single pass.
//
// StreakDays is 1 when the set was studied within the last day and 0
// otherwise; it does not count consecutive days.
func (s *Scheduler) GetSetStats(ctx context.Context, setID string, cardIDs []string) SetStats {
	sp := s.GetSetProgress(ctx, setID)
	now := s.now()

	stats := SetStats{TotalCards: len(cardIDs)}
	for _, id := range cardIDs {
		cp := sp.Cards[id]
		if cp == nil || cp.IsNew() {
			stats.NewCards++
			stats.DueForReview++
			continue
		}

		if cp.IsDue(now) {
			stats.DueForReview++
		}

		switch {
		case cp.MasteryLevel <= LevelLearning:
			stats.LearningCards++
		case cp.MasteryLevel <= LevelFamiliar:
			stats.ReviewCards++
		default:
			stats.MasteredCards++
		}
	}

	if sp.LastStudyDate != nil {
		days := math.Floor(now.Sub(*sp.LastStudyDate).Hours() / 24.0)
		if days <= 1 {
			stats.StreakDays = 1
		}
	}
	return stats
}
