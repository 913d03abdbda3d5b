package spacedrep

// MasteryLevel classifies how well a card is learned, from 0 (new) to 5
// (mastered).
type MasteryLevel int

const (
	LevelNew MasteryLevel = iota
	LevelLearning
	LevelReview
	LevelFamiliar
	LevelKnown
	LevelMastered
)

// MaxLevel is the highest mastery level.
const MaxLevel = LevelMastered

var levelNames = [...]string{"New", "Learning", "Review", "Familiar", "Known", "Mastered"}

func (l MasteryLevel) String() string {
	if l < LevelNew || l > MaxLevel {
		return "Unknown"
	}
	return levelNames[l]
}

// BaseIntervals maps a mastery level to its base review interval in days.
// The effective interval is the base scaled by the card's ease factor.
var BaseIntervals = [...]int{0, 1, 3, 7, 14, 30}

// Ease factor bounds. New cards start at DefaultEase.
const (
	MinEase     = 1.3
	MaxEase     = 2.5
	DefaultEase = 2.5

	easeBonus   = 0.1
	easePenalty = 0.2
)

// DefaultMaxCards is the default length of a study order.
const DefaultMaxCards = 20

// StorageKey is the key under which the whole progress store is persisted.
const StorageKey = "flashcards_srs_progress"

// baseInterval returns the base interval for level, clamping out-of-range
// levels to the nearest valid one.
func baseInterval(level MasteryLevel) int {
	switch {
	case level < LevelNew:
		return BaseIntervals[LevelNew]
	case level > MaxLevel:
		return BaseIntervals[MaxLevel]
	}
	return BaseIntervals[level]
}
