package content

// Card is one flashcard: a task prompt and the command that performs it.
type Card struct {
	ID          string   `json:"id"`
	Task        string   `json:"task"`
	Answer      string   `json:"answer"`
	Description string   `json:"description,omitempty"`
	WhenToUse   string   `json:"whenToUse,omitempty"`
	Scenarios   []string `json:"scenarios,omitempty"`
}

// CardSet is an ordered collection of cards on one topic.
type CardSet struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`

	// EstimatedTime is a human estimate such as "10 min".
	EstimatedTime string `json:"estimatedTime,omitempty"`
	CategoryLabel string `json:"categoryLabel,omitempty"`
	Icon          string `json:"icon,omitempty"`
	Color         string `json:"color,omitempty"`

	// CardCount is the count declared by the document. Len(Cards) is
	// authoritative; the declared value is kept only for round trips.
	CardCount int `json:"cardCount,omitempty"`

	Cards []Card `json:"cards"`
}

// CardIDs returns the card IDs in set order.
func (cs *CardSet) CardIDs() []string {
	ids := make([]string, len(cs.Cards))
	for i, c := range cs.Cards {
		ids[i] = c.ID
	}
	return ids
}

// Card returns the card with the given ID.
func (cs *CardSet) Card(id string) (Card, bool) {
	for _, c := range cs.Cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
