package api

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/abhisek/cmdflash/internal/answer"
	"github.com/abhisek/cmdflash/internal/content"
	"github.com/abhisek/cmdflash/internal/quiz"
	"github.com/abhisek/cmdflash/internal/spacedrep"
)

// SetSummary is one entry of the set listing.
type SetSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	Difficulty    string `json:"difficulty,omitempty"`
	EstimatedTime string `json:"estimatedTime,omitempty"`
	CardCount     int    `json:"cardCount"`
}

// CardList is a list of card IDs in a set.
type CardList struct {
	SetID   string   `json:"setId"`
	CardIDs []string `json:"cardIds"`
}

// AnswerRequest is the body of an answer submission. Answer is checked
// against the card when present, otherwise Correct is taken as given.
type AnswerRequest struct {
	Answer  *string `json:"answer"`
	Correct *bool   `json:"correct"`
}

// AnswerResponse reports the outcome of an answer submission.
type AnswerResponse struct {
	Correct  bool                   `json:"correct"`
	Expected string                 `json:"expected"`
	Progress spacedrep.CardProgress `json:"progress"`
}

// ValidateRequest is the body of a practice validation.
type ValidateRequest struct {
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
}

// QuizMetadata describes a generated quiz.
type QuizMetadata struct {
	SetID          string `json:"setId"`
	Title          string `json:"title"`
	TotalQuestions int    `json:"totalQuestions"`
	TotalAvailable int    `json:"totalAvailable"`
}

// QuizResponse is a generated quiz.
type QuizResponse struct {
	Questions []quiz.Question `json:"questions"`
	Metadata  QuizMetadata    `json:"metadata"`
}

func (h *Handler) ListSets(c *fiber.Ctx) error {
	sets := h.lib.Sets()
	out := make([]SetSummary, len(sets))
	for i, cs := range sets {
		out[i] = SetSummary{
			ID:            cs.ID,
			Title:         cs.Title,
			Description:   cs.Description,
			Category:      cs.Category,
			Difficulty:    cs.Difficulty,
			EstimatedTime: cs.EstimatedTime,
			CardCount:     len(cs.Cards),
		}
	}
	return c.JSON(fiber.Map{"sets": out})
}

func (h *Handler) GetSet(c *fiber.Ctx) error {
	cs, err := h.lookupSet(c)
	if err != nil {
		return err
	}
	return c.JSON(cs)
}

func (h *Handler) GetStats(c *fiber.Ctx) error {
	cs, err := h.lookupSet(c)
	if err != nil {
		return err
	}
	return c.JSON(h.sched.GetSetStats(c.UserContext(), cs.ID, cs.CardIDs()))
}

func (h *Handler) GetDue(c *fiber.Ctx) error {
	cs, err := h.lookupSet(c)
	if err != nil {
		return err
	}
	due := h.sched.GetDueCards(c.UserContext(), cs.ID, cs.CardIDs())
	return c.JSON(CardList{SetID: cs.ID, CardIDs: nonNil(due)})
}

func (h *Handler) GetOrder(c *fiber.Ctx) error {
	cs, err := h.lookupSet(c)
	if err != nil {
		return err
	}
	maxCards, err := queryInt(c, "max", h.maxCards)
	if err != nil {
		return err
	}
	order := h.sched.GetStudyOrder(c.UserContext(), cs.ID, cs.CardIDs(), maxCards)
	return c.JSON(CardList{SetID: cs.ID, CardIDs: nonNil(order)})
}

func (h *Handler) GetCardProgress(c *fiber.Ctx) error {
	cs, card, err := h.lookupCard(c)
	if err != nil {
		return err
	}
	return c.JSON(h.sched.GetCardProgress(c.UserContext(), cs.ID, card.ID))
}

func (h *Handler) AnswerCard(c *fiber.Ctx) error {
	cs, card, err := h.lookupCard(c)
	if err != nil {
		return err
	}

	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	correct, err := req.judge(card)
	if err != nil {
		return err
	}

	cp := h.sched.UpdateCardProgress(c.UserContext(), cs.ID, card.ID, correct)
	return c.JSON(AnswerResponse{Correct: correct, Expected: card.Answer, Progress: cp})
}

// judge decides whether the request answers card correctly. A typed answer
// takes precedence over the correct flag; a blank one is rejected.
func (req AnswerRequest) judge(card content.Card) (bool, error) {
	switch {
	case req.Answer != nil:
		if strings.TrimSpace(*req.Answer) == "" {
			return false, fiber.NewError(fiber.StatusBadRequest, "answer must not be blank")
		}
		return answer.IsCorrect(*req.Answer, card.Answer), nil
	case req.Correct != nil:
		return *req.Correct, nil
	default:
		return false, fiber.NewError(fiber.StatusBadRequest, "answer or correct is required")
	}
}

func (h *Handler) ResetSet(c *fiber.Ctx) error {
	cs, err := h.lookupSet(c)
	if err != nil {
		return err
	}
	h.sched.ResetSetProgress(c.UserContext(), cs.ID)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) ResetAll(c *fiber.Ctx) error {
	h.sched.ResetAllProgress(c.UserContext())
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Validate(c *fiber.Ctx) error {
	var req ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.UserAnswer == "" || req.CorrectAnswer == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}
	return c.JSON(fiber.Map{"isCorrect": answer.IsCorrect(req.UserAnswer, req.CorrectAnswer)})
}

func (h *Handler) Quiz(c *fiber.Ctx) error {
	cs, err := h.lookupSet(c)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", DefaultQuizLimit)
	if err != nil {
		return err
	}

	g := quiz.New(nil)
	questions := g.Pick(g.Questions(cs, h.lib.AllAnswers()), limit)
	return c.JSON(QuizResponse{
		Questions: questions,
		Metadata: QuizMetadata{
			SetID:          cs.ID,
			Title:          cs.Title,
			TotalQuestions: len(questions),
			TotalAvailable: len(cs.Cards),
		},
	})
}

// queryInt parses an optional integer query parameter.
func queryInt(c *fiber.Ctx, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name+": "+raw)
	}
	return n, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
