package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/abhisek/cmdflash/internal/spacedrep"
)

// StartSessionRequest is the body of a session start. MaxCards <= 0 uses
// the server default.
type StartSessionRequest struct {
	SetID    string `json:"setId"`
	MaxCards int    `json:"maxCards"`
}

// SessionState describes a review session and where the learner is in it.
type SessionState struct {
	ID        uuid.UUID `json:"id"`
	SetID     string    `json:"setId"`
	StartedAt time.Time `json:"startedAt"`
	CardIDs   []string  `json:"cardIds"`
	Position  int       `json:"position"`
	Current   string    `json:"current,omitempty"`
	Done      bool      `json:"done"`
	Answered  int       `json:"answered"`
	Correct   int       `json:"correct"`
}

// SessionAnswerResponse reports one answer recorded in a session and the
// state after moving to the next card.
type SessionAnswerResponse struct {
	CardID   string                 `json:"cardId"`
	Correct  bool                   `json:"correct"`
	Expected string                 `json:"expected"`
	Progress spacedrep.CardProgress `json:"progress"`
	Session  SessionState           `json:"session"`
}

func sessionState(ss *spacedrep.Session) SessionState {
	sum := ss.Summary()
	current, _ := ss.Current()
	return SessionState{
		ID:        ss.ID,
		SetID:     ss.SetID,
		StartedAt: ss.StartedAt,
		CardIDs:   nonNil(ss.Order()),
		Position:  ss.Position(),
		Current:   current,
		Done:      ss.Done(),
		Answered:  sum.Answered,
		Correct:   sum.Correct,
	}
}

// lookupSession resolves :sessionId. The caller must hold h.mu.
func (h *Handler) lookupSession(c *fiber.Ctx) (*spacedrep.Session, error) {
	id, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	ss, ok := h.sessions[id]
	if !ok {
		return nil, fiber.NewError(fiber.StatusNotFound, "session not found: "+id.String())
	}
	return ss, nil
}

func (h *Handler) StartSession(c *fiber.Ctx) error {
	var req StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.SetID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "setId is required")
	}
	cs, err := h.lib.Set(req.SetID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	maxCards := req.MaxCards
	if maxCards <= 0 {
		maxCards = h.maxCards
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ss := h.sched.StartSession(c.UserContext(), cs.ID, cs.CardIDs(), maxCards)
	h.sessions[ss.ID] = ss
	return c.Status(fiber.StatusCreated).JSON(sessionState(ss))
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ss, err := h.lookupSession(c)
	if err != nil {
		return err
	}
	return c.JSON(sessionState(ss))
}

// AnswerSession records an answer for the session's current card and moves
// to the next one.
func (h *Handler) AnswerSession(c *fiber.Ctx) error {
	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ss, err := h.lookupSession(c)
	if err != nil {
		return err
	}
	cardID, ok := ss.Current()
	if !ok {
		return fiber.NewError(fiber.StatusConflict, spacedrep.ErrSessionDone.Error())
	}
	cs, err := h.lib.Set(ss.SetID)
	if err != nil {
		return err
	}
	card, ok := cs.Card(cardID)
	if !ok {
		ss.Advance()
		return fiber.NewError(fiber.StatusGone, "card no longer in set: "+cardID)
	}

	correct, err := req.judge(card)
	if err != nil {
		return err
	}

	cp, err := ss.Answer(c.UserContext(), correct)
	if errors.Is(err, spacedrep.ErrSessionDone) || errors.Is(err, spacedrep.ErrAlreadyAnswered) {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	if err != nil {
		return err
	}
	ss.Advance()

	return c.JSON(SessionAnswerResponse{
		CardID:   cardID,
		Correct:  correct,
		Expected: card.Answer,
		Progress: cp,
		Session:  sessionState(ss),
	})
}
