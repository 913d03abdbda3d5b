// Package api exposes the scheduler and card library over HTTP.
package api

import (
	"errors"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/abhisek/cmdflash/internal/content"
	"github.com/abhisek/cmdflash/internal/spacedrep"
)

// DefaultQuizLimit is the number of quiz questions returned when the request
// does not ask for a specific count.
const DefaultQuizLimit = 10

// Handler serves the HTTP routes.
type Handler struct {
	sched    *spacedrep.Scheduler
	lib      *content.Library
	maxCards int

	mu       sync.Mutex
	sessions map[uuid.UUID]*spacedrep.Session
}

// NewHandler creates a Handler. maxCards is the study order limit used when
// a request does not pass one.
func NewHandler(sched *spacedrep.Scheduler, lib *content.Library, maxCards int) *Handler {
	return &Handler{
		sched:    sched,
		lib:      lib,
		maxCards: maxCards,
		sessions: make(map[uuid.UUID]*spacedrep.Session),
	}
}

// NewApp creates a fiber app with every route registered behind the given
// middleware.
func NewApp(h *Handler, middleware ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "cmdflash",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	for _, mw := range middleware {
		app.Use(mw)
	}
	h.Register(app)
	return app
}

// Register mounts the routes on app.
func (h *Handler) Register(app *fiber.App) {
	api := app.Group("/api")

	sets := api.Group("/sets")
	sets.Get("/", h.ListSets)
	sets.Get("/:setId", h.GetSet)
	sets.Get("/:setId/stats", h.GetStats)
	sets.Get("/:setId/due", h.GetDue)
	sets.Get("/:setId/order", h.GetOrder)
	sets.Get("/:setId/cards/:cardId/progress", h.GetCardProgress)
	sets.Post("/:setId/cards/:cardId/answer", h.AnswerCard)
	sets.Delete("/:setId/progress", h.ResetSet)

	api.Delete("/progress", h.ResetAll)
	api.Post("/progress/session", h.StartSession)
	api.Get("/progress/session/:sessionId", h.GetSession)
	api.Post("/progress/session/:sessionId/answer", h.AnswerSession)
	api.Post("/practice/validate", h.Validate)
	api.Get("/quiz/:setId", h.Quiz)
}

// errorHandler renders every error as {"error": message}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

// lookupSet resolves the :setId parameter, mapping unknown sets to 404.
func (h *Handler) lookupSet(c *fiber.Ctx) (*content.CardSet, error) {
	cs, err := h.lib.Set(c.Params("setId"))
	if errors.Is(err, content.ErrSetNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return cs, err
}

// lookupCard resolves :setId and :cardId.
func (h *Handler) lookupCard(c *fiber.Ctx) (*content.CardSet, content.Card, error) {
	cs, err := h.lookupSet(c)
	if err != nil {
		return nil, content.Card{}, err
	}
	id := c.Params("cardId")
	card, ok := cs.Card(id)
	if !ok {
		return nil, content.Card{}, fiber.NewError(fiber.StatusNotFound, "card not found: "+cs.ID+"/"+id)
	}
	return cs, card, nil
}
