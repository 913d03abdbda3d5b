package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/cmdflash/internal/content"
	"github.com/abhisek/cmdflash/internal/quiz"
	"github.com/abhisek/cmdflash/internal/spacedrep"
)

func newTestApp(t *testing.T) (*fiber.App, *spacedrep.Scheduler) {
	t.Helper()
	lib, err := content.Builtin()
	require.NoError(t, err)
	sched := spacedrep.NewScheduler(spacedrep.NewMemoryStorage())
	return NewApp(NewHandler(sched, lib, spacedrep.DefaultMaxCards)), sched
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func TestListSets(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, "GET", "/api/sets", nil)
	require.Equal(t, fiber.StatusOK, code)

	res := decode[struct {
		Sets []SetSummary `json:"sets"`
	}](t, body)
	require.NotEmpty(t, res.Sets)

	ids := make([]string, len(res.Sets))
	for i, s := range res.Sets {
		ids[i] = s.ID
		assert.Positive(t, s.CardCount, s.ID)
		assert.NotEmpty(t, s.EstimatedTime, s.ID)
	}
	assert.Contains(t, ids, "git-basics")
	assert.IsNonDecreasing(t, ids)
}

func TestGetSet(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, "GET", "/api/sets/git-basics", nil)
	require.Equal(t, fiber.StatusOK, code)

	cs := decode[content.CardSet](t, body)
	assert.Equal(t, "git-basics", cs.ID)
	_, ok := cs.Card("init")
	assert.True(t, ok)
}

func TestUnknownSetIs404(t *testing.T) {
	app, _ := newTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/sets/nope"},
		{"GET", "/api/sets/nope/stats"},
		{"GET", "/api/sets/nope/due"},
		{"GET", "/api/sets/nope/order"},
		{"GET", "/api/sets/nope/cards/init/progress"},
		{"DELETE", "/api/sets/nope/progress"},
		{"GET", "/api/quiz/nope"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			code, body := do(t, app, p.method, p.path, nil)
			assert.Equal(t, fiber.StatusNotFound, code)
			res := decode[map[string]string](t, body)
			assert.Contains(t, res["error"], "nope")
		})
	}
}

func TestUnknownCardIs404(t *testing.T) {
	app, _ := newTestApp(t)

	code, _ := do(t, app, "GET", "/api/sets/git-basics/cards/missing/progress", nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	code, _ = do(t, app, "POST", "/api/sets/git-basics/cards/missing/answer", map[string]any{"correct": true})
	assert.Equal(t, fiber.StatusNotFound, code)
}

func TestNewSetStats(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, "GET", "/api/sets/git-basics/stats", nil)
	require.Equal(t, fiber.StatusOK, code)

	stats := decode[spacedrep.SetStats](t, body)
	assert.Equal(t, 7, stats.TotalCards)
	assert.Equal(t, 7, stats.NewCards)
	assert.Equal(t, 7, stats.DueForReview)
	assert.Zero(t, stats.StreakDays)
}

func TestAnswerWithText(t *testing.T) {
	app, sched := newTestApp(t)

	code, body := do(t, app, "POST", "/api/sets/git-basics/cards/commit-m/answer",
		map[string]any{"answer": "git commit -m"})
	require.Equal(t, fiber.StatusOK, code)

	res := decode[AnswerResponse](t, body)
	assert.True(t, res.Correct)
	assert.Equal(t, "git commit -m <message>", res.Expected)
	assert.Equal(t, spacedrep.LevelLearning, res.Progress.MasteryLevel)
	assert.Equal(t, 1, res.Progress.ReviewCount)

	cp, ok := sched.LookupCardProgress(t.Context(), "git-basics", "commit-m")
	require.True(t, ok)
	assert.Equal(t, 1, cp.ReviewCount)
}

func TestAnswerWithFlag(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, "POST", "/api/sets/git-basics/cards/init/answer",
		map[string]any{"correct": false})
	require.Equal(t, fiber.StatusOK, code)

	res := decode[AnswerResponse](t, body)
	assert.False(t, res.Correct)
	assert.Equal(t, spacedrep.LevelNew, res.Progress.MasteryLevel)
	assert.Equal(t, spacedrep.ResultIncorrect, res.Progress.LastResult)
}

func TestAnswerBadRequest(t *testing.T) {
	app, _ := newTestApp(t)

	code, _ := do(t, app, "POST", "/api/sets/git-basics/cards/init/answer", map[string]any{})
	assert.Equal(t, fiber.StatusBadRequest, code)

	req := httptest.NewRequest("POST", "/api/sets/git-basics/cards/init/answer", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAnswerBlankIsRejectedWithoutRecording(t *testing.T) {
	app, sched := newTestApp(t)

	for _, blank := range []string{"", "   ", "\t\n"} {
		code, body := do(t, app, "POST", "/api/sets/clasp-basics/cards/login/answer",
			map[string]any{"answer": blank})
		assert.Equal(t, fiber.StatusBadRequest, code, "answer %q", blank)
		assert.Contains(t, decode[map[string]string](t, body)["error"], "blank")
	}

	_, ok := sched.LookupCardProgress(t.Context(), "clasp-basics", "login")
	assert.False(t, ok)
}

func TestCardProgressDefaultsAndUpdates(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, "GET", "/api/sets/git-basics/cards/init/progress", nil)
	require.Equal(t, fiber.StatusOK, code)
	cp := decode[spacedrep.CardProgress](t, body)
	assert.Equal(t, "init", cp.CardID)
	assert.Equal(t, spacedrep.DefaultEase, cp.EaseFactor)
	assert.Zero(t, cp.ReviewCount)

	do(t, app, "POST", "/api/sets/git-basics/cards/init/answer", map[string]any{"answer": "git init"})

	_, body = do(t, app, "GET", "/api/sets/git-basics/cards/init/progress", nil)
	cp = decode[spacedrep.CardProgress](t, body)
	assert.Equal(t, 1, cp.ReviewCount)
	assert.Equal(t, 3, cp.Interval)
}

func TestDueAndOrder(t *testing.T) {
	app, _ := newTestApp(t)

	do(t, app, "POST", "/api/sets/git-basics/cards/init/answer", map[string]any{"correct": true})

	code, body := do(t, app, "GET", "/api/sets/git-basics/due", nil)
	require.Equal(t, fiber.StatusOK, code)
	due := decode[CardList](t, body)
	assert.Equal(t, "git-basics", due.SetID)
	assert.Len(t, due.CardIDs, 6)
	assert.NotContains(t, due.CardIDs, "init")

	code, body = do(t, app, "GET", "/api/sets/git-basics/order?max=2", nil)
	require.Equal(t, fiber.StatusOK, code)
	order := decode[CardList](t, body)
	assert.Equal(t, []string{"status", "add-all"}, order.CardIDs)

	code, _ = do(t, app, "GET", "/api/sets/git-basics/order?max=lots", nil)
	assert.Equal(t, fiber.StatusBadRequest, code)
}

func TestResetSetAndAll(t *testing.T) {
	app, sched := newTestApp(t)
	ctx := t.Context()

	do(t, app, "POST", "/api/sets/git-basics/cards/init/answer", map[string]any{"correct": true})
	do(t, app, "POST", "/api/sets/terminal-basics/cards/pwd/answer", map[string]any{"correct": true})

	code, _ := do(t, app, "DELETE", "/api/sets/git-basics/progress", nil)
	assert.Equal(t, fiber.StatusNoContent, code)

	_, ok := sched.LookupCardProgress(ctx, "git-basics", "init")
	assert.False(t, ok)
	_, ok = sched.LookupCardProgress(ctx, "terminal-basics", "pwd")
	assert.True(t, ok)

	code, _ = do(t, app, "DELETE", "/api/progress", nil)
	assert.Equal(t, fiber.StatusNoContent, code)
	_, ok = sched.LookupCardProgress(ctx, "terminal-basics", "pwd")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	app, _ := newTestApp(t)

	tests := []struct {
		name    string
		body    map[string]any
		code    int
		correct bool
	}{
		{"match", map[string]any{"userAnswer": "Git Clone", "correctAnswer": "git clone <url>"}, fiber.StatusOK, true},
		{"mismatch", map[string]any{"userAnswer": "git pull", "correctAnswer": "git clone <url>"}, fiber.StatusOK, false},
		{"missing user answer", map[string]any{"correctAnswer": "git init"}, fiber.StatusBadRequest, false},
		{"missing correct answer", map[string]any{"userAnswer": "git init"}, fiber.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := do(t, app, "POST", "/api/practice/validate", tt.body)
			require.Equal(t, tt.code, code)
			if tt.code == fiber.StatusOK {
				res := decode[map[string]bool](t, body)
				assert.Equal(t, tt.correct, res["isCorrect"])
			}
		})
	}
}

func TestQuiz(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, "GET", "/api/quiz/git-branching?limit=3", nil)
	require.Equal(t, fiber.StatusOK, code)

	res := decode[QuizResponse](t, body)
	assert.Len(t, res.Questions, 3)
	assert.Equal(t, QuizMetadata{SetID: "git-branching", Title: res.Metadata.Title, TotalQuestions: 3, TotalAvailable: 6}, res.Metadata)
	for _, q := range res.Questions {
		assert.Len(t, q.Options, quiz.WrongOptions+1)
		assert.Contains(t, q.Options, q.CorrectAnswer)
	}

	_, body = do(t, app, "GET", "/api/quiz/git-branching", nil)
	res = decode[QuizResponse](t, body)
	assert.Len(t, res.Questions, 6)
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestApp(t)

	code, body := do(t, app, "GET", "/api/nothing", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Contains(t, decode[map[string]string](t, body), "error")
}
