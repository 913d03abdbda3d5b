package spacedrep

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStore_Missing(t *testing.T) {
	s, _, _, _ := newTestScheduler(t)

	got := s.LoadStore(context.Background())
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadStore_Corrupt(t *testing.T) {
	s, mem, _, _ := newTestScheduler(t)
	ctx := context.Background()

	require.NoError(t, mem.Put(ctx, StorageKey, []byte("{not json")))

	got := s.LoadStore(ctx)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadStore_ReadError(t *testing.T) {
	s, mem, _, _ := newTestScheduler(t)
	mem.GetErr = errors.New("io error")

	assert.Empty(t, s.LoadStore(context.Background()))
	// Operations still work on the empty view.
	assert.Equal(t, []string{"a"}, s.GetDueCards(context.Background(), "set", []string{"a"}))
}

func TestLoadStore_FillsMissingFields(t *testing.T) {
	s, mem, _, _ := newTestScheduler(t)
	ctx := context.Background()

	raw := `{"git-basics":{"cards":{"c1":{"masteryLevel":2,"easeFactor":2.1,"reviewCount":4,"nextReviewDate":"2025-03-01T00:00:00Z"}},"totalReviews":4},"empty":null}`
	require.NoError(t, mem.Put(ctx, StorageKey, []byte(raw)))

	got := s.LoadStore(ctx)
	require.Contains(t, got, "git-basics")
	assert.NotContains(t, got, "empty")

	sp := got["git-basics"]
	assert.Equal(t, "git-basics", sp.SetID)
	require.Contains(t, sp.Cards, "c1")
	assert.Equal(t, "c1", sp.Cards["c1"].CardID)
	assert.Equal(t, "git-basics", sp.Cards["c1"].SetID)
	assert.Equal(t, LevelReview, sp.Cards["c1"].MasteryLevel)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, _, clock, _ := newTestScheduler(t)
	ctx := context.Background()

	s.UpdateCardProgress(ctx, "git-basics", "add", true)
	clock.advance(2 * time.Hour)
	s.UpdateCardProgress(ctx, "git-basics", "commit", false)
	s.UpdateCardProgress(ctx, "clasp-basics", "push", true)

	before := s.LoadStore(ctx)
	s.SaveStore(ctx, before)
	after := s.LoadStore(ctx)

	assert.Equal(t, before, after)
}

func TestPersistedLayout(t *testing.T) {
	s, mem, _, _ := newTestScheduler(t)
	ctx := context.Background()

	s.UpdateCardProgress(ctx, "git-basics", "add", false)

	raw, err := mem.Get(ctx, StorageKey)
	require.NoError(t, err)

	var doc map[string]map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))

	set := doc["git-basics"]
	require.NotNil(t, set)
	assert.Equal(t, "git-basics", set["setId"])
	assert.EqualValues(t, 1, set["totalReviews"])
	assert.Equal(t, "2025-03-10T09:00:00Z", set["lastStudyDate"])

	card := set["cards"].(map[string]any)["add"].(map[string]any)
	assert.Equal(t, "incorrect", card["lastResult"])
	assert.Equal(t, "2025-03-10T09:00:00Z", card["nextReviewDate"])
	assert.Equal(t, "2025-03-10T09:00:00Z", card["lastReviewDate"])
	for _, key := range []string{"cardId", "masteryLevel", "easeFactor", "interval", "reviewCount", "correctStreak"} {
		assert.Contains(t, card, key)
	}
}

func TestPersistedLayout_NewCardOmitsLastResult(t *testing.T) {
	raw, err := json.Marshal(newCardProgress("s", "c", testNow))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.NotContains(t, doc, "lastResult")
	assert.Nil(t, doc["lastReviewDate"])
}
