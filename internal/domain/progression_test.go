package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewProgressionRecord(t *testing.T) {
	rec := NewProgressionRecord()

	assert.Equal(t, StartingScore, rec.Score)
	assert.Empty(t, rec.CompletedChallenges)
	assert.Empty(t, rec.UnlockedChallenges)
	assert.Empty(t, rec.UnlockedCategories)
	assert.Empty(t, rec.UsedHints)
}

func TestClone_IsIndependent(t *testing.T) {
	rec := NewProgressionRecord()
	rec.UnlockChallenge("c1")
	rec.UseHint("c1", "h1", 10)

	cp := rec.Clone()
	cp.Score = 999
	cp.UnlockChallenge("c2")
	cp.MarkCompleted("c1")

	assert.Equal(t, StartingScore-10, rec.Score)
	assert.False(t, rec.HasUnlockedChallenge("c2"))
	assert.False(t, rec.HasCompleted("c1"))
	assert.True(t, cp.HasUnlockedChallenge("c1"))
	assert.True(t, cp.HasUsedHint("c1", "h1"))
}

func TestMarkCompleted_Idempotent(t *testing.T) {
	rec := NewProgressionRecord()

	assert.True(t, rec.MarkCompleted("c1"))
	assert.False(t, rec.MarkCompleted("c1"))
	assert.Len(t, rec.CompletedChallenges, 1)
}

func TestUnlock_SetSemantics(t *testing.T) {
	rec := NewProgressionRecord()

	assert.True(t, rec.UnlockChallenge("c1"))
	assert.False(t, rec.UnlockChallenge("c1"))
	assert.True(t, rec.UnlockCategory("cat1"))
	assert.False(t, rec.UnlockCategory("cat1"))
	assert.Len(t, rec.UnlockedChallenges, 1)
	assert.Len(t, rec.UnlockedCategories, 1)
}

func TestUseHint(t *testing.T) {
	rec := NewProgressionRecord()

	assert.True(t, rec.UseHint("c1", "h1", 20))
	assert.Equal(t, StartingScore-20, rec.Score)

	// Already used: no second deduction
	assert.False(t, rec.UseHint("c1", "h1", 20))
	assert.Equal(t, StartingScore-20, rec.Score)

	// Underfunded: no mutation at all
	assert.False(t, rec.UseHint("c1", "h2", rec.Score+1))
	assert.Equal(t, StartingScore-20, rec.Score)
	assert.False(t, rec.HasUsedHint("c1", "h2"))

	// Exact-cost purchase drains the score to zero, never below
	assert.True(t, rec.UseHint("c1", "h3", rec.Score))
	assert.Equal(t, 0, rec.Score)
}

func TestUseHint_ScopedToChallenge(t *testing.T) {
	rec := NewProgressionRecord()

	// The same hint id on a different challenge is a distinct purchase
	assert.True(t, rec.UseHint("c1", "h1", 10))
	assert.True(t, rec.UseHint("c2", "h1", 10))
	assert.Equal(t, StartingScore-20, rec.Score)

	assert.True(t, rec.HasUsedHint("c1", "h1"))
	assert.True(t, rec.HasUsedHint("c2", "h1"))
	assert.False(t, rec.HasUsedHint("c3", "h1"))
}

func TestChallengeStateOf(t *testing.T) {
	rec := NewProgressionRecord()

	assert.Equal(t, ChallengeStateLocked, rec.ChallengeStateOf("c1"))

	rec.UnlockChallenge("c1")
	assert.Equal(t, ChallengeStateAvailable, rec.ChallengeStateOf("c1"))

	rec.MarkCompleted("c1")
	assert.Equal(t, ChallengeStateCompleted, rec.ChallengeStateOf("c1"))
}

func TestChallengeHintLookup(t *testing.T) {
	ch := Challenge{
		ID: "c1",
		Hints: []Hint{
			{ID: "h1", Text: "first", Cost: 5},
			{ID: "h2", Text: "second", Cost: 10},
		},
	}

	hint := ch.Hint("h2")
	assert.NotNil(t, hint)
	assert.Equal(t, "second", hint.Text)
	assert.Nil(t, ch.Hint("h3"))
}
