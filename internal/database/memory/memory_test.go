package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyberquest/backend/internal/domain"
)

func TestProgressionRepository(t *testing.T) {
	repo := NewProgressionRepository()
	ctx := context.Background()

	rec, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, rec, "absent record must be (nil, nil), not an error")

	saved := domain.NewProgressionRecord()
	saved.UnlockChallenge("c1")
	require.NoError(t, repo.Save(ctx, "alice", saved))

	// Mutating the original after save must not reach the store
	saved.Score = 0

	rec, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.StartingScore, rec.Score)
	assert.True(t, rec.HasUnlockedChallenge("c1"))

	// Mutating the returned copy must not reach the store either
	rec.Score = 0
	again, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.StartingScore, again.Score)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(ctx, "alice"))
	rec, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()

	user, err := repo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, repo.Upsert(ctx, &domain.User{ID: "alice", DisplayName: "Alice"}))
	require.NoError(t, repo.Upsert(ctx, &domain.User{ID: "alice", DisplayName: "Alice B"}))

	user, err = repo.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Alice B", user.DisplayName, "upsert replaces the display name")

	require.NoError(t, repo.Upsert(ctx, &domain.User{ID: "bob", DisplayName: "Bob"}))
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, repo.Delete(ctx, "bob"))
	user, err = repo.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Nil(t, user)
}
