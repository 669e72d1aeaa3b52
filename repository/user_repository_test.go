package repository

import (
	"context"
	"testing"

	"bootcamp/repository/testutil"
	"bootcamp/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_GetByUserID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByUserID(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		created, err := repo.Create(ctx, "alice", "Alice")
		require.NoError(t, err)

		user, err := repo.GetByUserID(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "alice", user.UserID)
		assert.Equal(t, "Alice", user.DisplayName)
		assert.Equal(t, int64(0), user.Points)
		assert.Equal(t, int64(0), user.Version)
		assert.Equal(t, created.CreatedAt, user.CreatedAt)
	})
}

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user, err := repo.Create(ctx, "bob", "")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "bob", user.UserID)
		assert.Equal(t, int64(0), user.Points)
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())
	})

	t.Run("duplicate user id", func(t *testing.T) {
		_, err := repo.Create(ctx, "carol", "Carol")
		require.NoError(t, err)

		_, err = repo.Create(ctx, "carol", "Other")
		assert.ErrorIs(t, err, service.ErrUserExists)
	})
}

func TestUserRepository_UpdatePoints(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, "alice", "Alice")
	require.NoError(t, err)

	t.Run("matching version bumps version", func(t *testing.T) {
		err := repo.UpdatePoints(ctx, "alice", 25, 0)
		require.NoError(t, err)

		user, err := repo.GetByUserID(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(25), user.Points)
		assert.Equal(t, int64(1), user.Version)
	})

	t.Run("stale version conflicts", func(t *testing.T) {
		err := repo.UpdatePoints(ctx, "alice", 99, 0)
		assert.ErrorIs(t, err, service.ErrVersionConflict)

		user, err := repo.GetByUserID(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(25), user.Points)
	})

	t.Run("negative points rejected by schema", func(t *testing.T) {
		err := repo.UpdatePoints(ctx, "alice", -1, 1)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, service.ErrVersionConflict)
	})

	t.Run("unknown user conflicts", func(t *testing.T) {
		err := repo.UpdatePoints(ctx, "ghost", 1, 0)
		assert.ErrorIs(t, err, service.ErrVersionConflict)
	})
}

func TestUserRepository_GetLeaderboard(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	for _, id := range []string{"dave", "carol", "bob", "alice"} {
		_, err := repo.Create(ctx, id, "")
		require.NoError(t, err)
	}
	require.NoError(t, repo.UpdatePoints(ctx, "alice", 10, 0))
	require.NoError(t, repo.UpdatePoints(ctx, "bob", 30, 0))
	require.NoError(t, repo.UpdatePoints(ctx, "carol", 10, 0))

	users, err := repo.GetLeaderboard(ctx, 3)
	require.NoError(t, err)
	require.Len(t, users, 3)

	// Ties broken by user id
	assert.Equal(t, "bob", users[0].UserID)
	assert.Equal(t, "alice", users[1].UserID)
	assert.Equal(t, "carol", users[2].UserID)
}
