package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserRepository(t *testing.T) UserRepository {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	return NewUserRepository(client)
}

func TestUserRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newTestUserRepository(t)

	t.Run("Saved user comes back intact", func(t *testing.T) {
		// Given: a user with a hashed password
		user := &entity.User{Name: "alice", PasswordHash: "$2a$10$abcdefghijklmnopqrstuv"}

		// When: saved and fetched by name
		require.NoError(t, repo.Save(ctx, user))
		found, err := repo.Find(ctx, "alice")

		// Then: the stored fields survive the roundtrip
		require.NoError(t, err)
		assert.Equal(t, user.Name, found.Name)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)
	})

	t.Run("Saving again overwrites the previous record", func(t *testing.T) {
		// Given: a saved user
		require.NoError(t, repo.Save(ctx, &entity.User{Name: "bob", PasswordHash: "old"}))

		// When: saved again with a new hash
		require.NoError(t, repo.Save(ctx, &entity.User{Name: "bob", PasswordHash: "new"}))

		// Then: the latest hash wins
		found, err := repo.Find(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, "new", found.PasswordHash)
	})

	t.Run("Unknown name yields user-not-found", func(t *testing.T) {
		// When: fetching a name that was never saved
		found, err := repo.Find(ctx, "nobody")

		// Then: the sentinel error is returned
		require.ErrorIs(t, err, apperror.ErrUserNotFound)
		assert.Nil(t, found)
	})
}
