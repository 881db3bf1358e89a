package repository

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_RedisContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	t.Run("Save_Find_Roundtrip", func(t *testing.T) {
		ctx, st := suite.New(t)

		userRepo := NewUserRepository(st.Storage)

		// Given: a registered user
		user := &entity.User{Name: "alice", PasswordHash: "$2a$10$abcdefghijklmnopqrstuv"}

		// When: we save and fetch the user
		require.NoError(t, userRepo.Save(ctx, user))
		found, err := userRepo.Find(ctx, user.Name)

		// Then: the record survives the real store
		require.NoError(t, err)
		assert.Equal(t, user.Name, found.Name)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)
	})

	t.Run("Find_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		userRepo := NewUserRepository(st.Storage)

		// Given: a name that was never registered
		// When: we fetch it
		found, err := userRepo.Find(ctx, "nobody")

		// Then: the not-found sentinel comes back
		require.ErrorIs(t, err, apperror.ErrUserNotFound)
		assert.Nil(t, found)
	})
}
