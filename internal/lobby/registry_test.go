package lobby

import (
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Create(t *testing.T) {
	t.Run("Creates a room with a fresh name", func(t *testing.T) {
		// Given: an empty registry
		registry := newTestRegistry()

		// When: creating a room
		room, err := registry.Create("arena", "pw")

		// Then: the room exists and is findable
		require.NoError(t, err)
		require.NotNil(t, room)

		found, err := registry.Lookup("arena")
		require.NoError(t, err)
		assert.Same(t, room, found)
	})

	t.Run("Rejects a duplicate name", func(t *testing.T) {
		// Given: a registry that already holds "arena"
		registry := newTestRegistry()
		_, err := registry.Create("arena", "pw")
		require.NoError(t, err)

		// When: creating the same name again
		_, err = registry.Create("arena", "other")

		// Then: the create fails
		assert.ErrorIs(t, err, apperror.ErrRoomAlreadyExists)
	})

	t.Run("Exactly one of two concurrent creates succeeds", func(t *testing.T) {
		// Given: two goroutines racing to create the same name
		registry := newTestRegistry()

		var wg sync.WaitGroup
		errs := make([]error, 2)

		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = registry.Create("arena", "pw")
			}(i)
		}
		wg.Wait()

		// Then: one succeeds, the other observes "already exists"
		if errs[0] == nil {
			assert.ErrorIs(t, errs[1], apperror.ErrRoomAlreadyExists)
		} else {
			assert.ErrorIs(t, errs[0], apperror.ErrRoomAlreadyExists)
			assert.NoError(t, errs[1])
		}
	})
}

func TestRegistry_Lookup(t *testing.T) {
	t.Run("Returns ErrRoomNotFound for an unknown name", func(t *testing.T) {
		registry := newTestRegistry()

		_, err := registry.Lookup("missing")

		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRegistry_Remove(t *testing.T) {
	t.Run("Remove is idempotent", func(t *testing.T) {
		// Given: a registry with one room
		registry := newTestRegistry()
		_, err := registry.Create("arena", "pw")
		require.NoError(t, err)

		// When: removing twice
		registry.Remove("arena")
		registry.Remove("arena")

		// Then: the room is gone and the second remove was a no-op
		_, err = registry.Lookup("arena")
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRegistry_List(t *testing.T) {
	t.Run("Reports occupancy status per room", func(t *testing.T) {
		// Given: one waiting room and one full room
		registry := newTestRegistry()

		waiting, err := registry.Create("waiting", "pw")
		require.NoError(t, err)
		require.NoError(t, waiting.AddPlayer(newTestPlayer("alice")))

		full, err := registry.Create("full", "pw")
		require.NoError(t, err)
		require.NoError(t, full.AddPlayer(newTestPlayer("bob")))
		require.NoError(t, full.AddPlayer(newTestPlayer("carol")))

		// When: listing
		infos := registry.List()

		// Then: the snapshot is sorted by name with correct status
		require.Len(t, infos, 2)
		assert.Equal(t, RoomInfo{Name: "full", Full: true}, infos[0])
		assert.Equal(t, RoomInfo{Name: "waiting", Full: false}, infos[1])
	})

	t.Run("Empty registry lists nothing", func(t *testing.T) {
		registry := newTestRegistry()

		assert.Empty(t, registry.List())
	})
}
