package lobby

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/random"
)

// Registry is the process-wide mapping from room name to room. Construct
// one per process (or per test) and pass it by reference.
type Registry struct {
	logger *slog.Logger
	rng    random.Random

	mu    sync.Mutex
	rooms map[string]*Room
}

// RoomInfo is one entry of a List snapshot.
type RoomInfo struct {
	Name string
	Full bool
}

func NewRegistry(logger *slog.Logger, rng random.Random) *Registry {
	return &Registry{
		logger: logger.With("component", "registry"),
		rng:    rng,

		rooms: make(map[string]*Room),
	}
}

// Create - atomic check-and-insert; the caller seats the creating player
// afterwards with AddPlayer.
func (that *Registry) Create(name, password string) (*Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.rooms[name]; ok {
		return nil, apperror.ErrRoomAlreadyExists
	}

	room := newRoom(that, name, password)
	that.rooms[name] = room

	that.logger.Info("room created", "room", name)

	return room, nil
}

func (that *Registry) Lookup(name string) (*Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, ok := that.rooms[name]
	if !ok {
		return nil, apperror.ErrRoomNotFound
	}

	return room, nil
}

// Remove - idempotent; called by a room transitioning to empty.
func (that *Registry) Remove(name string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, name)
}

// List returns a snapshot of room names and occupancy at call time.
// Occupancy is read after the registry lock is released so List never
// holds two locks at once.
func (that *Registry) List() []RoomInfo {
	that.mu.Lock()
	rooms := make([]*Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}
	that.mu.Unlock()

	infos := make([]RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		infos = append(infos, RoomInfo{
			Name: room.Name(),
			Full: room.IsFull(),
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})

	return infos
}
