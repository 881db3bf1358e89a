package lobby

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const maxPlayers = 2

// Room is a named, password-gated play area holding up to two players and
// at most one live session. All membership mutation is serialized by the
// room's own lock; the lock is never held across a wait.
type Room struct {
	name     string
	password string
	registry *Registry
	logger   *slog.Logger

	mu      sync.Mutex
	players []*Player
	session *Session
	closed  bool
}

func newRoom(registry *Registry, name, password string) *Room {
	return &Room{
		name:     name,
		password: password,
		registry: registry,
		logger:   registry.logger.With("room", name),
	}
}

func (that *Room) Name() string {
	return that.name
}

// CheckPassword - exact, case-sensitive comparison.
func (that *Room) CheckPassword(password string) bool {
	return that.password == password
}

// AddPlayer seats the player. The first occupant is told to wait; the
// second join starts a session against the current pair. Joining a full
// or already-removed room fails, as does taking a seat while the previous
// session is still resolving a departure: the room holds at most one live
// session, so the vacated seat only reopens once EndGame detaches it.
func (that *Room) AddPlayer(player *Player) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return apperror.ErrRoomClosed
	}

	if len(that.players) >= maxPlayers || that.session != nil {
		return apperror.ErrRoomFull
	}

	that.players = append(that.players, player)
	player.setRoom(that)

	switch len(that.players) {
	case 1:
		player.Send("Waiting for another player to join...")
	case maxPlayers:
		for _, p := range that.players {
			p.Send("Another player joined. Starting the game...")
		}

		that.logger.Info("game starting")

		that.session = newSession(that, [maxPlayers]*Player{that.players[0], that.players[1]}, that.registry.rng, that.logger)
		go that.session.Run()
	}

	return nil
}

// RemovePlayer removes the player and clears its room reference. Removing
// the last occupant deletes the room from the registry atomically with
// respect to concurrent lookups. A live session is woken so it can
// re-check occupancy.
func (that *Room) RemovePlayer(player *Player) {
	that.mu.Lock()

	removed := false
	for i, p := range that.players {
		if p == player {
			that.players = append(that.players[:i], that.players[i+1:]...)
			removed = true
			break
		}
	}

	if !removed {
		that.mu.Unlock()
		return
	}
	player.setRoom(nil)

	if len(that.players) == 0 && !that.closed {
		that.closed = true
		that.registry.Remove(that.name)
		that.logger.Info("room is empty and removed")
	}

	session := that.session
	that.mu.Unlock()

	if session != nil {
		session.PlayerLeft(player)
	}
}

func (that *Room) IsFull() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.players) >= maxPlayers
}

func (that *Room) IsGameInProgress() bool {
	session := that.Session()

	return session != nil && session.InProgress()
}

func (that *Room) Session() *Session {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.session
}

// EndGame is the session-termination hook. It drops the session
// reference so a later second join starts a fresh one.
func (that *Room) EndGame(session *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.session == session {
		that.session = nil
	}
}
