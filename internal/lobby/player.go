package lobby

import "sync"

// MessageSink delivers one line of text to a connected client. The
// transport owns the connection; the lobby only ever pushes whole lines.
type MessageSink interface {
	Send(line string)
}

// Player is the per-connection handle the session engine coordinates
// through. The flags are written by the session goroutine and read by the
// connection's own input loop, so every access goes through the mutex.
type Player struct {
	name string
	sink MessageSink

	mu                   sync.Mutex
	room                 *Room
	hasTurn              bool
	awaitingReplayAnswer bool
	gameOver             bool
}

func NewPlayer(name string, sink MessageSink) *Player {
	return &Player{
		name: name,
		sink: sink,
	}
}

func (that *Player) Name() string {
	return that.name
}

func (that *Player) Send(line string) {
	that.sink.Send(line)
}

func (that *Player) Room() *Room {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.room
}

func (that *Player) setRoom(room *Room) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.room = room
}

func (that *Player) HasTurn() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.hasTurn
}

func (that *Player) SetHasTurn(hasTurn bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.hasTurn = hasTurn
}

func (that *Player) AwaitingReplayAnswer() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.awaitingReplayAnswer
}

func (that *Player) SetAwaitingReplayAnswer(awaiting bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.awaitingReplayAnswer = awaiting
}

func (that *Player) GameOver() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.gameOver
}

func (that *Player) SetGameOver(over bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.gameOver = over
}

// LeaveRoom removes the player from its current room, if any. Safe to
// call on disconnect regardless of game state.
func (that *Player) LeaveRoom() {
	room := that.Room()
	if room != nil {
		room.RemovePlayer(that)
	}
}
