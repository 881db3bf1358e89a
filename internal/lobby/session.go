package lobby

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
	"github.com/rocketscienceinc/tictactoe-arena/internal/random"
)

type roundOutcome int

const (
	roundFinished roundOutcome = iota
	roundForfeited
)

// Session runs one game between the two seated players. It is driven by
// its own goroutine (Run), which blocks on the condition variable until a
// connection goroutine applies a move (TryMove) or completes the replay
// ballot (PlayerReplayAnswer), or until membership changes (PlayerLeft).
//
// The session lock orders every mutation of board, turn and ballot state.
// It is never held while calling back into the room, so the only lock
// nesting in the package is room -> session and session -> player, both
// one-directional.
type Session struct {
	room    *Room
	players [maxPlayers]*Player
	rng     random.Random
	logger  *slog.Logger

	mu             sync.Mutex
	cond           *sync.Cond
	board          entity.Board
	turnIndex      int
	marks          [maxPlayers]string
	moveApplied    bool
	inProgress     bool
	awaitingReplay bool
	leaver         *Player
	ballot         map[*Player]bool
}

func newSession(room *Room, players [maxPlayers]*Player, rng random.Random, logger *slog.Logger) *Session {
	session := &Session{
		room:    room,
		players: players,
		rng:     rng,
		logger:  logger.With("component", "session"),

		inProgress: true,
	}
	session.cond = sync.NewCond(&session.mu)

	return session
}

func (that *Session) InProgress() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.inProgress
}

// Run drives the session until it terminates: rounds loop as long as the
// replay ballot comes back all-yes with both seats occupied.
func (that *Session) Run() {
	announcement := "Game is starting!"

	for {
		if that.playRound(announcement) == roundForfeited {
			that.endForfeit()
			break
		}

		if !that.negotiateReplay() {
			break
		}

		announcement = "Starting a new round..."
	}

	that.mu.Lock()
	that.inProgress = false
	that.mu.Unlock()

	that.room.EndGame(that)
}

// playRound runs the turn loop once: fresh board, fresh first-mover draw,
// plies until win, draw or a departure.
func (that *Session) playRound(announcement string) roundOutcome {
	that.mu.Lock()
	that.board.Reset()
	that.moveApplied = false
	that.turnIndex = that.rng.Intn(maxPlayers)
	that.marks[that.turnIndex] = entity.MarkX
	that.marks[1-that.turnIndex] = entity.MarkO
	that.mu.Unlock()

	for _, p := range that.players {
		if p.Room() != that.room {
			continue
		}

		p.SetHasTurn(false)
		p.SetGameOver(false)
	}

	that.broadcast(announcement)
	that.broadcastBoard()

	for {
		that.mu.Lock()
		if that.leaver != nil {
			that.mu.Unlock()
			return roundForfeited
		}

		current := that.players[that.turnIndex]
		opponent := that.players[1-that.turnIndex]
		that.mu.Unlock()

		if current.Room() == that.room {
			current.SetHasTurn(true)
		}
		if opponent.Room() == that.room {
			opponent.SetHasTurn(false)
		}
		that.informTurns()

		if !that.waitForMove() {
			return roundForfeited
		}

		that.mu.Lock()
		winner := that.board.Winner()
		full := that.board.IsFull()

		if winner == entity.EmptyCell && !full {
			that.turnIndex = 1 - that.turnIndex
			that.mu.Unlock()
			continue
		}
		that.mu.Unlock()

		if current.Room() == that.room {
			current.SetHasTurn(false)
		}

		if winner != entity.EmptyCell {
			current.Send("You win!")
			opponent.Send("You lose.")
			that.logger.Info("round won", "winner", current.Name())
		} else {
			that.broadcast("It's a draw!")
			that.logger.Info("round drawn")
		}

		return roundFinished
	}
}

// waitForMove blocks until a legal move has been applied or a seated
// player has left. Reports whether a move arrived; a departure wins even
// when a move raced in ahead of it.
func (that *Session) waitForMove() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	for !that.moveApplied && that.leaver == nil {
		that.cond.Wait()
	}

	if that.leaver != nil {
		return false
	}
	that.moveApplied = false

	return true
}

// TryMove validates and applies a move. Coordinates are 1-based as they
// arrive from the protocol. The whole check-and-apply sequence holds the
// session lock, so a stale move from the previous turn holder is rejected
// by the authoritative turn check. Reports whether the move was applied;
// a turn violation additionally tells the player directly.
func (that *Session) TryMove(player *Player, row, col int) bool {
	that.mu.Lock()

	if !that.inProgress || that.awaitingReplay || that.leaver != nil {
		that.mu.Unlock()
		return false
	}

	if that.players[that.turnIndex] != player {
		that.mu.Unlock()
		player.Send("Not your turn!")
		return false
	}

	// terminal board: the round is over, only the driver may act now
	if that.board.Winner() != entity.EmptyCell || that.board.IsFull() {
		that.mu.Unlock()
		return false
	}

	row--
	col--
	if !that.board.InBounds(row, col) || !that.board.CellEmpty(row, col) {
		that.mu.Unlock()
		return false
	}

	that.board.Place(row, col, that.marks[that.turnIndex])
	that.moveApplied = true

	that.logger.Info("move applied", "player", player.Name(), "row", row+1, "col", col+1)

	// broadcast before waking the driver so the updated board reaches
	// both players ahead of any win/lose/draw lines the driver emits
	that.broadcast(that.board.String())
	that.cond.Broadcast()
	that.mu.Unlock()

	return true
}

// negotiateReplay collects a fresh yes/no ballot from every occupant and
// reports whether a rematch should start. Rematch requires every recorded
// vote to be yes and no seat departure; an empty ballot (all voters
// departed) resolves to no rematch.
func (that *Session) negotiateReplay() bool {
	that.mu.Lock()
	that.awaitingReplay = true
	that.ballot = make(map[*Player]bool, maxPlayers)
	that.mu.Unlock()

	for _, p := range that.players {
		if p.Room() != that.room {
			continue
		}

		p.SetAwaitingReplayAnswer(true)
		p.Send("Do you want to play again with the same player? (yes/no):")
	}

	that.waitForBallot()

	that.mu.Lock()
	rematch := that.leaver == nil && len(that.ballot) > 0
	for _, vote := range that.ballot {
		if !vote {
			rematch = false
		}
	}

	var leavers []*Player
	if !rematch {
		for p, vote := range that.ballot {
			if !vote {
				leavers = append(leavers, p)
			}
		}
	}

	that.awaitingReplay = false
	that.mu.Unlock()

	if rematch {
		for _, p := range that.players {
			if p.Room() == that.room {
				p.SetAwaitingReplayAnswer(false)
				p.SetGameOver(false)
			}
		}

		return true
	}

	for _, p := range leavers {
		p.Send("Exiting the room.")
		that.room.RemovePlayer(p)
	}

	for _, p := range that.players {
		if p.Room() == that.room {
			p.SetAwaitingReplayAnswer(false)
			p.SetGameOver(true)
			p.SetHasTurn(false)
		}
	}

	return false
}

// waitForBallot blocks until every player still seated in the room has
// voted or a seat departure resolves the round, so a player leaving
// mid-vote cannot deadlock the remaining voter.
func (that *Session) waitForBallot() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for that.leaver == nil && !that.ballotComplete() {
		that.cond.Wait()
	}
}

// ballotComplete - session lock must be held.
func (that *Session) ballotComplete() bool {
	for _, p := range that.players {
		if p.Room() != that.room {
			continue
		}

		if _, ok := that.ballot[p]; !ok {
			return false
		}
	}

	return true
}

// PlayerReplayAnswer records one vote. Ignored outside replay
// negotiation. The driver is woken unconditionally; it re-checks ballot
// completeness itself.
func (that *Session) PlayerReplayAnswer(player *Player, vote bool) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.awaitingReplay {
		return
	}

	that.ballot[player] = vote
	player.SetAwaitingReplayAnswer(false)

	that.cond.Broadcast()
}

// PlayerLeft records a seated player's departure and wakes the driver.
// The first departure is terminal for the session: it stays recorded even
// if the player rejoins the room, so a rejoin cannot resurrect a round
// the driver is about to forfeit.
func (that *Session) PlayerLeft(player *Player) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.leaver == nil {
		that.leaver = player
	}

	that.cond.Broadcast()
}

// endForfeit resolves a departure mid-round: the remaining player wins by
// forfeit and the session terminates without a replay prompt.
func (that *Session) endForfeit() {
	that.mu.Lock()
	leaver := that.leaver
	that.mu.Unlock()

	for _, p := range that.players {
		if p == leaver || p.Room() != that.room {
			continue
		}

		p.SetHasTurn(false)
		p.SetGameOver(true)
		p.Send("Your opponent left the room. You win by forfeit.")
	}

	that.logger.Info("round forfeited")
}

func (that *Session) informTurns() {
	that.mu.Lock()
	current := that.players[that.turnIndex]
	opponent := that.players[1-that.turnIndex]
	currentMark := that.marks[that.turnIndex]
	opponentMark := that.marks[1-that.turnIndex]
	that.mu.Unlock()

	if current.Room() == that.room {
		current.Send(fmt.Sprintf("It is now your turn. You are %s.", currentMark))
	}
	if opponent.Room() == that.room {
		opponent.Send(fmt.Sprintf("Please wait. Opponent (%s) is making a move. You are %s.", current.Name(), opponentMark))
	}
}

func (that *Session) broadcastBoard() {
	that.mu.Lock()
	board := that.board.String()
	that.mu.Unlock()

	that.broadcast(board)
}

// broadcast sends to every seated player still attached to this room.
func (that *Session) broadcast(line string) {
	for _, p := range that.players {
		if p.Room() == that.room {
			p.Send(line)
		}
	}
}
