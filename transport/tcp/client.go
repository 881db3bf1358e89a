package tcp

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"net"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-arena/internal/lobby"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// client is the per-connection handler. It owns all reads from and writes
// to its socket; the lobby pushes outbound lines through Send. The input
// loop never blocks on game state: every inbound line is interpreted
// immediately as a replay answer, a move or a lobby command based on the
// player's current flags.
type client struct {
	server *Server
	conn   net.Conn
	reader *bufio.Reader
	logger *slog.Logger

	writeMu sync.Mutex
	writer  *bufio.Writer

	player *lobby.Player
}

func newClient(server *Server, conn net.Conn) *client {
	return &client{
		server: server,
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
		logger: server.logger.With("remote", conn.RemoteAddr().String()),
	}
}

// Send - implements lobby.MessageSink; safe for concurrent use by the
// session goroutine and the input loop.
func (that *client) Send(line string) {
	that.writeMu.Lock()
	defer that.writeMu.Unlock()

	if _, err := that.writer.WriteString(line + "\n"); err != nil {
		return
	}

	_ = that.writer.Flush()
}

func (that *client) readLine() (string, error) {
	line, err := that.reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// authenticate runs the login dialog until it succeeds or the client
// disconnects. On success the username is reserved on the server.
func (that *client) authenticate(ctx context.Context) (string, bool) {
	for {
		that.Send("Enter your username (letters and digits only):")

		username, err := that.readLine()
		if err != nil {
			return "", false
		}
		username = strings.TrimSpace(username)

		if !usernamePattern.MatchString(username) {
			that.Send("Invalid username. Use letters and digits only.")
			continue
		}

		that.Send("Enter your password:")

		password, err := that.readLine()
		if err != nil {
			return "", false
		}

		if !that.server.reserve(username) {
			that.Send("User already connected.")
			continue
		}

		registered, err := that.server.auth.Authenticate(ctx, username, password)
		if errors.Is(err, apperror.ErrWrongPassword) {
			that.server.release(username)
			that.Send("Incorrect password.")
			continue
		}
		if err != nil {
			that.server.release(username)
			that.logger.Error("authentication failed", "error", err)
			that.Send("Authentication failed. Try again.")
			continue
		}

		if registered {
			that.Send("Registration successful. Welcome, " + username + "!")
			that.logger.Info("new user registered", "user", username)
		} else {
			that.Send("Welcome back, " + username + "!")
			that.logger.Info("user logged in", "user", username)
		}

		return username, true
	}
}

func (that *client) inputLoop(ctx context.Context) {
	for {
		line, err := that.readLine()
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)

		if that.player.AwaitingReplayAnswer() {
			that.handleReplayAnswer(line)
			continue
		}

		room := that.player.Room()
		if room != nil && room.IsGameInProgress() && that.player.HasTurn() {
			if that.tryMakeMove(line) {
				continue
			}
		}

		if that.handleCommand(line) {
			return
		}
	}
}

// tryMakeMove interprets the line as "<row> <col>". Reports whether the
// line was consumed as a move attempt; lines that do not parse fall
// through to command handling.
func (that *client) tryMakeMove(line string) bool {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return false
	}

	row, errRow := strconv.Atoi(parts[0])
	col, errCol := strconv.Atoi(parts[1])
	if errRow != nil || errCol != nil {
		return false
	}

	room := that.player.Room()
	if room == nil || !room.IsGameInProgress() {
		return false
	}

	session := room.Session()
	if session == nil {
		return false
	}

	if !session.TryMove(that.player, row, col) {
		that.Send("Invalid move. Try again.")
	}

	return true
}

func (that *client) handleReplayAnswer(line string) {
	var vote bool

	switch strings.ToLower(line) {
	case "yes":
		vote = true
	case "no":
		vote = false
	default:
		that.Send("Please answer yes or no:")
		return
	}

	that.player.SetAwaitingReplayAnswer(false)

	if room := that.player.Room(); room != nil {
		if session := room.Session(); session != nil {
			session.PlayerReplayAnswer(that.player, vote)
		}
	}

	that.printMenuIfApplicable()
}

// handleCommand dispatches a lobby command. Reports whether the
// connection should close (EXIT).
func (that *client) handleCommand(command string) bool {
	if command == "" {
		that.printMenuIfApplicable()
		return false
	}

	parts := strings.SplitN(command, " ", 3)
	action := strings.ToUpper(parts[0])

	switch action {
	case "LIST":
		that.listRooms()
	case "CREATE":
		if len(parts) < 3 {
			that.Send("Usage: CREATE <room_name> <password>")
		} else {
			that.createAndJoinRoom(parts[1], parts[2])
		}
	case "JOIN":
		if len(parts) < 3 {
			that.Send("Usage: JOIN <room_name> <password>")
		} else {
			that.joinRoom(parts[1], parts[2])
		}
	case "EXIT":
		that.Send("Goodbye!")
		that.player.LeaveRoom()
		return true
	default:
		that.Send("Unknown command.")
	}

	that.printMenuIfApplicable()

	return false
}

func (that *client) listRooms() {
	rooms := that.server.registry.List()
	if len(rooms) == 0 {
		that.Send("No available rooms.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Available rooms:")

	for _, room := range rooms {
		status := "(Waiting for players)"
		if room.Full {
			status = "(Full)"
		}

		sb.WriteString("\n- " + room.Name + " " + status)
	}

	that.Send(sb.String())
}

func (that *client) createAndJoinRoom(roomName, password string) {
	room, err := that.server.registry.Create(roomName, password)
	if errors.Is(err, apperror.ErrRoomAlreadyExists) {
		that.Send("Room already exists.")
		return
	}

	that.Send("Room created: " + roomName + ". Joining the room...")
	that.seatInRoom(room, roomName)
}

func (that *client) joinRoom(roomName, password string) {
	room, err := that.server.registry.Lookup(roomName)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		that.Send("Room not found.")
		return
	}

	if !room.CheckPassword(password) {
		that.Send("Incorrect password.")
		return
	}

	that.Send("Joining room: " + roomName)
	that.seatInRoom(room, roomName)
}

// seatInRoom leaves the current room and takes a seat in the given one,
// translating the membership sentinels into protocol feedback. A creator
// can lose the race for its own room's seats to faster joiners, so the
// create path shares this mapping with JOIN.
func (that *client) seatInRoom(room *lobby.Room, roomName string) {
	that.player.LeaveRoom()

	switch err := room.AddPlayer(that.player); {
	case errors.Is(err, apperror.ErrRoomFull):
		that.Send("Room is full.")
		return
	case errors.Is(err, apperror.ErrRoomClosed):
		that.Send("Room not found.")
		return
	}

	that.Send("You joined room: " + roomName)
}

func (that *client) printMenu() {
	that.Send("======================================")
	that.Send("Available commands:")
	that.Send("1. LIST - Show available rooms")
	that.Send("2. CREATE <room_name> <password> - Create a new room")
	that.Send("3. JOIN <room_name> <password> - Join an existing room")
	that.Send("4. EXIT - Exit the game")
	that.Send("======================================")
}

func (that *client) printMenuIfApplicable() {
	room := that.player.Room()
	if room == nil || (!room.IsGameInProgress() && !that.player.AwaitingReplayAnswer()) {
		that.printMenu()
	}
}
