package tcp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/lobby"
	"github.com/rocketscienceinc/tictactoe-arena/internal/service"
)

// Server accepts line-oriented TCP connections and runs one client
// handler goroutine per connection.
type Server struct {
	logger   *slog.Logger
	auth     service.AuthService
	registry *lobby.Registry

	mu     sync.Mutex
	active map[string]struct{}
}

func New(logger *slog.Logger, auth service.AuthService, registry *lobby.Registry) *Server {
	return &Server{
		logger:   logger.With("component", "tcp"),
		auth:     auth,
		registry: registry,

		active: make(map[string]struct{}),
	}
}

// Start - starts the TCP server and blocks until the listener fails or
// the context is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	listener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("failed to accept connection: %w", err)
		}

		go that.handleConnection(ctx, conn)
	}
}

func (that *Server) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	// a canceled context tears the connection down, which unblocks the
	// client's read loop
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	c := newClient(that, conn)
	c.Send("Welcome to Tic-Tac-Toe!")

	username, ok := c.authenticate(ctx)
	if !ok {
		return
	}
	defer that.release(username)

	c.player = lobby.NewPlayer(username, c)
	c.logger = c.logger.With("user", username)

	c.printMenu()
	c.inputLoop(ctx)

	c.player.LeaveRoom()
	c.logger.Info("client disconnected")
}

// reserve claims a username for the lifetime of one connection so display
// names stay unique across the process.
func (that *Server) reserve(username string) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.active[username]; ok {
		return false
	}
	that.active[username] = struct{}{}

	return true
}

func (that *Server) release(username string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.active, username)
}
