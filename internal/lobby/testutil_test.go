package lobby

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-arena/internal/random"
)

// fakeSink records every line pushed to a player so tests can assert on
// the message stream.
type fakeSink struct {
	mu    sync.Mutex
	lines []string
}

func (that *fakeSink) Send(line string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.lines = append(that.lines, line)
}

func (that *fakeSink) Count(substr string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	count := 0
	for _, line := range that.lines {
		if strings.Contains(line, substr) {
			count++
		}
	}

	return count
}

func (that *fakeSink) Contains(substr string) bool {
	return that.Count(substr) > 0
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRegistry() *Registry {
	return NewRegistry(newTestLogger(), random.New())
}

func newTestPlayer(name string) *Player {
	return NewPlayer(name, &fakeSink{})
}
