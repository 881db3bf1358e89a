package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides random number generation that can be mocked for testing.
// The session engine draws the first mover through this interface so tests
// can make the draw deterministic.
type Random interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

type CryptoRandom struct{}

func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (that *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand should never fail; fall back to 0 rather than panic
		return 0
	}

	return int(result.Int64())
}

// Mock is a queue-backed Random for tests. Intn returns the next queued
// value, or 0 once the queue is exhausted.
type Mock struct {
	results []int
	next    int
}

var _ Random = (*Mock)(nil)

func NewMock() *Mock {
	return &Mock{}
}

func (that *Mock) Intn(_ int) int {
	if that.next >= len(that.results) {
		return 0
	}

	result := that.results[that.next]
	that.next++

	return result
}

// Queue appends values to the Intn result queue.
func (that *Mock) Queue(values ...int) {
	that.results = append(that.results, values...)
}
