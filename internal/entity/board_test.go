package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Winner(t *testing.T) {
	t.Run("Returns the mark for every winning line", func(t *testing.T) {
		// Given: each of the 8 winning lines filled with X
		for i, line := range WinLines {
			var board Board
			for _, cell := range line {
				board[cell[0]][cell[1]] = MarkX
			}

			// When: evaluating the board
			winner := board.Winner()

			// Then: X is the winner
			assert.Equal(t, MarkX, winner, "line %d", i)
		}
	})

	t.Run("Returns EmptyCell when no line is complete", func(t *testing.T) {
		// Given: a board with scattered marks and no complete line
		board := Board{
			{MarkX, MarkO, EmptyCell},
			{EmptyCell, MarkX, EmptyCell},
			{EmptyCell, EmptyCell, MarkO},
		}

		// When: evaluating the board
		winner := board.Winner()

		// Then: there is no winner
		assert.Equal(t, EmptyCell, winner)
	})

	t.Run("Returns EmptyCell for a full board with no winner", func(t *testing.T) {
		// Given: a drawn board
		board := Board{
			{MarkX, MarkO, MarkX},
			{MarkO, MarkX, MarkO},
			{MarkO, MarkX, MarkO},
		}

		// When: evaluating the board
		winner := board.Winner()

		// Then: no winner, but the board is full
		assert.Equal(t, EmptyCell, winner)
		assert.True(t, board.IsFull())
	})
}

func TestBoard_IsFull(t *testing.T) {
	t.Run("Returns false while any cell is empty", func(t *testing.T) {
		// Given: a board with a single empty cell
		board := Board{
			{MarkX, MarkO, MarkX},
			{MarkO, MarkX, MarkO},
			{MarkO, MarkX, EmptyCell},
		}

		// When/Then
		assert.False(t, board.IsFull())
	})

	t.Run("Returns true when every cell is occupied", func(t *testing.T) {
		board := Board{
			{MarkX, MarkO, MarkX},
			{MarkO, MarkX, MarkO},
			{MarkO, MarkX, MarkO},
		}

		assert.True(t, board.IsFull())
	})
}

func TestBoard_InBounds(t *testing.T) {
	// boundary values around the 0-based 3x3 grid
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{2, 2, true},
		{-1, 0, false},
		{0, -1, false},
		{3, 0, false},
		{0, 3, false},
	}

	var board Board
	for _, tc := range cases {
		assert.Equal(t, tc.want, board.InBounds(tc.row, tc.col), "row=%d col=%d", tc.row, tc.col)
	}
}

func TestBoard_Reset(t *testing.T) {
	// Given: a board with marks
	board := Board{
		{MarkX, MarkO, MarkX},
		{MarkO, MarkX, MarkO},
		{MarkO, MarkX, MarkO},
	}

	// When: resetting
	board.Reset()

	// Then: every cell is empty again
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			require.True(t, board.CellEmpty(row, col))
		}
	}
}

func TestBoard_String(t *testing.T) {
	// Given: a board with one X placed at 1,1 (0-based 0,0)
	var board Board
	board.Place(0, 0, MarkX)

	// When: rendering
	rendered := board.String()

	// Then: the client-facing layout is produced
	expected := "Current board:\n" +
		"   1   2   3\n" +
		"1  X |   |   \n" +
		"  ---+---+---\n" +
		"2    |   |   \n" +
		"  ---+---+---\n" +
		"3    |   |   \n"

	assert.Equal(t, expected, rendered)
}
