package entity

import "strings"

const (
	MarkX = "X"
	MarkO = "O"

	EmptyCell = ""

	BoardSize = 3
)

// WinLines are the 8 winning lines of the grid: 3 rows, 3 columns, 2 diagonals.
// Each line is three {row, col} coordinates.
var WinLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3×3 grid. Cells hold MarkX, MarkO or EmptyCell.
// Coordinates are 0-based; the line protocol's 1-based coordinates are
// converted before they reach this type.
type Board [BoardSize][BoardSize]string

func (that *Board) Reset() {
	for row := range that {
		for col := range that[row] {
			that[row][col] = EmptyCell
		}
	}
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

func (that *Board) CellEmpty(row, col int) bool {
	return that[row][col] == EmptyCell
}

func (that *Board) Place(row, col int, mark string) {
	that[row][col] = mark
}

// Winner - returns the mark occupying a complete line, or EmptyCell if none.
func (that *Board) Winner() string {
	for _, line := range WinLines {
		a := that[line[0][0]][line[0][1]]
		b := that[line[1][0]][line[1][1]]
		c := that[line[2][0]][line[2][1]]

		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that *Board) IsFull() bool {
	for row := range that {
		for col := range that[row] {
			if that[row][col] == EmptyCell {
				return false
			}
		}
	}

	return true
}

// String - renders the board the way clients see it.
func (that *Board) String() string {
	var sb strings.Builder

	sb.WriteString("Current board:\n")
	sb.WriteString("   1   2   3\n")

	for row := 0; row < BoardSize; row++ {
		sb.WriteByte(byte('1' + row))
		sb.WriteString(" ")

		for col := 0; col < BoardSize; col++ {
			cell := that[row][col]
			if cell == EmptyCell {
				cell = " "
			}

			sb.WriteString(" " + cell + " ")
			if col < BoardSize-1 {
				sb.WriteString("|")
			}
		}

		sb.WriteString("\n")
		if row < BoardSize-1 {
			sb.WriteString("  ---+---+---\n")
		}
	}

	return sb.String()
}
