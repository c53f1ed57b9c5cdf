package engine

import (
	"fmt"
	"strings"
)

// Point is a position in board coordinates. Y grows downwards.
type Point struct {
	X, Y int
}

// Board is a fixed-size grid of cells, row-major, row 0 on top.
type Board [][]Cell

// NewBoard creates an empty board with the given dimensions.
func NewBoard(width, height int) Board {
	b := make(Board, height)
	for y := range b {
		b[y] = emptyRow(width)
	}
	return b
}

func emptyRow(width int) []Cell {
	row := make([]Cell, width)
	for x := range row {
		row[x] = Empty
	}
	return row
}

// ParseBoard builds a board from text rows. '.' and ' ' are empty cells,
// any other rune is used as the cell label.
func ParseBoard(rows []string) Board {
	b := make(Board, len(rows))
	for y, line := range rows {
		runes := []rune(line)
		b[y] = make([]Cell, len(runes))
		for x, r := range runes {
			if r == '.' || r == ' ' {
				b[y][x] = Empty
				continue
			}
			b[y][x] = Cell(string(r))
		}
	}
	return b
}

// Width returns the number of columns.
func (b Board) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the number of rows.
func (b Board) Height() int {
	return len(b)
}

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	for y, row := range b {
		out[y] = append([]Cell(nil), row...)
	}
	return out
}

// Equal reports whether two boards hold the same cells.
func (b Board) Equal(other Board) bool {
	if len(b) != len(other) {
		return false
	}
	for y := range b {
		if len(b[y]) != len(other[y]) {
			return false
		}
		for x := range b[y] {
			if b[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// In reports whether (x, y) lies on the board.
func (b Board) In(x, y int) bool {
	return y >= 0 && y < len(b) && x >= 0 && x < len(b[y])
}

// String renders the board with '.' for empty cells, one line per row.
func (b Board) String() string {
	var sb strings.Builder
	for y, row := range b {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range row {
			if c == Empty {
				sb.WriteByte('.')
				continue
			}
			sb.WriteString(string(c))
		}
	}
	return sb.String()
}

// Row renders row y like String does.
func (b Board) Row(y int) string {
	return Board{b[y]}.String()
}

// validate checks the board is width x height and uses only known labels.
func (b Board) validate(width, height int, catalog Catalog) error {
	if len(b) != height {
		return fmt.Errorf("default board has %d rows, want %d", len(b), height)
	}
	for y, row := range b {
		if len(row) != width {
			return fmt.Errorf("default board row %d has %d cells, want %d", y, len(row), width)
		}
		for x, c := range row {
			if c == Empty {
				continue
			}
			if _, ok := catalog[c]; !ok {
				return fmt.Errorf("default board has unknown label %q at (%d, %d)", c, x, y)
			}
		}
	}
	return nil
}

// Overlay returns a copy of board with the non-empty cells of shape stamped
// at pos. The input board is never modified. Cells that would land outside
// the board are skipped.
func Overlay(board Board, shape Shape, pos Point) Board {
	out := board.Clone()
	for y, row := range shape {
		for x, c := range row {
			if c == Empty {
				continue
			}
			bx, by := pos.X+x, pos.Y+y
			if !out.In(bx, by) {
				continue
			}
			out[by][bx] = c
		}
	}
	return out
}

// Collides reports whether shape placed at pos+delta leaves the board or
// overlaps an occupied cell. It stops at the first violation.
func Collides(board Board, shape Shape, pos, delta Point) bool {
	for y, row := range shape {
		for x, c := range row {
			if c == Empty {
				continue
			}
			bx := pos.X + delta.X + x
			by := pos.Y + delta.Y + y
			if !board.In(bx, by) || board[by][bx] != Empty {
				return true
			}
		}
	}
	return false
}

// ClearResult is the outcome of ClearFullRows.
type ClearResult struct {
	Board   Board
	Cleared int
	Rows    []int // original indices of removed rows, top to bottom
}

// ClearFullRows removes every row without empty cells in a single pass and
// inserts one empty row at the top for each removed row. Remaining rows keep
// their order, so the row count never changes.
func ClearFullRows(board Board) ClearResult {
	kept := make(Board, 0, len(board))
	var rows []int
	for y, row := range board {
		if isFull(row) {
			rows = append(rows, y)
			continue
		}
		kept = append(kept, append([]Cell(nil), row...))
	}

	out := make(Board, 0, len(board))
	for range rows {
		out = append(out, emptyRow(board.Width()))
	}
	out = append(out, kept...)

	return ClearResult{Board: out, Cleared: len(rows), Rows: rows}
}

func isFull(row []Cell) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return len(row) > 0
}
