package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBoardRoundTrip(t *testing.T) {
	rows := []string{
		"..T.",
		".TTT",
		"OO..",
	}
	b := ParseBoard(rows)

	require.Equal(t, 4, b.Width())
	require.Equal(t, 3, b.Height())
	assert.Equal(t, Cell("T"), b[0][2])
	assert.Equal(t, Empty, b[0][0])
	assert.Equal(t, "..T.\n.TTT\nOO..", b.String())
}

func TestOverlayDoesNotMutate(t *testing.T) {
	board := NewBoard(4, 4)
	before := board.Clone()
	shape := DefaultCatalog()["O"]

	out := Overlay(board, shape, Point{X: 1, Y: 2})

	assert.True(t, board.Equal(before), "input board changed")
	assert.Equal(t, "....\n....\n.OO.\n.OO.", out.String())
}

func TestOverlaySkipsEmptyAndOutOfRange(t *testing.T) {
	board := ParseBoard([]string{"T...", "...."})
	shape := Shape{{"", "I"}, {"I", ""}}

	// the empty shape cell at (0,0) must not erase the T
	out := Overlay(board, shape, Point{X: 0, Y: 0})
	assert.Equal(t, "TI..\nI...", out.String())

	out = Overlay(board, shape, Point{X: 3, Y: 0})
	assert.Equal(t, "T...\n...I", out.String())
}

func TestCollides(t *testing.T) {
	board := ParseBoard([]string{
		"....",
		"....",
		"..O.",
	})
	o := Shape{{"O", "O"}, {"O", "O"}}

	tests := []struct {
		name  string
		pos   Point
		delta Point
		want  bool
	}{
		{"fits", Point{0, 0}, Point{}, false},
		{"left wall", Point{0, 0}, Point{X: -1}, true},
		{"right wall", Point{2, 0}, Point{X: 1}, true},
		{"floor", Point{0, 1}, Point{Y: 1}, true},
		{"ceiling", Point{0, 0}, Point{Y: -1}, true},
		{"occupied", Point{1, 0}, Point{Y: 1}, true},
		{"beside block", Point{0, 1}, Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Collides(board, o, tt.pos, tt.delta))
		})
	}
}

func TestCollidesIgnoresEmptyShapeCells(t *testing.T) {
	board := NewBoard(10, 20)
	// the I piece has an empty top row, so it may sit with that row above y=0
	assert.False(t, Collides(board, DefaultCatalog()["I"], Point{X: 3, Y: -1}, Point{}))
}

func TestClearFullRows(t *testing.T) {
	board := ParseBoard([]string{
		"T...",
		"IIII",
		".O..",
		"OOOO",
	})

	res := ClearFullRows(board)

	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, []int{1, 3}, res.Rows)
	assert.Equal(t, board.Height(), res.Board.Height())
	assert.Equal(t, "....\n....\nT...\n.O..", res.Board.String())
	assert.Equal(t, "T...\nIIII\n.O..\nOOOO", board.String(), "input board changed")
}

func TestClearFullRowsNothingFull(t *testing.T) {
	board := ParseBoard([]string{"T...", "OO.O"})
	res := ClearFullRows(board)

	assert.Zero(t, res.Cleared)
	assert.Empty(t, res.Rows)
	assert.True(t, res.Board.Equal(board))
}
