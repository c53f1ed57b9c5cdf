package engine

// Snapshot captures the observable game state for determinism testing and
// for front-ends that render a full frame at once.
type Snapshot struct {
	Status      Status
	Score       int
	Level       int
	RowsCleared int
	Piece       Cell
	X, Y        int
	Collisions  int
	Held        Cell
	HoldUsed    bool
	Queue       []Cell
	Board       Board // committed board with the active piece stamped in
}

// Snapshot returns a copy of the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Status:      g.status,
		Score:       g.score,
		Level:       g.level,
		RowsCleared: g.rowsCleared,
		Piece:       g.player.piece.Type,
		X:           g.player.pos.X,
		Y:           g.player.pos.Y,
		Collisions:  g.player.collisions,
		Held:        g.player.held.Type,
		HoldUsed:    g.holdUsed,
		Queue:       g.player.nextQueue(),
		Board:       g.BoardWithPlayer(),
	}
}

// GhostY returns the row the active piece would rest on after a hard drop.
func (g *Game) GhostY() int {
	y := g.player.pos.Y
	shape := g.player.piece.Shape
	if len(shape) == 0 {
		return y
	}
	for !Collides(g.board, shape, Point{X: g.player.pos.X, Y: y}, Point{Y: 1}) {
		y++
	}
	return y
}
