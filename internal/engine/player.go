package engine

import "math/rand"

// player controls the active piece, the next-queue and the hold slot.
// It never stores the board; every query receives the committed board.
type player struct {
	opts    *Options
	events  *Dispatcher
	rng     *rand.Rand
	types   []Cell
	playing func() bool

	piece      Piece
	pos        Point
	collisions int
	held       Piece
	queue      []Cell
}

func newPlayer(opts *Options, events *Dispatcher, playing func() bool) *player {
	p := &player{
		opts:    opts,
		events:  events,
		rng:     rand.New(rand.NewSource(opts.Seed)),
		types:   opts.Pieces.Types(),
		playing: playing,
	}
	p.reset()
	return p
}

// start draws the first piece and fills the queue.
func (p *player) start() {
	p.pos = p.opts.spawnPoint()
	p.collisions = 0
	p.piece = p.randomPiece()
	p.queue = p.queue[:0]
	for i := 0; i < p.opts.NextQueueSize; i++ {
		p.queue = append(p.queue, p.randomPiece().Type)
	}
	p.events.Dispatch(QueueChange{Queue: p.nextQueue()})
}

func (p *player) reset() {
	p.held = Piece{}
	p.queue = make([]Cell, 0, p.opts.NextQueueSize)
	p.piece = Piece{Shape: Shape{}}
	p.pos = p.opts.spawnPoint()
	p.collisions = 0
	p.opts.Randomizer.Reset()
}

// resetPlayer recenters the piece and, unless it follows a hold, pulls the
// next one from the queue.
func (p *player) resetPlayer(afterHold bool) {
	p.pos = p.opts.spawnPoint()
	p.collisions = 0
	if !afterHold {
		p.piece = p.nextPiece()
	}
}

func (p *player) moveHorizontal(board Board, dir Direction) {
	if Collides(board, p.piece.Shape, p.pos, Point{X: int(dir)}) {
		return
	}
	p.pos.X += int(dir)
}

// rotate turns the piece and kicks it sideways until it fits. When no
// offset works the rotation is undone.
func (p *player) rotate(board Board, dir Direction) {
	x := p.pos.X
	p.piece.Shape = Rotate(p.piece.Shape, dir)
	if !p.kick(board) {
		p.piece.Shape = Rotate(p.piece.Shape, dir.Opposite())
		p.pos.X = x
	}
}

// kick searches x, x+1, x-1, x+2, x-2, ... for a spot where the piece fits.
// It gives up once the offset grows past the shape width.
func (p *player) kick(board Board) bool {
	offset := 1
	for Collides(board, p.piece.Shape, p.pos, Point{}) {
		p.pos.X += offset
		if offset > 0 {
			offset = -(offset + 1)
		} else {
			offset = -(offset - 1)
		}
		if abs(offset) > p.piece.Shape.Width() {
			return false
		}
	}
	return true
}

// drop moves the piece down one row. It reports true when the piece is
// blocked while still touching the top row, which ends the game.
func (p *player) drop(board Board) bool {
	if !Collides(board, p.piece.Shape, p.pos, Point{Y: 1}) {
		p.pos.Y++
		p.collisions = 0
		return false
	}
	if p.pos.Y < 1 {
		return true
	}
	p.collisions++
	return false
}

// hold banks the current piece in its spawn orientation. Without
// ResetOnHold the incoming piece stays where the old one was, kicked
// sideways if needed, and goes back to the spawn point when nothing fits.
func (p *player) hold(board Board) {
	if !p.opts.Hold {
		return
	}
	previous := p.piece.Type
	spawn, _ := p.opts.Pieces.Piece(previous)

	if p.held.IsZero() {
		p.held = spawn
		p.piece = p.nextPiece()
	} else {
		p.piece, p.held = p.held, spawn
	}
	if p.opts.ResetOnHold || !p.kick(board) {
		p.resetPlayer(true)
	}
	p.collisions = 0
	p.events.Dispatch(HoldSwap{Previous: previous, Next: p.piece.Type})
}

// nextPiece pops the front of the queue and backfills it. With an empty
// queue it draws a fresh piece.
func (p *player) nextPiece() Piece {
	var next Piece
	if len(p.queue) == 0 {
		next = p.randomPiece()
	} else {
		next, _ = p.opts.Pieces.Piece(p.queue[0])
		p.queue = append(p.queue[:0], p.queue[1:]...)
		if p.opts.NextQueueSize > 0 {
			p.queue = append(p.queue, p.randomPiece().Type)
		}
	}
	if p.playing() {
		p.events.Dispatch(QueueChange{Queue: p.nextQueue()})
	}
	return next
}

func (p *player) randomPiece() Piece {
	t := p.opts.Randomizer.Next(p.rng, p.types)
	piece, _ := p.opts.Pieces.Piece(t)
	return piece
}

func (p *player) nextQueue() []Cell {
	return append([]Cell(nil), p.queue...)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
