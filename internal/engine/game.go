package engine

import (
	"time"

	"github.com/charmbracelet/log"
)

// Status is the session state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusPlaying Status = "playing"
	StatusPaused  Status = "paused"
	StatusEnded   Status = "ended"
)

// Game is one falling-block session. It owns the committed board and is not
// safe for concurrent use: call it from a single goroutine.
type Game struct {
	opts   Options
	events *Dispatcher
	player *player
	log    *log.Logger

	board       Board
	status      Status
	score       int
	level       int
	rowsCleared int
	holdUsed    bool

	loopRunning bool
	lastLoopRun time.Time
}

// New validates opts and creates an idle game.
func New(opts Options) (*Game, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		opts:   opts.withDefaults(),
		events: NewDispatcher(),
		status: StatusIdle,
	}
	g.log = g.opts.Logger
	g.player = newPlayer(&g.opts, g.events, func() bool { return g.status == StatusPlaying })
	g.board = g.defaultBoard()
	g.level = g.opts.StartLevel
	return g, nil
}

// Options returns the configuration the game runs with.
func (g *Game) Options() Options {
	return g.opts
}

// On registers the listener for an event, replacing any previous one.
func (g *Game) On(name EventName, l Listener) {
	g.events.On(name, l)
}

// Off removes the listener for an event.
func (g *Game) Off(name EventName) {
	g.events.Off(name)
}

// Start begins a session: the first piece and the queue are drawn and the
// timed loop starts. Calling it again restarts piece generation.
func (g *Game) Start() {
	g.setStatus(StatusPlaying)
	g.player.start()
	g.startLoop()
	g.log.Debug("game started", "level", g.level, "seed", g.opts.Seed)
	g.events.Dispatch(Started{})
}

// End stops the session. With reset it also performs Reset.
func (g *Game) End(reset bool) {
	g.setStatus(StatusEnded)
	g.stopLoop()
	g.log.Debug("game ended", "score", g.score, "rows", g.rowsCleared, "level", g.level)
	g.events.Dispatch(Ended{})
	if reset {
		g.Reset()
	}
}

// Reset restores the default board and clears the controller and counters.
// It leaves the timed loop as it is.
func (g *Game) Reset() {
	g.player.reset()
	g.board = g.defaultBoard()
	g.score = 0
	g.rowsCleared = 0
	g.level = g.opts.StartLevel
	g.holdUsed = false
	g.setStatus(StatusIdle)
}

// MoveLeft shifts the piece one column left if it fits.
func (g *Game) MoveLeft() {
	g.move(Left)
}

// MoveRight shifts the piece one column right if it fits.
func (g *Game) MoveRight() {
	g.move(Right)
}

func (g *Game) move(dir Direction) {
	if !g.playing() {
		return
	}
	g.player.moveHorizontal(g.board, dir)
	g.updateBoard()
}

// RotateLeft turns the piece counter-clockwise.
func (g *Game) RotateLeft() {
	g.rotate(Left)
}

// RotateRight turns the piece clockwise.
func (g *Game) RotateRight() {
	g.rotate(Right)
}

func (g *Game) rotate(dir Direction) {
	if !g.playing() {
		return
	}
	g.player.rotate(g.board, dir)
	g.updateBoard()
}

// SoftDrop moves the piece down one row and restarts the gravity timer.
func (g *Game) SoftDrop() {
	if !g.playing() {
		return
	}
	if g.player.drop(g.board) {
		g.End(false)
	}
	g.updateBoard()
	g.resetLoop()
}

// HardDrop drops the piece until it rests and locks it immediately.
func (g *Game) HardDrop() {
	if !g.playing() {
		return
	}
	for g.player.collisions <= 0 {
		if g.player.drop(g.board) {
			g.End(false)
			g.updateBoard()
			return
		}
	}
	g.player.collisions = g.opts.PlacementCollisions
	g.updateBoard()
	g.resetLoop()
}

// Hold banks the current piece. It can be used once per locked piece.
func (g *Game) Hold() {
	if !g.playing() || g.holdUsed || !g.opts.Hold {
		return
	}
	g.player.hold(g.board)
	g.updateBoard()
	g.holdUsed = true
}

// Board returns a copy of the committed board, without the active piece.
func (g *Game) Board() Board {
	return g.board.Clone()
}

// BoardWithPlayer returns a copy of the committed board with the active
// piece stamped at its position.
func (g *Game) BoardWithPlayer() Board {
	return Overlay(g.board, g.player.piece.Shape, g.player.pos)
}

// Status returns the session status.
func (g *Game) Status() Status { return g.status }

// Score returns the cumulative score.
func (g *Game) Score() int { return g.score }

// Level returns the current level.
func (g *Game) Level() int { return g.level }

// RowsCleared returns the cumulative number of cleared rows.
func (g *Game) RowsCleared() int { return g.rowsCleared }

// Queue returns the types in the next-queue, front first.
func (g *Game) Queue() []Cell { return g.player.nextQueue() }

// Held returns the held piece type, or Empty.
func (g *Game) Held() Cell { return g.player.held.Type }

// HoldUsed reports whether the hold was used since the last lock.
func (g *Game) HoldUsed() bool { return g.holdUsed }

// Current returns a copy of the active piece and its position.
func (g *Game) Current() (Piece, Point) {
	return Piece{Type: g.player.piece.Type, Shape: g.player.piece.Shape.Clone()}, g.player.pos
}

func (g *Game) playing() bool {
	return g.status == StatusPlaying
}

func (g *Game) setStatus(s Status) {
	if g.status == s {
		return
	}
	old := g.status
	g.status = s
	g.events.Dispatch(StatusChange{Old: old, New: s})
}

func (g *Game) defaultBoard() Board {
	if g.opts.DefaultBoard != nil {
		return g.opts.DefaultBoard.Clone()
	}
	return NewBoard(g.opts.Width, g.opts.Height)
}

// updateBoard runs after every command and gravity step. A piece that has
// reached the lock threshold is committed, rows are cleared and the next
// piece is pulled. Update always fires last.
func (g *Game) updateBoard() {
	if g.player.collisions >= g.opts.PlacementCollisions {
		g.events.Dispatch(PiecePlaced{Type: g.player.piece.Type})
		g.log.Debug("piece locked", "type", g.player.piece.Type, "x", g.player.pos.X, "y", g.player.pos.Y)
		g.board = g.handleClearedRows(g.BoardWithPlayer())
		g.player.resetPlayer(false)
		g.holdUsed = false
	} else {
		g.board = g.board.Clone()
	}
	g.events.Dispatch(Update{})
}

func (g *Game) handleClearedRows(board Board) Board {
	res := ClearFullRows(board)
	g.rowsCleared += res.Cleared
	if res.Cleared > 0 {
		g.log.Debug("rows cleared", "count", res.Cleared, "rows", res.Rows, "total", g.rowsCleared)
	}
	g.events.Dispatch(RowCleared{
		TotalRowsCleared: g.rowsCleared,
		ClearedThisPlace: res.Cleared,
		Rows:             res.Rows,
	})

	old := g.score
	g.score += g.opts.Score(ScoreInput{RowsCleared: res.Cleared, Level: g.level})
	g.events.Dispatch(ScoreChange{OldScore: old, NewScore: g.score})

	level := g.opts.Level(LevelInput{TotalRowsCleared: g.rowsCleared, CurrLevel: g.level})
	if level != g.level {
		g.level = level
		g.log.Debug("level changed", "level", level)
		g.events.Dispatch(LevelChange{NewLevel: level})
	}
	return res.Board
}
