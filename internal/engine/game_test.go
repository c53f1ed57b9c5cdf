package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recorder struct {
	names    []EventName
	payloads []Payload
}

func record(g *Game, names ...EventName) *recorder {
	r := &recorder{}
	for _, name := range names {
		g.On(name, func(e *Event) {
			r.names = append(r.names, e.Name)
			r.payloads = append(r.payloads, e.Payload)
		})
	}
	return r
}

func (r *recorder) clear() {
	r.names = nil
	r.payloads = nil
}

func newGame(t *testing.T, modify func(o *Options)) (*Game, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	opts := DefaultOptions()
	opts.Seed = 1
	opts.Clock = clock.Now
	if modify != nil {
		modify(&opts)
	}
	g, err := New(opts)
	require.NoError(t, err)
	return g, clock
}

func onlyPiece(typ Cell) func(o *Options) {
	return func(o *Options) {
		o.Pieces = Catalog{typ: DefaultCatalog()[typ]}
	}
}

// boardWith returns a 10x20 board whose bottom rows are given.
func boardWith(bottom ...string) Board {
	rows := make([]string, 20-len(bottom), 20)
	for i := range rows {
		rows[i] = ".........."
	}
	return ParseBoard(append(rows, bottom...))
}

func countFilled(b Board) int {
	n := 0
	for _, row := range b {
		for _, c := range row {
			if c != Empty {
				n++
			}
		}
	}
	return n
}

func TestNewGameIsIdle(t *testing.T) {
	g, _ := newGame(t, nil)

	assert.Equal(t, StatusIdle, g.Status())
	assert.Equal(t, 1, g.Level())
	assert.Zero(t, g.Score())
	assert.Zero(t, g.RowsCleared())
	assert.Empty(t, g.Queue())
	assert.Equal(t, Empty, g.Held())
	assert.True(t, g.Board().Equal(NewBoard(10, 20)))
}

func TestStartFillsQueue(t *testing.T) {
	g, _ := newGame(t, nil)
	r := record(g, EventQueueChange, EventStart)

	g.Start()

	assert.Equal(t, StatusPlaying, g.Status())
	assert.Len(t, g.Queue(), 3)
	require.Equal(t, []EventName{EventQueueChange, EventStart}, r.names)
	assert.Equal(t, g.Queue(), r.payloads[0].(QueueChange).Queue)

	piece, pos := g.Current()
	assert.NotEqual(t, Empty, piece.Type)
	assert.Equal(t, Point{X: 3, Y: 0}, pos)
}

func TestBoardExcludesActivePiece(t *testing.T) {
	g, _ := newGame(t, nil)
	g.Start()

	assert.Zero(t, countFilled(g.Board()))
	assert.Equal(t, 4, countFilled(g.BoardWithPlayer()))
}

func TestHardDropO(t *testing.T) {
	g, _ := newGame(t, onlyPiece("O"))
	r := record(g, EventPiecePlaced)
	g.Start()

	g.HardDrop()

	require.Len(t, r.payloads, 1)
	assert.Equal(t, PiecePlaced{Type: "O"}, r.payloads[0])

	board := g.Board()
	assert.Equal(t, "...OO.....", board.Row(18))
	assert.Equal(t, "...OO.....", board.Row(19))
	assert.Equal(t, 4, countFilled(board))
	assert.Equal(t, 10, g.Score())
	assert.Zero(t, g.RowsCleared())

	// the next O spawns at the top
	_, pos := g.Current()
	assert.Equal(t, Point{X: 3, Y: 0}, pos)
	assert.Equal(t, 8, countFilled(g.BoardWithPlayer()))
}

func TestSingleRowClear(t *testing.T) {
	g, _ := newGame(t, func(o *Options) {
		onlyPiece("O")(o)
		o.DefaultBoard = boardWith(
			"O.........",
			"..........",
			"OOO..OOOOO",
		)
	})
	r := record(g, EventRowCleared)
	g.Start()

	g.HardDrop()

	require.Len(t, r.payloads, 1)
	assert.Equal(t, RowCleared{TotalRowsCleared: 1, ClearedThisPlace: 1, Rows: []int{19}}, r.payloads[0])
	assert.Equal(t, 1, g.RowsCleared())

	board := g.Board()
	assert.Equal(t, "...OO.....", board.Row(19))
	assert.Equal(t, "O.........", board.Row(18))
	assert.Equal(t, "..........", board.Row(17))
	assert.Equal(t, "..........", board.Row(0))
	assert.Equal(t, 20, board.Height())
}

func TestLockEventOrder(t *testing.T) {
	g, _ := newGame(t, func(o *Options) {
		onlyPiece("O")(o)
		o.Level = LevelEvery(1, 1)
		o.DefaultBoard = boardWith("OOO..OOOOO")
	})
	r := record(g,
		EventPiecePlaced, EventRowCleared, EventScoreChange,
		EventLevelChange, EventQueueChange, EventUpdate,
	)
	g.Start()
	r.clear()

	g.HardDrop()

	assert.Equal(t, []EventName{
		EventPiecePlaced,
		EventRowCleared,
		EventScoreChange,
		EventLevelChange,
		EventQueueChange,
		EventUpdate,
	}, r.names)
	assert.Equal(t, ScoreChange{OldScore: 0, NewScore: 10}, r.payloads[2])
	assert.Equal(t, LevelChange{NewLevel: 2}, r.payloads[3])
	assert.Equal(t, 2, g.Level())
}

func TestLevelChangeOnlyWhenDifferent(t *testing.T) {
	g, _ := newGame(t, onlyPiece("O"))
	r := record(g, EventLevelChange, EventRowCleared, EventScoreChange)
	g.Start()

	g.HardDrop()

	// rowCleared and scoreChange report every lock, levelChange does not
	assert.Equal(t, []EventName{EventRowCleared, EventScoreChange}, r.names)
	assert.Equal(t, RowCleared{TotalRowsCleared: 0, ClearedThisPlace: 0}, r.payloads[0])
}

func TestHoldTwiceIsNoop(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.Seed = 42 })
	r := record(g, EventHold)
	g.Start()

	g.Hold()
	after := g.Snapshot()
	g.Hold()

	assert.Equal(t, after, g.Snapshot())
	assert.Len(t, r.payloads, 1)
	assert.True(t, after.HoldUsed)
	assert.True(t, g.HoldUsed())

	g.HardDrop()
	assert.False(t, g.HoldUsed(), "lock frees the hold")
}

func TestHoldStoresAndSwaps(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.Seed = 5 })
	r := record(g, EventHold)
	g.Start()

	first, _ := g.Current()
	front := g.Queue()[0]
	g.MoveLeft()
	g.Hold()

	cur, pos := g.Current()
	assert.Equal(t, first.Type, g.Held())
	assert.Equal(t, front, cur.Type)
	assert.Equal(t, Point{X: 3, Y: 0}, pos)
	assert.Len(t, g.Queue(), 3)
	require.Len(t, r.payloads, 1)
	assert.Equal(t, HoldSwap{Previous: first.Type, Next: front}, r.payloads[0])

	g.HardDrop()
	second, _ := g.Current()
	g.Hold()

	cur, _ = g.Current()
	assert.Equal(t, first.Type, cur.Type)
	assert.Equal(t, second.Type, g.Held())
	assert.Equal(t, DefaultCatalog()[first.Type], cur.Shape, "held piece comes back in spawn orientation")
}

func TestHoldDisabled(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.Hold = false })
	g.Start()
	before := g.Snapshot()

	g.Hold()

	assert.Equal(t, before, g.Snapshot())
	assert.Equal(t, Empty, g.Held())
}

func TestHoldWithoutReset(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.ResetOnHold = false })
	g.Start()
	g.MoveLeft()
	g.SoftDrop()

	g.Hold()

	_, pos := g.Current()
	assert.Equal(t, Point{X: 2, Y: 1}, pos)
}

func TestHoldWithoutResetKicksOffWall(t *testing.T) {
	g, _ := newGame(t, func(o *Options) {
		onlyPiece("I")(o)
		o.ResetOnHold = false
	})
	g.Start()
	g.RotateRight()
	for i := 0; i < 5; i++ {
		g.MoveRight()
	}
	g.SoftDrop()
	g.SoftDrop()
	_, pos := g.Current()
	require.Equal(t, Point{X: 7, Y: 2}, pos, "vertical I against the right wall")

	g.Hold()

	cur, pos := g.Current()
	assert.Equal(t, Point{X: 6, Y: 2}, pos)
	assert.False(t, Collides(g.Board(), cur.Shape, pos, Point{}))

	g.HardDrop()
	assert.Equal(t, 4, countFilled(g.Board()))
	assert.Equal(t, "......IIII", g.Board().Row(19))
}

func TestHoldWithoutResetFallsBackToSpawn(t *testing.T) {
	well := make([]string, 15)
	for i := range well {
		well[i] = "IIIIIIIII."
	}
	g, _ := newGame(t, func(o *Options) {
		onlyPiece("I")(o)
		o.ResetOnHold = false
		o.DefaultBoard = boardWith(well...)
	})
	g.Start()
	g.RotateRight()
	for i := 0; i < 5; i++ {
		g.MoveRight()
	}
	for i := 0; i < 5; i++ {
		g.SoftDrop()
	}
	_, pos := g.Current()
	require.Equal(t, Point{X: 7, Y: 5}, pos, "vertical I inside the well")

	g.Hold()

	cur, pos := g.Current()
	assert.Equal(t, Point{X: 3, Y: 0}, pos)
	assert.False(t, Collides(g.Board(), cur.Shape, pos, Point{}))
}

func TestZeroQueue(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.NextQueueSize = 0 })
	r := record(g, EventQueueChange)
	g.Start()

	for i := 0; i < 5; i++ {
		g.HardDrop()
		piece, _ := g.Current()
		assert.NotEqual(t, Empty, piece.Type)
		assert.NotEmpty(t, piece.Shape)
	}

	assert.Empty(t, g.Queue())
	require.NotEmpty(t, r.payloads)
	for _, p := range r.payloads {
		assert.Empty(t, p.(QueueChange).Queue)
	}
}

func TestDropGameOverOnlyAtTop(t *testing.T) {
	t.Run("blocked at row 0", func(t *testing.T) {
		g, _ := newGame(t, func(o *Options) {
			onlyPiece("O")(o)
			o.DefaultBoard = boardWith(append([]string{"OOOOOOOOOO"}, emptyRows(17)...)...)
		})
		r := record(g, EventEnd)
		g.Start()

		g.SoftDrop()

		assert.Equal(t, StatusEnded, g.Status())
		assert.Equal(t, []EventName{EventEnd}, r.names)
	})

	t.Run("blocked below row 0", func(t *testing.T) {
		g, _ := newGame(t, func(o *Options) {
			onlyPiece("O")(o)
			o.DefaultBoard = boardWith(append([]string{"OOOOOOOOOO"}, emptyRows(16)...)...)
		})
		g.Start()

		g.SoftDrop()
		assert.Equal(t, 1, g.Snapshot().Y)
		assert.Zero(t, g.Snapshot().Collisions)

		g.SoftDrop()
		assert.Equal(t, StatusPlaying, g.Status())
		assert.Equal(t, 1, g.Snapshot().Collisions)

		g.SoftDrop()
		assert.Equal(t, 2, g.Snapshot().Collisions)
	})
}

func emptyRows(n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = ".........."
	}
	return rows
}

func TestHardDropGameOverDoesNotLock(t *testing.T) {
	board := boardWith(append([]string{"OOOOOOOOOO"}, emptyRows(17)...)...)
	g, _ := newGame(t, func(o *Options) {
		onlyPiece("O")(o)
		o.DefaultBoard = board
	})
	r := record(g, EventPiecePlaced)
	g.Start()

	g.HardDrop()

	assert.Equal(t, StatusEnded, g.Status())
	assert.Empty(t, r.names)
	assert.True(t, g.Board().Equal(board))
}

func TestLockDelay(t *testing.T) {
	g, _ := newGame(t, onlyPiece("O"))
	r := record(g, EventPiecePlaced)
	g.Start()

	for i := 0; i < 18; i++ {
		g.SoftDrop()
	}
	assert.Equal(t, 18, g.Snapshot().Y)

	g.SoftDrop()
	g.SoftDrop()
	assert.Empty(t, r.names)
	// sliding sideways does not reset the counter
	g.MoveRight()
	assert.Equal(t, 2, g.Snapshot().Collisions)

	g.SoftDrop()
	assert.Equal(t, []EventName{EventPiecePlaced}, r.names)
	assert.Equal(t, "....OO....", g.Board().Row(19))
}

func TestRotateWallKick(t *testing.T) {
	g, _ := newGame(t, onlyPiece("I"))
	g.Start()

	g.RotateRight()
	for i := 0; i < 10; i++ {
		g.MoveRight()
	}
	_, pos := g.Current()
	require.Equal(t, 7, pos.X)

	g.RotateRight()

	piece, pos := g.Current()
	assert.Equal(t, 6, pos.X)
	assert.Equal(t, Rotate(Rotate(DefaultCatalog()["I"], Right), Right), piece.Shape)
}

func TestRotateRevertsWhenNoKickFits(t *testing.T) {
	g, _ := newGame(t, func(o *Options) {
		onlyPiece("I")(o)
		o.Width, o.Height = 4, 6
		o.DefaultBoard = ParseBoard([]string{
			"IIII",
			"....",
			"IIII",
			"IIII",
			"....",
			"....",
		})
	})
	g.Start()

	g.RotateRight()

	piece, pos := g.Current()
	assert.Equal(t, DefaultCatalog()["I"], piece.Shape)
	assert.Equal(t, 0, pos.X)
}

func TestCommandsIgnoredUnlessPlaying(t *testing.T) {
	g, _ := newGame(t, nil)
	r := record(g, EventUpdate, EventHold)
	before := g.Snapshot()

	g.MoveLeft()
	g.MoveRight()
	g.RotateLeft()
	g.RotateRight()
	g.SoftDrop()
	g.HardDrop()
	g.Hold()

	assert.Empty(t, r.names)
	assert.Equal(t, before, g.Snapshot())
}

func TestStatusTransitions(t *testing.T) {
	g, _ := newGame(t, nil)
	r := record(g, EventStatusChange)

	g.Start()
	g.Pause()
	g.Resume()
	g.End(true)
	g.Start()
	g.End(false)

	var got []StatusChange
	for _, p := range r.payloads {
		got = append(got, p.(StatusChange))
	}
	assert.Equal(t, []StatusChange{
		{Old: StatusIdle, New: StatusPlaying},
		{Old: StatusPlaying, New: StatusPaused},
		{Old: StatusPaused, New: StatusPlaying},
		{Old: StatusPlaying, New: StatusEnded},
		{Old: StatusEnded, New: StatusIdle},
		{Old: StatusIdle, New: StatusPlaying},
		{Old: StatusPlaying, New: StatusEnded},
	}, got)
}

func TestPausedIgnoresCommands(t *testing.T) {
	g, _ := newGame(t, nil)
	g.Start()
	g.Pause()
	before := g.Snapshot()

	g.MoveLeft()
	g.HardDrop()
	g.Hold()

	assert.Equal(t, before, g.Snapshot())
	g.Pause()
	assert.Equal(t, StatusPaused, g.Status())
}

func TestResetRestoresDefaults(t *testing.T) {
	board := boardWith("OOO..OOOOO")
	g, _ := newGame(t, func(o *Options) {
		onlyPiece("O")(o)
		o.StartLevel = 2
		o.Level = LevelEvery(1, 2)
		o.DefaultBoard = board
	})
	g.Start()
	g.HardDrop()
	g.Hold()
	require.Equal(t, 1, g.RowsCleared())
	require.Equal(t, 3, g.Level())

	g.Reset()

	assert.Equal(t, StatusIdle, g.Status())
	assert.Zero(t, g.Score())
	assert.Zero(t, g.RowsCleared())
	assert.Equal(t, 2, g.Level())
	assert.Empty(t, g.Queue())
	assert.Equal(t, Empty, g.Held())
	assert.True(t, g.Board().Equal(board))

	g.Start()
	assert.Len(t, g.Queue(), 3)
}

func TestTickGravity(t *testing.T) {
	g, clock := newGame(t, nil)
	assert.False(t, g.Tick(), "idle game must not tick")

	g.Start()
	assert.False(t, g.Tick())

	clock.Advance(499 * time.Millisecond)
	assert.False(t, g.Tick())

	clock.Advance(time.Millisecond)
	assert.True(t, g.Tick())
	assert.Equal(t, 1, g.Snapshot().Y)
	assert.False(t, g.Tick(), "interval restarts after a drop")
}

func TestTickNaturalDropPrevented(t *testing.T) {
	g, clock := newGame(t, nil)
	g.Start()
	g.On(EventNaturalDrop, func(e *Event) {
		assert.Equal(t, NaturalDrop{Cell: true}, e.Payload)
		e.PreventDefault()
	})

	clock.Advance(time.Second)
	assert.False(t, g.Tick())
	assert.Equal(t, 0, g.Snapshot().Y)

	// the timer was not touched, so the drop is still due
	g.Off(EventNaturalDrop)
	assert.True(t, g.Tick())
	assert.Equal(t, 1, g.Snapshot().Y)
}

func TestTickPaused(t *testing.T) {
	g, clock := newGame(t, nil)
	g.Start()
	g.Pause()

	clock.Advance(time.Second)
	assert.False(t, g.Tick())

	g.Resume()
	assert.False(t, g.Tick(), "resume restarts the interval")
	clock.Advance(500 * time.Millisecond)
	assert.True(t, g.Tick())
}

func TestSoftDropResetsTimer(t *testing.T) {
	g, clock := newGame(t, nil)
	g.Start()

	clock.Advance(400 * time.Millisecond)
	g.SoftDrop()
	clock.Advance(400 * time.Millisecond)

	assert.False(t, g.Tick())
	clock.Advance(100 * time.Millisecond)
	assert.True(t, g.Tick())
}

func TestTickUsesSpeedPolicy(t *testing.T) {
	g, clock := newGame(t, func(o *Options) {
		o.StartLevel = 3
		o.Speed = func(level int) time.Duration { return time.Duration(level) * 100 * time.Millisecond }
	})
	g.Start()

	clock.Advance(299 * time.Millisecond)
	assert.False(t, g.Tick())
	clock.Advance(time.Millisecond)
	assert.True(t, g.Tick())
}

func TestTickGameOver(t *testing.T) {
	g, clock := newGame(t, func(o *Options) {
		onlyPiece("O")(o)
		o.DefaultBoard = boardWith(append([]string{"OOOOOOOOOO"}, emptyRows(17)...)...)
	})
	g.Start()

	clock.Advance(time.Second)
	assert.True(t, g.Tick())
	assert.Equal(t, StatusEnded, g.Status())

	clock.Advance(time.Second)
	assert.False(t, g.Tick(), "loop stops after game over")
}

func TestMonotoneCountersAndQueue(t *testing.T) {
	g, _ := newGame(t, func(o *Options) { o.Seed = 99 })
	rng := rand.New(rand.NewSource(99))
	g.Start()

	lastRows, lastScore := 0, 0
	commands := []func(){
		g.MoveLeft, g.MoveRight, g.RotateLeft, g.RotateRight,
		g.SoftDrop, g.HardDrop, g.Hold,
	}
	for i := 0; i < 3000; i++ {
		if g.Status() == StatusEnded {
			g.Reset()
			g.Start()
			lastRows, lastScore = 0, 0
		}
		commands[rng.Intn(len(commands))]()

		require.GreaterOrEqual(t, g.RowsCleared(), lastRows)
		require.GreaterOrEqual(t, g.Score(), lastScore)
		require.Equal(t, 20, g.Board().Height())
		if g.Status() == StatusPlaying {
			require.Len(t, g.Queue(), 3)
		}
		lastRows, lastScore = g.RowsCleared(), g.Score()
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		g, clock := newGame(t, func(o *Options) {
			o.Seed = 77
			o.Randomizer = NewBag()
		})
		g.Start()
		for i := 0; i < 200; i++ {
			switch i % 5 {
			case 0:
				g.MoveLeft()
			case 1:
				g.RotateRight()
			case 2:
				clock.Advance(500 * time.Millisecond)
				g.Tick()
			case 3:
				if i%3 == 0 {
					g.HardDrop()
				}
			case 4:
				g.MoveRight()
			}
		}
		return g.Snapshot()
	}

	assert.Equal(t, run(), run())
}

func TestGhostY(t *testing.T) {
	g, _ := newGame(t, onlyPiece("O"))
	assert.Equal(t, 0, g.GhostY())

	g.Start()
	assert.Equal(t, 18, g.GhostY())
	g.HardDrop()
	assert.Equal(t, 16, g.GhostY())
}
