package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// ErrInvalidOptions is returned by New when the options cannot describe a game.
var ErrInvalidOptions = errors.New("engine: invalid options")

// Options configures a game. It is copied by New and never changes afterwards.
type Options struct {
	Pieces        Catalog
	Width         int
	Height        int
	NextQueueSize int
	Hold          bool // whether holding is allowed
	ResetOnHold   bool // recenter the piece after a hold
	StartLevel    int

	// PlacementCollisions is the lock-delay threshold: the number of blocked
	// downward moves after which a resting piece locks.
	PlacementCollisions int

	// DefaultBoard is the starting layout. Nil means an empty board.
	DefaultBoard Board

	Speed SpeedPolicy
	Score ScorePolicy
	Level LevelPolicy

	Randomizer Randomizer
	Seed       int64            // 0 picks a time-based seed
	Clock      func() time.Time // defaults to time.Now
	Logger     *log.Logger      // defaults to a discarding logger
}

// DefaultOptions returns the reference configuration: a 10x20 board, the
// standard catalog, three pieces of lookahead, hold enabled and the constant
// speed, score and level policies.
func DefaultOptions() Options {
	return Options{
		Pieces:              DefaultCatalog(),
		Width:               10,
		Height:              20,
		NextQueueSize:       3,
		Hold:                true,
		ResetOnHold:         true,
		StartLevel:          1,
		PlacementCollisions: 3,
		Speed:               DefaultSpeed,
		Score:               DefaultScore,
		Level:               DefaultLevel,
		Randomizer:          Uniform{},
	}
}

// Validate checks the options and returns an error wrapping ErrInvalidOptions.
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	if err := o.Pieces.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	spawn := o.spawnPoint()
	if spawn.X < 0 {
		return fmt.Errorf("%w: board must be at least 4 wide to spawn pieces, got %d", ErrInvalidOptions, o.Width)
	}
	for _, t := range o.Pieces.Types() {
		shape := o.Pieces[t]
		if len(shape) > o.Height || spawn.X+shape.Width() > o.Width {
			return fmt.Errorf("%w: piece %q (%dx%d) does not fit a %dx%d board at x=%d",
				ErrInvalidOptions, t, shape.Width(), len(shape), o.Width, o.Height, spawn.X)
		}
	}
	if o.NextQueueSize < 0 {
		return fmt.Errorf("%w: next queue size must not be negative, got %d", ErrInvalidOptions, o.NextQueueSize)
	}
	if o.PlacementCollisions < 1 {
		return fmt.Errorf("%w: placement collisions must be at least 1, got %d", ErrInvalidOptions, o.PlacementCollisions)
	}
	if o.StartLevel < 0 {
		return fmt.Errorf("%w: start level must not be negative, got %d", ErrInvalidOptions, o.StartLevel)
	}
	if o.DefaultBoard != nil {
		if err := o.DefaultBoard.validate(o.Width, o.Height, o.Pieces); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
	}
	return nil
}

// withDefaults fills the optional collaborators and copies mutable inputs.
func (o Options) withDefaults() Options {
	if o.Speed == nil {
		o.Speed = DefaultSpeed
	}
	if o.Score == nil {
		o.Score = DefaultScore
	}
	if o.Level == nil {
		o.Level = DefaultLevel
	}
	if o.Randomizer == nil {
		o.Randomizer = Uniform{}
	}
	if o.Seed == 0 {
		o.Seed = time.Now().UnixNano()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}

	pieces := make(Catalog, len(o.Pieces))
	for t, s := range o.Pieces {
		pieces[t] = s.Clone()
	}
	o.Pieces = pieces
	o.DefaultBoard = o.DefaultBoard.Clone()
	return o
}

// spawnPoint is where new pieces appear.
func (o Options) spawnPoint() Point {
	return Point{X: o.Width/2 - 2, Y: 0}
}
