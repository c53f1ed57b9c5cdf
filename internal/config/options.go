package config

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/tstris/internal/core"
	"github.com/vovakirdan/tstris/internal/engine"
)

// Options converts the rules into engine options. The seed is passed
// through unchanged; 0 lets the engine pick one.
func (c RulesConfig) Options(seed int64) (engine.Options, error) {
	opts := engine.DefaultOptions()
	opts.Width = c.Board.Width
	opts.Height = c.Board.Height
	opts.NextQueueSize = c.Queue.Size
	opts.Hold = c.Hold.Enabled
	opts.ResetOnHold = c.Hold.ResetPosition
	opts.PlacementCollisions = c.Lock.PlacementCollisions
	opts.StartLevel = c.Difficulty.StartLevel
	opts.Seed = seed

	catalog, err := c.Catalog()
	if err != nil {
		return engine.Options{}, err
	}
	opts.Pieces = catalog

	if len(c.Board.Default) > 0 {
		opts.DefaultBoard = engine.ParseBoard(c.Board.Default)
	}

	switch c.Queue.Randomizer {
	case "", RandomizerUniform:
		opts.Randomizer = engine.Uniform{}
	case RandomizerBag:
		opts.Randomizer = engine.NewBag()
	default:
		return engine.Options{}, fmt.Errorf("config: unknown randomizer %q", c.Queue.Randomizer)
	}

	if opts.Speed, err = c.Difficulty.SpeedPolicy(); err != nil {
		return engine.Options{}, err
	}
	if opts.Score, err = c.Difficulty.ScorePolicy(); err != nil {
		return engine.Options{}, err
	}
	if opts.Level, err = c.Difficulty.LevelPolicy(); err != nil {
		return engine.Options{}, err
	}

	if err := opts.Validate(); err != nil {
		return engine.Options{}, fmt.Errorf("config: %w", err)
	}
	return opts, nil
}

// Catalog returns the configured pieces, or the standard seven when none
// are configured.
func (c RulesConfig) Catalog() (engine.Catalog, error) {
	if len(c.Pieces) == 0 {
		return engine.DefaultCatalog(), nil
	}
	catalog := make(engine.Catalog, len(c.Pieces))
	for id, p := range c.Pieces {
		if len(p.Shape) == 0 {
			return nil, fmt.Errorf("config: piece %q has no shape", id)
		}
		catalog[engine.Cell(id)] = engine.Shape(engine.ParseBoard(p.Shape))
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return catalog, nil
}

var standardColors = map[engine.Cell]core.Color{
	"I": core.ColorCyan,
	"O": core.ColorYellow,
	"J": core.ColorBlue,
	"L": core.ColorOrange,
	"T": core.ColorPurple,
	"Z": core.ColorRed,
	"S": core.ColorGreen,
}

// Palette maps every piece id to its display color. Custom pieces use
// their configured color; unknown or missing colors fall back to white.
func (c RulesConfig) Palette() map[engine.Cell]core.Color {
	palette := make(map[engine.Cell]core.Color, len(standardColors))
	if len(c.Pieces) == 0 {
		for id, color := range standardColors {
			palette[id] = color
		}
		return palette
	}

	ids := make([]string, 0, len(c.Pieces))
	for id := range c.Pieces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		color, ok := core.ParseColor(c.Pieces[id].Color)
		if !ok {
			if std, found := standardColors[engine.Cell(id)]; found {
				color = std
			} else {
				color = core.ColorWhite
			}
		}
		palette[engine.Cell(id)] = color
	}
	return palette
}
