// Package tstris adapts the falling-block engine to the platform's fixed
// tick loop. Each variant is a rule set loaded from the config package.
package tstris

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tstris/internal/config"
	"github.com/vovakirdan/tstris/internal/core"
	"github.com/vovakirdan/tstris/internal/engine"
	"github.com/vovakirdan/tstris/internal/registry"
)

// bannerSeconds is how long a line-clear banner stays on screen.
const bannerSeconds = 1

var variantTitles = map[string]string{
	"classic":  "Classic",
	"marathon": "Marathon",
}

func init() {
	for _, id := range config.Variants() {
		registry.Register(id, variantTitles[id], func(s registry.Settings) (registry.Game, error) {
			return Load(id, s)
		})
	}
}

// Game drives one engine instance from platform input frames. The engine
// reads a virtual clock that advances by one frame per Step, so a seed and
// an input sequence always replay the same game.
type Game struct {
	id     string
	title  string
	rules  config.RulesConfig
	colors map[engine.Cell]core.Color
	logger *log.Logger

	eng      *engine.Game
	tick     uint64
	tickRate int
	now      time.Time

	// Per-step results, filled by engine listeners
	locked  bool
	cleared int

	banner      string
	bannerUntil uint64
}

// Load builds a variant from its rules file and the chosen difficulty.
func Load(id string, s registry.Settings) (*Game, error) {
	rules, err := config.Load(id, s.ConfigPath)
	if err != nil {
		return nil, err
	}
	preset, err := config.ParsePreset(s.Difficulty)
	if err != nil {
		return nil, err
	}
	config.ApplyPreset(&rules, preset)
	return New(id, rules, s.Logger)
}

// New creates a variant from explicit rules. The rules are checked here so
// Reset cannot fail later.
func New(id string, rules config.RulesConfig, logger *log.Logger) (*Game, error) {
	if _, err := rules.Options(1); err != nil {
		return nil, err
	}
	title := variantTitles[id]
	if title == "" {
		title = id
	}
	if logger != nil {
		logger = logger.With("variant", id)
	}
	return &Game{
		id:     id,
		title:  title,
		rules:  rules,
		colors: rules.Palette(),
		logger: logger,
	}, nil
}

// ID returns the variant identifier.
func (g *Game) ID() string { return g.id }

// Title returns the display name.
func (g *Game) Title() string { return g.title }

// Reset starts a fresh game with the given seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tick = 0
	g.now = time.Unix(0, 0)
	g.banner = ""
	g.bannerUntil = 0

	opts, err := g.rules.Options(cfg.Seed)
	if err != nil {
		// Rules were validated in New; only the seed differs here.
		panic(err)
	}
	opts.Clock = g.clock
	opts.Logger = g.logger

	eng, err := engine.New(opts)
	if err != nil {
		panic(err)
	}
	g.eng = eng
	g.listen()
	g.eng.Start()
}

func (g *Game) clock() time.Time { return g.now }

// listen subscribes the adapter to the engine events it reports per step.
func (g *Game) listen() {
	g.eng.On(engine.EventPiecePlaced, func(*engine.Event) {
		g.locked = true
	})
	g.eng.On(engine.EventRowCleared, func(e *engine.Event) {
		rc := e.Payload.(engine.RowCleared)
		if rc.ClearedThisPlace == 0 {
			return
		}
		g.cleared += rc.ClearedThisPlace
		g.banner = clearLabel(rc.ClearedThisPlace)
		g.bannerUntil = g.tick + uint64(bannerSeconds*g.tickRate)
	})
}

// Step applies the frame's actions in arrival order, then gives the engine
// a gravity tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	g.now = g.now.Add(time.Second / time.Duration(g.tickRate))
	g.locked = false
	g.cleared = 0

	for _, a := range in.Actions() {
		g.apply(a)
	}
	g.eng.Tick()

	return core.StepResult{
		State:   g.State(),
		Locked:  g.locked,
		Cleared: g.cleared,
	}
}

func (g *Game) apply(a core.Action) {
	switch a {
	case core.ActionPause:
		switch g.eng.Status() {
		case engine.StatusPlaying:
			g.eng.Pause()
		case engine.StatusPaused:
			g.eng.Resume()
		}
	case core.ActionMoveLeft:
		g.eng.MoveLeft()
	case core.ActionMoveRight:
		g.eng.MoveRight()
	case core.ActionRotateLeft:
		g.eng.RotateLeft()
	case core.ActionRotateRight:
		g.eng.RotateRight()
	case core.ActionSoftDrop:
		g.eng.SoftDrop()
	case core.ActionHardDrop:
		g.eng.HardDrop()
	case core.ActionHold:
		g.eng.Hold()
	}
}

// State returns the session summary.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	status := g.eng.Status()
	return core.GameState{
		Score:    g.eng.Score(),
		Lines:    g.eng.RowsCleared(),
		Level:    g.eng.Level(),
		GameOver: status == engine.StatusEnded,
		Paused:   status == engine.StatusPaused,
	}
}

func clearLabel(rows int) string {
	switch rows {
	case 1:
		return "SINGLE"
	case 2:
		return "DOUBLE"
	case 3:
		return "TRIPLE"
	default:
		return "QUAD"
	}
}
