package tstris

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tstris/internal/config"
	"github.com/vovakirdan/tstris/internal/core"
	"github.com/vovakirdan/tstris/internal/engine"
	"github.com/vovakirdan/tstris/internal/registry"
)

func runtimeConfig(seed int64, tickRate int) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: tickRate, Seed: seed}
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// onlyO returns classic rules that deal nothing but O pieces on a small board.
func onlyO(width, height int, board ...string) config.RulesConfig {
	rules := config.DefaultRulesConfig()
	rules.Board.Width = width
	rules.Board.Height = height
	rules.Board.Default = board
	rules.Pieces = map[string]config.PieceConfig{
		"O": {Shape: []string{"OO", "OO"}, Color: "yellow"},
	}
	return rules
}

func newClassic(t *testing.T, seed int64, tickRate int) *Game {
	t.Helper()
	g, err := New("classic", config.DefaultRulesConfig(), nil)
	require.NoError(t, err)
	g.Reset(runtimeConfig(seed, tickRate))
	return g
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"classic", "marathon"} {
		require.True(t, registry.Exists(id), id)

		g, err := registry.Create(id, registry.Settings{})
		require.NoError(t, err)
		assert.Equal(t, id, g.ID())
	}
}

func TestLoadRejectsUnknownDifficulty(t *testing.T) {
	_, err := Load("classic", registry.Settings{Difficulty: "nightmare"})
	assert.Error(t, err)
}

func TestLoadAppliesPreset(t *testing.T) {
	g, err := Load("marathon", registry.Settings{Difficulty: "hard"})
	require.NoError(t, err)
	g.Reset(runtimeConfig(1, 60))

	assert.Equal(t, 5, g.State().Level)
	assert.Len(t, g.eng.Queue(), 1)
}

func TestResetStartsPlaying(t *testing.T) {
	g := newClassic(t, 3, 60)

	snap := g.Snapshot()
	assert.Equal(t, "playing", string(snap.Status))
	assert.NotEmpty(t, snap.Piece)
	assert.Len(t, snap.Queue, 3)
	assert.Equal(t, core.GameState{Level: 1}, g.State())
}

func TestGravityFollowsVirtualClock(t *testing.T) {
	g := newClassic(t, 5, 10)
	_, start := g.eng.Current()

	for i := 0; i < 4; i++ {
		g.Step(frame())
	}
	_, pos := g.eng.Current()
	assert.Equal(t, start.Y, pos.Y, "no drop before 500ms")

	g.Step(frame())
	_, pos = g.eng.Current()
	assert.Equal(t, start.Y+1, pos.Y)
}

func TestHardDropLocksAndScores(t *testing.T) {
	g := newClassic(t, 9, 60)

	res := g.Step(frame(core.ActionHardDrop))

	assert.True(t, res.Locked)
	assert.Zero(t, res.Cleared)
	assert.Equal(t, 10, res.State.Score)

	res = g.Step(frame())
	assert.False(t, res.Locked)
}

func TestLineClearReported(t *testing.T) {
	g, err := New("classic", onlyO(4, 4, "....", "....", "..OO", "..OO"), nil)
	require.NoError(t, err)
	g.Reset(runtimeConfig(1, 60))

	res := g.Step(frame(core.ActionHardDrop))

	assert.True(t, res.Locked)
	assert.Equal(t, 2, res.Cleared)
	assert.Equal(t, 2, res.State.Lines)
	assert.Equal(t, "DOUBLE", g.banner)
	assert.Equal(t, "....\n....\n....\n....", g.eng.Board().String())
}

func TestActionsApplyInOrder(t *testing.T) {
	g := newClassic(t, 11, 60)
	_, start := g.eng.Current()

	g.Step(frame(core.ActionMoveLeft, core.ActionMoveLeft, core.ActionMoveRight))

	_, pos := g.eng.Current()
	assert.Equal(t, start.X-1, pos.X)
}

func TestPauseToggles(t *testing.T) {
	g := newClassic(t, 2, 10)
	_, start := g.eng.Current()

	res := g.Step(frame(core.ActionPause))
	require.True(t, res.State.Paused)

	for i := 0; i < 20; i++ {
		g.Step(frame(core.ActionMoveLeft))
	}
	_, pos := g.eng.Current()
	assert.Equal(t, start, pos, "paused game must not move")

	res = g.Step(frame(core.ActionPause))
	assert.False(t, res.State.Paused)
}

func TestGameOver(t *testing.T) {
	g, err := New("classic", onlyO(4, 2), nil)
	require.NoError(t, err)
	g.Reset(runtimeConfig(1, 60))

	res := g.Step(frame(core.ActionHardDrop))
	assert.True(t, res.State.GameOver)
	assert.False(t, res.Locked)

	// commands after the end are ignored
	res = g.Step(frame(core.ActionHardDrop, core.ActionPause))
	assert.True(t, res.State.GameOver)
	assert.False(t, res.State.Paused)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "GAME OVER")
}

func TestDeterminism(t *testing.T) {
	g1 := newClassic(t, 12345, 60)
	g2 := newClassic(t, 12345, 60)

	script := []core.Action{
		core.ActionMoveLeft, core.ActionRotateRight, core.ActionHardDrop,
		core.ActionHold, core.ActionMoveRight, core.ActionSoftDrop,
		core.ActionRotateLeft, core.ActionHardDrop,
	}
	for i := 0; i < 600; i++ {
		in := frame()
		if i%7 == 0 {
			in.Set(script[(i/7)%len(script)])
		}
		g1.Step(in)
		g2.Step(in)
	}

	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestRender(t *testing.T) {
	g := newClassic(t, 4, 60)
	g.Step(frame(core.ActionHold))

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"HOLD", "NEXT", "SCORE", "LEVEL", "LINES"} {
		assert.Contains(t, out, want)
	}
	assert.Contains(t, out, string(blockGlyph))
	assert.Contains(t, out, string(ghostGlyph))

	g.Step(frame(core.ActionPause))
	screen.Clear()
	g.Render(screen)
	assert.Contains(t, screen.String(), "PAUSED")
}

func TestRenderTooSmall(t *testing.T) {
	g := newClassic(t, 4, 60)

	screen := core.NewScreen(30, 10)
	g.Render(screen)

	assert.True(t, strings.Contains(screen.String(), "Terminal too small"))
}

func TestTrimShape(t *testing.T) {
	cat := engine.DefaultCatalog()

	assert.Equal(t, engine.Shape{{"I", "I", "I", "I"}}, trimShape(cat["I"]))
	assert.Equal(t, engine.Shape{{"O", "O"}, {"O", "O"}}, trimShape(cat["O"]))
	assert.Equal(t, engine.Shape{{"", "T", ""}, {"T", "T", "T"}}, trimShape(cat["T"]))
	assert.Equal(t, engine.Shape{}, trimShape(engine.Shape{{"", ""}}))
}
