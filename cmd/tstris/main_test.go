package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tstris/internal/config"
	"github.com/vovakirdan/tstris/internal/registry"
)

func TestSimulateIsReproducible(t *testing.T) {
	game, err := registry.Create("classic", registry.Settings{})
	require.NoError(t, err)

	first := simulate(game, 42, 60, 5000)
	second := simulate(game, 42, 60, 5000)

	assert.Equal(t, first, second)
	assert.Positive(t, first.Steps)
}

func TestSimulateEndsGame(t *testing.T) {
	game, err := registry.Create("marathon", registry.Settings{})
	require.NoError(t, err)

	res := simulate(game, 3, 60, 500000)

	assert.True(t, res.State.GameOver)
	assert.Less(t, res.Steps, 500000)
}

func TestSimulateStopsAtMaxSteps(t *testing.T) {
	game, err := registry.Create("classic", registry.Settings{})
	require.NoError(t, err)

	res := simulate(game, 9, 60, 10)

	assert.Equal(t, 10, res.Steps)
	assert.False(t, res.State.GameOver)
}

func TestEffectiveRules(t *testing.T) {
	rules, err := effectiveRules("marathon", "", "hard")
	require.NoError(t, err)

	assert.Equal(t, 5, rules.Difficulty.StartLevel)
	assert.Equal(t, 1, rules.Queue.Size)
	assert.Equal(t, config.PolicyGuideline, rules.Difficulty.Speed)

	_, err = effectiveRules("marathon", "", "impossible")
	assert.Error(t, err)

	_, err = effectiveRules("nope", "", "")
	assert.Error(t, err)
}
