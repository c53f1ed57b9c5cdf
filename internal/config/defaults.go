package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/classic.yaml
var defaultClassicYAML []byte

//go:embed defaults/marathon.yaml
var defaultMarathonYAML []byte

// DefaultRulesConfig returns the classic rules: a 10x20 board, three
// pieces of lookahead, hold with recentering, a lock delay of three
// blocked drops, 500ms gravity and 10 points per lock.
func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
		},
		Queue: QueueConfig{
			Size:       3,
			Randomizer: RandomizerUniform,
		},
		Hold: HoldConfig{
			Enabled:       true,
			ResetPosition: true,
		},
		Lock: LockConfig{
			PlacementCollisions: 3,
		},
		Difficulty: DifficultyConfig{
			StartLevel:    1,
			Speed:         PolicyConstant,
			Interval:      500 * time.Millisecond,
			Score:         PolicyConstant,
			Points:        10,
			Level:         PolicyConstant,
			LinesPerLevel: 10,
		},
	}
}

// DefaultMarathonConfig returns the marathon rules: guideline gravity and
// scoring, a level every ten lines and the 7-bag randomizer.
func DefaultMarathonConfig() RulesConfig {
	cfg := DefaultRulesConfig()
	cfg.Queue.Size = 5
	cfg.Queue.Randomizer = RandomizerBag
	cfg.Difficulty.Speed = PolicyGuideline
	cfg.Difficulty.Score = PolicyGuideline
	cfg.Difficulty.Level = PolicyLines
	return cfg
}

// GetDefaultYAML returns the embedded default YAML for a variant.
func GetDefaultYAML(variant string) []byte {
	switch variant {
	case "classic":
		return defaultClassicYAML
	case "marathon":
		return defaultMarathonYAML
	default:
		return nil
	}
}

// defaultFor returns the hard-coded rules for a variant.
func defaultFor(variant string) RulesConfig {
	if variant == "marathon" {
		return DefaultMarathonConfig()
	}
	return DefaultRulesConfig()
}
