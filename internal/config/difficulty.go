package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tstris/internal/engine"
)

// ApplyPreset modifies the rules based on a difficulty preset.
func ApplyPreset(cfg *RulesConfig, preset DifficultyPreset) {
	// Fixed keeps the file's rules but never levels up
	if IsFixedPreset(preset) {
		cfg.Difficulty.Level = PolicyConstant
		return
	}
	// Starting level
	if lvl := StartLevelForPreset(preset); lvl > 0 {
		cfg.Difficulty.StartLevel = lvl
	}

	// Adjust forgiveness based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Lock.PlacementCollisions = 5
		cfg.Queue.Size = 5
	case DifficultyHard:
		cfg.Lock.PlacementCollisions = 2
		cfg.Queue.Size = 1
	}
}

// ParsePreset resolves a preset name. An empty name means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q", name)
	}
}

// SpeedPolicy resolves the configured gravity curve.
func (d DifficultyConfig) SpeedPolicy() (engine.SpeedPolicy, error) {
	switch d.Speed {
	case "", PolicyConstant:
		// Zero interval falls back to the classic 500ms
		interval := d.Interval
		if interval <= 0 {
			interval = 500 * time.Millisecond
		}
		return engine.ConstantSpeed(interval), nil
	case PolicyGuideline:
		return engine.GuidelineSpeed, nil
	default:
		return nil, fmt.Errorf("config: unknown speed policy %q", d.Speed)
	}
}

// ScorePolicy resolves the configured scoring.
func (d DifficultyConfig) ScorePolicy() (engine.ScorePolicy, error) {
	switch d.Score {
	case "", PolicyConstant:
		return engine.ConstantScore(d.Points), nil
	case PolicyGuideline:
		return engine.GuidelineScore, nil
	default:
		return nil, fmt.Errorf("config: unknown score policy %q", d.Score)
	}
}

// LevelPolicy resolves the configured level progression.
func (d DifficultyConfig) LevelPolicy() (engine.LevelPolicy, error) {
	switch d.Level {
	case "", PolicyConstant:
		return engine.DefaultLevel, nil
	case PolicyLines, "every_10": // every_10 is the older name
		return engine.LevelEvery(d.LinesPerLevel, d.StartLevel), nil
	default:
		return nil, fmt.Errorf("config: unknown level policy %q", d.Level)
	}
}
