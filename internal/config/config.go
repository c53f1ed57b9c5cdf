// Package config loads the rules a tstris variant is played with from YAML
// and turns them into engine options.
package config

import "time"

// RulesConfig is the full rule set of one variant.
type RulesConfig struct {
	Board      BoardConfig            `yaml:"board"`
	Queue      QueueConfig            `yaml:"queue"`
	Hold       HoldConfig             `yaml:"hold"`
	Lock       LockConfig             `yaml:"lock"`
	Difficulty DifficultyConfig       `yaml:"difficulty"`
	Pieces     map[string]PieceConfig `yaml:"pieces"` // Empty means the standard seven
}

// BoardConfig sets the playfield.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Default is an optional starting layout, one string per row, '.' for
	// an empty cell and a piece id for a filled one.
	Default []string `yaml:"default"`
}

// QueueConfig sets the lookahead and how pieces are drawn.
type QueueConfig struct {
	Size       int    `yaml:"size"`
	Randomizer string `yaml:"randomizer"` // "uniform" or "bag"
}

// HoldConfig sets the hold slot behavior.
type HoldConfig struct {
	Enabled       bool `yaml:"enabled"`
	ResetPosition bool `yaml:"reset_position"`
}

// LockConfig sets the lock delay.
type LockConfig struct {
	PlacementCollisions int `yaml:"placement_collisions"`
}

// DifficultyConfig selects the speed, score and level curves.
type DifficultyConfig struct {
	StartLevel    int           `yaml:"start_level"`
	Speed         string        `yaml:"speed"`    // "constant" or "guideline"
	Interval      time.Duration `yaml:"interval"` // Drop interval for constant speed
	Score         string        `yaml:"score"`    // "constant" or "guideline"
	Points        int           `yaml:"points"`   // Points per lock for constant score
	Level         string        `yaml:"level"`    // "constant" or "lines"
	LinesPerLevel int           `yaml:"lines_per_level"`
}

// PieceConfig describes a custom piece.
type PieceConfig struct {
	Shape []string `yaml:"shape"` // '.' for empty, the piece id for filled
	Color string   `yaml:"color"`
}

// Policy names.
const (
	PolicyConstant  = "constant"
	PolicyGuideline = "guideline"
	PolicyLines     = "lines"

	RandomizerUniform = "uniform"
	RandomizerBag     = "bag"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// StartLevelForPreset returns the level a preset starts at. Normal and
// fixed keep the configured level and report 0.
func StartLevelForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 1
	case DifficultyHard:
		return 5
	default:
		return 0
	}
}

// IsFixedPreset returns true if the preset disables level progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
