package engine

import (
	"math"
	"time"
)

// SpeedPolicy returns the natural-drop interval for a level.
type SpeedPolicy func(level int) time.Duration

// ScoreInput is passed to the score policy after every lock.
type ScoreInput struct {
	RowsCleared int
	Level       int
	TSpin       bool
}

// ScorePolicy returns the points earned by one placement.
type ScorePolicy func(in ScoreInput) int

// LevelInput is passed to the level policy after every lock.
type LevelInput struct {
	TotalRowsCleared int
	CurrLevel        int
}

// LevelPolicy returns the level the game should be at.
type LevelPolicy func(in LevelInput) int

// DefaultSpeed drops one row every 500ms regardless of level.
func DefaultSpeed(int) time.Duration {
	return 500 * time.Millisecond
}

// DefaultScore awards 10 points for every locked piece, cleared rows or not.
func DefaultScore(ScoreInput) int {
	return 10
}

// DefaultLevel keeps the current level.
func DefaultLevel(in LevelInput) int {
	return in.CurrLevel
}

// ConstantSpeed returns a policy with the same interval at every level.
func ConstantSpeed(d time.Duration) SpeedPolicy {
	return func(int) time.Duration { return d }
}

// ConstantScore returns a policy awarding the same points for every lock.
func ConstantScore(points int) ScorePolicy {
	return func(ScoreInput) int { return points }
}

// GuidelineSpeed follows the marathon gravity curve:
// (0.8 - (level-1)*0.007)^(level-1) seconds per row, level clamped to 1..20.
func GuidelineSpeed(level int) time.Duration {
	switch {
	case level < 1:
		level = 1
	case level > 20:
		level = 20
	}
	seconds := math.Pow(0.8-float64(level-1)*0.007, float64(level-1))
	return time.Duration(seconds * float64(time.Second))
}

// GuidelineScore awards 100/300/500/800 points for 1-4 rows, times the level.
// Clears of more than four rows score as four.
func GuidelineScore(in ScoreInput) int {
	base := [...]int{0, 100, 300, 500, 800}
	rows := in.RowsCleared
	if rows < 0 {
		rows = 0
	}
	if rows >= len(base) {
		rows = len(base) - 1
	}
	level := in.Level
	if level < 1 {
		level = 1
	}
	return base[rows] * level
}

// LevelEvery returns a policy that advances one level per n cleared rows,
// never going below the current level.
func LevelEvery(n int, startLevel int) LevelPolicy {
	if n <= 0 {
		n = 10
	}
	return func(in LevelInput) int {
		level := startLevel + in.TotalRowsCleared/n
		if level < in.CurrLevel {
			return in.CurrLevel
		}
		return level
	}
}
