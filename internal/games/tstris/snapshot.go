package tstris

import "github.com/vovakirdan/tstris/internal/engine"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Variant string
	engine.Snapshot
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.tick,
		Variant:  g.id,
		Snapshot: g.eng.Snapshot(),
	}
}
