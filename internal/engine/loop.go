package engine

// The timed loop is driven by the host: it calls Tick as often as it likes
// and the game decides whether a gravity step is due.

// Tick runs one invocation of the timed loop. It drops the piece one row
// when the level's interval has elapsed since the last effective run and
// the naturalDrop event was not prevented. It reports whether a drop ran.
func (g *Game) Tick() bool {
	if !g.loopRunning || !g.playing() {
		return false
	}
	now := g.opts.Clock()
	if !g.lastLoopRun.IsZero() && now.Sub(g.lastLoopRun) < g.opts.Speed(g.level) {
		return false
	}
	if g.events.Dispatch(NaturalDrop{Cell: true}) {
		return false
	}

	ended := g.player.drop(g.board)
	g.updateBoard()
	if ended {
		g.End(false)
		return true
	}
	g.lastLoopRun = now
	return true
}

// Pause suspends gravity and player commands.
func (g *Game) Pause() {
	if g.status != StatusPlaying {
		return
	}
	g.setStatus(StatusPaused)
}

// Resume continues a paused game. The gravity timer restarts from now.
func (g *Game) Resume() {
	if g.status != StatusPaused {
		return
	}
	g.setStatus(StatusPlaying)
	g.resetLoop()
}

func (g *Game) startLoop() {
	if g.loopRunning {
		return
	}
	g.loopRunning = true
	g.lastLoopRun = g.opts.Clock()
}

func (g *Game) stopLoop() {
	g.loopRunning = false
}

func (g *Game) resetLoop() {
	g.lastLoopRun = g.opts.Clock()
}
