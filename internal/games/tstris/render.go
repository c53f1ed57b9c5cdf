package tstris

import (
	"fmt"

	"github.com/vovakirdan/tstris/internal/core"
	"github.com/vovakirdan/tstris/internal/engine"
)

// Layout constants, in screen cells.
const (
	cellW     = 2  // each board cell is drawn two characters wide
	panelW    = 12 // hold and stats panel
	queueW    = 12 // next queue panel
	panelGap  = 1
	holdBoxH  = 4
	statsRows = 9
)

const (
	blockGlyph = '█'
	ghostGlyph = '░'
	emptyGlyph = '·'
)

// layout is where each part of the frame lands on the screen.
type layout struct {
	board core.Rect // frame around the playfield
	hold  core.Rect
	stats core.Rect
	queue core.Rect
}

func (g *Game) layout(sw, sh int) (layout, bool) {
	opts := g.eng.Options()
	boardW := opts.Width*cellW + 2
	boardH := opts.Height + 2
	totalW := panelW + panelGap + boardW + panelGap + queueW
	if sw < totalW || sh < boardH {
		return layout{}, false
	}

	ox := (sw - totalW) / 2
	oy := (sh - boardH) / 2
	bx := ox + panelW + panelGap

	queueH := core.Clamp(2+opts.NextQueueSize*3, 3, boardH)
	return layout{
		board: core.NewRect(bx, oy, boardW, boardH),
		hold:  core.NewRect(ox, oy, panelW, holdBoxH),
		stats: core.NewRect(ox, oy+holdBoxH+1, panelW, statsRows),
		queue: core.NewRect(bx+boardW+panelGap, oy, queueW, queueH),
	}, true
}

// Render draws the board, ghost piece, hold slot, queue and HUD.
func (g *Game) Render(dst *core.Screen) {
	if g.eng == nil {
		return
	}
	l, ok := g.layout(dst.Width(), dst.Height())
	if !ok {
		opts := g.eng.Options()
		dst.DrawTextCentered(dst.Height()/2-1, "Terminal too small", core.ColorWhite)
		dst.DrawTextCentered(dst.Height()/2+1,
			fmt.Sprintf("need at least %dx%d", panelW+queueW+2*panelGap+opts.Width*cellW+2, opts.Height+2),
			core.ColorDim)
		return
	}

	g.drawBoard(dst, l.board)
	g.drawHold(dst, l.hold)
	g.drawStats(dst, l.stats)
	g.drawQueue(dst, l.queue)
	g.drawOverlay(dst, l.board)
}

func (g *Game) drawBoard(dst *core.Screen, frame core.Rect) {
	dst.DrawBox(frame, core.ColorGray)
	inner := frame.Inset(1)

	board := g.eng.Board()
	for y, row := range board {
		for x, cell := range row {
			if cell == engine.Empty {
				g.drawCell(dst, inner, x, y, emptyGlyph, core.ColorDim)
				continue
			}
			g.drawCell(dst, inner, x, y, blockGlyph, g.colorOf(cell))
		}
	}

	if g.eng.Status() == engine.StatusEnded {
		return
	}
	piece, pos := g.eng.Current()
	if piece.IsZero() {
		return
	}

	ghostY := g.eng.GhostY()
	if ghostY != pos.Y {
		g.drawShape(dst, inner, piece.Shape, pos.X, ghostY, func(engine.Cell) (rune, core.Color) {
			return ghostGlyph, core.ColorGray
		})
	}
	g.drawShape(dst, inner, piece.Shape, pos.X, pos.Y, func(c engine.Cell) (rune, core.Color) {
		return blockGlyph, g.colorOf(c)
	})
}

// drawShape draws the filled cells of a shape at board coordinates,
// skipping cells above the visible board.
func (g *Game) drawShape(dst *core.Screen, inner core.Rect, shape engine.Shape, px, py int,
	style func(engine.Cell) (rune, core.Color)) {
	for y, row := range shape {
		for x, cell := range row {
			if cell == engine.Empty || py+y < 0 {
				continue
			}
			r, c := style(cell)
			g.drawCell(dst, inner, px+x, py+y, r, c)
		}
	}
}

func (g *Game) drawCell(dst *core.Screen, inner core.Rect, x, y int, r rune, c core.Color) {
	sx := inner.X + x*cellW
	sy := inner.Y + y
	if r == emptyGlyph {
		dst.SetCell(sx, sy, ' ', c)
		dst.SetCell(sx+1, sy, r, c)
		return
	}
	for i := 0; i < cellW; i++ {
		dst.SetCell(sx+i, sy, r, c)
	}
}

func (g *Game) drawHold(dst *core.Screen, box core.Rect) {
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextColor(box.X+2, box.Y, " HOLD ", core.ColorWhite)

	if !g.eng.Options().Hold {
		dst.DrawTextColor(box.X+2, box.Y+1, "off", core.ColorDim)
		return
	}
	held := g.eng.Held()
	if held == engine.Empty {
		return
	}
	color := g.colorOf(held)
	if g.eng.HoldUsed() {
		color = core.ColorGray
	}
	g.drawPreview(dst, box.X+2, box.Y+1, held, color)
}

func (g *Game) drawQueue(dst *core.Screen, box core.Rect) {
	dst.DrawBox(box, core.ColorGray)
	dst.DrawTextColor(box.X+2, box.Y, " NEXT ", core.ColorWhite)

	y := box.Y + 1
	for _, t := range g.eng.Queue() {
		if y+2 > box.Bottom()-1 {
			break
		}
		g.drawPreview(dst, box.X+2, y, t, g.colorOf(t))
		y += 3
	}
}

// drawPreview draws a catalog piece with its empty border rows and columns
// trimmed, so every piece fits a small panel.
func (g *Game) drawPreview(dst *core.Screen, x, y int, t engine.Cell, c core.Color) {
	shape := trimShape(g.eng.Options().Pieces[t])
	for dy, row := range shape {
		for dx, cell := range row {
			if cell == engine.Empty {
				continue
			}
			for i := 0; i < cellW; i++ {
				dst.SetCell(x+dx*cellW+i, y+dy, blockGlyph, c)
			}
		}
	}
}

func (g *Game) drawStats(dst *core.Screen, box core.Rect) {
	state := g.State()
	lines := []struct {
		label string
		value int
	}{
		{"SCORE", state.Score},
		{"LEVEL", state.Level},
		{"LINES", state.Lines},
	}
	y := box.Y
	for _, l := range lines {
		dst.DrawTextColor(box.X, y, l.label, core.ColorDim)
		dst.DrawTextColor(box.X, y+1, fmt.Sprintf("%d", l.value), core.ColorWhite)
		y += 3
	}

	if g.banner != "" && g.tick < g.bannerUntil {
		dst.DrawTextColor(box.X, y, g.banner, core.ColorYellow)
	}
}

func (g *Game) drawOverlay(dst *core.Screen, frame core.Rect) {
	var title, hint string
	switch g.eng.Status() {
	case engine.StatusPaused:
		title, hint = "PAUSED", "P to resume"
	case engine.StatusEnded:
		title, hint = "GAME OVER", "R restart"
	default:
		return
	}
	cy := frame.Y + frame.H/2
	drawCenteredIn(dst, frame, cy-1, title, core.ColorWhite)
	drawCenteredIn(dst, frame, cy+1, hint, core.ColorDim)
}

func drawCenteredIn(dst *core.Screen, r core.Rect, y int, text string, c core.Color) {
	x := r.X + (r.W-len([]rune(text)))/2
	dst.DrawTextColor(x, y, text, c)
}

func (g *Game) colorOf(c engine.Cell) core.Color {
	if color, ok := g.colors[c]; ok {
		return color
	}
	return core.ColorWhite
}

// trimShape drops empty rows and columns around the filled cells.
func trimShape(s engine.Shape) engine.Shape {
	top, bottom, left, right := len(s), -1, -1, -1
	for y, row := range s {
		for x, cell := range row {
			if cell == engine.Empty {
				continue
			}
			top = core.Min(top, y)
			bottom = core.Max(bottom, y)
			if left < 0 || x < left {
				left = x
			}
			right = core.Max(right, x)
		}
	}
	if bottom < 0 {
		return engine.Shape{}
	}
	out := make(engine.Shape, 0, bottom-top+1)
	for y := top; y <= bottom; y++ {
		out = append(out, append([]engine.Cell(nil), s[y][left:right+1]...))
	}
	return out
}
