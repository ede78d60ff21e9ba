package blockfall

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/tetris"
)

// Visual characters for rendering. Every grid cell is two columns wide so
// the field looks square in a terminal.
const (
	blockGlyph = "██"
	ghostGlyph = "░░"
	emptyGlyph = " ·"

	sideW = 14 // width of the hold and next panels
	gap   = 1
)

var pieceColors = map[tetris.Type]core.Color{
	tetris.TypeI: core.ColorCyan,
	tetris.TypeO: core.ColorYellow,
	tetris.TypeT: core.ColorMagenta,
	tetris.TypeS: core.ColorGreen,
	tetris.TypeZ: core.ColorRed,
	tetris.TypeJ: core.ColorBlue,
	tetris.TypeL: core.ColorOrange,
}

// PieceColor returns the screen color for a piece type.
func PieceColor(t tetris.Type) core.Color {
	if c, ok := pieceColors[t]; ok {
		return c
	}
	return core.ColorWhite
}

// layout is the screen placement of every panel, computed per frame so a
// resized terminal re-centers the game.
type layout struct {
	board    core.Rect
	hold     core.Rect
	next     core.Rect
	statsX   int
	statsY   int
	helpY    int
	bannerY  int
	tooSmall bool
	minW     int
	minH     int
}

func (g *Game) layout(w, h int) layout {
	r := g.session.Rules()
	boardW := r.Width*2 + 2
	boardH := r.Visible + 2

	var l layout
	l.minW = sideW + gap + boardW + gap + sideW
	l.minH = boardH + 1
	if w < l.minW || h < l.minH {
		l.tooSmall = true
		return l
	}

	x := (w - l.minW) / 2
	y := (h - l.minH) / 2
	l.hold = core.NewRect(x, y, sideW, 6)
	l.board = core.NewRect(x+sideW+gap, y, boardW, boardH)
	l.next = core.NewRect(l.board.Right()+gap, y, sideW, r.QueueSize*3+2)
	l.statsX = l.next.X + 1
	l.statsY = l.next.Bottom() + 1
	l.helpY = l.hold.Bottom() + 1
	l.bannerY = l.board.Bottom()
	return l
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	l := g.layout(dst.Width(), dst.Height())
	if l.tooSmall {
		mid := dst.Height() / 2
		dst.DrawTextCentered(mid-1, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(mid, fmt.Sprintf("Need %dx%d", l.minW, l.minH), core.ColorGray)
		return
	}

	g.drawBoard(dst, l)
	g.drawHold(dst, l)
	g.drawNext(dst, l)
	g.drawStats(dst, l)
	drawHelp(dst, l)

	if g.banner != "" && g.bannerTicks > 0 {
		dst.DrawTextCentered(l.bannerY, g.banner, g.bannerColor)
	}

	switch g.session.Status() {
	case tetris.StatusPaused:
		drawOverlay(dst, l.board, "PAUSED", "P to resume")
	case tetris.StatusGameOver:
		drawOverlay(dst, l.board, "GAME OVER", "R to restart")
	}
}

// cellPos converts a grid cell to a screen position; ok is false for
// hidden rows.
func cellPos(l layout, hidden, x, y int) (sx, sy int, ok bool) {
	if y < hidden {
		return 0, 0, false
	}
	return l.board.X + 1 + x*2, l.board.Y + 1 + y - hidden, true
}

func (g *Game) drawBoard(dst *core.Screen, l layout) {
	grid := g.session.Grid()
	hidden := grid.Hidden()
	dst.DrawBox(l.board, core.ColorGray)

	for y := hidden; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			sx, sy, _ := cellPos(l, hidden, x, y)
			c, _ := grid.Cell(x, y)
			if c == tetris.Empty {
				dst.DrawTextColored(sx, sy, emptyGlyph, core.ColorGray)
				continue
			}
			dst.DrawTextColored(sx, sy, blockGlyph, PieceColor(tetris.Type(c)))
		}
	}

	if g.session.Status() == tetris.StatusGameOver {
		return
	}
	active, ok := g.session.Active()
	if !ok {
		return
	}
	color := PieceColor(active.Type)

	if ghost, ok := g.session.Ghost(); ok && ghost.Y != active.Y {
		for _, c := range ghost.Cells() {
			if sx, sy, ok := cellPos(l, hidden, c.X, c.Y); ok {
				dst.DrawTextColored(sx, sy, ghostGlyph, color)
			}
		}
	}
	for _, c := range active.Cells() {
		if sx, sy, ok := cellPos(l, hidden, c.X, c.Y); ok {
			dst.DrawTextColored(sx, sy, blockGlyph, color)
		}
	}
}

func (g *Game) drawHold(dst *core.Screen, l layout) {
	color := core.ColorGray
	if g.session.CanHold() {
		color = core.ColorWhite
	}
	drawPanel(dst, l.hold, "HOLD", color)
	if t, ok := g.session.Held(); ok {
		pc := PieceColor(t)
		if !g.session.CanHold() {
			pc = core.ColorGray
		}
		drawMini(dst, t, l.hold.X+2, l.hold.Y+2, pc)
	}
}

func (g *Game) drawNext(dst *core.Screen, l layout) {
	drawPanel(dst, l.next, "NEXT", core.ColorWhite)
	for i, t := range g.session.Queue() {
		drawMini(dst, t, l.next.X+2, l.next.Y+1+i*3, PieceColor(t))
	}
}

func (g *Game) drawStats(dst *core.Screen, l layout) {
	s := g.session
	x, y := l.statsX, l.statsY
	dst.DrawTextColored(x, y, "SCORE", core.ColorGray)
	dst.DrawTextColored(x, y+1, fmt.Sprintf("%d", s.Score()), core.ColorBrightWhite)
	dst.DrawTextColored(x, y+2, "HIGH", core.ColorGray)
	dst.DrawTextColored(x, y+3, fmt.Sprintf("%d", s.HighScore()), core.ColorBrightYellow)
	dst.DrawText(x, y+4, fmt.Sprintf("LEVEL %5d", s.Level()))
	dst.DrawText(x, y+5, fmt.Sprintf("LINES %5d", s.Lines()))
	dst.DrawText(x, y+6, fmt.Sprintf("COMBO %5d", s.Combo()))
	if s.Muted() {
		dst.DrawTextColored(x, y+7, "MUTED", core.ColorGray)
	}
}

var helpLines = []string{
	"←→  move",
	"↓   soft drop",
	"↑ x rotate",
	"z   rotate ccw",
	"spc hard drop",
	"c   hold",
	"p   pause",
	"m   mute",
}

func drawHelp(dst *core.Screen, l layout) {
	for i, line := range helpLines {
		dst.DrawTextColored(l.hold.X, l.helpY+i, line, core.ColorGray)
	}
}

func drawPanel(dst *core.Screen, r core.Rect, title string, c core.Color) {
	dst.DrawBox(r, c)
	dst.DrawTextColored(r.X+2, r.Y, " "+title+" ", c)
}

// drawMini draws the spawn orientation of t with its top-left occupied
// row at (x, y).
func drawMini(dst *core.Screen, t tetris.Type, x, y int, c core.Color) {
	shape := tetris.Lookup(t).Shapes[0]
	row := 0
	for _, cells := range shape {
		filled := false
		for col, on := range cells {
			if on {
				dst.DrawTextColored(x+col*2, y+row, blockGlyph, c)
				filled = true
			}
		}
		if filled {
			row++
		}
	}
}

func drawOverlay(dst *core.Screen, board core.Rect, title, hint string) {
	w := min(board.W-2, 18)
	h := 5
	box := core.NewRect(board.X+(board.W-w)/2, board.Y+(board.H-h)/2, w, h)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	drawCentered(dst, box, box.Y+1, title, core.ColorBrightWhite)
	drawCentered(dst, box, box.Y+3, hint, core.ColorGray)
}

func drawCentered(dst *core.Screen, r core.Rect, y int, text string, c core.Color) {
	n := len([]rune(text))
	dst.DrawTextColored(r.X+(r.W-n)/2, y, text, c)
}
