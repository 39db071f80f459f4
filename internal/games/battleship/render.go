package battleship

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship/sea"
)

const (
	glyphHidden  = '░'
	glyphWater   = '~'
	glyphBoat    = '█'
	glyphHit     = '▓'
	glyphPreview = '▒'
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	dst.DrawBox(g.layout.Frame, core.ColorNavy)
	g.renderTiles(dst)

	switch g.phase {
	case PhaseSetup:
		g.renderPreview(dst)
		g.renderCursor(dst)
		g.renderButtons(dst)
	case PhasePlaying:
		g.renderCursor(dst)
	case PhaseFinished:
		g.renderFinished(dst)
	}

	g.renderFooter(dst)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	need := fmt.Sprintf("Need %dx%d", g.layout.Required.W, g.layout.Required.H)
	dst.DrawTextCentered(y+1, need)
}

// renderHUD draws the title, round info and status line.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, "BATTLESHIP", core.ColorBrightCyan)

	w, h := g.board.Size()
	var info string
	switch g.phase {
	case PhaseSetup:
		info = fmt.Sprintf("%s  %dx%d  Boats: %d", g.phase, w, h, g.board.BoatCount())
	case PhasePlaying:
		info = fmt.Sprintf("%s  Guesses: %d  Sunk: %d/%d", g.phase, g.guesses, g.sunk(), g.board.BoatCount())
		if g.peek {
			info += "  PEEK"
		}
	case PhaseFinished:
		info = fmt.Sprintf("%s  Guesses: %d", g.phase, g.guesses)
	}
	dst.DrawText(max(0, g.screenW-len(info)-1), 0, info)

	dst.DrawTextColored(1, 1, g.status, core.ColorGray)
}

// boatColors assigns palette colors by position in sorted id order.
func (g *Game) boatColors() map[sea.BoatID]core.Color {
	ids := g.board.BoatIDs()
	colors := make(map[sea.BoatID]core.Color, len(ids))
	for i, id := range ids {
		colors[id] = g.opts.Palette[i%len(g.opts.Palette)]
	}
	return colors
}

// tileLook returns how a tile is drawn.
// Boats are shown in setup, while peeking, and once fully sunk. A hit on a
// boat that is still afloat is white; unrevealed tiles are gray.
func (g *Game) tileLook(t sea.Tile, colors map[sea.BoatID]core.Color) (rune, core.Color) {
	reveal := g.phase == PhaseSetup || g.peek
	id, occupied := t.BoatID()

	switch {
	case !reveal && !t.IsVisible():
		return glyphHidden, core.ColorGray
	case !occupied:
		return glyphWater, core.ColorBlue
	case reveal || g.boatSunk(id):
		return glyphBoat, colors[id]
	default:
		return glyphHit, core.ColorBrightWhite
	}
}

// renderTiles draws every tile of the board.
func (g *Game) renderTiles(dst *core.Screen) {
	colors := g.boatColors()
	for y, row := range g.board.Grid() {
		for x, t := range row {
			r, c := g.tileLook(t, colors)
			g.fillTile(dst, sea.C(x, y), r, c)
		}
	}
}

func (g *Game) fillTile(dst *core.Screen, c sea.Coord, r rune, color core.Color) {
	sx, sy := g.layout.TileOrigin(c)
	for i, n := 0, g.layout.CellWidth; i < n; i++ {
		dst.SetColored(sx+i, sy, r, color)
	}
}

// renderPreview shows where the dragged boat would land.
func (g *Game) renderPreview(dst *core.Screen) {
	if !g.anchored {
		return
	}
	color := g.opts.Palette[g.board.BoatCount()%len(g.opts.Palette)]
	for _, c := range sea.ResolveLine(g.anchor, g.hover) {
		if g.board.InBounds(c.X, c.Y) {
			g.fillTile(dst, c, glyphPreview, color)
		}
	}
}

// renderCursor draws brackets in the gaps around the cursor tile.
func (g *Game) renderCursor(dst *core.Screen) {
	sx, sy := g.layout.TileOrigin(g.cursor)
	dst.SetColored(sx-1, sy, '[', core.ColorBrightYellow)
	dst.SetColored(sx+g.layout.CellWidth, sy, ']', core.ColorBrightYellow)
}

// buttonEnabled reports whether a setup button would do anything.
func (g *Game) buttonEnabled(a core.Action) bool {
	w, h := g.board.Size()
	switch a {
	case core.ActionAddRow:
		return g.canAddRow()
	case core.ActionDelRow:
		return h > 1
	case core.ActionAddCol:
		return g.canAddCol()
	case core.ActionDelCol:
		return w > 1
	case core.ActionStart:
		return g.board.BoatCount() > 0
	default:
		return false
	}
}

// renderButtons draws the setup buttons, graying out disabled ones.
func (g *Game) renderButtons(dst *core.Screen) {
	for _, b := range g.layout.Buttons {
		color := core.ColorWhite
		switch {
		case !g.buttonEnabled(b.Action):
			color = core.ColorGray
		case b.Action == core.ActionStart:
			color = core.ColorBrightGreen
		}
		dst.DrawTextColored(b.Rect.X, b.Rect.Y, b.Label, color)
	}
}

// renderFinished draws the "fleet found" box over the board.
func (g *Game) renderFinished(dst *core.Screen) {
	lines := []string{
		"FLEET FOUND",
		fmt.Sprintf("%d guesses", g.guesses),
	}
	if !g.Lingering() {
		lines = append(lines, "R to play again")
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	box := core.NewRect(0, 0, width+4, len(lines)+2)
	box.X = (g.screenW - box.W) / 2
	box.Y = g.layout.Frame.Y + (g.layout.Frame.H-box.H)/2

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightGreen)
	for i, l := range lines {
		color := core.ColorDefault
		if i == 0 {
			color = core.ColorBrightGreen
		}
		dst.DrawTextColored(box.X+(box.W-len(l))/2, box.Y+1+i, l, color)
	}
}

// footerHelp is the key help for each phase.
var footerHelp = map[Phase][]string{
	PhaseSetup:    {"arrows move", "space place/remove", "+/- rows", "[/] cols", "s start", "q quit"},
	PhasePlaying:  {"arrows move", "space guess", "v peek", "p dump", "q quit"},
	PhaseFinished: {"r restart", "p dump", "q quit"},
}

// renderFooter draws the key help below the buttons.
func (g *Game) renderFooter(dst *core.Screen) {
	help := strings.Join(footerHelp[g.phase], " • ")
	dst.DrawTextCenteredColored(g.layout.FooterY(), help, core.ColorGray)
}
