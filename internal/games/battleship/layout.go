package battleship

import (
	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship/sea"
)

const (
	hudHeight     = 2 // Title and status lines
	buttonsHeight = 2 // Blank line and the button row
	footerHeight  = 1 // Key help
	buttonGap     = 2
)

// Button is a clickable label below the grid.
type Button struct {
	Label  string
	Action core.Action
	Rect   core.Rect
}

// setupButtons lists the buttons shown during setup, left to right.
var setupButtons = []struct {
	label  string
	action core.Action
}{
	{"[+ROW]", core.ActionAddRow},
	{"[-ROW]", core.ActionDelRow},
	{"[+COL]", core.ActionAddCol},
	{"[-COL]", core.ActionDelCol},
	{"[START]", core.ActionStart},
}

// Layout maps grid cells to screen cells.
//
// Every tile is cellWidth characters wide and owns the one-character gap to
// its left, which is where the cursor brackets are drawn. Rows are one line
// high.
type Layout struct {
	Cols, Rows int
	CellWidth  int

	// Frame is the box drawn around the grid.
	Frame core.Rect
	// Grid is the area covered by tiles and their gaps.
	Grid    core.Rect
	Buttons []Button

	// Required is the smallest screen the layout fits on.
	Required core.Rect
}

// ComputeLayout centers a cols x rows grid on a screenW x screenH screen.
func ComputeLayout(screenW, screenH, cols, rows, cellWidth int) Layout {
	cellWidth = max(1, cellWidth)
	pitch := cellWidth + 1

	gridW := cols*pitch + 1
	frameW := gridW + 2
	frameH := rows + 2

	buttonsW := 0
	for i, b := range setupButtons {
		if i > 0 {
			buttonsW += buttonGap
		}
		buttonsW += len(b.label)
	}

	requiredW := max(frameW, buttonsW)
	requiredH := hudHeight + frameH + buttonsHeight + footerHeight

	offsetY := max(0, (screenH-requiredH)/2)
	frame := core.NewRect((screenW-frameW)/2, hudHeight+offsetY, frameW, frameH)

	l := Layout{
		Cols:      cols,
		Rows:      rows,
		CellWidth: cellWidth,
		Frame:     frame,
		Grid:      core.NewRect(frame.X+1, frame.Y+1, gridW, rows),
		Required:  core.NewRect(0, 0, requiredW, requiredH),
	}

	x := (screenW - buttonsW) / 2
	y := frame.Bottom() + 1
	for _, b := range setupButtons {
		l.Buttons = append(l.Buttons, Button{
			Label:  b.label,
			Action: b.action,
			Rect:   core.NewRect(x, y, len(b.label), 1),
		})
		x += len(b.label) + buttonGap
	}

	return l
}

// Fits returns true if the whole layout is visible on the screen.
func (l Layout) Fits(screenW, screenH int) bool {
	return l.Required.W <= screenW && l.Required.H <= screenH
}

// pitch is the horizontal distance between two tiles.
func (l Layout) pitch() int {
	return l.CellWidth + 1
}

// CellAt converts a screen position to a grid position.
// The gap left of a tile belongs to that tile; the trailing gap belongs to none.
func (l Layout) CellAt(sx, sy int) (sea.Coord, bool) {
	rel := sx - l.Grid.X
	if rel < 0 || rel >= l.Cols*l.pitch() || sy < l.Grid.Y || sy >= l.Grid.Bottom() {
		return sea.Coord{}, false
	}
	return sea.C(rel/l.pitch(), sy-l.Grid.Y), true
}

// TileOrigin returns the screen position of the first character of a tile.
func (l Layout) TileOrigin(c sea.Coord) (x, y int) {
	return l.Grid.X + c.X*l.pitch() + 1, l.Grid.Y + c.Y
}

// ButtonAt returns the button under a screen position.
func (l Layout) ButtonAt(sx, sy int) (Button, bool) {
	for _, b := range l.Buttons {
		if b.Rect.Contains(sx, sy) {
			return b, true
		}
	}
	return Button{}, false
}

// FooterY is the line the key help is drawn on.
func (l Layout) FooterY() int {
	return l.Frame.Bottom() + buttonsHeight
}
