package battleship

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship/sea"
)

// cursorDelta returns the cursor movement requested by the frame.
func cursorDelta(in core.InputFrame) (dx, dy int) {
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}
	return dx, dy
}

// moveCursor moves the cursor, staying on the board.
func (g *Game) moveCursor(dx, dy int) {
	w, h := g.board.Size()
	g.cursor = sea.C(
		core.Clamp(g.cursor.X+dx, 0, w-1),
		core.Clamp(g.cursor.Y+dy, 0, h-1),
	)
	if g.anchored {
		g.hover = g.cursor
	}
}

// clampCursor pulls the cursor back on the board after it shrank and drops a
// drag whose anchor fell off.
func (g *Game) clampCursor() {
	g.moveCursor(0, 0)
	if g.anchored && !g.board.InBounds(g.anchor.X, g.anchor.Y) {
		g.cancelDrag()
	}
}

// boatAt returns the boat occupying c.
func (g *Game) boatAt(c sea.Coord) (sea.BoatID, bool) {
	tile, err := g.board.TileAt(c.X, c.Y)
	if err != nil {
		return 0, false
	}
	return tile.BoatID()
}

func (g *Game) startDrag(c sea.Coord) {
	g.anchor = c
	g.hover = c
	g.anchored = true
}

func (g *Game) cancelDrag() {
	g.anchored = false
	g.anchor = sea.Coord{}
	g.hover = sea.Coord{}
}

// stepSetup applies setup input: pointer events first, then keys.
func (g *Game) stepSetup(in core.InputFrame) error {
	var errs []error
	for _, p := range in.Pointer {
		errs = append(errs, g.setupPointer(p))
		if g.phase != PhaseSetup {
			return errors.Join(errs...)
		}
	}

	if dx, dy := cursorDelta(in); dx != 0 || dy != 0 {
		g.moveCursor(dx, dy)
	}

	if in.Has(core.ActionBack) && g.anchored {
		g.cancelDrag()
		g.status = "Placement cancelled"
	}
	if in.Has(core.ActionDelete) {
		errs = append(errs, g.removeBoatAt(g.cursor))
	}
	if in.Has(core.ActionSelect) {
		errs = append(errs, g.selectCell(g.cursor))
	}

	for _, a := range []core.Action{
		core.ActionAddRow, core.ActionDelRow,
		core.ActionAddCol, core.ActionDelCol,
		core.ActionStart,
	} {
		if in.Has(a) {
			errs = append(errs, g.setupAction(a))
		}
	}

	return errors.Join(errs...)
}

// setupPointer handles one mouse event during setup.
// A press on a boat removes it, a press on water anchors a drag, and the
// release places the boat from the anchor to the released cell.
func (g *Game) setupPointer(p core.PointerEvent) error {
	switch p.Kind {
	case core.PointerPress:
		if b, ok := g.layout.ButtonAt(p.X, p.Y); ok {
			return g.setupAction(b.Action)
		}
		c, ok := g.layout.CellAt(p.X, p.Y)
		if !ok {
			return nil
		}
		g.cursor = c
		if _, occupied := g.boatAt(c); occupied {
			g.cancelDrag()
			return g.removeBoatAt(c)
		}
		g.startDrag(c)

	case core.PointerMotion:
		if c, ok := g.layout.CellAt(p.X, p.Y); ok {
			g.cursor = c
			if g.anchored {
				g.hover = c
			}
		}

	case core.PointerRelease:
		if !g.anchored {
			return nil
		}
		c, ok := g.layout.CellAt(p.X, p.Y)
		if !ok {
			g.cancelDrag()
			g.status = "Placement cancelled"
			return nil
		}
		g.cursor = c
		return g.placeTo(c)
	}
	return nil
}

// selectCell is the keyboard counterpart of press and release.
func (g *Game) selectCell(c sea.Coord) error {
	if g.anchored {
		return g.placeTo(c)
	}
	if _, occupied := g.boatAt(c); occupied {
		return g.removeBoatAt(c)
	}
	g.startDrag(c)
	g.status = fmt.Sprintf("Anchored at %v, move and press space to place", c)
	return nil
}

// placeTo ends the drag by placing a boat from the anchor to c.
func (g *Game) placeTo(c sea.Coord) error {
	start := g.anchor
	g.cancelDrag()

	before := g.board.BoatCount()
	id, err := sea.PlaceBoat(g.board, start, c)
	if err != nil {
		return fmt.Errorf("battleship: cannot place boat: %w", err)
	}

	size := len(sea.ResolveLine(start, c))
	if lost := before + 1 - g.board.BoatCount(); lost > 0 {
		g.status = fmt.Sprintf("Placed boat %d (%d tiles), sank %d crossed", id, size, lost)
	} else {
		g.status = fmt.Sprintf("Placed boat %d (%d tiles)", id, size)
	}
	return nil
}

// removeBoatAt deletes the boat covering c, if any.
func (g *Game) removeBoatAt(c sea.Coord) error {
	id, occupied := g.boatAt(c)
	if !occupied {
		return nil
	}
	if err := g.board.DeleteBoat(id); err != nil {
		return fmt.Errorf("battleship: cannot remove boat: %w", err)
	}
	g.status = fmt.Sprintf("Removed boat %d", id)
	return nil
}

// setupAction applies a resize or start request.
func (g *Game) setupAction(a core.Action) error {
	switch a {
	case core.ActionAddRow:
		if !g.canAddRow() {
			return ErrNoRoom
		}
		g.board.AddRow()
	case core.ActionDelRow:
		g.board.DeleteRow()
	case core.ActionAddCol:
		if !g.canAddCol() {
			return ErrNoRoom
		}
		g.board.AddColumn()
	case core.ActionDelCol:
		g.board.DeleteColumn()
	case core.ActionStart:
		return g.start()
	default:
		return nil
	}

	g.relayout()
	g.clampCursor()
	w, h := g.board.Size()
	g.status = fmt.Sprintf("Sea is now %dx%d", w, h)
	return nil
}

// canAddRow reports whether one more row stays within limits and on screen.
func (g *Game) canAddRow() bool {
	w, h := g.board.Size()
	return h+1 <= g.opts.MaxHeight && g.fits(w, h+1)
}

// canAddCol reports whether one more column stays within limits and on screen.
func (g *Game) canAddCol() bool {
	w, h := g.board.Size()
	return w+1 <= g.opts.MaxWidth && g.fits(w+1, h)
}

func (g *Game) fits(w, h int) bool {
	return ComputeLayout(g.screenW, g.screenH, w, h, g.opts.CellWidth).Fits(g.screenW, g.screenH)
}

// start hides the fleet and begins guessing.
func (g *Game) start() error {
	if g.board.BoatCount() == 0 {
		return ErrNoBoats
	}
	g.phase = PhasePlaying
	g.cancelDrag()
	g.peek = false
	g.guesses = 0
	g.status = fmt.Sprintf("Find %d boats", g.board.BoatCount())
	return nil
}

// stepPlaying applies guesses from the pointer and the keyboard.
func (g *Game) stepPlaying(in core.InputFrame) error {
	if in.Has(core.ActionPeek) {
		g.peek = !g.peek
	}

	for _, p := range in.Pointer {
		if p.Kind != core.PointerPress {
			continue
		}
		c, ok := g.layout.CellAt(p.X, p.Y)
		if !ok {
			continue
		}
		g.cursor = c
		if err := g.guess(c); err != nil {
			return err
		}
		if g.phase != PhasePlaying {
			return nil
		}
	}

	if dx, dy := cursorDelta(in); dx != 0 || dy != 0 {
		g.moveCursor(dx, dy)
	}
	if in.Has(core.ActionSelect) {
		return g.guess(g.cursor)
	}
	return nil
}

// guess reveals c. Revealing an already seen tile is not counted.
func (g *Game) guess(c sea.Coord) error {
	tile, err := g.board.TileAt(c.X, c.Y)
	if err != nil {
		return fmt.Errorf("battleship: cannot guess: %w", err)
	}
	if tile.IsVisible() {
		return nil
	}
	if err := g.board.Guess(c.X, c.Y); err != nil {
		return fmt.Errorf("battleship: cannot guess: %w", err)
	}
	g.guesses++

	id, hit := tile.BoatID()
	switch {
	case !hit:
		g.status = fmt.Sprintf("%v: miss", c)
	case g.boatSunk(id):
		g.status = fmt.Sprintf("%v: boat %d sunk (%d/%d)", c, id, g.sunk(), g.board.BoatCount())
	default:
		g.status = fmt.Sprintf("%v: hit", c)
	}

	if g.board.IsFinished() {
		g.finish()
	}
	return nil
}

func (g *Game) boatSunk(id sea.BoatID) bool {
	state, err := g.board.BoatState(id)
	return err == nil && state == sea.Seen
}

// finish ends the round.
func (g *Game) finish() {
	g.phase = PhaseFinished
	g.finishTick = g.tick
	g.peek = false
	g.status = fmt.Sprintf("Fleet found in %d guesses", g.guesses)
}

// stepFinished waits for the linger time, then accepts a restart.
func (g *Game) stepFinished(in core.InputFrame) {
	if g.Lingering() {
		return
	}

	restart := in.Has(core.ActionRestart) || in.Has(core.ActionSelect)
	for _, p := range in.Pointer {
		if p.Kind == core.PointerPress {
			restart = true
		}
	}
	if restart {
		w, h := g.board.Size()
		g.newRound(w, h)
	}
}
