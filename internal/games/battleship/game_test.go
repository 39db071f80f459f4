package battleship

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship/sea"
)

// newTestGame returns a game on an 80x24 screen whose finish overlay lingers
// for three ticks.
func newTestGame(t *testing.T, mutate func(*Options)) *Game {
	t.Helper()
	opts := DefaultOptions()
	opts.FinishLinger = 100 * time.Millisecond
	if mutate != nil {
		mutate(&opts)
	}
	g := New(opts)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 30})
	return g
}

func keys(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// tap is a mouse event on the first character of a tile.
type tap struct {
	c    sea.Coord
	kind core.PointerKind
}

// pointer builds a frame of mouse events on tiles.
func pointer(g *Game, taps ...tap) core.InputFrame {
	in := core.NewInputFrame()
	for _, e := range taps {
		x, y := g.layout.TileOrigin(e.c)
		in.AddPointer(x, y, e.kind)
	}
	return in
}

// drag places a boat with a single press/release frame.
func drag(t *testing.T, g *Game, start, end sea.Coord) {
	t.Helper()
	res := g.Step(pointer(g, tap{start, core.PointerPress}, tap{end, core.PointerMotion}, tap{end, core.PointerRelease}))
	if res.Err != nil {
		t.Fatalf("drag %v -> %v failed: %v", start, end, res.Err)
	}
}

func clickButton(t *testing.T, g *Game, a core.Action) core.StepResult {
	t.Helper()
	for _, b := range g.layout.Buttons {
		if b.Action == a {
			in := core.NewInputFrame()
			in.AddPointer(b.Rect.X, b.Rect.Y, core.PointerPress)
			return g.Step(in)
		}
	}
	t.Fatalf("no button for %v", a)
	return core.StepResult{}
}

func boatAt(t *testing.T, g *Game, c sea.Coord) (sea.BoatID, bool) {
	t.Helper()
	tile, err := g.Board().TileAt(c.X, c.Y)
	if err != nil {
		t.Fatalf("TileAt(%v) failed: %v", c, err)
	}
	return tile.BoatID()
}

func TestResetStartsInSetup(t *testing.T) {
	g := newTestGame(t, nil)
	snap := g.Snapshot()

	if snap.Phase != PhaseSetup {
		t.Errorf("Phase = %v, expected setup", snap.Phase)
	}
	if snap.Width != 8 || snap.Height != 8 {
		t.Errorf("size = %dx%d, expected 8x8", snap.Width, snap.Height)
	}
	if snap.Boats != 0 || snap.Guesses != 0 || snap.TooSmall {
		t.Errorf("unexpected fresh snapshot: %+v", snap)
	}
}

func TestOptionsClampedToMaximum(t *testing.T) {
	g := newTestGame(t, func(o *Options) {
		o.Width = 50
		o.Height = 0
		o.MaxWidth = 10
	})
	snap := g.Snapshot()
	if snap.Width != 10 || snap.Height != 8 {
		t.Errorf("size = %dx%d, expected 10x8", snap.Width, snap.Height)
	}
}

func TestPointerDragPlacesBoat(t *testing.T) {
	g := newTestGame(t, nil)
	drag(t, g, sea.C(1, 1), sea.C(3, 1))

	if n := g.Snapshot().Boats; n != 1 {
		t.Fatalf("Boats = %d, expected 1", n)
	}
	for x := 1; x <= 3; x++ {
		if id, ok := boatAt(t, g, sea.C(x, 1)); !ok || id != 0 {
			t.Errorf("tile (%d,1) = (%d, %v), expected boat 0", x, id, ok)
		}
	}
}

func TestPointerDragAcrossFrames(t *testing.T) {
	g := newTestGame(t, nil)

	g.Step(pointer(g, tap{sea.C(2, 2), core.PointerPress}))
	snap := g.Snapshot()
	if !snap.Anchored || snap.Anchor != sea.C(2, 2) {
		t.Fatalf("expected anchor at (2,2), got %+v", snap)
	}

	// Diagonal release clips to the dominant axis
	g.Step(pointer(g, tap{sea.C(3, 5), core.PointerMotion}))
	g.Step(pointer(g, tap{sea.C(3, 5), core.PointerRelease}))

	if g.Snapshot().Anchored {
		t.Error("release should end the drag")
	}
	board := g.Board()
	if coords := board.BoatCoords(0); len(coords) != 4 {
		t.Errorf("boat tiles = %v, expected 4 tiles in column 2", coords)
	}
	for _, c := range board.BoatCoords(0) {
		if c.X != 2 {
			t.Errorf("boat tile %v off the anchor column", c)
		}
	}
}

func TestPointerReleaseOffGridCancels(t *testing.T) {
	g := newTestGame(t, nil)

	g.Step(pointer(g, tap{sea.C(0, 0), core.PointerPress}))
	in := core.NewInputFrame()
	in.AddPointer(0, 0, core.PointerRelease)
	g.Step(in)

	snap := g.Snapshot()
	if snap.Anchored || snap.Boats != 0 {
		t.Errorf("release off the grid should cancel, got %+v", snap)
	}
}

func TestPointerPressOnBoatRemovesIt(t *testing.T) {
	g := newTestGame(t, nil)
	drag(t, g, sea.C(0, 0), sea.C(0, 3))
	drag(t, g, sea.C(5, 5), sea.C(6, 5))

	g.Step(pointer(g, tap{sea.C(0, 2), core.PointerPress}, tap{sea.C(0, 2), core.PointerRelease}))

	snap := g.Snapshot()
	if snap.Boats != 1 || snap.Anchored {
		t.Errorf("expected one boat and no drag, got %+v", snap)
	}
	if _, ok := boatAt(t, g, sea.C(0, 0)); ok {
		t.Error("removed boat should leave water")
	}
	if id, ok := boatAt(t, g, sea.C(5, 5)); !ok || id != 1 {
		t.Error("other boat should survive")
	}
}

func TestPlacementOverBoatSinksIt(t *testing.T) {
	g := newTestGame(t, nil)
	drag(t, g, sea.C(3, 0), sea.C(3, 4))

	// Starting on water and crossing the first boat
	drag(t, g, sea.C(1, 2), sea.C(5, 2))

	board := g.Board()
	if board.HasBoat(0) || !board.HasBoat(1) || board.BoatCount() != 1 {
		t.Errorf("registry = %v, expected only boat 1", board.Boats())
	}
	if !strings.Contains(g.Snapshot().Status, "sank 1") {
		t.Errorf("status %q should report the crossed boat", g.Snapshot().Status)
	}
}

func TestKeyboardPlacement(t *testing.T) {
	g := newTestGame(t, nil)

	g.Step(keys(core.ActionRight))
	g.Step(keys(core.ActionSelect))
	if !g.Snapshot().Anchored {
		t.Fatal("select on water should anchor")
	}
	g.Step(keys(core.ActionDown))
	g.Step(keys(core.ActionDown))
	g.Step(keys(core.ActionSelect))

	board := g.Board()
	coords := board.BoatCoords(0)
	expected := []sea.Coord{sea.C(1, 0), sea.C(1, 1), sea.C(1, 2)}
	if len(coords) != len(expected) {
		t.Fatalf("boat tiles = %v, expected %v", coords, expected)
	}
	for i := range expected {
		if coords[i] != expected[i] {
			t.Errorf("boat tile %d = %v, expected %v", i, coords[i], expected[i])
		}
	}

	// Select on the boat removes it
	g.Step(keys(core.ActionSelect))
	if n := g.Snapshot().Boats; n != 0 {
		t.Errorf("Boats = %d after select on boat, expected 0", n)
	}
}

func TestKeyboardCancelAndDelete(t *testing.T) {
	g := newTestGame(t, nil)

	g.Step(keys(core.ActionSelect))
	g.Step(keys(core.ActionBack))
	if g.Snapshot().Anchored {
		t.Error("back should cancel the anchor")
	}

	drag(t, g, sea.C(4, 4), sea.C(4, 6))
	g.Step(keys(core.ActionDelete))
	if n := g.Snapshot().Boats; n != 0 {
		t.Errorf("Boats = %d after delete, expected 0", n)
	}

	// Deleting water is a no-op
	res := g.Step(keys(core.ActionDelete))
	if res.Err != nil {
		t.Errorf("delete on water returned %v", res.Err)
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g := newTestGame(t, nil)

	g.Step(keys(core.ActionUp, core.ActionLeft))
	if c := g.Snapshot().Cursor; c != sea.C(0, 0) {
		t.Errorf("cursor = %v, expected (0,0)", c)
	}
	for i := 0; i < 20; i++ {
		g.Step(keys(core.ActionDown, core.ActionRight))
	}
	if c := g.Snapshot().Cursor; c != sea.C(7, 7) {
		t.Errorf("cursor = %v, expected (7,7)", c)
	}
}

func TestResizeButtons(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(keys(core.ActionDown, core.ActionRight)) // cursor (1,1)

	clickButton(t, g, core.ActionAddRow)
	clickButton(t, g, core.ActionAddCol)
	if snap := g.Snapshot(); snap.Width != 9 || snap.Height != 9 {
		t.Fatalf("size = %dx%d, expected 9x9", snap.Width, snap.Height)
	}

	clickButton(t, g, core.ActionDelRow)
	clickButton(t, g, core.ActionDelCol)
	clickButton(t, g, core.ActionDelCol)
	if snap := g.Snapshot(); snap.Width != 7 || snap.Height != 8 {
		t.Errorf("size = %dx%d, expected 7x8", snap.Width, snap.Height)
	}
}

func TestResizeKeysClampCursorAndDrag(t *testing.T) {
	g := newTestGame(t, func(o *Options) {
		o.Width = 3
		o.Height = 3
	})

	for i := 0; i < 2; i++ {
		g.Step(keys(core.ActionDown, core.ActionRight))
	}
	g.Step(keys(core.ActionSelect)) // anchor at (2,2)

	g.Step(keys(core.ActionDelRow))
	snap := g.Snapshot()
	if snap.Cursor != sea.C(2, 1) {
		t.Errorf("cursor = %v, expected (2,1)", snap.Cursor)
	}
	if snap.Anchored {
		t.Error("anchor on the removed row should be dropped")
	}
}

func TestResizeCutsBoat(t *testing.T) {
	g := newTestGame(t, func(o *Options) {
		o.Width = 4
		o.Height = 4
	})
	drag(t, g, sea.C(3, 0), sea.C(3, 3))
	drag(t, g, sea.C(0, 3), sea.C(1, 3))

	g.Step(keys(core.ActionDelRow))

	board := g.Board()
	if board.HasBoat(1) {
		t.Error("boat living only in the removed row should be gone")
	}
	if got := len(board.BoatCoords(0)); got != 3 {
		t.Errorf("cut boat has %d tiles, expected 3", got)
	}
}

func TestResizeLimits(t *testing.T) {
	t.Run("configured maximum", func(t *testing.T) {
		g := newTestGame(t, func(o *Options) {
			o.MaxWidth = 8
			o.MaxHeight = 8
		})
		if res := g.Step(keys(core.ActionAddRow)); !errors.Is(res.Err, ErrNoRoom) {
			t.Errorf("AddRow error = %v, expected ErrNoRoom", res.Err)
		}
		if res := g.Step(keys(core.ActionAddCol)); !errors.Is(res.Err, ErrNoRoom) {
			t.Errorf("AddCol error = %v, expected ErrNoRoom", res.Err)
		}
		if snap := g.Snapshot(); snap.Width != 8 || snap.Height != 8 {
			t.Errorf("size = %dx%d, expected 8x8", snap.Width, snap.Height)
		}
	})

	t.Run("screen height", func(t *testing.T) {
		g := newTestGame(t, nil)
		g.Resize(80, 15) // exactly fits 8 rows
		if res := g.Step(keys(core.ActionAddRow)); !errors.Is(res.Err, ErrNoRoom) {
			t.Errorf("AddRow error = %v, expected ErrNoRoom", res.Err)
		}
		if g.buttonEnabled(core.ActionAddRow) {
			t.Error("add row button should be disabled")
		}
	})

	t.Run("minimum size", func(t *testing.T) {
		g := newTestGame(t, func(o *Options) {
			o.Width = 1
			o.Height = 1
		})
		g.Step(keys(core.ActionDelRow, core.ActionDelCol))
		if snap := g.Snapshot(); snap.Width != 1 || snap.Height != 1 {
			t.Errorf("size = %dx%d, expected 1x1", snap.Width, snap.Height)
		}
		if g.buttonEnabled(core.ActionDelRow) || g.buttonEnabled(core.ActionDelCol) {
			t.Error("delete buttons should be disabled at size 1")
		}
	})
}

func TestStartRequiresBoat(t *testing.T) {
	g := newTestGame(t, nil)

	res := g.Step(keys(core.ActionStart))
	if !errors.Is(res.Err, ErrNoBoats) {
		t.Errorf("Start error = %v, expected ErrNoBoats", res.Err)
	}
	if g.Phase() != PhaseSetup {
		t.Errorf("Phase = %v, expected setup", g.Phase())
	}

	drag(t, g, sea.C(0, 0), sea.C(0, 0))
	res = clickButton(t, g, core.ActionStart)
	if res.Err != nil || g.Phase() != PhasePlaying {
		t.Errorf("start failed: err=%v phase=%v", res.Err, g.Phase())
	}
}

func TestFullRound(t *testing.T) {
	g := newTestGame(t, nil)
	drag(t, g, sea.C(0, 0), sea.C(1, 0))
	g.Step(keys(core.ActionStart))

	// Miss, then the same tile again is not counted
	g.Step(pointer(g, tap{sea.C(5, 5), core.PointerPress}))
	g.Step(pointer(g, tap{sea.C(5, 5), core.PointerPress}))
	if n := g.Snapshot().Guesses; n != 1 {
		t.Errorf("Guesses = %d, expected 1", n)
	}

	// Hit with the keyboard
	for i := 0; i < 5; i++ {
		g.Step(keys(core.ActionUp, core.ActionLeft))
	}
	res := g.Step(keys(core.ActionSelect))
	if res.Finished || g.Snapshot().Sunk != 0 {
		t.Fatalf("one hit should not sink a 2-tile boat: %+v", g.Snapshot())
	}

	res = g.Step(pointer(g, tap{sea.C(1, 0), core.PointerPress}))
	if !res.Finished || !res.State.GameOver {
		t.Fatalf("expected finished round, got %+v", res)
	}
	if res.State.Moves != 3 {
		t.Errorf("Moves = %d, expected 3", res.State.Moves)
	}
	if snap := g.Snapshot(); snap.Phase != PhaseFinished || snap.Sunk != 1 || !snap.Lingering {
		t.Errorf("unexpected finish snapshot: %+v", snap)
	}

	// Restart is ignored while the overlay lingers
	g.Step(keys(core.ActionRestart))
	if g.Phase() != PhaseFinished {
		t.Fatal("restart accepted during linger")
	}
	for g.Lingering() {
		g.Step(core.NewInputFrame())
	}
	g.Step(keys(core.ActionRestart))

	snap := g.Snapshot()
	if snap.Phase != PhaseSetup || snap.Boats != 0 || snap.Guesses != 0 {
		t.Errorf("restart should give an empty setup, got %+v", snap)
	}
	if snap.Width != 8 || snap.Height != 8 {
		t.Errorf("restart size = %dx%d, expected 8x8", snap.Width, snap.Height)
	}
}

func TestRestartKeepsResizedBoard(t *testing.T) {
	g := newTestGame(t, func(o *Options) {
		o.FinishLinger = 0
	})
	g.Step(keys(core.ActionDelCol))
	drag(t, g, sea.C(0, 0), sea.C(0, 0))
	g.Step(keys(core.ActionStart))
	g.Step(keys(core.ActionSelect))
	if g.Phase() != PhaseFinished {
		t.Fatalf("Phase = %v, expected finished", g.Phase())
	}

	g.Step(keys(core.ActionRestart))
	if snap := g.Snapshot(); snap.Width != 7 || snap.Phase != PhaseSetup {
		t.Errorf("restart = %+v, expected 7 wide setup", snap)
	}
}

func TestSetupInputIgnoredWhilePlaying(t *testing.T) {
	g := newTestGame(t, nil)
	drag(t, g, sea.C(0, 0), sea.C(2, 0))
	g.Step(keys(core.ActionStart))

	g.Step(keys(core.ActionAddRow, core.ActionDelete))
	snap := g.Snapshot()
	if snap.Height != 8 || snap.Boats != 1 {
		t.Errorf("setup actions changed the board during play: %+v", snap)
	}
}

func TestPeekToggle(t *testing.T) {
	g := newTestGame(t, nil)
	drag(t, g, sea.C(0, 0), sea.C(0, 0))
	g.Step(keys(core.ActionStart))

	g.Step(keys(core.ActionPeek))
	if !g.Snapshot().Peek {
		t.Error("peek should be on")
	}
	g.Step(keys(core.ActionPeek))
	if g.Snapshot().Peek {
		t.Error("peek should be off")
	}
}

func TestDump(t *testing.T) {
	g := newTestGame(t, func(o *Options) {
		o.Width = 3
		o.Height = 2
	})
	drag(t, g, sea.C(0, 1), sea.C(1, 1))

	res := g.Step(keys(core.ActionDump))
	expected := "XXXNXXXNXXXN\n000N000NXXXN"
	if res.Dump != expected {
		t.Errorf("Dump = %q, expected %q", res.Dump, expected)
	}

	if res := g.Step(core.NewInputFrame()); res.Dump != "" {
		t.Error("Dump should only be set when requested")
	}
}

func TestTooSmallPausesInput(t *testing.T) {
	g := New(DefaultOptions())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 30})

	res := g.Step(keys(core.ActionSelect))
	if !res.State.Paused || g.Snapshot().Anchored {
		t.Errorf("small screen should pause input, got %+v", g.Snapshot())
	}

	g.Resize(80, 24)
	if g.Snapshot().TooSmall {
		t.Error("resize to 80x24 should fit")
	}
	g.Step(keys(core.ActionSelect))
	if !g.Snapshot().Anchored {
		t.Error("input should work after resize")
	}
}

func TestRenderRevealsBoatsByPhase(t *testing.T) {
	g := newTestGame(t, nil)
	drag(t, g, sea.C(0, 0), sea.C(1, 0))
	screen := core.NewScreen(80, 24)

	glyph := func(c sea.Coord) core.Cell {
		g.Render(screen)
		x, y := g.layout.TileOrigin(c)
		return screen.GetCell(x, y)
	}

	if cell := glyph(sea.C(0, 0)); cell.Rune != glyphBoat || cell.Color != g.opts.Palette[0] {
		t.Errorf("setup boat cell = %+v, expected palette boat", cell)
	}
	if cell := glyph(sea.C(3, 3)); cell.Rune != glyphWater {
		t.Errorf("setup water cell = %+v, expected water", cell)
	}

	g.Step(keys(core.ActionStart))
	if cell := glyph(sea.C(0, 0)); cell.Rune != glyphHidden || cell.Color != core.ColorGray {
		t.Errorf("hidden boat cell = %+v, expected gray hidden", cell)
	}

	g.Step(keys(core.ActionSelect)) // cursor is still on (1,0) from the drag
	if cell := glyph(sea.C(1, 0)); cell.Rune != glyphHit || cell.Color != core.ColorBrightWhite {
		t.Errorf("hit cell = %+v, expected white hit", cell)
	}

	g.Step(keys(core.ActionPeek))
	if cell := glyph(sea.C(0, 0)); cell.Rune != glyphBoat {
		t.Errorf("peeked cell = %+v, expected boat", cell)
	}
	if !strings.Contains(screen.Row(0), "PEEK") {
		t.Errorf("HUD should show peek, got %q", screen.Row(0))
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(DefaultOptions())
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 30})
	screen := core.NewScreen(30, 10)
	g.Render(screen)

	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too small message, got:\n%s", screen.String())
	}
}
