// Package battleship runs a round of single-player battleship on top of the
// sea board model: boat setup on a resizable grid, guessing, and the final
// reveal. It turns platform input frames into board operations and draws the
// board into a core.Screen.
package battleship

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-battleship/internal/core"
	"github.com/vovakirdan/tui-battleship/internal/games/battleship/sea"
)

var (
	// ErrNoBoats is returned when play is started on an empty sea.
	ErrNoBoats = errors.New("battleship: place at least one boat first")
	// ErrNoRoom is returned when the sea cannot grow any further.
	ErrNoRoom = errors.New("battleship: no room to grow the sea")
)

// Options configures a game.
type Options struct {
	Width, Height       int // Initial sea size
	MaxWidth, MaxHeight int // Upper bound for resizing during setup
	CellWidth           int // Characters per tile
	FinishLinger        time.Duration
	Palette             []core.Color // Boat colors, assigned by sorted boat id
}

// DefaultOptions returns the options used when no configuration is loaded.
func DefaultOptions() Options {
	return Options{
		Width:        8,
		Height:       8,
		MaxWidth:     20,
		MaxHeight:    16,
		CellWidth:    2,
		FinishLinger: 3 * time.Second,
		Palette: []core.Color{
			core.ColorRed,
			core.ColorOrange,
			core.ColorYellow,
			core.ColorLime,
			core.ColorCyan,
			core.ColorBrightBlue,
			core.ColorMagenta,
			core.ColorPink,
		},
	}
}

// normalize fills unset fields from the defaults.
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.MaxWidth < 1 {
		o.MaxWidth = def.MaxWidth
	}
	if o.MaxHeight < 1 {
		o.MaxHeight = def.MaxHeight
	}
	if o.Width < 1 {
		o.Width = def.Width
	}
	if o.Height < 1 {
		o.Height = def.Height
	}
	o.Width = min(o.Width, o.MaxWidth)
	o.Height = min(o.Height, o.MaxHeight)
	if o.CellWidth < 1 {
		o.CellWidth = def.CellWidth
	}
	if o.FinishLinger < 0 {
		o.FinishLinger = 0
	}
	if len(o.Palette) == 0 {
		o.Palette = def.Palette
	}
	return o
}

// Game implements a battleship round.
type Game struct {
	opts  Options
	board *sea.Board
	phase Phase
	tick  uint64

	// Cursor and drag state
	cursor   sea.Coord
	anchor   sea.Coord
	anchored bool
	hover    sea.Coord

	peek        bool
	guesses     int
	finishTick  uint64
	lingerTicks uint64

	// Screen state
	screenW  int
	screenH  int
	tickRate int
	layout   Layout
	tooSmall bool

	status string
}

// New creates a game with the given options.
func New(opts Options) *Game {
	return &Game{
		opts: opts.normalize(),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "battleship"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Battleship"
}

// Reset starts a new round with the configured sea size.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.lingerTicks = uint64(g.opts.FinishLinger * time.Duration(g.tickRate) / time.Second)
	g.tick = 0

	g.newRound(g.opts.Width, g.opts.Height)
}

// newRound replaces the board and returns to setup.
func (g *Game) newRound(width, height int) {
	board, err := sea.New(width, height)
	if err != nil {
		// normalize guarantees a valid size, this only guards direct misuse
		board, _ = sea.New(1, 1)
	}
	g.board = board
	g.phase = PhaseSetup
	g.cursor = sea.C(0, 0)
	g.cancelDrag()
	g.peek = false
	g.guesses = 0
	g.finishTick = 0
	g.status = "Drag to place boats, click a boat to remove it"
	g.relayout()
}

// Resize adapts the layout to a new screen size without touching the round.
func (g *Game) Resize(screenW, screenH int) {
	g.screenW = screenW
	g.screenH = screenH
	g.relayout()
}

// relayout recomputes the screen geometry for the current board.
func (g *Game) relayout() {
	w, h := g.board.Size()
	g.layout = ComputeLayout(g.screenW, g.screenH, w, h, g.opts.CellWidth)
	g.tooSmall = !g.layout.Fits(g.screenW, g.screenH)
}

// Step advances the game by one tick, applying the frame's input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	var res core.StepResult
	if in.Has(core.ActionDump) {
		res.Dump = g.board.String()
	}

	if !g.tooSmall {
		var err error
		switch g.phase {
		case PhaseSetup:
			err = g.stepSetup(in)
		case PhasePlaying:
			err = g.stepPlaying(in)
			res.Finished = g.phase == PhaseFinished
		case PhaseFinished:
			g.stepFinished(in)
		}
		if err != nil {
			g.status = err.Error()
			res.Err = err
		}
	}

	res.State = g.State()
	return res
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Moves:    g.guesses,
		GameOver: g.phase == PhaseFinished,
		Paused:   g.tooSmall,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Board returns a copy of the current board.
func (g *Game) Board() *sea.Board {
	return g.board.Clone()
}

// Lingering returns true while the finish overlay ignores input.
func (g *Game) Lingering() bool {
	return g.phase == PhaseFinished && g.tick-g.finishTick < g.lingerTicks
}

// sunk counts boats whose tiles are all revealed.
func (g *Game) sunk() int {
	n := 0
	for _, state := range g.board.Boats() {
		if state == sea.Seen {
			n++
		}
	}
	return n
}
