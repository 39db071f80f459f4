package battleship

import "github.com/vovakirdan/tui-battleship/internal/games/battleship/sea"

// Snapshot captures the game state for tests and the round log.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Width     int
	Height    int
	Boats     int
	Sunk      int
	Guesses   int
	Cursor    sea.Coord
	Anchored  bool
	Anchor    sea.Coord
	Peek      bool
	TooSmall  bool
	Lingering bool
	Status    string
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	w, h := g.board.Size()
	return Snapshot{
		Tick:      g.tick,
		Phase:     g.phase,
		Width:     w,
		Height:    h,
		Boats:     g.board.BoatCount(),
		Sunk:      g.sunk(),
		Guesses:   g.guesses,
		Cursor:    g.cursor,
		Anchored:  g.anchored,
		Anchor:    g.anchor,
		Peek:      g.peek,
		TooSmall:  g.tooSmall,
		Lingering: g.Lingering(),
		Status:    g.status,
	}
}
