package sea

import (
	"fmt"
	"sort"
	"strings"
)

// Board is the sea a player hides boats in.
//
// It owns a row-major grid of tiles and a registry mapping every boat id
// present on the grid to the boat's aggregate visibility. A boat id is in the
// registry iff at least one tile carries it, and its state is Seen iff every
// one of its tiles has been revealed.
type Board struct {
	grid  [][]Tile
	boats map[BoatID]State
}

// New creates an empty board of width columns and height rows.
func New(width, height int) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	grid := make([][]Tile, height)
	for y := range grid {
		grid[y] = emptyRow(width)
	}

	return &Board{
		grid:  grid,
		boats: make(map[BoatID]State),
	}, nil
}

// emptyRow allocates a row of unseen water.
func emptyRow(width int) []Tile {
	return make([]Tile, width)
}

// Size returns the width and height of the grid.
func (b *Board) Size() (width, height int) {
	return len(b.grid[0]), len(b.grid)
}

// InBounds returns true if (x, y) lies on the grid.
func (b *Board) InBounds(x, y int) bool {
	w, h := b.Size()
	return x >= 0 && x < w && y >= 0 && y < h
}

// checkBounds returns ErrOutOfBounds with the offending position.
func (b *Board) checkBounds(x, y int) error {
	if b.InBounds(x, y) {
		return nil
	}
	w, h := b.Size()
	return fmt.Errorf("%w: %v on %dx%d board", ErrOutOfBounds, C(x, y), w, h)
}

// TileAt returns a copy of the tile at (x, y).
func (b *Board) TileAt(x, y int) (Tile, error) {
	if err := b.checkBounds(x, y); err != nil {
		return Tile{}, err
	}
	return b.grid[y][x].Copy(), nil
}

// SetTile overwrites the tile at (x, y) and updates the boat registry.
//
// A boat id seen for the first time is registered with the tile's state.
// Writing an unseen tile of an existing boat makes the boat unseen again;
// this path never marks that boat as seen. The boat previously on the cell,
// if different, is refreshed: it leaves the registry when this was its last
// tile.
func (b *Board) SetTile(t Tile, x, y int) error {
	if err := b.checkBounds(x, y); err != nil {
		return err
	}

	old := b.grid[y][x]
	b.grid[y][x] = t.Copy()

	if id, ok := t.BoatID(); ok {
		state, exists := b.boats[id]
		switch {
		case !exists:
			b.boats[id] = t.State()
		case t.State() == NotSeen && state == Seen:
			b.boats[id] = NotSeen
		}
	}

	if oldID, ok := old.BoatID(); ok {
		if newID, same := t.BoatID(); !same || newID != oldID {
			b.refresh(oldID)
		}
	}

	return nil
}

// refresh recomputes the registry entry of id from the grid. The boat is
// removed when no tile references it anymore.
func (b *Board) refresh(id BoatID) {
	found := false
	state := Seen
	for _, row := range b.grid {
		for _, t := range row {
			if tid, ok := t.BoatID(); ok && tid == id {
				found = true
				if !t.IsVisible() {
					state = NotSeen
				}
			}
		}
	}

	if !found {
		delete(b.boats, id)
		return
	}
	b.boats[id] = state
}

// AddRow appends an empty row at the bottom of the grid.
func (b *Board) AddRow() {
	w, _ := b.Size()
	b.grid = append(b.grid, emptyRow(w))
}

// DeleteRow removes the bottom row. Boats that only lived in that row are
// removed from the registry; boats cut by it keep their remaining tiles.
// A board with a single row is left unchanged.
func (b *Board) DeleteRow() {
	if len(b.grid) <= 1 {
		return
	}

	last := len(b.grid) - 1
	removed := b.grid[last]
	b.grid = b.grid[:last]

	b.refreshBoatsIn(removed)
}

// AddColumn appends an empty column on the right of the grid.
func (b *Board) AddColumn() {
	for y := range b.grid {
		b.grid[y] = append(b.grid[y], EmptyTile())
	}
}

// DeleteColumn removes the rightmost column. Boats that only lived in that
// column are removed from the registry. A board with a single column is left
// unchanged.
func (b *Board) DeleteColumn() {
	w, _ := b.Size()
	if w <= 1 {
		return
	}

	removed := make([]Tile, 0, len(b.grid))
	for y := range b.grid {
		removed = append(removed, b.grid[y][w-1])
		b.grid[y] = b.grid[y][:w-1]
	}

	b.refreshBoatsIn(removed)
}

// refreshBoatsIn refreshes every boat that had a tile among the removed ones.
func (b *Board) refreshBoatsIn(removed []Tile) {
	seen := make(map[BoatID]bool)
	for _, t := range removed {
		id, ok := t.BoatID()
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		b.refresh(id)
	}
}

// Guess reveals the tile at (x, y). Guessing a tile that is already seen
// changes nothing. When the revealed tile completes a boat, the boat is
// marked as seen.
func (b *Board) Guess(x, y int) error {
	if err := b.checkBounds(x, y); err != nil {
		return err
	}

	tile := &b.grid[y][x]
	if tile.IsVisible() {
		return nil
	}
	tile.View()

	id, ok := tile.BoatID()
	if !ok {
		return nil
	}

	// Full rescan: the registry is only a cache of tile state.
	for _, row := range b.grid {
		for _, t := range row {
			if tid, occupied := t.BoatID(); occupied && tid == id && !t.IsVisible() {
				return nil
			}
		}
	}
	b.boats[id] = Seen
	return nil
}

// IsFinished returns true when every boat has been fully seen.
// A board without boats is finished.
func (b *Board) IsFinished() bool {
	for _, state := range b.boats {
		if state == NotSeen {
			return false
		}
	}
	return true
}

// DeleteBoat removes the boat from the registry and turns all its tiles back
// into unseen water.
func (b *Board) DeleteBoat(id BoatID) error {
	if _, ok := b.boats[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBoat, id)
	}

	delete(b.boats, id)
	for y := range b.grid {
		for x := range b.grid[y] {
			if tid, ok := b.grid[y][x].BoatID(); ok && tid == id {
				b.grid[y][x] = EmptyTile()
			}
		}
	}
	return nil
}

// HasBoat reports whether id is in the registry.
func (b *Board) HasBoat(id BoatID) bool {
	_, ok := b.boats[id]
	return ok
}

// BoatState returns the aggregate state of a boat.
func (b *Board) BoatState(id BoatID) (State, error) {
	state, ok := b.boats[id]
	if !ok {
		return NotSeen, fmt.Errorf("%w: %d", ErrUnknownBoat, id)
	}
	return state, nil
}

// Boats returns a copy of the boat registry.
func (b *Board) Boats() map[BoatID]State {
	boats := make(map[BoatID]State, len(b.boats))
	for id, state := range b.boats {
		boats[id] = state
	}
	return boats
}

// BoatIDs returns the registered boat ids in ascending order.
func (b *Board) BoatIDs() []BoatID {
	ids := make([]BoatID, 0, len(b.boats))
	for id := range b.boats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i] < ids[j]
	})
	return ids
}

// BoatCount returns the number of boats on the board.
func (b *Board) BoatCount() int {
	return len(b.boats)
}

// NextBoatID returns one more than the highest registered id, or 0 when the
// board has no boats.
func (b *Board) NextBoatID() BoatID {
	ids := b.BoatIDs()
	if len(ids) == 0 {
		return 0
	}
	return ids[len(ids)-1] + 1
}

// BoatCoords returns the positions of every tile of the boat, row by row.
func (b *Board) BoatCoords(id BoatID) []Coord {
	var coords []Coord
	for y, row := range b.grid {
		for x, t := range row {
			if tid, ok := t.BoatID(); ok && tid == id {
				coords = append(coords, C(x, y))
			}
		}
	}
	return coords
}

// Grid returns a deep copy of the grid.
func (b *Board) Grid() [][]Tile {
	grid := make([][]Tile, len(b.grid))
	for y, row := range b.grid {
		grid[y] = make([]Tile, len(row))
		copy(grid[y], row)
	}
	return grid
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		grid:  b.Grid(),
		boats: b.Boats(),
	}
}

// String returns the grid as lines of tile debug strings.
func (b *Board) String() string {
	lines := make([]string, len(b.grid))
	for y, row := range b.grid {
		var sb strings.Builder
		for _, t := range row {
			sb.WriteString(t.String())
		}
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
