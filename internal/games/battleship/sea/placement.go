package sea

// Orientation of a placed boat.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// String returns the string representation of an orientation.
func (o Orientation) String() string {
	if o == Vertical {
		return "Vertical"
	}
	return "Horizontal"
}

// OrientationOf returns the axis a drag from start to end follows.
// Equal deltas resolve to horizontal.
func OrientationOf(start, end Coord) Orientation {
	if abs(end.X-start.X) >= abs(end.Y-start.Y) {
		return Horizontal
	}
	return Vertical
}

// ResolveLine turns a drag from start to end into the straight run of cells
// a boat occupies, start and end included. The minor axis stays at the
// start's coordinate, so a diagonal drag is clipped to its dominant axis.
func ResolveLine(start, end Coord) []Coord {
	if OrientationOf(start, end) == Horizontal {
		step := sign(end.X - start.X)
		n := abs(end.X-start.X) + 1
		cells := make([]Coord, 0, n)
		for i := 0; i < n; i++ {
			cells = append(cells, C(start.X+i*step, start.Y))
		}
		return cells
	}

	step := sign(end.Y - start.Y)
	n := abs(end.Y-start.Y) + 1
	cells := make([]Coord, 0, n)
	for i := 0; i < n; i++ {
		cells = append(cells, C(start.X, start.Y+i*step))
	}
	return cells
}

// PlaceBoat places a new boat along the line from start to end and returns
// its id. Any boat crossed by the line is removed entirely first.
// Nothing changes when a cell of the line is off the board.
func PlaceBoat(b *Board, start, end Coord) (BoatID, error) {
	cells := ResolveLine(start, end)
	for _, c := range cells {
		if err := b.checkBounds(c.X, c.Y); err != nil {
			return 0, err
		}
	}

	id := b.NextBoatID()
	for _, c := range cells {
		if old, ok := b.grid[c.Y][c.X].BoatID(); ok {
			if err := b.DeleteBoat(old); err != nil {
				return 0, err
			}
		}
		if err := b.SetTile(BoatTile(id, NotSeen), c.X, c.Y); err != nil {
			return 0, err
		}
	}
	return id, nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	default:
		return 0
	}
}
