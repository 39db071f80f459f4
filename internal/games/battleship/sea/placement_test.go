package sea_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-battleship/internal/games/battleship/sea"
)

func TestOrientationOf(t *testing.T) {
	tests := []struct {
		name       string
		start, end sea.Coord
		expected   sea.Orientation
	}{
		{"single cell", sea.C(2, 2), sea.C(2, 2), sea.Horizontal},
		{"right", sea.C(0, 0), sea.C(3, 0), sea.Horizontal},
		{"left", sea.C(3, 0), sea.C(0, 0), sea.Horizontal},
		{"down", sea.C(0, 0), sea.C(0, 3), sea.Vertical},
		{"up", sea.C(0, 3), sea.C(0, 0), sea.Vertical},
		{"diagonal tie favors horizontal", sea.C(0, 0), sea.C(2, 2), sea.Horizontal},
		{"mostly horizontal", sea.C(0, 0), sea.C(3, 1), sea.Horizontal},
		{"mostly vertical", sea.C(0, 0), sea.C(1, 3), sea.Vertical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sea.OrientationOf(tc.start, tc.end); got != tc.expected {
				t.Errorf("OrientationOf(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.expected)
			}
		})
	}
}

func TestResolveLine(t *testing.T) {
	tests := []struct {
		name       string
		start, end sea.Coord
		expected   []sea.Coord
	}{
		{
			name:     "single cell",
			start:    sea.C(1, 1),
			end:      sea.C(1, 1),
			expected: []sea.Coord{sea.C(1, 1)},
		},
		{
			name:     "rightward",
			start:    sea.C(0, 0),
			end:      sea.C(2, 0),
			expected: []sea.Coord{sea.C(0, 0), sea.C(1, 0), sea.C(2, 0)},
		},
		{
			name:     "leftward keeps drag order",
			start:    sea.C(3, 1),
			end:      sea.C(1, 1),
			expected: []sea.Coord{sea.C(3, 1), sea.C(2, 1), sea.C(1, 1)},
		},
		{
			name:     "upward",
			start:    sea.C(2, 2),
			end:      sea.C(2, 0),
			expected: []sea.Coord{sea.C(2, 2), sea.C(2, 1), sea.C(2, 0)},
		},
		{
			name:     "diagonal clips to start row",
			start:    sea.C(0, 0),
			end:      sea.C(3, 1),
			expected: []sea.Coord{sea.C(0, 0), sea.C(1, 0), sea.C(2, 0), sea.C(3, 0)},
		},
		{
			name:     "diagonal clips to start column",
			start:    sea.C(1, 0),
			end:      sea.C(0, 2),
			expected: []sea.Coord{sea.C(1, 0), sea.C(1, 1), sea.C(1, 2)},
		},
		{
			name:     "exact diagonal becomes horizontal",
			start:    sea.C(0, 2),
			end:      sea.C(2, 0),
			expected: []sea.Coord{sea.C(0, 2), sea.C(1, 2), sea.C(2, 2)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := sea.ResolveLine(tc.start, tc.end)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("ResolveLine(%v, %v) = %v, want %v", tc.start, tc.end, got, tc.expected)
			}
		})
	}
}

func TestPlaceBoatAssignsSequentialIDs(t *testing.T) {
	b := newBoard(t, 5, 5)

	first := place(t, b, sea.C(0, 0), sea.C(1, 0))
	second := place(t, b, sea.C(0, 2), sea.C(0, 4))
	third := place(t, b, sea.C(4, 4), sea.C(4, 4))

	if first != 0 || second != 1 || third != 2 {
		t.Errorf("ids = %d, %d, %d, want 0, 1, 2", first, second, third)
	}

	// Ids continue from the highest one, gaps are not refilled
	if err := b.DeleteBoat(second); err != nil {
		t.Fatalf("DeleteBoat failed: %v", err)
	}
	if next := place(t, b, sea.C(2, 2), sea.C(3, 2)); next != 3 {
		t.Errorf("id after deleting a middle boat = %d, want 3", next)
	}
}

func TestPlaceBoatWritesUnseenTiles(t *testing.T) {
	b := newBoard(t, 5, 5)
	id := place(t, b, sea.C(1, 3), sea.C(1, 1))

	for y := 1; y <= 3; y++ {
		tile, _ := b.TileAt(1, y)
		tid, ok := tile.BoatID()
		if !ok || tid != id {
			t.Errorf("tile (1, %d) boat = (%d, %v), want (%d, true)", y, tid, ok, id)
		}
		if tile.IsVisible() {
			t.Errorf("tile (1, %d) should be unseen", y)
		}
	}
	if state, _ := b.BoatState(id); state != sea.NotSeen {
		t.Errorf("new boat state = %v, want NotSeen", state)
	}
	if got := len(b.BoatCoords(id)); got != 3 {
		t.Errorf("boat has %d tiles, want 3", got)
	}
}

func TestPlaceBoatDestroysCrossedBoats(t *testing.T) {
	b := newBoard(t, 6, 6)
	vertical := place(t, b, sea.C(2, 0), sea.C(2, 4))
	other := place(t, b, sea.C(5, 5), sea.C(5, 5))

	// Crosses the vertical boat at (2, 2) only
	crossing := place(t, b, sea.C(0, 2), sea.C(3, 2))

	if b.HasBoat(vertical) {
		t.Error("crossed boat should vanish from the registry")
	}
	for _, y := range []int{0, 1, 3, 4} {
		tile, _ := b.TileAt(2, y)
		if tile.HasBoat() {
			t.Errorf("tile (2, %d) outside the overlap should be water again", y)
		}
	}
	if tile, _ := b.TileAt(2, 2); !tile.HasBoat() {
		t.Error("overlap cell should belong to the new boat")
	} else if id, _ := tile.BoatID(); id != crossing {
		t.Errorf("overlap cell boat = %d, want %d", id, crossing)
	}
	if !b.HasBoat(other) {
		t.Error("uncrossed boat should survive")
	}
	assertConsistent(t, b)
}

func TestPlaceBoatOverSameCellsReplaces(t *testing.T) {
	b := newBoard(t, 4, 1)
	old := place(t, b, sea.C(0, 0), sea.C(3, 0))
	replacement := place(t, b, sea.C(0, 0), sea.C(3, 0))

	if b.HasBoat(old) {
		t.Error("old boat should be destroyed")
	}
	if b.BoatCount() != 1 || !b.HasBoat(replacement) {
		t.Errorf("registry = %v, want only boat %d", b.Boats(), replacement)
	}
}

func TestPlaceBoatOutOfBoundsLeavesBoardUntouched(t *testing.T) {
	b := newBoard(t, 3, 3)
	id := place(t, b, sea.C(0, 1), sea.C(2, 1))
	before := b.String()

	tests := []struct {
		name       string
		start, end sea.Coord
	}{
		{"end past right edge", sea.C(0, 1), sea.C(5, 1)},
		{"start off board", sea.C(-1, 0), sea.C(1, 0)},
		{"end below", sea.C(1, 0), sea.C(1, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sea.PlaceBoat(b, tc.start, tc.end)
			if !errors.Is(err, sea.ErrOutOfBounds) {
				t.Errorf("PlaceBoat error = %v, want ErrOutOfBounds", err)
			}
			if b.String() != before {
				t.Error("failed placement modified the board")
			}
			if !b.HasBoat(id) || b.BoatCount() != 1 {
				t.Errorf("registry changed: %v", b.Boats())
			}
		})
	}
}
