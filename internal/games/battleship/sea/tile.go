// Package sea provides the board model for the battleship game: tiles, the
// boat registry, resizing, guessing and boat placement.
// This package is UI-agnostic and has no dependencies outside the standard library.
package sea

import (
	"fmt"
	"strconv"
)

// State tells whether a tile or a boat has been seen by the opponent.
type State bool

const (
	NotSeen State = false
	Seen    State = true
)

// String returns the string representation of a state.
func (s State) String() string {
	if s == Seen {
		return "Seen"
	}
	return "NotSeen"
}

// BoatID identifies a boat on a board. Ids are non-negative.
type BoatID int

// Tile is the content of one grid cell: either empty water or a part of a
// boat, plus whether the opponent has revealed it.
// The zero value is empty, unseen water.
type Tile struct {
	boat     BoatID
	occupied bool
	state    State
}

// EmptyTile returns an unseen tile of water.
func EmptyTile() Tile {
	return Tile{}
}

// BoatTile returns a tile that belongs to the boat with the given id.
func BoatTile(id BoatID, state State) Tile {
	return Tile{boat: id, occupied: true, state: state}
}

// BoatID returns the id of the boat on this tile.
// The second return value is false for water.
func (t Tile) BoatID() (BoatID, bool) {
	return t.boat, t.occupied
}

// HasBoat returns true if a boat occupies this tile.
func (t Tile) HasBoat() bool {
	return t.occupied
}

// State returns the visibility of this tile.
func (t Tile) State() State {
	return t.state
}

// IsVisible returns true once the tile has been revealed.
func (t Tile) IsVisible() bool {
	return t.state == Seen
}

// View marks the tile as seen. Calling it again has no effect.
func (t *Tile) View() {
	t.state = Seen
}

// Copy returns an independent tile with identical fields.
func (t Tile) Copy() Tile {
	return Tile{boat: t.boat, occupied: t.occupied, state: t.state}
}

// String returns the 4-character debug form of the tile: the boat id padded
// to three digits ("XXX" for water) followed by S or N.
func (t Tile) String() string {
	id := "XXX"
	if t.occupied {
		id = strconv.Itoa(int(t.boat))
		switch {
		case len(id) == 1:
			id = "00" + id
		case len(id) == 2:
			id = "0" + id
		case len(id) > 3:
			id = id[:3]
		}
	}

	state := "N"
	if t.state == Seen {
		state = "S"
	}
	return fmt.Sprintf("%s%s", id, state)
}
