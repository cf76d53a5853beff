package model

import "github.com/ingyamilmolinar/tonnetz/core/lattice"

// TileKey identifies one selectable tile: a lattice cell at an octave. Two
// keys are equal iff both components match.
type TileKey struct {
	Coord  lattice.Axial
	Octave int
}

// Event is the closed set of model notifications. Every mutation broadcasts
// exactly one Event; listeners switch on the concrete type. Events are
// immutable and never retained by the model after dispatch.
type Event interface {
	modelEvent()
}

// TileSelected is broadcast when a key enters the selection.
type TileSelected struct {
	Key TileKey
}

func (TileSelected) modelEvent() {}

// TileDeselected is broadcast when a key leaves the selection.
type TileDeselected struct {
	Key TileKey
}

func (TileDeselected) modelEvent() {}

// SelectionCleared is broadcast by Clear. Previous holds the selection as it
// was, in insertion order; it is empty when the selection already was.
type SelectionCleared struct {
	Previous []TileKey
}

func (SelectionCleared) modelEvent() {}

// TileOctaveChanged is broadcast when a selected tile moves to another
// octave. Key identifies the tile at its old octave.
type TileOctaveChanged struct {
	Key       TileKey
	NewOctave int
}

func (TileOctaveChanged) modelEvent() {}

// Listener receives model events synchronously, on the mutating goroutine.
// Implementations must return quickly and must not mutate the model from
// inside Receive.
type Listener interface {
	Receive(Event)
}
