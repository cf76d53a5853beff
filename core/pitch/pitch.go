package pitch

import (
	"errors"
	"fmt"

	"github.com/ingyamilmolinar/tonnetz/core/lattice"
)

// ErrOutOfRange reports a computed pitch outside the mapper's valid range.
var ErrOutOfRange = errors.New("pitch out of range")

// OutOfRangeError carries the offending pitch and the configured bounds so
// callers can decide whether to clamp or drop the note.
type OutOfRangeError struct {
	Pitch     int
	Low, High int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("pitch %d outside [%d, %d]", e.Pitch, e.Low, e.High)
}

func (e *OutOfRangeError) Unwrap() error { return ErrOutOfRange }

// Mapper converts lattice coordinates to pitch numbers. The origin cell at
// octave 0 maps to Base; every step along Q adds IntervalQ semitones and
// every step along R adds IntervalR. Mapper is a value type and safe to
// copy; mapping is pure.
type Mapper struct {
	Base      int
	IntervalQ int
	IntervalR int
	Low, High int
}

// NewMapper returns a Mapper with the classic Tonnetz generators: perfect
// fifths along Q and major thirds along R, centered on middle C, over the
// full MIDI range.
func NewMapper() Mapper {
	return Mapper{Base: 60, IntervalQ: 7, IntervalR: 4, Low: 0, High: 127}
}

// Map returns the pitch number for c at the given octave, or an
// OutOfRangeError when the result leaves [Low, High].
func (m Mapper) Map(c lattice.Axial, octave int) (int, error) {
	p := m.Base + octave*12 + c.Q*m.IntervalQ + c.R*m.IntervalR
	if p < m.Low || p > m.High {
		return 0, &OutOfRangeError{Pitch: p, Low: m.Low, High: m.High}
	}
	return p, nil
}

// Class returns the pitch class (0..11) for c, which is independent of the
// octave.
func (m Mapper) Class(c lattice.Axial) int {
	p := m.Base + c.Q*m.IntervalQ + c.R*m.IntervalR
	return ((p % 12) + 12) % 12
}
