package audio

// Output sinks the note commands produced by the selection. Implementations
// must tolerate a NoteOff for a pitch that never started.
type Output interface {
	NoteOn(pitch, velocity uint8) error
	NoteOff(pitch uint8) error
	Close() error
}

// Silent discards every note. It stands in when no backend is available or
// audio is disabled.
type Silent struct{}

func (Silent) NoteOn(pitch, velocity uint8) error { return nil }
func (Silent) NoteOff(pitch uint8) error          { return nil }
func (Silent) Close() error                       { return nil }
