package audio

import (
	"github.com/ingyamilmolinar/tonnetz/core/model"
	"github.com/ingyamilmolinar/tonnetz/core/pitch"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

// Listener translates selection events into note commands on an Output.
// Tiles mapping outside the pitch range are dropped, not clamped, so a
// far-off lattice cell stays silent instead of sounding wrong.
type Listener struct {
	out      Output
	mapper   pitch.Mapper
	velocity uint8
	logger   *game_log.Logger
}

func NewListener(out Output, mapper pitch.Mapper, velocity uint8, logger *game_log.Logger) *Listener {
	return &Listener{out: out, mapper: mapper, velocity: velocity, logger: logger}
}

// Receive implements model.Listener.
func (l *Listener) Receive(ev model.Event) {
	switch e := ev.(type) {
	case model.TileSelected:
		l.noteOn(e.Key)
	case model.TileDeselected:
		l.noteOff(e.Key)
	case model.SelectionCleared:
		for _, k := range e.Previous {
			l.noteOff(k)
		}
	case model.TileOctaveChanged:
		l.noteOff(e.Key)
		l.noteOn(model.TileKey{Coord: e.Key.Coord, Octave: e.NewOctave})
	}
}

func (l *Listener) noteOn(k model.TileKey) {
	p, err := l.mapper.Map(k.Coord, k.Octave)
	if err != nil {
		l.logger.Debugf("[AUDIO] drop %v: %v", k, err)
		return
	}
	if err := l.out.NoteOn(uint8(p), l.velocity); err != nil {
		l.logger.Warnf("[AUDIO] note on %d: %v", p, err)
	}
}

func (l *Listener) noteOff(k model.TileKey) {
	p, err := l.mapper.Map(k.Coord, k.Octave)
	if err != nil {
		return
	}
	if err := l.out.NoteOff(uint8(p)); err != nil {
		l.logger.Warnf("[AUDIO] note off %d: %v", p, err)
	}
}
