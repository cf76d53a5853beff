package model

import (
	"github.com/ingyamilmolinar/tonnetz/core/lattice"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

// Model owns the set of selected tiles and notifies listeners after every
// mutation. State changes complete before dispatch begins, so a failing
// listener can never corrupt the selection. All methods must be called from
// a single goroutine.
type Model struct {
	selected  map[TileKey]struct{}
	order     []TileKey
	listeners []Listener

	octaveMin int
	octaveMax int

	logger *game_log.Logger
}

func New(logger *game_log.Logger) *Model {
	return &Model{
		selected:  map[TileKey]struct{}{},
		octaveMin: -2,
		octaveMax: 2,
		logger:    logger,
	}
}

// SetOctaveRange configures the cycle used by CycleOctave. Inverted bounds
// are swapped.
func (m *Model) SetOctaveRange(min, max int) {
	if min > max {
		min, max = max, min
	}
	m.octaveMin, m.octaveMax = min, max
}

// Register appends l to the dispatch list. Listeners are notified in
// registration order; registering during a dispatch takes effect from the
// next event.
func (m *Model) Register(l Listener) {
	m.listeners = append(m.listeners, l)
	m.logger.Debugf("[MODEL] registered listener %T (%d total)", l, len(m.listeners))
}

// Unregister removes l by identity. Unknown listeners are ignored.
func (m *Model) Unregister(l Listener) {
	for i, reg := range m.listeners {
		if reg == l {
			m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
			m.logger.Debugf("[MODEL] unregistered listener %T (%d left)", l, len(m.listeners))
			return
		}
	}
}

// Toggle selects key when absent and deselects it when present,
// broadcasting exactly one event either way.
func (m *Model) Toggle(key TileKey) {
	if m.IsSelected(key) {
		m.remove(key)
		m.logger.Debugf("[MODEL] deselected %v oct=%d", key.Coord, key.Octave)
		m.broadcast(TileDeselected{Key: key})
		return
	}
	m.add(key)
	m.logger.Debugf("[MODEL] selected %v oct=%d", key.Coord, key.Octave)
	m.broadcast(TileSelected{Key: key})
}

// SelectRange selects every tile on the straight line from a to b at the
// given octave, broadcasting TileSelected per newly selected tile in
// traversal order. Tiles already selected stay silent.
func (m *Model) SelectRange(a, b lattice.Axial, octave int) {
	line := lattice.TilesAlongLine(a, b)
	added := 0
	for _, c := range line {
		key := TileKey{Coord: c, Octave: octave}
		if m.IsSelected(key) {
			continue
		}
		m.add(key)
		added++
		m.broadcast(TileSelected{Key: key})
	}
	m.logger.Debugf("[MODEL] select range %v -> %v oct=%d: %d of %d tiles new", a, b, octave, added, len(line))
}

// Clear empties the selection and broadcasts one SelectionCleared carrying
// the previous keys in insertion order. An already empty selection still
// broadcasts, with an empty previous set, so listeners stay synchronized
// without special-casing no-ops.
func (m *Model) Clear() {
	prev := m.order
	m.order = nil
	m.selected = map[TileKey]struct{}{}
	m.logger.Debugf("[MODEL] cleared %d tiles", len(prev))
	m.broadcast(SelectionCleared{Previous: prev})
}

// CycleOctave moves a selected tile to the next octave in the configured
// range, wrapping at the top, and broadcasts TileOctaveChanged. The moved
// tile keeps its position in the insertion order. When the destination key
// is already selected the two entries merge. Unselected keys are ignored.
func (m *Model) CycleOctave(key TileKey) {
	if !m.IsSelected(key) {
		return
	}
	span := m.octaveMax - m.octaveMin + 1
	next := mod(key.Octave-m.octaveMin+1, span) + m.octaveMin
	dst := TileKey{Coord: key.Coord, Octave: next}
	delete(m.selected, key)
	if _, merged := m.selected[dst]; merged {
		m.removeFromOrder(key)
	} else {
		m.selected[dst] = struct{}{}
		for i, k := range m.order {
			if k == key {
				m.order[i] = dst
				break
			}
		}
	}
	m.logger.Debugf("[MODEL] octave %v: %d -> %d", key.Coord, key.Octave, next)
	m.broadcast(TileOctaveChanged{Key: key, NewOctave: next})
}

// Apply replaces the selection with keys: TileDeselected is broadcast for
// every removed key in insertion order, then TileSelected for every added
// key in argument order. Keys present before and after stay silent.
func (m *Model) Apply(keys []TileKey) {
	want := make(map[TileKey]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	var removed []TileKey
	for _, k := range m.order {
		if _, ok := want[k]; !ok {
			removed = append(removed, k)
		}
	}
	for _, k := range removed {
		m.remove(k)
		m.broadcast(TileDeselected{Key: k})
	}
	added := 0
	for _, k := range keys {
		if m.IsSelected(k) {
			continue
		}
		m.add(k)
		added++
		m.broadcast(TileSelected{Key: k})
	}
	m.logger.Debugf("[MODEL] applied selection: -%d +%d (%d now)", len(removed), added, len(m.order))
}

func (m *Model) IsSelected(key TileKey) bool {
	_, ok := m.selected[key]
	return ok
}

// Selection returns the selected keys in insertion order. The slice is a
// copy and safe to keep.
func (m *Model) Selection() []TileKey {
	out := make([]TileKey, len(m.order))
	copy(out, m.order)
	return out
}

// SelectedAt returns the first selected key on the given cell, in insertion
// order, if any.
func (m *Model) SelectedAt(c lattice.Axial) (TileKey, bool) {
	for _, k := range m.order {
		if k.Coord == c {
			return k, true
		}
	}
	return TileKey{}, false
}

func (m *Model) Len() int { return len(m.order) }

func (m *Model) add(key TileKey) {
	m.selected[key] = struct{}{}
	m.order = append(m.order, key)
}

func (m *Model) remove(key TileKey) {
	delete(m.selected, key)
	m.removeFromOrder(key)
}

func (m *Model) removeFromOrder(key TileKey) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// broadcast dispatches ev to a snapshot of the listener list, so listeners
// added or removed mid-dispatch never affect the current event.
func (m *Model) broadcast(ev Event) {
	snapshot := make([]Listener, len(m.listeners))
	copy(snapshot, m.listeners)
	for _, l := range snapshot {
		m.deliver(l, ev)
	}
}

// deliver isolates listener panics: one failing listener must not keep the
// rest from receiving the event.
func (m *Model) deliver(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Errorf("[MODEL] listener %T panicked on %T: %v", l, ev, r)
		}
	}()
	l.Receive(ev)
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
