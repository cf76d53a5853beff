package ui

import (
	"github.com/ingyamilmolinar/tonnetz/core/model"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

// RenderListener mirrors the model's selection into a draw cache, driven
// purely by events. It never mutates the model.
type RenderListener struct {
	keys   map[model.TileKey]struct{}
	order  []model.TileKey
	logger *game_log.Logger
}

func NewRenderListener(logger *game_log.Logger) *RenderListener {
	return &RenderListener{keys: make(map[model.TileKey]struct{}), logger: logger}
}

func (rl *RenderListener) Receive(ev model.Event) {
	switch e := ev.(type) {
	case model.TileSelected:
		rl.add(e.Key)
	case model.TileDeselected:
		rl.remove(e.Key)
	case model.SelectionCleared:
		rl.keys = make(map[model.TileKey]struct{})
		rl.order = rl.order[:0]
		rl.logger.Debugf("[RENDER] cleared %d tiles", len(e.Previous))
	case model.TileOctaveChanged:
		rl.remove(e.Key)
		rl.add(model.TileKey{Coord: e.Key.Coord, Octave: e.NewOctave})
	}
}

// Tiles returns the cached selection in event order. The slice is reused
// between frames; callers must not retain it.
func (rl *RenderListener) Tiles() []model.TileKey { return rl.order }

func (rl *RenderListener) add(k model.TileKey) {
	if _, ok := rl.keys[k]; ok {
		return
	}
	rl.keys[k] = struct{}{}
	rl.order = append(rl.order, k)
}

func (rl *RenderListener) remove(k model.TileKey) {
	if _, ok := rl.keys[k]; !ok {
		return
	}
	delete(rl.keys, k)
	for i, v := range rl.order {
		if v == k {
			rl.order = append(rl.order[:i], rl.order[i+1:]...)
			break
		}
	}
}
