package ui

import "github.com/ingyamilmolinar/tonnetz/core/lattice"

// DefaultTileSize is the world-space px between lattice vertices.
const DefaultTileSize = 50.0

// edgeDirs are the three axial directions that cover every lattice edge
// exactly once when drawn from each vertex.
var edgeDirs = [3]lattice.Axial{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: 1, R: -1},
}

// Grid computes which part of the lattice a viewport can see.
type Grid struct {
	TileSize float64
}

func NewGrid(tileSize float64) *Grid { return &Grid{TileSize: tileSize} }

// Visible returns the inclusive axial ranges covering a w x h pane under v.
// The basis is non-orthogonal, so the ranges come from the four pane
// corners, padded so tiles whose centers sit just outside still draw their
// edges into the pane.
func (g *Grid) Visible(v *Viewport, w, h int) (minQ, maxQ, minR, maxR int) {
	corners := [4][2]float64{
		{0, 0},
		{float64(w), 0},
		{0, float64(h)},
		{float64(w), float64(h)},
	}
	const pad = 2
	for i, p := range corners {
		c := v.TileAt(p[0], p[1])
		if i == 0 {
			minQ, maxQ, minR, maxR = c.Q, c.Q, c.R, c.R
			continue
		}
		if c.Q < minQ {
			minQ = c.Q
		}
		if c.Q > maxQ {
			maxQ = c.Q
		}
		if c.R < minR {
			minR = c.R
		}
		if c.R > maxR {
			maxR = c.R
		}
	}
	return minQ - pad, maxQ + pad, minR - pad, maxR + pad
}
