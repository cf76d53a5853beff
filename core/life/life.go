// Package life steps Conway's Game of Life over the selected tiles.
// Cells live on axial coordinates; the octave rides along as payload.
package life

import (
	"sort"

	"github.com/ingyamilmolinar/tonnetz/core/lattice"
	"github.com/ingyamilmolinar/tonnetz/core/model"
)

// neighborOffsets is the Moore neighborhood on axial coordinates.
var neighborOffsets = [8]lattice.Axial{
	{Q: -1, R: -1}, {Q: -1, R: 0}, {Q: -1, R: 1},
	{Q: 0, R: -1}, {Q: 0, R: 1},
	{Q: 1, R: -1}, {Q: 1, R: 0}, {Q: 1, R: 1},
}

// Next computes one generation. Cells with 2 or 3 live neighbors survive
// and keep their octave; empty coordinates with exactly 3 live neighbors
// are born at birthOctave. When the same coordinate appears at several
// octaves, the first occurrence wins. Survivors come back in input order,
// births after them sorted by coordinate.
func Next(cells []model.TileKey, birthOctave int) []model.TileKey {
	if len(cells) == 0 {
		return nil
	}

	octaves := make(map[lattice.Axial]int, len(cells))
	order := make([]lattice.Axial, 0, len(cells))
	for _, k := range cells {
		if _, ok := octaves[k.Coord]; ok {
			continue
		}
		octaves[k.Coord] = k.Octave
		order = append(order, k.Coord)
	}

	counts := make(map[lattice.Axial]int, len(octaves)*4)
	for c := range octaves {
		for _, d := range neighborOffsets {
			counts[lattice.Axial{Q: c.Q + d.Q, R: c.R + d.R}]++
		}
	}

	var next []model.TileKey
	for _, c := range order {
		if n := counts[c]; n == 2 || n == 3 {
			next = append(next, model.TileKey{Coord: c, Octave: octaves[c]})
		}
	}

	var born []lattice.Axial
	for c, n := range counts {
		if n != 3 {
			continue
		}
		if _, live := octaves[c]; live {
			continue
		}
		born = append(born, c)
	}
	sort.Slice(born, func(i, j int) bool {
		if born[i].Q != born[j].Q {
			return born[i].Q < born[j].Q
		}
		return born[i].R < born[j].R
	})
	for _, c := range born {
		next = append(next, model.TileKey{Coord: c, Octave: birthOctave})
	}
	return next
}
