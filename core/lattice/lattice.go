package lattice

import "math"

// Axial addresses one cell of the tonal lattice. The two axes are the
// generator directions of the Tonnetz and sit 60 degrees apart in world
// space, so cells tile the plane as a triangular mesh.
type Axial struct {
	Q, R int
}

const sqrt3 = 1.7320508075688772

// AxialToPixel returns the world-space center of c. The basis is
// e_q = (1, 0) and e_r = (1/2, sqrt3/2), both scaled by tileSize, which
// keeps every pair of adjacent centers exactly tileSize apart.
func AxialToPixel(c Axial, tileSize float64) (x, y float64) {
	x = tileSize * (float64(c.Q) + float64(c.R)/2)
	y = tileSize * float64(c.R) * sqrt3 / 2
	return
}

// PixelToAxial returns the cell whose center is nearest to the world point
// (x, y). It inverts the AxialToPixel basis exactly and then rounds in cube
// coordinates, so PixelToAxial(AxialToPixel(c)) == c for every cell.
func PixelToAxial(x, y, tileSize float64) Axial {
	r := 2 * y / (sqrt3 * tileSize)
	q := x/tileSize - r/2
	return roundCube(q, r)
}

// roundCube snaps fractional axial coordinates to the nearest cell through
// the redundant cube form (q, r, s) with q+r+s = 0: round all three, then
// recompute the component with the largest rounding error. On exact ties the
// s component is recomputed, which leaves q and r at their rounded values;
// the rule is fixed so boundary points always resolve the same way.
func roundCube(q, r float64) Axial {
	s := -q - r
	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)
	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)
	switch {
	case dq > dr && dq > ds:
		rq = -rr - rs
	case dr > ds:
		rr = -rq - rs
	}
	return Axial{Q: int(rq), R: int(rr)}
}

// Distance returns the lattice distance between a and b in unit steps.
func Distance(a, b Axial) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

// TilesAlongLine returns every cell crossed by the straight segment from a
// to b, in traversal order. The first element is a, the last is b, and
// consecutive cells are always lattice-adjacent. The result for (b, a) is
// the exact reverse: sample points are computed in a form that is symmetric
// under swapping the endpoints, so both directions round identically.
func TilesAlongLine(a, b Axial) []Axial {
	n := Distance(a, b)
	if n == 0 {
		return []Axial{a}
	}
	// Nudge both endpoints off the lattice by the same sub-epsilon amount so
	// no sample lands exactly on a cell boundary.
	aq := float64(a.Q) + 1e-6
	ar := float64(a.R) + 2e-6
	bq := float64(b.Q) + 1e-6
	br := float64(b.R) + 2e-6
	tiles := make([]Axial, 0, n+1)
	for i := 0; i <= n; i++ {
		w0 := float64(n - i)
		w1 := float64(i)
		c := roundCube((aq*w0+bq*w1)/float64(n), (ar*w0+br*w1)/float64(n))
		if len(tiles) == 0 || tiles[len(tiles)-1] != c {
			tiles = append(tiles, c)
		}
	}
	return tiles
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
