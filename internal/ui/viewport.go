package ui

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ingyamilmolinar/tonnetz/core/lattice"
)

// Viewport owns zoom & pan parameters and the screen<->world transforms.
// Screen coordinates are pane-relative: the caller subtracts any fixed
// chrome (transport bar) before handing pixels in.
type Viewport struct {
	Scale    float64
	OffsetX  float64
	OffsetY  float64
	TileSize float64

	minZoom float64
	maxZoom float64
}

func NewViewport(tileSize float64) *Viewport {
	return &Viewport{Scale: 1.0, TileSize: tileSize, minZoom: 0.1, maxZoom: 10.0}
}

// ScreenToWorld converts pane pixels to world coordinates.
func (v *Viewport) ScreenToWorld(px, py float64) (wx, wy float64) {
	wx = (px - v.OffsetX) / v.Scale
	wy = (py - v.OffsetY) / v.Scale
	return
}

// WorldToScreen converts world coordinates to pane pixels.
func (v *Viewport) WorldToScreen(wx, wy float64) (px, py float64) {
	px = wx*v.Scale + v.OffsetX
	py = wy*v.Scale + v.OffsetY
	return
}

// TileAt returns the lattice cell under a pane pixel.
func (v *Viewport) TileAt(px, py float64) lattice.Axial {
	wx, wy := v.ScreenToWorld(px, py)
	return lattice.PixelToAxial(wx, wy, v.TileSize)
}

// TileCenter returns the pane pixel at the center of a lattice cell.
func (v *Viewport) TileCenter(c lattice.Axial) (px, py float64) {
	wx, wy := lattice.AxialToPixel(c, v.TileSize)
	return v.WorldToScreen(wx, wy)
}

// TilePixels is the on-screen size of one lattice step.
func (v *Viewport) TilePixels() float64 { return v.TileSize * v.Scale }

// Pan shifts the view by a pixel delta. The grid is unbounded.
func (v *Viewport) Pan(dx, dy float64) {
	v.OffsetX += dx
	v.OffsetY += dy
	v.clampOffsets()
}

// ZoomAt multiplies Scale by factor, clamped to the zoom bounds, keeping
// the world point under (px, py) fixed on screen. Non-positive or
// non-finite factors are ignored.
func (v *Viewport) ZoomAt(px, py, factor float64) {
	if factor <= 0 || math.IsInf(factor, 0) || math.IsNaN(factor) {
		return
	}
	newScale := v.Scale * factor
	if newScale < v.minZoom {
		newScale = v.minZoom
	} else if newScale > v.maxZoom {
		newScale = v.maxZoom
	}
	wx := (px - v.OffsetX) / v.Scale
	wy := (py - v.OffsetY) / v.Scale
	v.OffsetX = px - wx*newScale
	v.OffsetY = py - wy*newScale
	v.Scale = newScale
	v.clampOffsets()
}

// SetZoomBounds sets [minZoom, maxZoom] and pulls Scale inside.
func (v *Viewport) SetZoomBounds(min, max float64) {
	if min > max {
		min, max = max, min
	}
	if min <= 0 {
		min = 1e-3
	}
	v.minZoom, v.maxZoom = min, max
	if v.Scale < min {
		v.Scale = min
	} else if v.Scale > max {
		v.Scale = max
	}
}

// FitZoomBounds derives the zoom bounds from the pane size so that between
// minTiles and maxTiles lattice steps fit along the short dimension.
func (v *Viewport) FitZoomBounds(w, h, minTiles, maxTiles int) {
	short := float64(w)
	if h < w {
		short = float64(h)
	}
	if short <= 0 || minTiles <= 0 || maxTiles <= 0 {
		return
	}
	v.SetZoomBounds(short/(float64(maxTiles)*v.TileSize), short/(float64(minTiles)*v.TileSize))
}

// GeoM returns the affine transform applied to world-space drawings.
func (v *Viewport) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(v.Scale, v.Scale)
	m.Translate(v.OffsetX, v.OffsetY)
	return m
}

// clampOffsets limits the pan magnitude so panning across huge distances
// doesn't accumulate floating-point error.
func (v *Viewport) clampOffsets() {
	const limit = 1e6
	if v.OffsetX > limit {
		v.OffsetX = limit
	} else if v.OffsetX < -limit {
		v.OffsetX = -limit
	}
	if v.OffsetY > limit {
		v.OffsetY = limit
	} else if v.OffsetY < -limit {
		v.OffsetY = -limit
	}
}
