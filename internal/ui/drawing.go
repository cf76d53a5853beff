package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawLine draws a line segment in screen pixels. It is defined as a
// variable so tests can override it to capture draw calls.
var drawLine = func(dst *ebiten.Image, x1, y1, x2, y2 float64, c color.Color, thick float32) {
	vector.StrokeLine(dst, float32(x1), float32(y1), float32(x2), float32(y2), thick, c, true)
}

// drawCircle draws a filled circle. Overridable in tests.
var drawCircle = func(dst *ebiten.Image, x, y, radius float64, c color.Color) {
	vector.DrawFilledCircle(dst, float32(x), float32(y), float32(radius), c, true)
}

// drawRect draws a rectangle. Overridable in tests.
var drawRect = func(dst *ebiten.Image, r image.Rectangle, c color.Color, filled bool) {
	if filled {
		vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), c, false)
	} else {
		vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), 1, c, false)
	}
}

/* ------------------------------------------------------------------
   cache rendered label images per string, tinted at draw time
   ------------------------------------------------------------------ */

var labelCache = map[string]*ebiten.Image{}

func labelImage(s string) *ebiten.Image {
	if img, ok := labelCache[s]; ok {
		return img
	}
	img := ebiten.NewImage(len(s)*6+2, 16)
	ebitenutil.DebugPrint(img, s)
	labelCache[s] = img
	return img
}

// drawLabel prints s with its top-left at (x, y) in the given color.
// Overridable in tests.
var drawLabel = func(dst *ebiten.Image, s string, x, y int, c color.Color) {
	img := labelImage(s)
	op := &ebiten.DrawImageOptions{}
	r, g, b, a := c.RGBA()
	op.ColorScale.Scale(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(img, op)
}

// labelWidth is the pixel width of s in the debug font.
func labelWidth(s string) int { return len(s) * 6 }
