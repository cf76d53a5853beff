package ui

import (
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Transport is the top bar controlling the life runner: run/stop, single
// step, and tick interval buttons. Game reads the *Pressed flags once per
// frame via the consuming accessors.
type Transport struct {
	Running  bool
	Interval time.Duration

	runRect  image.Rectangle
	stepRect image.Rectangle
	slowRect image.Rectangle
	fastRect image.Rectangle

	runPressed  bool
	stepPressed bool
	slowPressed bool
	fastPressed bool

	leftPrev bool
}

func NewTransport() *Transport {
	return &Transport{
		runRect:  image.Rect(10, 8, 70, 30),
		stepRect: image.Rect(80, 8, 140, 30),
		slowRect: image.Rect(150, 8, 180, 30),
		fastRect: image.Rect(190, 8, 220, 30),
	}
}

func (t *Transport) Update() {
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !t.leftPrev {
		x, y := cursorPosition()
		switch {
		case pt(x, y, t.runRect):
			t.runPressed = true
		case pt(x, y, t.stepRect):
			t.stepPressed = true
		case pt(x, y, t.slowRect):
			t.slowPressed = true
		case pt(x, y, t.fastRect):
			t.fastPressed = true
		}
	}
	t.leftPrev = left
}

// RunPressed reports and consumes a click on the run/stop button.
func (t *Transport) RunPressed() bool { v := t.runPressed; t.runPressed = false; return v }

// StepPressed reports and consumes a click on the step button.
func (t *Transport) StepPressed() bool { v := t.stepPressed; t.stepPressed = false; return v }

// SlowerPressed reports and consumes a click on the slower button.
func (t *Transport) SlowerPressed() bool { v := t.slowPressed; t.slowPressed = false; return v }

// FasterPressed reports and consumes a click on the faster button.
func (t *Transport) FasterPressed() bool { v := t.fastPressed; t.fastPressed = false; return v }

func (t *Transport) Draw(dst *ebiten.Image) {
	bar := image.Rect(0, 0, dst.Bounds().Dx(), topOffset)
	drawRect(dst, bar, colBar, true)

	runCol := colRunButton
	runLabel := "Run"
	if t.Running {
		runCol = colStopButton
		runLabel = "Stop"
	}
	drawRect(dst, t.runRect, runCol, true)
	drawRect(dst, t.runRect, colButtonBorder, false)
	ebitenutil.DebugPrintAt(dst, runLabel, t.runRect.Min.X+8, t.runRect.Min.Y+3)

	drawRect(dst, t.stepRect, colStepButton, true)
	drawRect(dst, t.stepRect, colButtonBorder, false)
	ebitenutil.DebugPrintAt(dst, "Step", t.stepRect.Min.X+8, t.stepRect.Min.Y+3)

	drawRect(dst, t.slowRect, colTickButton, true)
	drawRect(dst, t.slowRect, colButtonBorder, false)
	ebitenutil.DebugPrintAt(dst, "<<", t.slowRect.Min.X+8, t.slowRect.Min.Y+3)

	drawRect(dst, t.fastRect, colTickButton, true)
	drawRect(dst, t.fastRect, colButtonBorder, false)
	ebitenutil.DebugPrintAt(dst, ">>", t.fastRect.Min.X+8, t.fastRect.Min.Y+3)

	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("tick %v", t.Interval), t.fastRect.Max.X+10, t.fastRect.Min.Y+3)
}

// pt reports whether a point is within a rectangle.
func pt(x, y int, r image.Rectangle) bool {
	return x >= r.Min.X && x < r.Max.X && y >= r.Min.Y && y < r.Max.Y
}
