package ui

import (
	"io"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ingyamilmolinar/tonnetz/core/lattice"
	"github.com/ingyamilmolinar/tonnetz/core/model"
	"github.com/ingyamilmolinar/tonnetz/core/pitch"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

var testLogger *game_log.Logger

func init() {
	testLogger = game_log.New(io.Discard, game_log.LevelError)
}

var (
	noMouse = func(ebiten.MouseButton) bool { return false }
	noKey   = func(ebiten.Key) bool { return false }
	noWheel = func() (float64, float64) { return 0, 0 }
)

func at(x, y int) func() (int, int) {
	return func() (int, int) { return x, y }
}

func newTestGame() *Game {
	m := model.New(testLogger)
	g := New(m, pitch.NewMapper(), Options{}, testLogger)
	g.Layout(640, 480)
	return g
}

// tilePixel returns the window pixel at the center of a lattice cell.
func tilePixel(g *Game, q, r int) (int, int) {
	px, py := g.view.TileCenter(lattice.Axial{Q: q, R: r})
	return int(math.Round(px)), int(math.Round(py)) + topOffset
}

// click presses a button at (x,y) for one frame and releases it the next.
func click(g *Game, x, y int, btn ebiten.MouseButton) {
	restore := SetInputForTest(at(x, y),
		func(b ebiten.MouseButton) bool { return b == btn }, noKey, noWheel)
	g.Update()
	restore()
	restore = SetInputForTest(at(x, y), noMouse, noKey, noWheel)
	g.Update()
	restore()
}

// drag holds the left button from (x1,y1) to (x2,y2), then releases.
func drag(g *Game, x1, y1, x2, y2 int) {
	held := func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft }
	restore := SetInputForTest(at(x1, y1), held, noKey, noWheel)
	g.Update()
	restore()
	restore = SetInputForTest(at(x2, y2), held, noKey, noWheel)
	g.Update()
	restore()
	restore = SetInputForTest(at(x2, y2), noMouse, noKey, noWheel)
	g.Update()
	restore()
}

// pressKey holds a key for one frame and releases it the next.
func pressKey(g *Game, key ebiten.Key) {
	restore := SetInputForTest(at(0, 0), noMouse,
		func(k ebiten.Key) bool { return k == key }, noWheel)
	g.Update()
	restore()
	restore = SetInputForTest(at(0, 0), noMouse, noKey, noWheel)
	g.Update()
	restore()
}

func TestLayoutCentersOrigin(t *testing.T) {
	g := newTestGame()
	if g.view.OffsetX != 320 || g.view.OffsetY != 220 {
		t.Fatalf("offsets=(%f,%f) want (320,220)", g.view.OffsetX, g.view.OffsetY)
	}
	want := 440.0 / (5 * 50)
	if math.Abs(g.view.Scale-want) > 1e-9 {
		t.Fatalf("scale=%f want %f", g.view.Scale, want)
	}
	if c := g.view.TileAt(320, 220); c != (lattice.Axial{}) {
		t.Fatalf("origin tile=%v want (0,0)", c)
	}
}

func TestClickTogglesTile(t *testing.T) {
	g := newTestGame()
	x, y := tilePixel(g, 0, 0)

	click(g, x, y, ebiten.MouseButtonLeft)
	key := model.TileKey{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0}
	if !g.model.IsSelected(key) {
		t.Fatalf("tile not selected after click: %v", g.model.Selection())
	}

	click(g, x, y, ebiten.MouseButtonLeft)
	if g.model.Len() != 0 {
		t.Fatalf("tile still selected after second click: %v", g.model.Selection())
	}
}

func TestClickBelowDragThresholdToggles(t *testing.T) {
	g := newTestGame()
	x, y := tilePixel(g, 0, 0)
	drag(g, x, y, x+2, y+1)
	if g.model.Len() != 1 {
		t.Fatalf("small movement should still toggle, got %v", g.model.Selection())
	}
}

func TestDragPaintsTiles(t *testing.T) {
	g := newTestGame()
	x1, y1 := tilePixel(g, 0, 0)
	x2, y2 := tilePixel(g, 2, 0)

	drag(g, x1, y1, x2, y2)

	want := []model.TileKey{
		{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0},
		{Coord: lattice.Axial{Q: 1, R: 0}, Octave: 0},
		{Coord: lattice.Axial{Q: 2, R: 0}, Octave: 0},
	}
	if !reflect.DeepEqual(g.model.Selection(), want) {
		t.Fatalf("selection=%v want %v", g.model.Selection(), want)
	}
}

func TestDragDoesNotToggleOnRelease(t *testing.T) {
	g := newTestGame()
	x1, y1 := tilePixel(g, 0, 0)
	x2, y2 := tilePixel(g, 1, 0)
	drag(g, x1, y1, x2, y2)
	if !g.model.IsSelected(model.TileKey{Coord: lattice.Axial{Q: 1, R: 0}, Octave: 0}) {
		t.Fatalf("drag end tile not selected: %v", g.model.Selection())
	}
	if g.model.Len() != 2 {
		t.Fatalf("expected exactly the painted tiles, got %v", g.model.Selection())
	}
}

func TestWheelZoomKeepsCursorTile(t *testing.T) {
	g := newTestGame()
	mx, my := 411, 96
	before := g.view.TileAt(float64(mx), float64(my-topOffset))
	scaleBefore := g.view.Scale

	wheelVal := 1.0
	restore := SetInputForTest(at(mx, my), noMouse, noKey,
		func() (float64, float64) { v := wheelVal; wheelVal = 0; return 0, v })
	g.Update()
	restore()

	if math.Abs(g.view.Scale-scaleBefore*1.1) > 1e-9 {
		t.Fatalf("scale=%f want %f", g.view.Scale, scaleBefore*1.1)
	}
	if got := g.view.TileAt(float64(mx), float64(my-topOffset)); got != before {
		t.Fatalf("tile under cursor changed: %v -> %v", before, got)
	}
}

func TestWheelOverTransportBarIgnored(t *testing.T) {
	g := newTestGame()
	scaleBefore := g.view.Scale
	restore := SetInputForTest(at(100, 10), noMouse, noKey,
		func() (float64, float64) { return 0, 1 })
	g.Update()
	restore()
	if g.view.Scale != scaleBefore {
		t.Fatalf("wheel over bar changed scale: %f", g.view.Scale)
	}
}

func TestClearKeyEmptiesSelection(t *testing.T) {
	g := newTestGame()
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0})
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 1, R: 0}, Octave: 0})

	pressKey(g, ebiten.KeyC)

	if g.model.Len() != 0 {
		t.Fatalf("selection not cleared: %v", g.model.Selection())
	}
}

func TestSpaceTogglesRunner(t *testing.T) {
	g := newTestGame()
	pressKey(g, ebiten.KeySpace)
	if !g.runner.Running() {
		t.Fatalf("runner not started by space")
	}
	pressKey(g, ebiten.KeySpace)
	if g.runner.Running() {
		t.Fatalf("runner not stopped by second space")
	}
}

func TestStepKeyAdvancesGeneration(t *testing.T) {
	g := newTestGame()
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: -1}, Octave: 0})
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0})
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: 1}, Octave: 0})

	pressKey(g, ebiten.KeyN)

	want := []model.TileKey{
		{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0},
		{Coord: lattice.Axial{Q: -1, R: 0}, Octave: 0},
		{Coord: lattice.Axial{Q: 1, R: 0}, Octave: 0},
	}
	if !reflect.DeepEqual(g.model.Selection(), want) {
		t.Fatalf("selection=%v want %v", g.model.Selection(), want)
	}
}

func TestTransportRunButtonTogglesRunner(t *testing.T) {
	g := newTestGame()
	r := g.trans.runRect

	click(g, r.Min.X+1, r.Min.Y+1, ebiten.MouseButtonLeft)
	if !g.runner.Running() {
		t.Fatalf("runner not started by transport button")
	}
	if g.model.Len() != 0 {
		t.Fatalf("bar click leaked into the editor: %v", g.model.Selection())
	}

	click(g, r.Min.X+1, r.Min.Y+1, ebiten.MouseButtonLeft)
	if g.runner.Running() {
		t.Fatalf("runner not stopped by transport button")
	}
}

func TestTransportIntervalButtons(t *testing.T) {
	g := newTestGame()
	if g.runner.Interval() != 2*time.Second {
		t.Fatalf("default interval=%v", g.runner.Interval())
	}
	click(g, g.trans.slowRect.Min.X+1, g.trans.slowRect.Min.Y+1, ebiten.MouseButtonLeft)
	if g.runner.Interval() != 4*time.Second {
		t.Fatalf("interval after slower=%v", g.runner.Interval())
	}
	click(g, g.trans.fastRect.Min.X+1, g.trans.fastRect.Min.Y+1, ebiten.MouseButtonLeft)
	click(g, g.trans.fastRect.Min.X+1, g.trans.fastRect.Min.Y+1, ebiten.MouseButtonLeft)
	if g.runner.Interval() != time.Second {
		t.Fatalf("interval after faster=%v", g.runner.Interval())
	}
}

func TestTransportStepButtonAdvances(t *testing.T) {
	g := newTestGame()
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: -1}, Octave: 0})
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0})
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: 1}, Octave: 0})

	click(g, g.trans.stepRect.Min.X+1, g.trans.stepRect.Min.Y+1, ebiten.MouseButtonLeft)

	want := []model.TileKey{
		{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0},
		{Coord: lattice.Axial{Q: -1, R: 0}, Octave: 0},
		{Coord: lattice.Axial{Q: 1, R: 0}, Octave: 0},
	}
	if !reflect.DeepEqual(g.model.Selection(), want) {
		t.Fatalf("selection=%v want %v", g.model.Selection(), want)
	}
	if g.runner.Running() {
		t.Fatalf("step button should not start the runner")
	}
}

func TestRightClickCyclesOctave(t *testing.T) {
	g := newTestGame()
	key := model.TileKey{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0}
	g.model.Toggle(key)
	x, y := tilePixel(g, 0, 0)

	click(g, x, y, ebiten.MouseButtonRight)

	want := model.TileKey{Coord: key.Coord, Octave: 1}
	if !g.model.IsSelected(want) || g.model.Len() != 1 {
		t.Fatalf("selection=%v want [%v]", g.model.Selection(), want)
	}
}

func TestRightClickOnEmptyTileNoop(t *testing.T) {
	g := newTestGame()
	x, y := tilePixel(g, 3, -2)
	click(g, x, y, ebiten.MouseButtonRight)
	if g.model.Len() != 0 {
		t.Fatalf("right click created a selection: %v", g.model.Selection())
	}
}

func TestOctaveKeysClamp(t *testing.T) {
	g := newTestGame()
	for i := 0; i < 5; i++ {
		pressKey(g, ebiten.KeyPeriod)
	}
	if g.octave != 2 {
		t.Fatalf("octave=%d want clamp at 2", g.octave)
	}
	for i := 0; i < 10; i++ {
		pressKey(g, ebiten.KeyComma)
	}
	if g.octave != -2 {
		t.Fatalf("octave=%d want clamp at -2", g.octave)
	}

	x, y := tilePixel(g, 0, 0)
	click(g, x, y, ebiten.MouseButtonLeft)
	if !g.model.IsSelected(model.TileKey{Coord: lattice.Axial{}, Octave: -2}) {
		t.Fatalf("new selection should use the active octave: %v", g.model.Selection())
	}
}

func TestMiddleDragPans(t *testing.T) {
	g := newTestGame()
	held := func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonMiddle }

	restore := SetInputForTest(at(100, 100), held, noKey, noWheel)
	g.Update()
	restore()
	restore = SetInputForTest(at(140, 90), held, noKey, noWheel)
	g.Update()
	restore()

	if g.view.OffsetX != 360 || g.view.OffsetY != 210 {
		t.Fatalf("offsets=(%f,%f) want (360,210)", g.view.OffsetX, g.view.OffsetY)
	}
}

func TestArrowKeyPans(t *testing.T) {
	g := newTestGame()
	restore := SetInputForTest(at(0, 0), noMouse,
		func(k ebiten.Key) bool { return k == ebiten.KeyArrowLeft }, noWheel)
	g.Update()
	restore()
	if g.view.OffsetX != 320+panStep {
		t.Fatalf("OffsetX=%f want %d", g.view.OffsetX, 320+panStep)
	}
}

func TestRunnerFiresDuringUpdate(t *testing.T) {
	g := newTestGame()
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: -1}, Octave: 0})
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0})
	g.model.Toggle(model.TileKey{Coord: lattice.Axial{Q: 0, R: 1}, Octave: 0})

	pressKey(g, ebiten.KeySpace)

	// Start fires the first generation on the next Update.
	want := []model.TileKey{
		{Coord: lattice.Axial{Q: 0, R: 0}, Octave: 0},
		{Coord: lattice.Axial{Q: -1, R: 0}, Octave: 0},
		{Coord: lattice.Axial{Q: 1, R: 0}, Octave: 0},
	}
	if !reflect.DeepEqual(g.model.Selection(), want) {
		t.Fatalf("selection=%v want %v", g.model.Selection(), want)
	}
}
