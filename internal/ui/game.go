package ui

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/ingyamilmolinar/tonnetz/core/lattice"
	"github.com/ingyamilmolinar/tonnetz/core/life"
	"github.com/ingyamilmolinar/tonnetz/core/model"
	"github.com/ingyamilmolinar/tonnetz/core/pitch"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

const (
	topOffset = 40 // transport-bar height in px
	panStep   = 8  // arrow-key pan speed in px per frame
)

/* ───────────────────────── options ───────────────────────── */

// Options carries the view tuning from config. Zero fields fall back to
// the defaults of the original program.
type Options struct {
	TileSize      float64
	MinTiles      int
	MaxTiles      int
	InitialTiles  int
	ZoomStep      float64       // wheel zoom factor per notch
	LabelMinPx    float64       // hide note labels below this tile size
	DragThreshold float64       // squared px before a press becomes a drag
	LifeInterval  time.Duration // life tick period
	Octave        int           // starting active octave
	OctaveMin     int
	OctaveMax     int
	Flats         bool // prefer flat spellings over sharps
}

func (o *Options) applyDefaults() {
	if o.TileSize <= 0 {
		o.TileSize = DefaultTileSize
	}
	if o.MinTiles <= 0 {
		o.MinTiles = 3
	}
	if o.MaxTiles <= 0 {
		o.MaxTiles = 18
	}
	if o.InitialTiles <= 0 {
		o.InitialTiles = 5
	}
	if o.ZoomStep <= 1 {
		o.ZoomStep = 1.1
	}
	if o.LabelMinPx <= 0 {
		o.LabelMinPx = 25
	}
	if o.DragThreshold <= 0 {
		o.DragThreshold = 25
	}
	if o.LifeInterval <= 0 {
		o.LifeInterval = life.DefaultInterval
	}
	if o.OctaveMin == 0 && o.OctaveMax == 0 {
		o.OctaveMin, o.OctaveMax = -2, 2
	}
	if o.OctaveMin > o.OctaveMax {
		o.OctaveMin, o.OctaveMax = o.OctaveMax, o.OctaveMin
	}
	if o.Octave < o.OctaveMin {
		o.Octave = o.OctaveMin
	}
	if o.Octave > o.OctaveMax {
		o.Octave = o.OctaveMax
	}
}

/* ───────────────────────── game ───────────────────────── */

// Game implements ebiten.Game: it translates gestures into viewport and
// model commands and draws the lattice with the current selection.
type Game struct {
	/* subsystems */
	view   *Viewport
	grid   *Grid
	model  *model.Model
	mapper pitch.Mapper
	render *RenderListener
	trans  *Transport
	runner *life.Runner
	opts   Options
	logger *game_log.Logger

	/* editor state */
	octave       int
	leftPrev     bool
	rightPrev    bool
	middlePrev   bool
	pendingClick bool
	dragging     bool
	pressX       int
	pressY       int
	panX, panY   int
	lastTile     lattice.Axial

	/* key state */
	spacePrev   bool
	stepPrev    bool
	clearPrev   bool
	octUpPrev   bool
	octDownPrev bool

	/* window */
	winW, winH int
}

// New wires the game to an existing model. The render listener registers
// here, so callers registering further listeners get them dispatched after
// the draw cache is up to date.
func New(m *model.Model, mapper pitch.Mapper, opts Options, logger *game_log.Logger) *Game {
	opts.applyDefaults()
	g := &Game{
		view:   NewViewport(opts.TileSize),
		grid:   NewGrid(opts.TileSize),
		model:  m,
		mapper: mapper,
		render: NewRenderListener(logger),
		trans:  NewTransport(),
		runner: life.NewRunner(logger),
		opts:   opts,
		octave: opts.Octave,
		logger: logger,
	}
	g.runner.SetInterval(opts.LifeInterval)
	g.runner.OnStep = g.stepLife
	m.Register(g.render)
	return g
}

func (g *Game) Layout(w, h int) (int, int) {
	first := g.winW == 0
	g.winW, g.winH = w, h
	paneH := h - topOffset
	if paneH < 1 {
		paneH = 1
	}
	if first {
		short := float64(w)
		if paneH < w {
			short = float64(paneH)
		}
		g.view.Scale = short / (float64(g.opts.InitialTiles) * g.opts.TileSize)
		g.view.OffsetX = float64(w) / 2
		g.view.OffsetY = float64(paneH) / 2
		g.logger.Infof("[GAME] layout %dx%d scale=%.3f", w, h, g.view.Scale)
	}
	g.view.FitZoomBounds(w, paneH, g.opts.MinTiles, g.opts.MaxTiles)
	return w, h
}

/* ─────────────── update ─────────────── */

func (g *Game) Update() error {
	g.trans.Update()
	g.handleTransport()
	g.handleKeys()
	g.handleWheel()
	g.handlePointer()
	g.runner.Update()
	return nil
}

func (g *Game) handleTransport() {
	if g.trans.RunPressed() {
		g.toggleRun()
	}
	if g.trans.StepPressed() {
		g.logger.Debugf("[GAME] manual life step")
		g.runner.Step()
	}
	if g.trans.SlowerPressed() {
		g.runner.SetInterval(g.runner.Interval() * 2)
	}
	if g.trans.FasterPressed() {
		g.runner.SetInterval(g.runner.Interval() / 2)
	}
	g.trans.Running = g.runner.Running()
	g.trans.Interval = g.runner.Interval()
}

func (g *Game) toggleRun() {
	if g.runner.Running() {
		g.runner.Stop()
	} else {
		g.runner.Start()
	}
	g.logger.Infof("[GAME] life running=%t", g.runner.Running())
}

// stepLife advances the selection by one generation. Births happen at the
// active octave.
func (g *Game) stepLife() {
	next := life.Next(g.model.Selection(), g.octave)
	g.logger.Debugf("[GAME] life step: %d -> %d tiles", g.model.Len(), len(next))
	g.model.Apply(next)
}

func (g *Game) handleKeys() {
	space := isKeyPressed(ebiten.KeySpace)
	if space && !g.spacePrev {
		g.toggleRun()
	}
	g.spacePrev = space

	step := isKeyPressed(ebiten.KeyN)
	if step && !g.stepPrev {
		g.runner.Step()
	}
	g.stepPrev = step

	clr := isKeyPressed(ebiten.KeyC)
	if clr && !g.clearPrev {
		g.logger.Infof("[GAME] clear selection (%d tiles)", g.model.Len())
		g.model.Clear()
	}
	g.clearPrev = clr

	down := isKeyPressed(ebiten.KeyComma)
	if down && !g.octDownPrev && g.octave > g.opts.OctaveMin {
		g.octave--
		g.logger.Infof("[GAME] active octave %+d", g.octave)
	}
	g.octDownPrev = down

	up := isKeyPressed(ebiten.KeyPeriod)
	if up && !g.octUpPrev && g.octave < g.opts.OctaveMax {
		g.octave++
		g.logger.Infof("[GAME] active octave %+d", g.octave)
	}
	g.octUpPrev = up

	if isKeyPressed(ebiten.KeyArrowLeft) {
		g.view.Pan(panStep, 0)
	}
	if isKeyPressed(ebiten.KeyArrowRight) {
		g.view.Pan(-panStep, 0)
	}
	if isKeyPressed(ebiten.KeyArrowUp) {
		g.view.Pan(0, panStep)
	}
	if isKeyPressed(ebiten.KeyArrowDown) {
		g.view.Pan(0, -panStep)
	}
}

func (g *Game) handleWheel() {
	_, wy := wheel()
	if wy == 0 {
		return
	}
	mx, my := cursorPosition()
	if my < topOffset {
		return
	}
	factor := math.Pow(g.opts.ZoomStep, wy)
	g.view.ZoomAt(float64(mx), float64(my-topOffset), factor)
	g.logger.Debugf("[GAME] zoom %.3f at (%d,%d) scale=%.3f", factor, mx, my, g.view.Scale)
}

// handlePointer runs the click-vs-drag state machine. A press starts a
// pending click; moving past the threshold turns it into a paint drag;
// releasing within the threshold toggles the tile under the cursor.
func (g *Game) handlePointer() {
	x, y := cursorPosition()
	left := isMouseButtonPressed(ebiten.MouseButtonLeft)
	right := isMouseButtonPressed(ebiten.MouseButtonRight)
	middle := isMouseButtonPressed(ebiten.MouseButtonMiddle)
	inPane := y >= topOffset
	py := float64(y - topOffset)

	if middle {
		if g.middlePrev {
			g.view.Pan(float64(x-g.panX), float64(y-g.panY))
		}
		g.panX, g.panY = x, y
	}
	g.middlePrev = middle

	if right && !g.rightPrev && inPane {
		c := g.view.TileAt(float64(x), py)
		if key, ok := g.model.SelectedAt(c); ok {
			g.logger.Debugf("[GAME] cycle octave at %v", c)
			g.model.CycleOctave(key)
		}
	}
	g.rightPrev = right

	if left && !g.leftPrev && inPane {
		g.pendingClick = true
		g.dragging = false
		g.pressX, g.pressY = x, y
		g.lastTile = g.view.TileAt(float64(x), py)
		g.logger.Debugf("[GAME] mouse down at (%d,%d) tile=%v", x, y, g.lastTile)
	}
	if left && g.leftPrev && g.pendingClick {
		dx := float64(x - g.pressX)
		dy := float64(y - g.pressY)
		if g.dragging || dx*dx+dy*dy > g.opts.DragThreshold {
			cur := g.view.TileAt(float64(x), py)
			if !g.dragging || cur != g.lastTile {
				g.logger.Debugf("[GAME] paint drag %v -> %v", g.lastTile, cur)
				g.model.SelectRange(g.lastTile, cur, g.octave)
				g.lastTile = cur
			}
			g.dragging = true
		}
	}
	if !left && g.leftPrev {
		if g.pendingClick && !g.dragging && inPane {
			c := g.view.TileAt(float64(x), py)
			g.logger.Debugf("[GAME] click toggle tile=%v octave=%+d", c, g.octave)
			g.model.Toggle(model.TileKey{Coord: c, Octave: g.octave})
		}
		g.pendingClick = false
		g.dragging = false
	}
	g.leftPrev = left
}

/* ─────────────── draw ─────────────── */

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	g.drawLattice(screen)
	g.drawSelection(screen)
	g.trans.Draw(screen)
	g.drawHUD(screen)
}

func (g *Game) drawLattice(screen *ebiten.Image) {
	minQ, maxQ, minR, maxR := g.grid.Visible(g.view, g.winW, g.winH-topOffset)
	showLabels := g.view.TilePixels() >= g.opts.LabelMinPx
	useSharps := !g.opts.Flats

	for q := minQ; q <= maxQ; q++ {
		for r := minR; r <= maxR; r++ {
			c := lattice.Axial{Q: q, R: r}
			x, y := g.view.TileCenter(c)
			y += topOffset
			for _, d := range edgeDirs {
				nx, ny := g.view.TileCenter(lattice.Axial{Q: q + d.Q, R: r + d.R})
				drawLine(screen, x, y, nx, ny+topOffset, colGridLine, 1)
			}
			drawCircle(screen, x, y, vertexRadius(g.view.TilePixels()), colVertex)
			if showLabels {
				name := pitch.ClassName(g.mapper.Class(c), useSharps)
				drawLabel(screen, name, int(x)-labelWidth(name)/2, int(y)+4, colLabel)
			}
		}
	}
}

func (g *Game) drawSelection(screen *ebiten.Image) {
	radius := g.view.TilePixels() * 0.3
	useSharps := !g.opts.Flats
	for _, k := range g.render.Tiles() {
		x, y := g.view.TileCenter(k.Coord)
		y += topOffset
		drawCircle(screen, x, y, radius, colSelected)
		name := g.noteLabel(k, useSharps)
		drawLabel(screen, name, int(x)-labelWidth(name)/2, int(y)-8, colLabelSelected)
	}
}

// noteLabel names a selected tile; out-of-range pitches fall back to the
// bare pitch class.
func (g *Game) noteLabel(k model.TileKey, useSharps bool) string {
	p, err := g.mapper.Map(k.Coord, k.Octave)
	if err != nil {
		return pitch.ClassName(g.mapper.Class(k.Coord), useSharps)
	}
	return pitch.NoteName(p, useSharps)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	hud := fmt.Sprintf("octave %+d  tiles %d", g.octave, g.model.Len())
	ebitenutil.DebugPrintAt(screen, hud, g.winW-labelWidth(hud)-10, 12)
}

func vertexRadius(tilePx float64) float64 {
	r := tilePx * 0.06
	if r < 2 {
		r = 2
	}
	return r
}
