package life

import (
	"time"

	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

const (
	// DefaultInterval is the generation period when none is configured.
	DefaultInterval = 2 * time.Second
	// MinInterval is the floor for the generation period.
	MinInterval = 50 * time.Millisecond
)

// Runner fires OnStep on a wall-clock interval, driven by frame updates.
type Runner struct {
	// OnStep advances the board by one generation.
	OnStep func()

	interval time.Duration
	running  bool
	last     time.Time
	now      func() time.Time
	logger   *game_log.Logger
}

func NewRunner(logger *game_log.Logger) *Runner {
	return &Runner{
		interval: DefaultInterval,
		now:      time.Now,
		logger:   logger,
	}
}

// Start begins ticking. The first generation fires on the next Update.
func (r *Runner) Start() {
	if r.running {
		return
	}
	r.running = true
	r.last = time.Time{}
	r.logger.Debugf("[LIFE] runner started, interval=%v", r.interval)
}

func (r *Runner) Stop() {
	if !r.running {
		return
	}
	r.running = false
	r.logger.Debugf("[LIFE] runner stopped")
}

func (r *Runner) Running() bool { return r.running }

// Step advances one generation regardless of the running state.
func (r *Runner) Step() {
	if r.OnStep != nil {
		r.OnStep()
	}
}

func (r *Runner) Interval() time.Duration { return r.interval }

// SetInterval changes the generation period, clamped at MinInterval.
func (r *Runner) SetInterval(d time.Duration) {
	if d < MinInterval {
		d = MinInterval
	}
	if d == r.interval {
		return
	}
	r.interval = d
	r.logger.Debugf("[LIFE] interval=%v", r.interval)
}

// Update fires due generations. Call it once per frame.
func (r *Runner) Update() {
	if !r.running {
		return
	}
	now := r.now()
	if !r.last.IsZero() && now.Sub(r.last) < r.interval {
		return
	}
	r.last = now
	r.Step()
}
