package life

import (
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/ingyamilmolinar/tonnetz/core/lattice"
	"github.com/ingyamilmolinar/tonnetz/core/model"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

var testLogger *game_log.Logger

func init() {
	testLogger = game_log.New(os.Stdout, game_log.ParseLevel(os.Getenv("LOG_LEVEL")))
}

func key(q, r, oct int) model.TileKey {
	return model.TileKey{Coord: lattice.Axial{Q: q, R: r}, Octave: oct}
}

func TestNextBlinker(t *testing.T) {
	vertical := []model.TileKey{key(0, -1, 0), key(0, 0, 0), key(0, 1, 0)}

	horizontal := Next(vertical, 1)
	want := []model.TileKey{key(0, 0, 0), key(-1, 0, 1), key(1, 0, 1)}
	if !reflect.DeepEqual(horizontal, want) {
		t.Fatalf("generation 1 = %v, want %v", horizontal, want)
	}

	back := Next(horizontal, 1)
	want = []model.TileKey{key(0, 0, 0), key(0, -1, 1), key(0, 1, 1)}
	if !reflect.DeepEqual(back, want) {
		t.Fatalf("generation 2 = %v, want %v", back, want)
	}
}

func TestNextBlockStillLife(t *testing.T) {
	block := []model.TileKey{key(0, 0, 2), key(1, 0, 2), key(0, 1, 2), key(1, 1, 2)}
	got := Next(block, 0)
	if !reflect.DeepEqual(got, block) {
		t.Fatalf("block should be a still life, got %v", got)
	}
}

func TestNextSurvivorsKeepOctaves(t *testing.T) {
	cells := []model.TileKey{key(0, -1, 2), key(0, 0, 5), key(0, 1, 2)}
	got := Next(cells, 0)
	want := []model.TileKey{key(0, 0, 5), key(-1, 0, 0), key(1, 0, 0)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextFirstOctaveWins(t *testing.T) {
	cells := []model.TileKey{
		key(0, 0, 0), key(0, 0, 3),
		key(1, 0, 1), key(0, 1, 2), key(1, 1, 0),
	}
	got := Next(cells, 0)
	want := []model.TileKey{key(0, 0, 0), key(1, 0, 1), key(0, 1, 2), key(1, 1, 0)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextLonelyCellDies(t *testing.T) {
	got := Next([]model.TileKey{key(4, -3, 1)}, 0)
	if len(got) != 0 {
		t.Fatalf("lonely cell should die, got %v", got)
	}
}

func TestNextEmpty(t *testing.T) {
	if got := Next(nil, 0); got != nil {
		t.Fatalf("empty board should stay empty, got %v", got)
	}
}

func TestRunnerFiresWhenDue(t *testing.T) {
	r := NewRunner(testLogger)
	steps := 0
	r.OnStep = func() { steps++ }
	now := time.Unix(100, 0)
	r.now = func() time.Time { return now }

	r.Update()
	if steps != 0 {
		t.Fatalf("stopped runner fired")
	}

	r.Start()
	r.Update()
	if steps != 1 {
		t.Fatalf("first generation should fire immediately, steps=%d", steps)
	}

	r.Update()
	now = now.Add(time.Second)
	r.Update()
	if steps != 1 {
		t.Fatalf("fired before the interval elapsed, steps=%d", steps)
	}

	now = now.Add(time.Second)
	r.Update()
	if steps != 2 {
		t.Fatalf("due generation did not fire, steps=%d", steps)
	}
}

func TestRunnerStepIgnoresRunningState(t *testing.T) {
	r := NewRunner(testLogger)
	steps := 0
	r.OnStep = func() { steps++ }
	r.Step()
	if steps != 1 {
		t.Fatalf("manual step did not fire, steps=%d", steps)
	}
}

func TestRunnerStopHalts(t *testing.T) {
	r := NewRunner(testLogger)
	steps := 0
	r.OnStep = func() { steps++ }
	now := time.Unix(100, 0)
	r.now = func() time.Time { return now }

	r.Start()
	r.Update()
	r.Stop()
	if r.Running() {
		t.Fatalf("runner still running after stop")
	}
	now = now.Add(time.Minute)
	r.Update()
	if steps != 1 {
		t.Fatalf("stopped runner kept firing, steps=%d", steps)
	}

	r.Start()
	r.Update()
	if steps != 2 {
		t.Fatalf("restart should fire immediately, steps=%d", steps)
	}
}

func TestRunnerSetIntervalClamps(t *testing.T) {
	r := NewRunner(testLogger)
	r.SetInterval(10 * time.Millisecond)
	if r.Interval() != MinInterval {
		t.Fatalf("interval=%v, want clamp at %v", r.Interval(), MinInterval)
	}
	r.SetInterval(300 * time.Millisecond)
	if r.Interval() != 300*time.Millisecond {
		t.Fatalf("interval=%v", r.Interval())
	}
}
