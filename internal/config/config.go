package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ingyamilmolinar/tonnetz/core/life"
	"github.com/ingyamilmolinar/tonnetz/core/pitch"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

// Config is the on-disk configuration. Every field has a default, so an
// absent file still yields a playable instrument.
type Config struct {
	Music Music `yaml:"music"`
	View  View  `yaml:"view"`
	Life  Life  `yaml:"life"`
	Audio Audio `yaml:"audio"`
}

// Music fixes the pitch lattice: which note sits at the origin and how many
// semitones each lattice step moves.
type Music struct {
	Origin    string `yaml:"origin"`     // note name of tile (0,0) at octave 0
	IntervalQ int    `yaml:"interval_q"` // semitones per Q step
	IntervalR int    `yaml:"interval_r"` // semitones per R step
	OctaveMin int    `yaml:"octave_min"`
	OctaveMax int    `yaml:"octave_max"`
	Octave    int    `yaml:"octave"` // initial active octave
	Velocity  int    `yaml:"velocity"`
	PitchLow  int    `yaml:"pitch_low"`
	PitchHigh int    `yaml:"pitch_high"`
}

type View struct {
	TileSize      float64 `yaml:"tile_size"`
	MinTiles      int     `yaml:"min_tiles"`
	MaxTiles      int     `yaml:"max_tiles"`
	InitialTiles  int     `yaml:"initial_tiles"`
	ZoomStep      float64 `yaml:"zoom_step"`
	LabelMinPx    float64 `yaml:"label_min_px"`
	DragThreshold float64 `yaml:"drag_threshold"`
	Flats         bool    `yaml:"flats"`
}

type Life struct {
	TickMS int `yaml:"tick_ms"`
}

type Audio struct {
	Output  string `yaml:"output"` // midi, synth or none
	Port    string `yaml:"port"`
	Channel int    `yaml:"channel"`
	Tuning  string `yaml:"tuning"`
}

// Default returns the stock instrument: fifths across, major thirds up,
// middle C at the origin.
func Default() Config {
	return Config{
		Music: Music{
			Origin:    "C4",
			IntervalQ: 7,
			IntervalR: 4,
			OctaveMin: -2,
			OctaveMax: 2,
			Octave:    0,
			Velocity:  100,
			PitchLow:  0,
			PitchHigh: 127,
		},
		View: View{
			TileSize:      50,
			MinTiles:      3,
			MaxTiles:      18,
			InitialTiles:  5,
			ZoomStep:      1.1,
			LabelMinPx:    25,
			DragThreshold: 25,
		},
		Life:  Life{TickMS: 2000},
		Audio: Audio{Output: "midi", Tuning: "equal"},
	}
}

// Load reads path over the defaults. A missing file is not an error; a file
// that exists but does not parse or validate is.
func Load(path string, logger *game_log.Logger) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Infof("[CONFIG] %s not found, using defaults", path)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	logger.Infof("[CONFIG] loaded %s", path)
	return cfg, nil
}

// Validate rejects configurations the engine cannot honor.
func (c Config) Validate() error {
	if _, err := pitch.Parse(c.Music.Origin); err != nil {
		return fmt.Errorf("music.origin: %w", err)
	}
	if c.Music.OctaveMin > c.Music.OctaveMax {
		return fmt.Errorf("music: octave_min %d > octave_max %d", c.Music.OctaveMin, c.Music.OctaveMax)
	}
	if c.Music.Octave < c.Music.OctaveMin || c.Music.Octave > c.Music.OctaveMax {
		return fmt.Errorf("music: octave %d outside [%d, %d]", c.Music.Octave, c.Music.OctaveMin, c.Music.OctaveMax)
	}
	if c.Music.Velocity < 1 || c.Music.Velocity > 127 {
		return fmt.Errorf("music: velocity %d outside [1, 127]", c.Music.Velocity)
	}
	if c.Music.PitchLow < 0 || c.Music.PitchHigh > 127 || c.Music.PitchLow > c.Music.PitchHigh {
		return fmt.Errorf("music: pitch range [%d, %d] invalid", c.Music.PitchLow, c.Music.PitchHigh)
	}
	if c.View.TileSize <= 0 {
		return fmt.Errorf("view: tile_size %v must be positive", c.View.TileSize)
	}
	if c.View.MinTiles < 1 || c.View.MinTiles > c.View.MaxTiles {
		return fmt.Errorf("view: tile range [%d, %d] invalid", c.View.MinTiles, c.View.MaxTiles)
	}
	if c.View.ZoomStep <= 1 {
		return fmt.Errorf("view: zoom_step %v must exceed 1", c.View.ZoomStep)
	}
	if min := int(life.MinInterval / time.Millisecond); c.Life.TickMS < min {
		return fmt.Errorf("life: tick_ms %d below minimum %d", c.Life.TickMS, min)
	}
	switch c.Audio.Output {
	case "midi", "synth", "none":
	default:
		return fmt.Errorf("audio: output %q not one of midi, synth, none", c.Audio.Output)
	}
	if c.Audio.Channel < 0 || c.Audio.Channel > 15 {
		return fmt.Errorf("audio: channel %d outside [0, 15]", c.Audio.Channel)
	}
	if _, ok := pitch.TuningByName(c.Audio.Tuning); !ok {
		return fmt.Errorf("audio: unknown tuning %q", c.Audio.Tuning)
	}
	return nil
}

// Mapper builds the pitch mapper from the music section. Call Validate
// first; a bad origin errors here too.
func (c Config) Mapper() (pitch.Mapper, error) {
	base, err := pitch.Parse(c.Music.Origin)
	if err != nil {
		return pitch.Mapper{}, err
	}
	return pitch.Mapper{
		Base:      base,
		IntervalQ: c.Music.IntervalQ,
		IntervalR: c.Music.IntervalR,
		Low:       c.Music.PitchLow,
		High:      c.Music.PitchHigh,
	}, nil
}

// TickInterval returns the life tick as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.Life.TickMS) * time.Millisecond
}

// Tuning resolves the configured tuning table. Unknown names fall back to
// equal temperament; Validate reports them.
func (c Config) Tuning() pitch.Tuning {
	t, _ := pitch.TuningByName(c.Audio.Tuning)
	return t
}
