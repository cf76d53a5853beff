package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ingyamilmolinar/tonnetz/core/model"
	"github.com/ingyamilmolinar/tonnetz/internal/audio"
	"github.com/ingyamilmolinar/tonnetz/internal/config"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
	"github.com/ingyamilmolinar/tonnetz/internal/ui"
)

func main() {
	configPath := flag.String("config", "tonnetz.yaml", "path to the configuration file")
	output := flag.String("audio", "", "audio backend: midi, synth or none (overrides config)")
	port := flag.String("port", "", "MIDI output port substring (overrides config)")
	flag.Parse()

	logger := game_log.New(os.Stdout, game_log.ParseLevel(os.Getenv("LOG_LEVEL")))

	cfg, err := config.Load(*configPath, logger)
	if err != nil {
		log.Fatal(err)
	}
	if *output != "" {
		cfg.Audio.Output = *output
	}
	if *port != "" {
		cfg.Audio.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	mapper, err := cfg.Mapper()
	if err != nil {
		log.Fatal(err)
	}

	m := model.New(logger)
	m.SetOctaveRange(cfg.Music.OctaveMin, cfg.Music.OctaveMax)

	g := ui.New(m, mapper, ui.Options{
		TileSize:      cfg.View.TileSize,
		MinTiles:      cfg.View.MinTiles,
		MaxTiles:      cfg.View.MaxTiles,
		InitialTiles:  cfg.View.InitialTiles,
		ZoomStep:      cfg.View.ZoomStep,
		LabelMinPx:    cfg.View.LabelMinPx,
		DragThreshold: cfg.View.DragThreshold,
		LifeInterval:  cfg.TickInterval(),
		Octave:        cfg.Music.Octave,
		OctaveMin:     cfg.Music.OctaveMin,
		OctaveMax:     cfg.Music.OctaveMax,
		Flats:         cfg.View.Flats,
	}, logger)

	out := openOutput(cfg, logger)
	defer out.Close()
	m.Register(audio.NewListener(out, mapper, uint8(cfg.Music.Velocity), logger))

	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle("Tonnetz")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

// openOutput picks the audio backend, falling back from MIDI to the builtin
// synth and from the synth to silence.
func openOutput(cfg config.Config, logger *game_log.Logger) audio.Output {
	switch cfg.Audio.Output {
	case "none":
		return audio.Silent{}
	case "synth":
		return openSynth(cfg, logger)
	}
	out, err := audio.NewMIDIOut(cfg.Audio.Port, uint8(cfg.Audio.Channel), logger)
	if err != nil {
		logger.Warnf("[MAIN] midi unavailable: %v", err)
		return openSynth(cfg, logger)
	}
	return out
}

func openSynth(cfg config.Config, logger *game_log.Logger) audio.Output {
	s, err := audio.NewSynth(cfg.Tuning(), logger)
	if err != nil {
		logger.Warnf("[MAIN] synth unavailable: %v", err)
		return audio.Silent{}
	}
	return s
}
