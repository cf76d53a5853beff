package main

import (
	"log"
	"os"
	"time"

	"github.com/ingyamilmolinar/tonnetz/core/pitch"
	"github.com/ingyamilmolinar/tonnetz/internal/audio"
	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

// main plays a C major triad through the builtin synth. Run it by hand to
// check the audio device without starting the full instrument.
func main() {
	logger := game_log.New(os.Stdout, game_log.ParseLevel(os.Getenv("LOG_LEVEL")))
	s, err := audio.NewSynth(pitch.EqualTemperament, logger)
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	for _, p := range []uint8{60, 64, 67} {
		if err := s.NoteOn(p, 100); err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(1500 * time.Millisecond)
	for _, p := range []uint8{60, 64, 67} {
		if err := s.NoteOff(p); err != nil {
			log.Fatal(err)
		}
	}
	time.Sleep(200 * time.Millisecond)
}
