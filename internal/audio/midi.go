package audio

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver

	game_log "github.com/ingyamilmolinar/tonnetz/internal/log"
)

// MIDIOut forwards notes to a system MIDI output port.
type MIDIOut struct {
	send    func(midi.Message) error
	channel uint8
	port    string
	logger  *game_log.Logger
}

// NewMIDIOut opens the first output port whose name contains portName,
// case-insensitive. An empty portName takes the first available port.
func NewMIDIOut(portName string, channel uint8, logger *game_log.Logger) (*MIDIOut, error) {
	outs := midi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("no midi output ports available")
	}
	var port drivers.Out
	if portName == "" {
		port = outs[0]
	} else {
		want := strings.ToLower(portName)
		for _, p := range outs {
			if strings.Contains(strings.ToLower(p.String()), want) {
				port = p
				break
			}
		}
		if port == nil {
			return nil, fmt.Errorf("no midi output port matching %q", portName)
		}
	}
	send, err := midi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open midi port %s: %w", port.String(), err)
	}
	logger.Infof("[MIDI] output %s channel %d", port.String(), channel)
	return &MIDIOut{send: send, channel: channel % 16, port: port.String(), logger: logger}, nil
}

// Port reports the resolved output port name.
func (m *MIDIOut) Port() string { return m.port }

func (m *MIDIOut) NoteOn(pitch, velocity uint8) error {
	return m.send(midi.NoteOn(m.channel, pitch, velocity))
}

func (m *MIDIOut) NoteOff(pitch uint8) error {
	return m.send(midi.NoteOff(m.channel, pitch))
}

// Close shuts the MIDI driver down. No MIDIOut works after this.
func (m *MIDIOut) Close() error {
	m.logger.Debugf("[MIDI] closing driver")
	midi.CloseDriver()
	return nil
}
