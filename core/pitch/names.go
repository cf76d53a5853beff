package pitch

import (
	"fmt"
	"strconv"
	"strings"
)

// Enharmonic spellings per pitch class. The first entry is preferred when
// spelling with sharps, the second when spelling with flats.
var classNames = [12][]string{
	{"C"},
	{"C#", "Db"},
	{"D"},
	{"D#", "Eb"},
	{"E"},
	{"F"},
	{"F#", "Gb"},
	{"G"},
	{"G#", "Ab"},
	{"A"},
	{"A#", "Bb"},
	{"B"},
}

// ClassName returns the pitch-class name for a pitch number ("C#", or "Db"
// when useSharps is false).
func ClassName(p int, useSharps bool) string {
	names := classNames[((p%12)+12)%12]
	if !useSharps && len(names) > 1 {
		return names[1]
	}
	return names[0]
}

// NoteName returns the full note name with octave, e.g. "C#4". Pitch 60 is
// "C4".
func NoteName(p int, useSharps bool) string {
	return fmt.Sprintf("%s%d", ClassName(p, useSharps), p/12-1)
}

// Parse converts a note name such as "C4", "db5" or "B#3" to a pitch
// number. The octave may be negative ("A-1"). Spellings outside the primary
// table (B#, Cb, E#, Fb) resolve to their enharmonic neighbours.
func Parse(s string) (int, error) {
	s = strings.TrimSpace(s)
	i := len(s)
	for i > 0 && s[i-1] >= '0' && s[i-1] <= '9' {
		i--
	}
	if i == len(s) || i == 0 {
		return 0, fmt.Errorf("note %q: missing octave or pitch name", s)
	}
	if s[i-1] == '-' {
		i--
	}
	if i == 0 {
		return 0, fmt.Errorf("note %q: missing pitch name", s)
	}
	octave, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0, fmt.Errorf("note %q: bad octave: %w", s, err)
	}
	name := strings.ToUpper(s[:1]) + strings.ToLower(s[1:i])
	class := lookupClass(name)
	if class < 0 {
		return 0, fmt.Errorf("note %q: unknown pitch name %q", s, name)
	}
	return 12*(octave+1) + class, nil
}

func lookupClass(name string) int {
	for i, names := range classNames {
		for _, n := range names {
			if n == name {
				return i
			}
		}
	}
	if len(name) < 2 {
		return -1
	}
	base := lookupClass(name[:len(name)-1])
	if base < 0 {
		return -1
	}
	switch name[len(name)-1] {
	case '#':
		return (base + 1) % 12
	case 'b':
		return (base + 11) % 12
	}
	return -1
}
