package pitch

import "math"

// Tuning deviates each pitch class from 12-tone equal temperament, in
// cents. The zero value is equal temperament itself.
type Tuning struct {
	Name  string
	Cents [12]float64
}

var (
	EqualTemperament = Tuning{Name: "equal"}

	// 5-limit just intonation, approximated per pitch class.
	JustIntonation = Tuning{
		Name:  "just",
		Cents: [12]float64{0, -29.3, 3.9, 15.6, -13.7, -2.0, -17.6, 2.0, 17.6, -15.6, 19.6, -11.7},
	}

	Pythagorean = Tuning{
		Name:  "pythagorean",
		Cents: [12]float64{0, -23.5, 3.9, -19.6, 7.8, -2.0, 11.7, 2.0, -21.5, 5.9, -17.6, 9.8},
	}

	// Quarter-comma meantone. The tritone is the wolf interval.
	Meantone = Tuning{
		Name:  "meantone",
		Cents: [12]float64{0, 19.6, -5.9, 13.7, -13.7, 5.9, 25.5, -3.9, 15.6, -9.8, 9.8, -19.6},
	}
)

// TuningByName resolves a configured tuning name. Unknown names report
// false and return equal temperament.
func TuningByName(name string) (Tuning, bool) {
	for _, t := range []Tuning{EqualTemperament, JustIntonation, Pythagorean, Meantone} {
		if t.Name == name {
			return t, true
		}
	}
	return EqualTemperament, false
}

// Frequency returns the tuned frequency in Hz for a pitch number, with
// A4 (pitch 69) at 440 Hz before deviation.
func (t Tuning) Frequency(p int) float64 {
	cents := t.Cents[((p%12)+12)%12]
	return 440 * math.Pow(2, (float64(p-69)+cents/100)/12)
}
