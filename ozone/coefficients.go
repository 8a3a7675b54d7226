package ozone

// Hemisphere-invariant coefficients (D, G and J in the paper).
const (
	seasonalFrequency     = 0.9865
	longitudinalAmplitude = 20.0
	baseline              = 235.0
)

// Profile holds the hemisphere-dependent coefficients of the model.
type Profile struct {
	A float64 // mean amplitude of the latitude term
	B float64 // latitude frequency
	C float64 // seasonal amplitude
	F float64 // seasonal phase, in days
	H float64 // longitudinal frequency
	I float64 // longitudinal phase, in degrees
}

var (
	northern = Profile{A: 150.0, B: 1.28, C: 40.0, F: -30.0, H: 3.0, I: 20.0}
	southern = Profile{A: 100.0, B: 1.5, C: 30.0, F: 152.625, H: 2.0, I: -75.0}
)

// Hemisphere identifies which coefficient profile applies to a latitude.
type Hemisphere int

const (
	Northern Hemisphere = iota
	Southern
)

func (h Hemisphere) String() string {
	if h == Southern {
		return "southern"
	}
	return "northern"
}

// HemisphereOf reports the hemisphere for lat. The equator is Northern.
func HemisphereOf(lat float64) Hemisphere {
	if lat < 0 {
		return Southern
	}
	return Northern
}

// ProfileFor returns the coefficients for a location. Northern locations at or
// west of the prime meridian use I = 0.
func ProfileFor(lat, lon float64) Profile {
	if HemisphereOf(lat) == Southern {
		return southern
	}
	p := northern
	if lon <= 0 {
		p.I = 0.0
	}
	return p
}
