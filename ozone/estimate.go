package ozone

import "math"

var toRad = math.Pi / 180

// Estimate returns the ozone concentration in matm-cm for every location, in
// input order. Scalar latitude and longitude are treated as one-element
// series. A single TimeInput applies to all locations.
//
// Mismatched lengths return an error wrapping ErrInput; unparseable timestamp
// text returns a *TimestampParseError. No partial results are returned.
func Estimate(lat, lon Location, ts TimeInput) ([]float64, error) {
	if lat.Len() != lon.Len() {
		return nil, inputErrorf("lat and lon must be the same length (%d != %d)", lat.Len(), lon.Len())
	}
	if ts == nil {
		return nil, inputErrorf("timestamp is required")
	}

	days, err := ts.dayOfYears(lat.Len())
	if err != nil {
		return nil, err
	}

	result := make([]float64, lat.Len())
	for i := range result {
		result[i] = Concentration(lat.values[i], lon.values[i], days[i])
	}
	return result, nil
}

// Concentration evaluates the model at a single point.
func Concentration(lat, lon float64, dayOfYear int) float64 {
	p := ProfileFor(lat, lon)
	e := float64(dayOfYear)

	bracket := p.A +
		p.C*sinDeg(seasonalFrequency*(e+p.F)) +
		longitudinalAmplitude*sinDeg(p.H*(lon+p.I))

	s := sinDeg(p.B * lat)
	return baseline + bracket*s*s
}

func sinDeg(deg float64) float64 {
	return math.Sin(deg * toRad)
}
