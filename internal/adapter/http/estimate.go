package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/couchcryptid/ozone-etl/ozone"
)

type estimateResponse struct {
	Ozone []float64 `json:"ozone_matm_cm"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleEstimate serves GET /v1/ozone?lat=..&lon=..&time=..
// lat and lon repeat for batches; time is given once (applies to every
// location) or once per location.
func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := parseLocation(q["lat"], "lat")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	lon, err := parseLocation(q["lon"], "lon")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var ts ozone.TimeInput
	switch times := q["time"]; len(times) {
	case 0:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "time is required"})
		return
	case 1:
		ts = ozone.Text(times[0])
	default:
		ts = ozone.Texts(times)
	}

	result, err := ozone.Estimate(lat, lon, ts)
	if err != nil {
		var parseErr *ozone.TimestampParseError
		if errors.Is(err, ozone.ErrInput) || errors.As(err, &parseErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.logger.Error("ozone estimate failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, estimateResponse{Ozone: result})
}

// parseLocation turns repeated query values into an ozone.Location. A single
// value is a scalar.
func parseLocation(values []string, name string) (ozone.Location, error) {
	if len(values) == 0 {
		return ozone.Location{}, fmt.Errorf("%s is required", name)
	}
	degrees := make([]float64, len(values))
	for i, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ozone.Location{}, fmt.Errorf("invalid %s value %q", name, v)
		}
		degrees[i] = f
	}
	if len(degrees) == 1 {
		return ozone.Scalar(degrees[0]), nil
	}
	return ozone.Series(degrees...), nil
}
