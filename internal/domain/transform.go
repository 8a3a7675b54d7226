package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/couchcryptid/ozone-etl/ozone"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingCoordinates is returned when an observation reaches estimation
	// without coordinates, e.g. geocoding was disabled or found nothing.
	ErrMissingCoordinates = errors.New("observation has no coordinates")

	// ErrInvalidCoordinates is returned for coordinates outside the WGS-84 range.
	ErrInvalidCoordinates = errors.New("observation coordinates out of range")

	errMissingTimestamp = errors.New("observation has no timestamp")
)

// ParseRawEvent deserializes a RawEvent's value into an Observation.
// The record timestamp wins over the Kafka message time when both are set.
func ParseRawEvent(raw RawEvent) (Observation, error) {
	var rec ObservationRecord
	if err := json.Unmarshal(raw.Value, &rec); err != nil {
		return Observation{}, fmt.Errorf("parse raw event: %w", err)
	}

	observedAt, err := parseObservedAt(raw.Timestamp, rec.Timestamp)
	if err != nil {
		return Observation{}, fmt.Errorf("parse raw event: %w", err)
	}

	obs := Observation{
		ID: strings.TrimSpace(rec.ID),
		Location: Location{
			Name:  strings.TrimSpace(rec.Location),
			State: strings.TrimSpace(rec.State),
		},
		ObservedAt: observedAt,
		RawPayload: raw.Value,
	}
	if rec.Lat != nil && rec.Lon != nil {
		obs.Geo = &Geo{Lat: *rec.Lat, Lon: *rec.Lon}
	}
	return obs, nil
}

func parseObservedAt(messageTime time.Time, text string) (time.Time, error) {
	if strings.TrimSpace(text) != "" {
		return ozone.ParseTimestamp(text)
	}
	if messageTime.IsZero() {
		return time.Time{}, errMissingTimestamp
	}
	return messageTime.UTC(), nil
}

// EstimateOzone evaluates the van Heuklon model for an observation and
// returns the enriched reading. Observations without an ID get a
// deterministic one derived from coordinates and date.
func EstimateOzone(obs Observation) (OzoneReading, error) {
	if obs.Geo == nil {
		return OzoneReading{}, fmt.Errorf("estimate %q: %w", obs.ID, ErrMissingCoordinates)
	}
	if err := validateGeo(*obs.Geo); err != nil {
		return OzoneReading{}, fmt.Errorf("estimate %q: %w", obs.ID, err)
	}

	lat, lon := obs.Geo.Lat, obs.Geo.Lon
	day := ozone.DayOfYear(obs.ObservedAt)

	id := obs.ID
	if id == "" {
		id = generateID(lat, lon, obs.ObservedAt)
	}

	return OzoneReading{
		ID:               id,
		Geo:              *obs.Geo,
		ObservedAt:       obs.ObservedAt,
		DayOfYear:        day,
		Hemisphere:       ozone.HemisphereOf(lat).String(),
		Ozone:            ozone.Concentration(lat, lon, day),
		Location:         obs.Location,
		FormattedAddress: obs.FormattedAddress,
		PlaceName:        obs.PlaceName,
		GeoConfidence:    obs.GeoConfidence,
		GeoSource:        obs.GeoSource,
		ProcessedAt:      clock.Now(),
	}, nil
}

// validate checks struct tags; NaN fails every range tag.
var validate = validator.New()

func validateGeo(g Geo) error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("%w: lat=%v lon=%v", ErrInvalidCoordinates, g.Lat, g.Lon)
	}
	return nil
}

// generateID produces a deterministic ID from coordinates and calendar date,
// so replaying the same record yields the same key downstream.
func generateID(lat, lon float64, observedAt time.Time) string {
	input := fmt.Sprintf("%.4f|%.4f|%s", lat, lon, observedAt.UTC().Format(time.DateOnly))
	hash := sha256.Sum256([]byte(input))
	return "ozone-" + hex.EncodeToString(hash[:8])
}

// SerializeReading marshals a reading into an OutputEvent keyed by its ID.
func SerializeReading(r OzoneReading) (OutputEvent, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return OutputEvent{}, fmt.Errorf("serialize ozone reading: %w", err)
	}
	return OutputEvent{
		Key:   []byte(r.ID),
		Value: data,
		Headers: map[string]string{
			"hemisphere":   r.Hemisphere,
			"processed_at": r.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
