package domain

import (
	"context"
	"time"
)

// ObservationRecord is the JSON structure published to the source topic.
// Coordinates are optional; records without them need a place name so they
// can be forward geocoded.
type ObservationRecord struct {
	ID        string   `json:"id,omitempty"`
	Lat       *float64 `json:"lat,omitempty"`
	Lon       *float64 `json:"lon,omitempty"`
	Location  string   `json:"location,omitempty"` // place name, e.g. "Austin"
	State     string   `json:"state,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"` // free-form date/time text
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// Location holds the place name carried by the record.
type Location struct {
	Name  string `json:"name,omitempty"`
	State string `json:"state,omitempty"`
}

// Geo represents a WGS-84 latitude/longitude coordinate pair in degrees.
type Geo struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"gte=-180,lte=180"`
}

// Observation is a parsed source record. Geo is nil until coordinates are
// known, either from the record itself or from geocoding.
type Observation struct {
	ID         string
	Geo        *Geo
	Location   Location
	ObservedAt time.Time

	// Geocoding enrichment fields.
	FormattedAddress string
	PlaceName        string
	GeoConfidence    float64
	GeoSource        string // "forward", "reverse", "original", "failed"

	RawPayload []byte
}

// OzoneReading is the enriched record destined for the sink topic.
type OzoneReading struct {
	ID         string    `json:"id"`
	Geo        Geo       `json:"geo"`
	ObservedAt time.Time `json:"observed_at"`
	DayOfYear  int       `json:"day_of_year"`
	Hemisphere string    `json:"hemisphere"`
	Ozone      float64   `json:"ozone_matm_cm"`
	Location   Location  `json:"location,omitempty"`

	FormattedAddress string  `json:"formatted_address,omitempty"`
	PlaceName        string  `json:"place_name,omitempty"`
	GeoConfidence    float64 `json:"geo_confidence,omitempty"`
	GeoSource        string  `json:"geo_source,omitempty"`

	ProcessedAt time.Time `json:"processed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
