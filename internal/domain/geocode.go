package domain

import (
	"context"
	"log/slog"
)

// EnrichWithGeocoding fills in coordinates or place details for an observation.
// If geocoder is nil or geocoding fails, the observation is returned with
// GeoSource set accordingly (graceful degradation).
func EnrichWithGeocoding(ctx context.Context, obs Observation, geocoder Geocoder, logger *slog.Logger) Observation {
	if geocoder == nil {
		return obs
	}

	hasName := obs.Location.Name != ""

	// Forward geocode: place name → coordinates (when coords are missing).
	if obs.Geo == nil && hasName {
		result, err := geocoder.ForwardGeocode(ctx, obs.Location.Name, obs.Location.State)
		if err != nil {
			logger.Warn("forward geocoding failed",
				"observation_id", obs.ID,
				"location", obs.Location.Name,
				"state", obs.Location.State,
				"error", err,
			)
			obs.GeoSource = "failed"
			return obs
		}
		if result.Lat != 0 || result.Lon != 0 {
			obs.Geo = &Geo{Lat: result.Lat, Lon: result.Lon}
			obs.FormattedAddress = result.FormattedAddress
			obs.PlaceName = result.PlaceName
			obs.GeoConfidence = result.Confidence
			obs.GeoSource = "forward"
			return obs
		}
		obs.GeoSource = "original"
		return obs
	}

	// Reverse geocode: coordinates → place details (when coords are present).
	if obs.Geo != nil {
		result, err := geocoder.ReverseGeocode(ctx, obs.Geo.Lat, obs.Geo.Lon)
		if err != nil {
			logger.Warn("reverse geocoding failed",
				"observation_id", obs.ID,
				"lat", obs.Geo.Lat,
				"lon", obs.Geo.Lon,
				"error", err,
			)
			obs.GeoSource = "failed"
			return obs
		}
		if result.FormattedAddress != "" {
			obs.FormattedAddress = result.FormattedAddress
			obs.PlaceName = result.PlaceName
			obs.GeoConfidence = result.Confidence
			obs.GeoSource = "reverse"
			return obs
		}
	}

	obs.GeoSource = "original"
	return obs
}
