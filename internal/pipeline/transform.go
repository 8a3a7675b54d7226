package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/ozone-etl/internal/domain"
	"github.com/couchcryptid/ozone-etl/internal/observability"
)

// OzoneTransformer implements Transformer: parse, optionally geocode,
// estimate ozone, serialize.
type OzoneTransformer struct {
	geocoder domain.Geocoder
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewTransformer creates an OzoneTransformer. Pass a nil geocoder to disable
// geocoding; records without coordinates then fail estimation.
func NewTransformer(geocoder domain.Geocoder, metrics *observability.Metrics, logger *slog.Logger) *OzoneTransformer {
	return &OzoneTransformer{
		geocoder: geocoder,
		metrics:  metrics,
		logger:   logger,
	}
}

func (t *OzoneTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	obs, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	obs = domain.EnrichWithGeocoding(ctx, obs, t.geocoder, t.logger)

	reading, err := domain.EstimateOzone(obs)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.metrics.EstimatesComputed.WithLabelValues(reading.Hemisphere).Inc()
	t.metrics.OzoneConcentration.Observe(reading.Ozone)

	return domain.SerializeReading(reading)
}
