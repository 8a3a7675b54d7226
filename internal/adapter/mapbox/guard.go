package mapbox

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/ozone-etl/internal/domain"
	"github.com/couchcryptid/ozone-etl/internal/observability"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// The breaker opens after breakerFailures consecutive errors and probes again
// after breakerOpenFor.
const (
	breakerFailures = 5
	breakerOpenFor  = 30 * time.Second
)

// GuardedGeocoder rate limits calls to an upstream geocoder and stops calling
// it while it keeps failing. Wrap it in a CachedGeocoder so hits skip both.
type GuardedGeocoder struct {
	inner   domain.Geocoder
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewGuardedGeocoder creates a guard around inner. A non-positive
// requestsPerSecond disables rate limiting.
func NewGuardedGeocoder(inner domain.Geocoder, requestsPerSecond float64, metrics *observability.Metrics, logger *slog.Logger) *GuardedGeocoder {
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	burst := max(1, int(math.Ceil(requestsPerSecond)))

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "mapbox",
		Timeout: breakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("geocoder circuit breaker changed state",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
			open := 0.0
			if to == gobreaker.StateOpen {
				open = 1
			}
			metrics.GeocodeBreakerOpen.Set(open)
		},
	})

	return &GuardedGeocoder{
		inner:   inner,
		limiter: rate.NewLimiter(limit, burst),
		breaker: breaker,
	}
}

func (g *GuardedGeocoder) ForwardGeocode(ctx context.Context, name, state string) (domain.GeocodingResult, error) {
	return g.call(ctx, func() (domain.GeocodingResult, error) {
		return g.inner.ForwardGeocode(ctx, name, state)
	})
}

func (g *GuardedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	return g.call(ctx, func() (domain.GeocodingResult, error) {
		return g.inner.ReverseGeocode(ctx, lat, lon)
	})
}

func (g *GuardedGeocoder) call(ctx context.Context, fetch func() (domain.GeocodingResult, error)) (domain.GeocodingResult, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("geocode rate limit: %w", err)
	}

	v, err := g.breaker.Execute(func() (interface{}, error) {
		return fetch()
	})
	if err != nil {
		return domain.GeocodingResult{}, err
	}
	return v.(domain.GeocodingResult), nil
}
