package mapbox

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/ozone-etl/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingGeocoder struct {
	calls int
	err   error
}

func (f *failingGeocoder) ForwardGeocode(context.Context, string, string) (domain.GeocodingResult, error) {
	f.calls++
	return domain.GeocodingResult{}, f.err
}

func (f *failingGeocoder) ReverseGeocode(context.Context, float64, float64) (domain.GeocodingResult, error) {
	f.calls++
	return domain.GeocodingResult{}, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGuardedGeocoder_PassesThrough(t *testing.T) {
	inner := &countingGeocoder{
		result: domain.GeocodingResult{Lat: 19.536, Lon: -155.576, FormattedAddress: "Mauna Loa, Hawaii"},
	}
	g := NewGuardedGeocoder(inner, 0, testMetrics(), quietLogger())

	r, err := g.ForwardGeocode(context.Background(), "Mauna Loa", "HI")
	require.NoError(t, err)
	assert.Equal(t, 19.536, r.Lat)

	_, err = g.ReverseGeocode(context.Background(), 19.536, -155.576)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.forwardCalls)
	assert.Equal(t, 1, inner.reverseCalls)
}

func TestGuardedGeocoder_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := &failingGeocoder{err: errors.New("mapbox API error: status 503")}
	metrics := testMetrics()
	g := NewGuardedGeocoder(inner, 0, metrics, quietLogger())

	for range breakerFailures {
		_, err := g.ReverseGeocode(context.Background(), 1, 2)
		require.Error(t, err)
	}
	assert.Equal(t, breakerFailures, inner.calls)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GeocodeBreakerOpen))

	_, err := g.ForwardGeocode(context.Background(), "Boulder", "CO")
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, breakerFailures, inner.calls, "open breaker must not call upstream")
}

func TestGuardedGeocoder_RateLimitHonoursContext(t *testing.T) {
	inner := &countingGeocoder{result: domain.GeocodingResult{FormattedAddress: "Lauder, New Zealand"}}
	g := NewGuardedGeocoder(inner, 1, testMetrics(), quietLogger())

	_, err := g.ReverseGeocode(context.Background(), -45.038, 169.684)
	require.NoError(t, err)

	// The single token is spent; the next one is a second away.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = g.ReverseGeocode(ctx, -45.038, 169.684)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Equal(t, 1, inner.reverseCalls)
}
