//go:build dem

package dem

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"testing"
	"time"

	"github.com/hydromaroc/flood-risk-service/internal/domain"
	"github.com/hydromaroc/flood-risk-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the public OpenTopodata API and are rate limited there.
// Run with: go test -tags=dem ./internal/adapter/dem/ -v -count=1

func smokeClient() *Client {
	return &Client{
		baseURL:    "https://api.opentopodata.org/v1",
		dataset:    "srtm30m",
		httpClient: &http.Client{Timeout: 15 * time.Second},
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestSmoke_PointElevation(t *testing.T) {
	c := smokeClient()

	// Jbel Toubkal summit, High Atlas.
	sample := c.PointElevation(context.Background(), -7.9147, 31.0595)
	require.True(t, sample.Valid)

	assert.InDelta(t, 4167, sample.Meters, 100, "elevation should be near the Toubkal summit")
}

func TestSmoke_PointElevation_Coastal(t *testing.T) {
	c := smokeClient()

	// Casablanca waterfront sits within a few meters of sea level.
	sample := c.PointElevation(context.Background(), -7.6261, 33.6073)
	require.True(t, sample.Valid)

	assert.Less(t, sample.Meters, 60.0)
}

func TestSmoke_PointElevation_OpenSea(t *testing.T) {
	c := smokeClient()

	// SRTM has no coverage over open ocean; the sample must come back invalid
	// rather than as an error.
	sample := c.PointElevation(context.Background(), -12.0, 34.0)
	assert.False(t, sample.Valid)
}

func TestSmoke_ZoneElevations(t *testing.T) {
	c := smokeClient()

	// A small window over central Marrakech.
	box, err := domain.NewBoundingBox(-8.01, 31.62, -7.99, 31.64)
	require.NoError(t, err)

	grid := c.ZoneElevations(context.Background(), box, 500)
	require.False(t, grid.Empty())

	valid := 0
	for _, row := range grid.Cells {
		for _, v := range row {
			if !math.IsNaN(v) {
				valid++
				assert.InDelta(t, 460, v, 150, "Marrakech sits around 460m")
			}
		}
	}
	assert.Greater(t, valid, 0)
}
