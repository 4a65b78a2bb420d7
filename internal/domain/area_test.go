package domain

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareFeature builds a 0.01°×0.01° square footprint centered on (lon, lat).
func squareFeature(lon, lat float64) *geojson.Feature {
	const half = 0.005
	ring := orb.Ring{
		{lon - half, lat - half},
		{lon + half, lat - half},
		{lon + half, lat + half},
		{lon - half, lat + half},
		{lon - half, lat - half},
	}
	return geojson.NewFeature(orb.Polygon{ring})
}

func constantDistance(meters float64) WaterwayDistanceFunc {
	return func(_ *geojson.Feature, _ orb.Point) (float64, bool) { return meters, true }
}

func TestAssessArea_AllFeaturesAssessed(t *testing.T) {
	provider := fixedElevation(30)
	features := []*geojson.Feature{
		squareFeature(-7.60, 33.55),
		squareFeature(-7.58, 33.57),
	}

	results, err := AssessArea(context.Background(), provider, features, 65, constantDistance(150), discardLogger())
	require.NoError(t, err)

	require.Len(t, results, 2)
	for _, r := range results {
		assert.Equal(t, 85, r.Score)
		assert.Equal(t, RiskCritique, r.Level)
		assert.NotNil(t, r.Geometry)
	}
}

func TestAssessArea_CentroidIsRepresentativePoint(t *testing.T) {
	var sawLon, sawLat float64
	provider := &mockProvider{elevationFor: func(lon, lat float64) (float64, bool) {
		sawLon, sawLat = lon, lat
		return 100, true
	}}

	_, err := AssessArea(context.Background(), provider,
		[]*geojson.Feature{squareFeature(-7.60, 33.55)}, 0, constantDistance(500), discardLogger())
	require.NoError(t, err)

	assert.InDelta(t, -7.60, sawLon, 1e-9)
	assert.InDelta(t, 33.55, sawLat, 1e-9)
}

func TestAssessArea_SkipsUnavailableElevation(t *testing.T) {
	// Elevation exists only north of lat 33.56.
	provider := &mockProvider{elevationFor: func(_, lat float64) (float64, bool) {
		return 80, lat > 33.56
	}}
	features := []*geojson.Feature{
		squareFeature(-7.60, 33.50), // skipped
		squareFeature(-7.58, 33.60),
	}

	results, err := AssessArea(context.Background(), provider, features, 20, constantDistance(400), discardLogger())
	require.NoError(t, err)

	require.Len(t, results, 1, "batch continues past unavailable features")
	assert.InDelta(t, 33.60, results[0].Coordinates.Lat, 1e-9)
}

func TestAssessArea_SkipsUnknownDistance(t *testing.T) {
	noDistance := func(_ *geojson.Feature, _ orb.Point) (float64, bool) { return 0, false }

	results, err := AssessArea(context.Background(), fixedElevation(30),
		[]*geojson.Feature{squareFeature(-7.60, 33.55)}, 65, noDistance, discardLogger())
	require.NoError(t, err)

	assert.Empty(t, results)
}

func TestAssessArea_SkipsNilGeometry(t *testing.T) {
	features := []*geojson.Feature{nil, {}, squareFeature(-7.60, 33.55)}

	results, err := AssessArea(context.Background(), fixedElevation(30), features, 65, constantDistance(150), discardLogger())
	require.NoError(t, err)

	assert.Len(t, results, 1)
}

func TestAssessArea_NilDistanceFuncIsAnError(t *testing.T) {
	_, err := AssessArea(context.Background(), fixedElevation(30),
		[]*geojson.Feature{squareFeature(-7.60, 33.55)}, 65, nil, discardLogger())

	require.Error(t, err)
}

func TestAssessArea_PreservesInputOrder(t *testing.T) {
	provider := fixedElevation(120)
	features := []*geojson.Feature{
		squareFeature(-7.70, 33.50),
		squareFeature(-7.60, 33.55),
		squareFeature(-7.50, 33.60),
	}

	results, err := AssessArea(context.Background(), provider, features, 0, constantDistance(500), discardLogger())
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.InDelta(t, -7.70, results[0].Coordinates.Lon, 1e-9)
	assert.InDelta(t, -7.60, results[1].Coordinates.Lon, 1e-9)
	assert.InDelta(t, -7.50, results[2].Coordinates.Lon, 1e-9)
}
