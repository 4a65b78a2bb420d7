package domain

import (
	"context"
	"errors"
	"fmt"
)

// ErrElevationUnavailable marks a point assessment that could not run because
// the DEM had no measurement for the coordinate. It is an expected absence, not
// a failure of the caller.
var ErrElevationUnavailable = errors.New("elevation unavailable")

// AssessPoint fetches the elevation at (lon, lat) and scores flood risk against
// the given waterway distance and forecast precipitation.
//
// Returns ErrInvalidCoordinate for out-of-range input and
// ErrElevationUnavailable when the provider reports no measurement; it never
// panics on expected absence conditions.
func AssessPoint(ctx context.Context, provider ElevationProvider, lon, lat, waterwayDistanceM, precipitation24hMm float64) (RiskAssessment, error) {
	point := Geo{Lon: lon, Lat: lat}
	if !point.Valid() {
		return RiskAssessment{}, fmt.Errorf("%w: lon=%g lat=%g", ErrInvalidCoordinate, lon, lat)
	}

	sample := provider.PointElevation(ctx, lon, lat)
	if !sample.Valid {
		return RiskAssessment{}, fmt.Errorf("%w at lon=%g lat=%g", ErrElevationUnavailable, lon, lat)
	}

	assessment := ScoreFloodRisk(sample.Meters, waterwayDistanceM, precipitation24hMm)
	assessment.Coordinates = point
	return assessment, nil
}
