package domain

import (
	"context"
	"errors"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// WaterwayDistanceFunc supplies the straight-line distance in meters from a
// feature's representative point to the nearest mapped watercourse. There is no
// default: callers must provide real data or an intentional stub. Returning
// ok=false skips the feature.
type WaterwayDistanceFunc func(feature *geojson.Feature, at orb.Point) (meters float64, ok bool)

// AreaRiskResult joins one assessed feature to its risk score.
type AreaRiskResult struct {
	Geometry *geojson.Geometry `json:"geometry"`
	RiskAssessment
}

// AssessArea scores every feature in order, using the planar centroid of its
// geometry as the representative point. Features whose assessment cannot run
// (elevation unavailable, unknown waterway distance, centroid out of range,
// missing geometry) are skipped with a logged reason; the batch never fails for
// one feature. Results are a pure function of the inputs, so order of
// evaluation does not matter.
//
// The only errors are programmer errors: a nil provider or nil distance function.
func AssessArea(ctx context.Context, provider ElevationProvider, features []*geojson.Feature, precipitation24hMm float64, distanceFn WaterwayDistanceFunc, logger *slog.Logger) ([]AreaRiskResult, error) {
	if provider == nil {
		return nil, errors.New("assess area: nil elevation provider")
	}
	if distanceFn == nil {
		return nil, errors.New("assess area: nil waterway distance function")
	}
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]AreaRiskResult, 0, len(features))
	for i, feature := range features {
		if feature == nil || feature.Geometry == nil {
			logger.Warn("skipping feature without geometry", "index", i)
			continue
		}

		centroid, _ := planar.CentroidArea(feature.Geometry)

		distance, ok := distanceFn(feature, centroid)
		if !ok {
			logger.Warn("skipping feature with unknown waterway distance",
				"index", i, "lon", centroid.Lon(), "lat", centroid.Lat())
			continue
		}

		assessment, err := AssessPoint(ctx, provider, centroid.Lon(), centroid.Lat(), distance, precipitation24hMm)
		if err != nil {
			logger.Warn("skipping feature", "index", i,
				"lon", centroid.Lon(), "lat", centroid.Lat(), "reason", err)
			continue
		}

		results = append(results, AreaRiskResult{
			Geometry:       geojson.NewGeometry(feature.Geometry),
			RiskAssessment: assessment,
		})
	}
	return results, nil
}
