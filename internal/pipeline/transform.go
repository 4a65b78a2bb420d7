package pipeline

import (
	"context"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hydromaroc/flood-risk-service/internal/domain"
	"github.com/hydromaroc/flood-risk-service/internal/observability"
)

// waterwayDistanceProperty names the per-feature override for the distance to
// the nearest oued, in meters.
const waterwayDistanceProperty = "waterway_distance_m"

// RiskTransformer implements Transformer by assessing every building footprint
// in an analysis request and attaching zone-wide elevation statistics.
type RiskTransformer struct {
	provider          domain.ElevationProvider
	metrics           *observability.Metrics
	logger            *slog.Logger
	resolutionM       float64
	lowZoneThresholdM float64
}

// NewTransformer creates a RiskTransformer. The resolution and low-zone
// threshold are defaults; requests may override both per message.
func NewTransformer(provider domain.ElevationProvider, metrics *observability.Metrics, logger *slog.Logger, resolutionM, lowZoneThresholdM float64) *RiskTransformer {
	return &RiskTransformer{
		provider:          provider,
		metrics:           metrics,
		logger:            logger,
		resolutionM:       resolutionM,
		lowZoneThresholdM: lowZoneThresholdM,
	}
}

func (t *RiskTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.AreaRiskReport, error) {
	req, err := domain.ParseAreaRequest(raw)
	if err != nil {
		return domain.AreaRiskReport{}, err
	}

	results, err := domain.AssessArea(ctx, t.provider, req.Buildings.Features,
		req.Precipitation24hMm, waterwayDistance(req), t.logger)
	if err != nil {
		return domain.AreaRiskReport{}, err
	}

	t.metrics.FeaturesAssessed.Add(float64(len(results)))
	t.metrics.FeaturesSkipped.Add(float64(len(req.Buildings.Features) - len(results)))

	return domain.BuildAreaReport(req, results, t.zoneStats(ctx, req)), nil
}

// waterwayDistance builds the distance lookup for one request: a feature-level
// property overrides the request-wide fallback, and a feature with neither is
// skipped during assessment.
func waterwayDistance(req domain.AreaAnalysisRequest) domain.WaterwayDistanceFunc {
	return func(feature *geojson.Feature, _ orb.Point) (float64, bool) {
		if v, ok := feature.Properties[waterwayDistanceProperty]; ok {
			if d, ok := v.(float64); ok && d >= 0 {
				return d, true
			}
		}
		if req.WaterwayDistanceM != nil {
			return *req.WaterwayDistanceM, true
		}
		return 0, false
	}
}

// zoneStats extracts the elevation window for the request's bounding box and
// summarizes it. A failed extraction degrades to a report without statistics
// rather than failing the whole request.
func (t *RiskTransformer) zoneStats(ctx context.Context, req domain.AreaAnalysisRequest) *domain.ZoneStats {
	resolution := req.ResolutionM
	if resolution <= 0 {
		resolution = t.resolutionM
	}
	threshold := req.LowZoneThresholdM
	if threshold <= 0 {
		threshold = t.lowZoneThresholdM
	}

	grid := t.provider.ZoneElevations(ctx, req.BBox, resolution)
	if grid.Empty() {
		t.logger.Warn("zone elevation window unavailable", "request_id", req.ID)
		return nil
	}

	stats, err := domain.LowZoneStats(grid, threshold)
	if err != nil {
		t.logger.Warn("zone statistics unavailable", "request_id", req.ID, "error", err)
		return nil
	}
	return &stats
}
