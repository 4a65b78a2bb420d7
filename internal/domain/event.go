package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/paulmach/orb/geojson"
)

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

// AreaAnalysisRequest asks for a flood-risk assessment of the building
// footprints inside a bounding box under a shared 24-hour precipitation
// forecast. WaterwayDistanceM is the area-wide fallback distance to the nearest
// oued; a feature-level "waterway_distance_m" property overrides it, and a
// feature with neither is skipped.
type AreaAnalysisRequest struct {
	ID                 string                     `json:"id,omitempty"`
	BBox               BoundingBox                `json:"bbox"`
	Precipitation24hMm float64                    `json:"precipitation_24h_mm"`
	WaterwayDistanceM  *float64                   `json:"waterway_distance_m,omitempty"`
	ResolutionM        float64                    `json:"resolution_m,omitempty"`
	LowZoneThresholdM  float64                    `json:"low_zone_threshold_m,omitempty"`
	Buildings          *geojson.FeatureCollection `json:"buildings"`
}

// ParseAreaRequest deserializes a RawEvent's value into an AreaAnalysisRequest.
// The bounding box is validated during decoding; a request without a buildings
// collection or with negative precipitation is rejected. Requests without an ID
// get a deterministic one derived from the payload, so reprocessing the same
// raw message produces the same report ID.
func ParseAreaRequest(raw RawEvent) (AreaAnalysisRequest, error) {
	var req AreaAnalysisRequest
	if err := json.Unmarshal(raw.Value, &req); err != nil {
		return AreaAnalysisRequest{}, fmt.Errorf("parse area request: %w", err)
	}
	if req.BBox.IsZero() {
		return AreaAnalysisRequest{}, fmt.Errorf("parse area request: %w: missing bbox", ErrInvalidBoundingBox)
	}
	if req.Buildings == nil {
		return AreaAnalysisRequest{}, fmt.Errorf("parse area request: missing buildings feature collection")
	}
	if req.Precipitation24hMm < 0 {
		return AreaAnalysisRequest{}, fmt.Errorf("parse area request: negative precipitation %g", req.Precipitation24hMm)
	}
	if req.ID == "" {
		req.ID = generateRequestID(raw.Value)
	}
	return req, nil
}

// generateRequestID produces a short deterministic ID from the raw payload.
// Deterministic IDs keep reprocessing idempotent downstream.
func generateRequestID(payload []byte) string {
	hash := sha256.Sum256(payload)
	return "req-" + hex.EncodeToString(hash[:8])
}

// AreaRiskReport is the assessed output for one AreaAnalysisRequest. ZoneStats
// is nil when the zone extraction failed or the window held no measurements.
type AreaRiskReport struct {
	ID                 string           `json:"id"`
	BBox               BoundingBox      `json:"bbox"`
	Precipitation24hMm float64          `json:"precipitation_24h_mm"`
	Results            []AreaRiskResult `json:"results"`
	ZoneStats          *ZoneStats       `json:"zone_stats"`
	SkippedFeatures    int              `json:"skipped_features"`
	ProcessedAt        time.Time        `json:"processed_at"`
}

// BuildAreaReport assembles the report for a request, stamping the processing
// time from the package clock.
func BuildAreaReport(req AreaAnalysisRequest, results []AreaRiskResult, stats *ZoneStats) AreaRiskReport {
	skipped := 0
	if req.Buildings != nil {
		skipped = len(req.Buildings.Features) - len(results)
	}
	return AreaRiskReport{
		ID:                 req.ID,
		BBox:               req.BBox,
		Precipitation24hMm: req.Precipitation24hMm,
		Results:            results,
		ZoneStats:          stats,
		SkippedFeatures:    skipped,
		ProcessedAt:        clock.Now(),
	}
}
