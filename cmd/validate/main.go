// Command validate performs integrity checks across the mock data fixtures:
// raw area-analysis requests and the assessed flood-risk reports generated
// from them. It verifies that every request parses, that every report is
// internally consistent (scores are the sum of their parts, levels match
// scores, feature counts add up), and that requests and reports agree.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -requests-json data/mock/area_requests.json \
//	  -reports-json data/mock/flood_risk_reports.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/hydromaroc/flood-risk-service/internal/domain"
)

// processedAt is the frozen report timestamp used by cmd/genfixtures.
var processedAt = time.Date(2026, time.February, 4, 12, 0, 0, 0, time.UTC)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	requestsJSON := flag.String("requests-json", "", "path to the raw request fixture")
	reportsJSON := flag.String("reports-json", "", "path to the assessed report fixture")
	flag.Parse()

	if *requestsJSON == "" || *reportsJSON == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*requestsJSON, *reportsJSON); code != 0 {
		os.Exit(code)
	}
}

func run(requestsPath, reportsPath string) int {
	requests, err := loadRequests(requestsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load requests: %v\n", err)
		return 1
	}
	reports, err := loadReports(reportsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load reports: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateRequests(requests),
		validateReports(reports),
		validateCrossConsistency(requests, reports),
	}

	failed := 0
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	if failed > 0 {
		fmt.Printf("\n%d of %d phases failed\n", failed, len(phases))
		return 1
	}
	fmt.Printf("\nall %d phases passed\n", len(phases))
	return 0
}

func loadRequests(path string) ([]domain.AreaAnalysisRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Route each element through ParseAreaRequest so fixture requests face the
	// same validation as live Kafka messages.
	var payloads []json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return nil, err
	}
	requests := make([]domain.AreaAnalysisRequest, 0, len(payloads))
	for i, p := range payloads {
		req, err := domain.ParseAreaRequest(domain.RawEvent{Value: p})
		if err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func loadReports(path string) ([]domain.AreaRiskReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reports []domain.AreaRiskReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func validateRequests(requests []domain.AreaAnalysisRequest) *phase {
	p := &phase{name: "requests"}

	seen := map[string]bool{}
	for _, req := range requests {
		if seen[req.ID] {
			p.errorf("%s: duplicate request ID", req.ID)
		}
		seen[req.ID] = true

		if req.Buildings == nil || len(req.Buildings.Features) == 0 {
			p.errorf("%s: no building footprints", req.ID)
		}
	}
	return p
}

func validateReports(reports []domain.AreaRiskReport) *phase {
	p := &phase{name: "reports"}

	for i := range reports {
		r := &reports[i]
		for j, result := range r.Results {
			validateResult(p, r.ID, j, result)
		}
		if r.ZoneStats != nil {
			validateZoneStats(p, r.ID, r.ZoneStats)
		}
		if !r.ProcessedAt.Equal(processedAt) {
			p.errorf("%s: processed_at %s, want frozen %s", r.ID, r.ProcessedAt.Format(time.RFC3339), processedAt.Format(time.RFC3339))
		}
	}
	return p
}

// validateResult recomputes the assessment from the echoed inputs and checks
// the stored result against it.
func validateResult(p *phase, reportID string, index int, result domain.AreaRiskResult) {
	if result.Geometry == nil {
		p.errorf("%s result %d: missing geometry", reportID, index)
	}

	d := result.Details
	want := domain.ScoreFloodRisk(d.ElevationM, d.WaterwayDistanceM, d.Precipitation24hMm)

	if sum := d.AltitudeScore + d.DistanceScore + d.RainScore; result.Score != sum {
		p.errorf("%s result %d: score %d is not the sum of its parts (%d)", reportID, index, result.Score, sum)
	}
	if result.Score < 0 || result.Score > 100 {
		p.errorf("%s result %d: score %d out of range", reportID, index, result.Score)
	}
	if result.Score != want.Score {
		p.errorf("%s result %d: score %d, recomputed %d", reportID, index, result.Score, want.Score)
	}
	if result.Level != want.Level {
		p.errorf("%s result %d: level %s, recomputed %s", reportID, index, result.Level, want.Level)
	}
	if result.Color != want.Color {
		p.errorf("%s result %d: color %s, recomputed %s", reportID, index, result.Color, want.Color)
	}
	if !result.Coordinates.Valid() {
		p.errorf("%s result %d: invalid coordinates (%g, %g)", reportID, index, result.Coordinates.Lon, result.Coordinates.Lat)
	}
}

func validateZoneStats(p *phase, reportID string, s *domain.ZoneStats) {
	if s.LowCells > s.TotalCells {
		p.errorf("%s: low cells %d exceed total %d", reportID, s.LowCells, s.TotalCells)
	}
	if s.TotalCells > 0 {
		wantPct := float64(s.LowCells) / float64(s.TotalCells) * 100
		if math.Abs(s.LowPercentage-wantPct) > 0.01 {
			p.errorf("%s: low percentage %.2f, recomputed %.2f", reportID, s.LowPercentage, wantPct)
		}
	}
	if s.ThresholdM <= 0 {
		p.errorf("%s: non-positive threshold %g", reportID, s.ThresholdM)
	}
	if s.MinElevationM > s.MeanElevationM || s.MeanElevationM > s.MaxElevationM {
		p.errorf("%s: elevation aggregates out of order (min %g, mean %g, max %g)",
			reportID, s.MinElevationM, s.MeanElevationM, s.MaxElevationM)
	}
}

func validateCrossConsistency(requests []domain.AreaAnalysisRequest, reports []domain.AreaRiskReport) *phase {
	p := &phase{name: "cross-consistency"}

	byID := make(map[string]*domain.AreaAnalysisRequest, len(requests))
	for i := range requests {
		byID[requests[i].ID] = &requests[i]
	}

	if len(reports) != len(requests) {
		p.errorf("%d reports for %d requests", len(reports), len(requests))
	}

	for i := range reports {
		r := &reports[i]
		req, ok := byID[r.ID]
		if !ok {
			p.errorf("%s: no matching request", r.ID)
			continue
		}
		if r.BBox != req.BBox {
			p.errorf("%s: bbox mismatch", r.ID)
		}
		if r.Precipitation24hMm != req.Precipitation24hMm {
			p.errorf("%s: precipitation %g, request had %g", r.ID, r.Precipitation24hMm, req.Precipitation24hMm)
		}
		if got, want := len(r.Results)+r.SkippedFeatures, len(req.Buildings.Features); got != want {
			p.errorf("%s: %d results + %d skipped != %d features", r.ID, len(r.Results), r.SkippedFeatures, want)
		}
	}
	return p
}
