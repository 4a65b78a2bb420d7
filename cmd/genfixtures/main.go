// Command genfixtures generates the mock area-analysis fixtures for the test
// suites. It runs the actual pipeline transformer over hand-built requests so
// the checked-in reports match real pipeline behavior, using a synthetic
// relief model (1000m of elevation per degree of latitude north of 33°N,
// no-data south of it) in place of a live DEM.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -requests-out data/mock/area_requests.json \
//	  -reports-out data/mock/flood_risk_reports.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/hydromaroc/flood-risk-service/internal/domain"
	"github.com/hydromaroc/flood-risk-service/internal/observability"
	"github.com/hydromaroc/flood-risk-service/internal/pipeline"
)

// processedAt is the frozen report timestamp, shared with cmd/validate.
var processedAt = time.Date(2026, time.February, 4, 12, 0, 0, 0, time.UTC)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	requestsOut := flag.String("requests-out", "", "output path for the raw request fixture")
	reportsOut := flag.String("reports-out", "", "output path for the assessed report fixture")
	flag.Parse()

	if *requestsOut == "" || *reportsOut == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -requests-out, -reports-out")
	}

	// Freeze the clock for reproducible ProcessedAt timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(processedAt))
	defer domain.SetClock(nil)

	requests := buildRequests()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tfm := pipeline.NewTransformer(syntheticRelief{}, observability.NewMetricsForTesting(), logger, 30, 100)

	reports := make([]domain.AreaRiskReport, 0, len(requests))
	for _, req := range requests {
		payload, err := json.Marshal(req)
		if err != nil {
			return fmt.Errorf("marshal request %s: %w", req.ID, err)
		}
		report, err := tfm.Transform(context.Background(), domain.RawEvent{Value: payload})
		if err != nil {
			return fmt.Errorf("transform request %s: %w", req.ID, err)
		}
		reports = append(reports, report)
		log.Printf("%s: %d assessed, %d skipped", report.ID, len(report.Results), report.SkippedFeatures)
	}

	if err := writeJSON(*requestsOut, requests); err != nil {
		return fmt.Errorf("writing request fixture: %w", err)
	}
	log.Printf("wrote request fixture: %s", *requestsOut)

	if err := writeJSON(*reportsOut, reports); err != nil {
		return fmt.Errorf("writing report fixture: %w", err)
	}
	log.Printf("wrote report fixture: %s", *reportsOut)

	printStats(reports)
	return nil
}

// buildRequests assembles the three fixture scenarios: a coastal area with a
// shared waterway distance, a foothill area mixing per-feature distances with
// a feature that has none, and a window entirely outside DEM coverage.
func buildRequests() []domain.AreaAnalysisRequest {
	coastal := mustBox(-7.65, 33.0, -7.55, 33.3)
	foothills := mustBox(-7.7, 33.2, -7.6, 33.3)
	offshore := mustBox(-7.65, 32.8, -7.55, 32.95)

	coastalDistance := 150.0
	offshoreDistance := 200.0

	return []domain.AreaAnalysisRequest{
		{
			ID:                 "req-casa-coastal",
			BBox:               coastal,
			Precipitation24hMm: 65,
			WaterwayDistanceM:  &coastalDistance,
			Buildings: featureCollection(
				footprint(-7.60, 33.03, map[string]any{"building": "residential", "name": "Immeuble Al Amal"}),
				footprint(-7.61, 33.12, map[string]any{"building": "school"}),
				footprint(-7.59, 33.25, map[string]any{"building": "warehouse"}),
			),
		},
		{
			ID:                 "req-atlas-foothills",
			BBox:               foothills,
			Precipitation24hMm: 5,
			Buildings: featureCollection(
				footprint(-7.65, 33.25, map[string]any{"building": "farmhouse", "waterway_distance_m": 1200.0}),
				footprint(-7.64, 33.26, map[string]any{"building": "barn"}),
			),
		},
		{
			ID:                 "req-nodata",
			BBox:               offshore,
			Precipitation24hMm: 80,
			WaterwayDistanceM:  &offshoreDistance,
			Buildings: featureCollection(
				footprint(-7.60, 32.90, map[string]any{"building": "residential"}),
			),
		},
	}
}

func mustBox(minLon, minLat, maxLon, maxLat float64) domain.BoundingBox {
	box, err := domain.NewBoundingBox(minLon, minLat, maxLon, maxLat)
	if err != nil {
		panic(err)
	}
	return box
}

func featureCollection(features ...*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

// footprint builds a square building footprint centered on (lon, lat).
func footprint(lon, lat float64, props map[string]any) *geojson.Feature {
	d := 0.0005
	f := geojson.NewFeature(orb.Polygon{{
		{lon - d, lat - d},
		{lon + d, lat - d},
		{lon + d, lat + d},
		{lon - d, lat + d},
		{lon - d, lat - d},
	}})
	for k, v := range props {
		f.Properties[k] = v
	}
	return f
}

// syntheticRelief mirrors the model in the pipeline mock-data tests: elevation
// rises 1000m per degree of latitude north of 33°N, rounded to 0.1m, with
// no-data south of it.
type syntheticRelief struct{}

func (syntheticRelief) elevation(lat float64) (float64, bool) {
	if lat < 33.0 {
		return 0, false
	}
	return math.Round((lat-33.0)*10000) / 10, true
}

func (p syntheticRelief) PointElevation(_ context.Context, _, lat float64) domain.ElevationSample {
	m, ok := p.elevation(lat)
	if !ok {
		return domain.ElevationSample{}
	}
	return domain.ElevationSample{Meters: m, Valid: true}
}

func (p syntheticRelief) ZoneElevations(_ context.Context, box domain.BoundingBox, resolutionMeters float64) domain.ElevationGrid {
	const size = 4
	latStep := (box.MaxLat - box.MinLat) / size
	cells := make([][]float64, size)
	for i := range cells {
		lat := box.MaxLat - (float64(i)+0.5)*latStep
		row := make([]float64, size)
		for j := range row {
			if m, ok := p.elevation(lat); ok {
				row[j] = m
			} else {
				row[j] = math.NaN()
			}
		}
		cells[i] = row
	}
	return domain.ElevationGrid{Cells: cells, Bounds: box, ResolutionMeters: resolutionMeters}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(reports []domain.AreaRiskReport) {
	levelCounts := map[domain.RiskLevel]int{}
	var assessed, skipped int

	for i := range reports {
		r := &reports[i]
		assessed += len(r.Results)
		skipped += r.SkippedFeatures
		for _, result := range r.Results {
			levelCounts[result.Level]++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Reports: %d\n", len(reports))
	fmt.Printf("Assessed: %d, skipped: %d\n", assessed, skipped)
	fmt.Printf("By level: FAIBLE=%d, MODÉRÉ=%d, ÉLEVÉ=%d, CRITIQUE=%d\n",
		levelCounts[domain.RiskFaible], levelCounts[domain.RiskModere],
		levelCounts[domain.RiskEleve], levelCounts[domain.RiskCritique])

	for i := range reports {
		r := &reports[i]
		if r.ZoneStats == nil {
			fmt.Printf("%s: no zone stats\n", r.ID)
			continue
		}
		fmt.Printf("%s: low zone %.1f%% (%d/%d cells), elevation %.1f–%.1fm\n",
			r.ID, r.ZoneStats.LowPercentage, r.ZoneStats.LowCells, r.ZoneStats.TotalCells,
			r.ZoneStats.MinElevationM, r.ZoneStats.MaxElevationM)
	}
}
