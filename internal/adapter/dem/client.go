package dem

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hydromaroc/flood-risk-service/internal/domain"
	"github.com/hydromaroc/flood-risk-service/internal/observability"
)

const (
	// maxLocationsPerRequest is the OpenTopodata per-request location limit.
	maxLocationsPerRequest = 100

	// maxZoneCells bounds a zone extraction; larger windows are coarsened.
	maxZoneCells = 4096

	metersPerDegreeLat = 110540.0
	metersPerDegreeLon = 111320.0 // at the equator, scaled by cos(lat)
)

// Client implements domain.ElevationProvider against an OpenTopodata-compatible
// elevation API. Per the provider contract, failures never reach the caller as
// errors: they are logged and normalized to invalid samples or empty grids.
type Client struct {
	baseURL    string
	dataset    string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a DEM client for the given API base URL and dataset name.
func NewClient(baseURL, dataset string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		dataset: dataset,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// PointElevation resolves the DEM cell covering (lon, lat).
func (c *Client) PointElevation(ctx context.Context, lon, lat float64) domain.ElevationSample {
	values, err := c.fetch(ctx, "point", []domain.Geo{{Lon: lon, Lat: lat}})
	if err != nil {
		c.metrics.ElevationRequests.WithLabelValues("point", "error").Inc()
		c.logger.Warn("point elevation lookup failed", "lon", lon, "lat", lat, "error", err)
		return domain.ElevationSample{}
	}

	if domain.IsNoData(values[0]) {
		c.metrics.ElevationRequests.WithLabelValues("point", "nodata").Inc()
		return domain.ElevationSample{}
	}

	c.metrics.ElevationRequests.WithLabelValues("point", "success").Inc()
	return domain.ElevationSample{Meters: values[0], Valid: true}
}

// ZoneElevations samples a cell lattice covering box at approximately
// resolutionMeters, batching API calls under the per-request location limit.
// Row 0 lies on the northern edge, matching raster window reads.
func (c *Client) ZoneElevations(ctx context.Context, box domain.BoundingBox, resolutionMeters float64) domain.ElevationGrid {
	if box.IsZero() || resolutionMeters <= 0 {
		c.logger.Warn("zone elevation request rejected", "resolution_m", resolutionMeters)
		return domain.ElevationGrid{}
	}

	rows, cols := gridShape(box, resolutionMeters)
	latStep := (box.MaxLat - box.MinLat) / float64(rows)
	lonStep := (box.MaxLon - box.MinLon) / float64(cols)

	coords := make([]domain.Geo, 0, rows*cols)
	for i := 0; i < rows; i++ {
		lat := box.MaxLat - (float64(i)+0.5)*latStep
		for j := 0; j < cols; j++ {
			coords = append(coords, domain.Geo{
				Lon: box.MinLon + (float64(j)+0.5)*lonStep,
				Lat: lat,
			})
		}
	}

	values := make([]float64, 0, len(coords))
	for start := 0; start < len(coords); start += maxLocationsPerRequest {
		end := min(start+maxLocationsPerRequest, len(coords))
		batch, err := c.fetch(ctx, "zone", coords[start:end])
		if err != nil {
			c.metrics.ElevationRequests.WithLabelValues("zone", "error").Inc()
			c.logger.Warn("zone elevation window failed",
				"rows", rows, "cols", cols, "offset", start, "error", err)
			return domain.ElevationGrid{}
		}
		c.metrics.ElevationRequests.WithLabelValues("zone", "success").Inc()
		values = append(values, batch...)
	}

	cells := make([][]float64, rows)
	for i := range cells {
		cells[i] = values[i*cols : (i+1)*cols]
	}
	return domain.ElevationGrid{Cells: cells, Bounds: box, ResolutionMeters: resolutionMeters}
}

// gridShape sizes the minimal lattice covering box at the requested resolution,
// using an equirectangular approximation for the metric spans. Windows over the
// cell budget are coarsened uniformly on both axes.
func gridShape(box domain.BoundingBox, resolutionMeters float64) (rows, cols int) {
	midLat := (box.MinLat + box.MaxLat) / 2 * math.Pi / 180
	heightM := (box.MaxLat - box.MinLat) * metersPerDegreeLat
	widthM := (box.MaxLon - box.MinLon) * metersPerDegreeLon * math.Cos(midLat)

	rows = max(1, int(math.Round(heightM/resolutionMeters)))
	cols = max(1, int(math.Round(widthM/resolutionMeters)))

	if rows*cols > maxZoneCells {
		scale := math.Sqrt(float64(rows*cols) / maxZoneCells)
		rows = max(1, int(float64(rows)/scale))
		cols = max(1, int(float64(cols)/scale))
	}
	return rows, cols
}

func (c *Client) fetch(ctx context.Context, method string, coords []domain.Geo) ([]float64, error) {
	var locations strings.Builder
	for i, p := range coords {
		if i > 0 {
			locations.WriteByte('|')
		}
		// The API takes lat,lon order.
		fmt.Fprintf(&locations, "%.6f,%.6f", p.Lat, p.Lon)
	}
	params := url.Values{"locations": {locations.String()}}
	fullURL := fmt.Sprintf("%s/%s?%s", c.baseURL, c.dataset, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s elevation request: %w", method, err)
	}
	defer resp.Body.Close()
	c.metrics.ElevationAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("dem API error: status %d: %s", resp.StatusCode, body)
	}

	var apiResp response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Results) != len(coords) {
		return nil, fmt.Errorf("dem API returned %d results for %d locations", len(apiResp.Results), len(coords))
	}

	values := make([]float64, len(apiResp.Results))
	for i, r := range apiResp.Results {
		if r.Elevation == nil {
			values[i] = math.NaN()
			continue
		}
		values[i] = *r.Elevation
	}
	return values, nil
}

// OpenTopodata API response types.

type response struct {
	Status  string   `json:"status"`
	Results []result `json:"results"`
}

type result struct {
	Elevation *float64 `json:"elevation"` // null marks a no-data pixel
	Location  struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"location"`
}
