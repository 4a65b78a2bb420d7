package domain

import "context"

// ElevationProvider answers elevation queries against a digital elevation model.
// Implementations never panic and never surface transport or format failures to
// the caller: a failed point lookup yields an invalid sample and a failed zone
// extraction yields an empty grid, with the cause reported to the
// implementation's diagnostic logger.
type ElevationProvider interface {
	// PointElevation resolves the raster cell covering (lon, lat) and returns
	// its value, or an invalid sample on no-data, out-of-extent, or failure.
	PointElevation(ctx context.Context, lon, lat float64) ElevationSample

	// ZoneElevations extracts the minimal cell window covering box at
	// approximately resolutionMeters. No-data cells are NaN. Returns an empty
	// grid on failure.
	ZoneElevations(ctx context.Context, box BoundingBox, resolutionMeters float64) ElevationGrid
}
