package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoValidCells marks a zone-statistics request over a grid with no measured
// cells (empty or entirely no-data). Reported explicitly so callers cannot
// mistake it for a zone of zero elevation.
var ErrNoValidCells = errors.New("no valid cells in elevation grid")

// ZoneStats summarizes the low-lying share of an elevation grid. TotalCells
// counts every cell including no-data; min/max/mean aggregate measured cells
// only. JSON field names follow the historical report format.
type ZoneStats struct {
	TotalCells     int     `json:"total_pixels"`
	LowCells       int     `json:"low_zone_pixels"`
	LowPercentage  float64 `json:"low_zone_percentage"`
	ThresholdM     float64 `json:"threshold_m"`
	MinElevationM  float64 `json:"min_elevation"`
	MaxElevationM  float64 `json:"max_elevation"`
	MeanElevationM float64 `json:"mean_elevation"`
}

// LowZoneStats computes the proportion of the grid below thresholdMeters.
// No-data cells are skipped by the min/max/mean reduction and can never count
// as low, but they still appear in TotalCells and in the percentage
// denominator. Returns ErrNoValidCells when nothing was measured.
func LowZoneStats(grid ElevationGrid, thresholdMeters float64) (ZoneStats, error) {
	total := grid.NumCells()
	if total == 0 {
		return ZoneStats{}, fmt.Errorf("%w: empty grid", ErrNoValidCells)
	}

	var (
		low   int
		valid int
		sum   float64
		min   = math.Inf(1)
		max   = math.Inf(-1)
	)
	for _, row := range grid.Cells {
		for _, v := range row {
			if IsNoData(v) {
				continue
			}
			valid++
			sum += v
			min = math.Min(min, v)
			max = math.Max(max, v)
			if v < thresholdMeters {
				low++
			}
		}
	}

	if valid == 0 {
		return ZoneStats{}, fmt.Errorf("%w: all %d cells are no-data", ErrNoValidCells, total)
	}

	return ZoneStats{
		TotalCells:     total,
		LowCells:       low,
		LowPercentage:  float64(low) / float64(total) * 100,
		ThresholdM:     thresholdMeters,
		MinElevationM:  min,
		MaxElevationM:  max,
		MeanElevationM: sum / float64(valid),
	}, nil
}
