package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidCoordinate marks a longitude/latitude pair outside the WGS-84 range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidBoundingBox marks a malformed or degenerate bounding box.
	ErrInvalidBoundingBox = errors.New("invalid bounding box")
)

// Geo represents a WGS-84 longitude/latitude coordinate pair.
type Geo struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Valid reports whether the pair lies inside the WGS-84 coordinate range.
func (g Geo) Valid() bool {
	return g.Lon >= -180 && g.Lon <= 180 && g.Lat >= -90 && g.Lat <= 90
}

// BoundingBox is an axis-aligned lon/lat rectangle. Construct via NewBoundingBox
// or JSON decoding; both reject degenerate boxes.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// NewBoundingBox validates the corners and returns the box.
// Min must be strictly less than max on both axes.
func NewBoundingBox(minLon, minLat, maxLon, maxLat float64) (BoundingBox, error) {
	sw := Geo{Lon: minLon, Lat: minLat}
	ne := Geo{Lon: maxLon, Lat: maxLat}
	if !sw.Valid() || !ne.Valid() {
		return BoundingBox{}, fmt.Errorf("%w: corners outside WGS-84 range [%g %g %g %g]",
			ErrInvalidBoundingBox, minLon, minLat, maxLon, maxLat)
	}
	if minLon >= maxLon || minLat >= maxLat {
		return BoundingBox{}, fmt.Errorf("%w: min must be less than max [%g %g %g %g]",
			ErrInvalidBoundingBox, minLon, minLat, maxLon, maxLat)
	}
	return BoundingBox{MinLon: minLon, MinLat: minLat, MaxLon: maxLon, MaxLat: maxLat}, nil
}

// IsZero reports whether the box is the zero value (never produced by NewBoundingBox).
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

// MarshalJSON encodes the box as the conventional [minLon, minLat, maxLon, maxLat] array.
func (b BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{b.MinLon, b.MinLat, b.MaxLon, b.MaxLat})
}

// UnmarshalJSON decodes and validates a [minLon, minLat, maxLon, maxLat] array.
func (b *BoundingBox) UnmarshalJSON(data []byte) error {
	var corners [4]float64
	if err := json.Unmarshal(data, &corners); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBoundingBox, err)
	}
	box, err := NewBoundingBox(corners[0], corners[1], corners[2], corners[3])
	if err != nil {
		return err
	}
	*b = box
	return nil
}

// ElevationSample is the result of a single DEM lookup. Valid is false when the
// source pixel is no-data, the coordinate is outside the raster extent, or the
// fetch failed. A zero elevation with Valid true is a legitimate measurement.
type ElevationSample struct {
	Meters float64
	Valid  bool
}

// ElevationGrid is a read-only elevation matrix aligned to a bounding box.
// Cells are row-major with row 0 at the northern edge; NaN marks no-data.
type ElevationGrid struct {
	Cells            [][]float64
	Bounds           BoundingBox
	ResolutionMeters float64
}

// Empty reports whether the grid holds no cells, the contract's failure value.
func (g ElevationGrid) Empty() bool {
	return len(g.Cells) == 0
}

// NumCells returns the total cell count including no-data cells.
func (g ElevationGrid) NumCells() int {
	n := 0
	for _, row := range g.Cells {
		n += len(row)
	}
	return n
}

// IsNoData reports whether a cell value is the no-data sentinel.
func IsNoData(v float64) bool {
	return math.IsNaN(v)
}
