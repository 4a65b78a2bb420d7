// Package domain models flood-risk assessment for points and building
// footprints in Morocco.
//
// # Scoring model
//
// The risk score is a heuristic sum of three independent sub-scores, each a
// fixed threshold lookup over one input. The buckets partition the whole input
// domain, so the total is always in [0, 100] and fully determined by the inputs:
//
//	Altitude (max 40):   <50m → 40 | <100m → 30 | <200m → 15 | ≥200m → 5
//	Oued distance (35):  <100m → 35 | <300m → 25 | <500m → 15 | <1000m → 5 | ≥1000m → 0
//	Rain 24h (max 25):   >80mm → 25 | >50mm → 20 | >30mm → 12 | >10mm → 5 | ≤10mm → 0
//
// Altitude and distance buckets are inclusive on the lower bound; rain buckets
// are exclusive (exactly 10mm scores 0). Totals map to categories top-down:
//
//	≥70 CRITIQUE (#D32F2F) | ≥40 ÉLEVÉ (#F57C00) | ≥20 MODÉRÉ (#FBC02D) | FAIBLE (#388E3C)
//
// Category labels stay in French to match the hydrological bulletins the
// reports feed.
//
// # DEM conventions
//
// Elevation comes from a remote digital elevation model behind the
// [ElevationProvider] interface. Providers never surface transport or no-data
// failures as errors: a point lookup yields an invalid [ElevationSample] and a
// zone extraction yields an empty [ElevationGrid], with causes logged
// out-of-band. Grids are row-major with row 0 at the northern edge and NaN as
// the no-data sentinel, mirroring raster window reads.
//
// # Waterway distance
//
// Distance to the nearest oued is deliberately not computed here. The historical
// implementation stubbed it with a fictive constant; this package instead
// requires a [WaterwayDistanceFunc] with no default, so callers either supply
// real data or an explicit test stub.
//
// # Report IDs
//
// Area requests without an ID get a deterministic SHA-256 digest of their
// payload, so replaying a source message produces the same report ID and
// downstream upserts stay idempotent.
package domain
