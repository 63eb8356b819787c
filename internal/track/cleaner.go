package track

import (
	"sort"

	"github.com/marbio/echoalign/internal/geo"
)

// Clean filters raw fixes down to usable track points and attaches
// along-track distances.
//
// Fixes whose status does not match cfg.ValidStatus are dropped, as are
// fixes with coordinates outside the geographic range. Survivors are
// sorted by timestamp (stable, so equal timestamps keep their ingest
// order) before distances accumulate; upstream ordering is not trusted.
// An input that filters down to nothing yields an empty Result, not an
// error.
func Clean(fixes []Fix, cfg Config) Result {
	def := DefaultConfig()
	if cfg.ValidStatus == 0 {
		cfg.ValidStatus = def.ValidStatus
	}

	stats := Stats{RawFixes: len(fixes)}

	kept := make([]Fix, 0, len(fixes))
	for _, f := range fixes {
		if f.Status != cfg.ValidStatus {
			stats.DroppedStatus++
			continue
		}
		if !(geo.Point{Lat: f.Lat, Lon: f.Lon}).Valid() {
			stats.DroppedCoords++
			continue
		}
		kept = append(kept, f)
	}

	if len(kept) == 0 {
		return Result{Stats: stats}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Time.Before(kept[j].Time)
	})

	coords := make([]geo.Point, len(kept))
	for i, f := range kept {
		coords[i] = geo.Point{Lat: f.Lat, Lon: f.Lon}
	}
	cum := geo.CumulativeDistance(coords)

	points := make([]Point, len(kept))
	for i, f := range kept {
		leg := 0.0
		if i > 0 {
			leg = cum[i] - cum[i-1]
		}
		points[i] = Point{
			Time:          f.Time,
			Lat:           f.Lat,
			Lon:           f.Lon,
			Depth:         f.Depth,
			LegDistance:   leg,
			TrackDistance: cum[i],
		}
	}

	stats.CleanPoints = len(points)
	stats.TotalDistanceM = cum[len(cum)-1]

	return Result{Points: points, Stats: stats}
}
