package survey

import (
	"time"
)

// Sentinel values used by the upstream export format. They are scrubbed
// at the ingest boundary and never reach arithmetic.
const (
	// missingValue marks a numeric field with no measurement.
	missingValue = -999.0

	// noFixLongitude marks a record without a position fix; the whole
	// row is discarded.
	noFixLongitude = 999.0
)

// DefaultLayer is the depth stratum this pipeline aligns.
const DefaultLayer = 1

// Record is one acoustic survey interval row after sentinel scrubbing.
// Nil pointer fields mean "no value".
type Record struct {
	Interval  int
	Layer     int
	SvMean    *float64
	Frequency *float64
	Start     time.Time
	End       time.Time
	Lat       *float64
	Lon       *float64
}

// FilterLayer returns the records belonging to the given depth stratum,
// preserving input order.
func FilterLayer(records []Record, layer int) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Layer == layer {
			out = append(out, rec)
		}
	}
	return out
}

// scrub converts the missing-data sentinel to a nil "no value".
func scrub(v float64) *float64 {
	if v == missingValue {
		return nil
	}
	return &v
}
