package merge

import (
	"errors"

	"github.com/marbio/echoalign/internal/align"
	"github.com/marbio/echoalign/internal/survey"
)

// ErrNoRecords indicates there is nothing to merge onto.
var ErrNoRecords = errors.New("merge: no acoustic records")

// Config controls how the merge behaves.
type Config struct {
	// DepthCeiling caps the display depth in meters. Zero means "use
	// the default"; the measured mean depth itself is never touched.
	DepthCeiling float64
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		DepthCeiling: 250,
	}
}

// Stats reports what happened during the merge.
type Stats struct {
	Records   int `json:"records"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

// Enriched is one acoustic record with the aligned mean depth attached.
// Nil MeanDepth means no track point fell inside the interval.
type Enriched struct {
	survey.Record

	MeanDepth    *float64
	DepthDisplay *float64
}

// Merge left-joins the per-interval depth aggregates onto the acoustic
// record stream. Every input record appears exactly once in the output,
// in input order; records without an aggregate keep a nil mean depth and
// a nil display depth — a missing value is never clamped to a number.
func Merge(records []survey.Record, aggregates []align.Aggregate, cfg Config) ([]Enriched, Stats, error) {
	if len(records) == 0 {
		return nil, Stats{}, ErrNoRecords
	}

	if cfg.DepthCeiling <= 0 {
		cfg.DepthCeiling = DefaultConfig().DepthCeiling
	}

	depths := make(map[int]float64, len(aggregates))
	for _, agg := range aggregates {
		depths[agg.Interval] = agg.MeanDepth
	}

	stats := Stats{Records: len(records)}

	out := make([]Enriched, len(records))
	for i, rec := range records {
		enriched := Enriched{Record: rec}

		if depth, ok := depths[rec.Interval]; ok {
			stats.Matched++
			mean := depth
			display := min(depth, cfg.DepthCeiling)
			enriched.MeanDepth = &mean
			enriched.DepthDisplay = &display
		} else {
			stats.Unmatched++
		}

		out[i] = enriched
	}

	return out, stats, nil
}
