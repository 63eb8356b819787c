package align

import (
	"runtime"
	"sync"

	"github.com/marbio/echoalign/internal/survey"
	"github.com/marbio/echoalign/internal/track"
)

// Aggregate is the mean depth of every track point assigned to one
// survey interval. Samples is always at least 1; intervals with no
// matching points get no aggregate at all.
type Aggregate struct {
	Interval  int
	MeanDepth float64
	Samples   int
}

// Config holds alignment parameters.
type Config struct {
	// Workers caps the number of concurrent lookup goroutines.
	// Zero means runtime.NumCPU().
	Workers int
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
	}
}

// Stats reports how alignment went.
type Stats struct {
	TrackPoints     int `json:"track_points"`
	MatchedPoints   int `json:"matched_points"`
	UnmatchedPoints int `json:"unmatched_points"`
	Intervals       int `json:"aggregated_intervals"`
}

// minChunk keeps goroutine overhead below the cost of the lookups.
const minChunk = 64

// Align assigns every clean track point to a survey interval and
// aggregates mean depth per interval.
//
// Interval lookups are independent per point, so they fan out over a
// chunked worker pool; each chunk writes into its own slice slots, and
// grouping runs afterwards in original track order, so the output is
// deterministic regardless of scheduling. Aggregates appear in order of
// first matching track point. Points that fall in a gap between
// intervals are counted and excluded, never aggregated as depth 0.
func Align(points []track.Point, ix *survey.Index, cfg Config) ([]Aggregate, Stats) {
	stats := Stats{TrackPoints: len(points)}
	if len(points) == 0 {
		return nil, stats
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultConfig().Workers
	}

	// -1 marks a point with no enclosing interval.
	assigned := make([]int, len(points))

	n := len(points)
	chunkSize := max(n/workers, minChunk)

	var wg sync.WaitGroup
	for i := 0; i < n; i += chunkSize {
		start := i
		end := min(i+chunkSize, n)

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for idx := s; idx < e; idx++ {
				if id, ok := ix.Representative(points[idx].Time); ok {
					assigned[idx] = id
				} else {
					assigned[idx] = -1
				}
			}
		}(start, end)
	}
	wg.Wait()

	// Group in track order so aggregate order is reproducible.
	sums := make(map[int]*Aggregate)
	var order []int
	for idx, id := range assigned {
		if id < 0 {
			stats.UnmatchedPoints++
			continue
		}
		stats.MatchedPoints++

		agg, ok := sums[id]
		if !ok {
			agg = &Aggregate{Interval: id}
			sums[id] = agg
			order = append(order, id)
		}
		agg.MeanDepth += points[idx].Depth
		agg.Samples++
	}

	aggregates := make([]Aggregate, 0, len(order))
	for _, id := range order {
		agg := sums[id]
		agg.MeanDepth /= float64(agg.Samples)
		aggregates = append(aggregates, *agg)
	}

	stats.Intervals = len(aggregates)
	return aggregates, stats
}
