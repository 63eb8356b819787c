package survey

import (
	"errors"
	"time"
)

// ErrNoIntervals indicates an index cannot be built because the filtered
// acoustic stream is empty.
var ErrNoIntervals = errors.New("survey: no intervals to index")

// Interval is the inclusive [Start, End] time span of one survey
// interval. Intervals may overlap and may leave gaps.
type Interval struct {
	ID    int
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval, bounds included.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && !t.After(iv.End)
}

// Policy picks one interval id when a timestamp falls inside several
// overlapping intervals. ids is never empty and preserves index
// construction order.
type Policy func(ids []int) int

// FirstMatch keeps the interval encountered first in construction order,
// which for a time-sorted acoustic stream is the earliest-ingested one.
// The collapse from set to scalar is deliberate and lossy; making the
// policy a value keeps it visible and swappable.
var FirstMatch Policy = func(ids []int) int { return ids[0] }

// Index answers point-in-interval queries over the survey intervals.
// It is built once and is safe for concurrent readers.
type Index struct {
	intervals []Interval

	// Policy resolves multi-interval matches; nil means FirstMatch.
	Policy Policy
}

// NewIndex builds an index from the filtered acoustic stream, one
// interval per record, in input order.
func NewIndex(records []Record) (*Index, error) {
	if len(records) == 0 {
		return nil, ErrNoIntervals
	}

	intervals := make([]Interval, len(records))
	for i, rec := range records {
		intervals[i] = Interval{ID: rec.Interval, Start: rec.Start, End: rec.End}
	}

	return &Index{intervals: intervals}, nil
}

// Len returns the number of indexed intervals.
func (ix *Index) Len() int {
	return len(ix.intervals)
}

// Find returns the ids of every interval containing t, in construction
// order. The result is empty when t falls in a gap.
func (ix *Index) Find(t time.Time) []int {
	var ids []int
	for _, iv := range ix.intervals {
		if iv.Contains(t) {
			ids = append(ids, iv.ID)
		}
	}
	return ids
}

// Representative collapses Find(t) to a single interval id using the
// index policy. The second return is false when no interval contains t.
func (ix *Index) Representative(t time.Time) (int, bool) {
	ids := ix.Find(t)
	if len(ids) == 0 {
		return 0, false
	}

	policy := ix.Policy
	if policy == nil {
		policy = FirstMatch
	}
	return policy(ids), true
}
