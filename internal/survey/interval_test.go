package survey

import (
	"errors"
	"testing"
	"time"
)

func buildRecords(spans ...[2]time.Time) []Record {
	records := make([]Record, len(spans))
	for i, span := range spans {
		records[i] = Record{
			Interval: i + 1,
			Layer:    DefaultLayer,
			Start:    span[0],
			End:      span[1],
		}
	}
	return records
}

func TestIndexFindInclusiveBounds(t *testing.T) {
	base := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	ix, err := NewIndex(buildRecords(
		[2]time.Time{base, base.Add(5 * time.Minute)},
	))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	if ids := ix.Find(base); len(ids) != 1 {
		t.Fatalf("start bound must be inclusive, got %v", ids)
	}
	if ids := ix.Find(base.Add(5 * time.Minute)); len(ids) != 1 {
		t.Fatalf("end bound must be inclusive, got %v", ids)
	}
	if ids := ix.Find(base.Add(5*time.Minute + time.Second)); len(ids) != 0 {
		t.Fatalf("expected no match past the end, got %v", ids)
	}
	if ids := ix.Find(base.Add(-time.Second)); len(ids) != 0 {
		t.Fatalf("expected no match before the start, got %v", ids)
	}
}

func TestIndexFindOverlap(t *testing.T) {
	base := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	ix, err := NewIndex(buildRecords(
		[2]time.Time{base, base.Add(10 * time.Minute)},
		[2]time.Time{base.Add(5 * time.Minute), base.Add(15 * time.Minute)},
	))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	ids := ix.Find(base.Add(7 * time.Minute))
	if len(ids) != 2 {
		t.Fatalf("expected both overlapping intervals, got %v", ids)
	}
	if ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("expected construction order [1 2], got %v", ids)
	}
}

func TestRepresentativeFirstMatch(t *testing.T) {
	base := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	ix, err := NewIndex(buildRecords(
		[2]time.Time{base, base.Add(10 * time.Minute)},
		[2]time.Time{base.Add(5 * time.Minute), base.Add(15 * time.Minute)},
	))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	id, ok := ix.Representative(base.Add(7 * time.Minute))
	if !ok {
		t.Fatalf("expected a match inside the overlap")
	}
	if id != 1 {
		t.Fatalf("first-match policy must keep interval 1, got %d", id)
	}
}

func TestRepresentativeNoMatch(t *testing.T) {
	base := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	ix, err := NewIndex(buildRecords(
		[2]time.Time{base, base.Add(5 * time.Minute)},
	))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	if _, ok := ix.Representative(base.Add(time.Hour)); ok {
		t.Fatalf("expected no match inside a gap")
	}
}

func TestRepresentativeCustomPolicy(t *testing.T) {
	base := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	ix, err := NewIndex(buildRecords(
		[2]time.Time{base, base.Add(10 * time.Minute)},
		[2]time.Time{base.Add(5 * time.Minute), base.Add(15 * time.Minute)},
	))
	if err != nil {
		t.Fatalf("NewIndex failed: %v", err)
	}

	// Last-match policy, to prove the tie-break is swappable.
	ix.Policy = func(ids []int) int { return ids[len(ids)-1] }

	id, ok := ix.Representative(base.Add(7 * time.Minute))
	if !ok || id != 2 {
		t.Fatalf("expected custom policy to pick interval 2, got %d (ok=%v)", id, ok)
	}
}

func TestNewIndexEmpty(t *testing.T) {
	if _, err := NewIndex(nil); !errors.Is(err, ErrNoIntervals) {
		t.Fatalf("expected ErrNoIntervals, got %v", err)
	}
}
