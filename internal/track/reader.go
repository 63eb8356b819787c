package track

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrNoFixRows indicates the track file held a header but no data rows.
var ErrNoFixRows = errors.New("track: no fix rows in input")

// fixColumns are the required schema-A header names.
var fixColumns = []string{"ping_date", "ping_time", "latitude", "longitude", "depth", "position_status"}

// timestampLayout combines ping_date and ping_time; the fractional part
// is optional.
const timestampLayout = "2006-01-02 15:04:05.999999999"

// IngestStats counts what the reader saw and what it had to drop.
type IngestStats struct {
	Rows      int `json:"rows"`
	Malformed int `json:"malformed"`
}

// ReadFixes reads a schema-A fix file from disk.
func ReadFixes(filename string) ([]Fix, IngestStats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("failed to open track file: %w", err)
	}
	defer file.Close()

	return ReadFixesFrom(file)
}

// ReadFixesFrom parses schema-A fix rows from an io.Reader.
//
// Columns are resolved by header name, so column order is free. Rows
// with an unparsable date, time, or number are dropped and counted in
// IngestStats.Malformed; a missing required column is a structural
// failure and aborts the read.
func ReadFixesFrom(r io.Reader) ([]Fix, IngestStats, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("failed to read track header: %w", err)
	}

	cols, err := resolveColumns(header, fixColumns)
	if err != nil {
		return nil, IngestStats{}, err
	}

	var (
		fixes []Fix
		stats IngestStats
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Ragged row; drop it like any other malformed row.
			stats.Rows++
			stats.Malformed++
			continue
		}

		stats.Rows++
		fix, ok := parseFix(record, cols)
		if !ok {
			stats.Malformed++
			continue
		}
		fixes = append(fixes, fix)
	}

	if stats.Rows == 0 {
		return nil, stats, ErrNoFixRows
	}

	return fixes, stats, nil
}

func parseFix(record []string, cols map[string]int) (Fix, bool) {
	get := func(name string) (string, bool) {
		idx := cols[name]
		if idx >= len(record) {
			return "", false
		}
		return strings.TrimSpace(record[idx]), true
	}

	date, ok := get("ping_date")
	if !ok {
		return Fix{}, false
	}
	tod, ok := get("ping_time")
	if !ok {
		return Fix{}, false
	}
	ts, err := time.ParseInLocation(timestampLayout, date+" "+tod, time.UTC)
	if err != nil {
		return Fix{}, false
	}

	lat, ok := parseFloat(get("latitude"))
	if !ok {
		return Fix{}, false
	}
	lon, ok := parseFloat(get("longitude"))
	if !ok {
		return Fix{}, false
	}
	depth, ok := parseFloat(get("depth"))
	if !ok {
		return Fix{}, false
	}

	statusField, ok := get("position_status")
	if !ok {
		return Fix{}, false
	}
	status, err := strconv.Atoi(statusField)
	if err != nil {
		return Fix{}, false
	}

	return Fix{Time: ts, Lat: lat, Lon: lon, Depth: depth, Status: status}, true
}

func parseFloat(s string, ok bool) (float64, bool) {
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// resolveColumns maps required column names to their index in the header.
func resolveColumns(header, required []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	cols := make(map[string]int, len(required))
	for _, name := range required {
		idx, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("track: missing required column %q", name)
		}
		cols[name] = idx
	}
	return cols, nil
}
