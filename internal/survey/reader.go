package survey

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNoRecords indicates the acoustic input held no usable rows at all.
var ErrNoRecords = errors.New("survey: no acoustic records in input")

// recordColumns are the required schema-B header names.
var recordColumns = []string{"Interval", "Layer", "Sv_mean", "Frequency", "Date_M", "Time_S", "Time_E", "Lat_M", "Lon_M"}

const timestampLayout = "2006-01-02 15:04:05.999999999"

// IngestStats counts what the reader saw and what it had to drop.
type IngestStats struct {
	Rows      int `json:"rows"`
	Malformed int `json:"malformed"`
	NoFix     int `json:"no_fix"`
}

// ReadRecords reads a schema-B acoustic export from disk.
func ReadRecords(filename string) ([]Record, IngestStats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("failed to open survey file: %w", err)
	}
	defer file.Close()

	return ReadRecordsFrom(file)
}

// ReadRecordsFrom parses schema-B acoustic rows from an io.Reader.
//
// Rows whose Lon_M carries the no-fix sentinel are discarded; −999.0 in
// any numeric field becomes a nil "no value". Malformed rows are dropped
// and counted. A missing required column or an entirely empty input is a
// structural failure. The result is sorted by interval start time
// (stable) so downstream order never depends on export quirks.
func ReadRecordsFrom(r io.Reader) ([]Record, IngestStats, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, IngestStats{}, fmt.Errorf("failed to read survey header: %w", err)
	}

	cols, err := resolveColumns(header, recordColumns)
	if err != nil {
		return nil, IngestStats{}, err
	}

	var (
		records []Record
		stats   IngestStats
	)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			stats.Rows++
			stats.Malformed++
			continue
		}

		stats.Rows++
		rec, status := parseRecord(row, cols)
		switch status {
		case rowOK:
			records = append(records, rec)
		case rowNoFix:
			stats.NoFix++
		case rowMalformed:
			stats.Malformed++
		}
	}

	if len(records) == 0 {
		return nil, stats, ErrNoRecords
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Start.Before(records[j].Start)
	})

	return records, stats, nil
}

type rowStatus int

const (
	rowOK rowStatus = iota
	rowNoFix
	rowMalformed
)

func parseRecord(row []string, cols map[string]int) (Record, rowStatus) {
	get := func(name string) (string, bool) {
		idx := cols[name]
		if idx >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[idx]), true
	}
	getFloat := func(name string) (float64, bool) {
		s, ok := get(name)
		if !ok {
			return 0, false
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}

	lon, ok := getFloat("Lon_M")
	if !ok {
		return Record{}, rowMalformed
	}
	if lon == noFixLongitude {
		return Record{}, rowNoFix
	}

	intervalField, ok := get("Interval")
	if !ok {
		return Record{}, rowMalformed
	}
	interval, err := strconv.Atoi(intervalField)
	if err != nil {
		return Record{}, rowMalformed
	}

	layerField, ok := get("Layer")
	if !ok {
		return Record{}, rowMalformed
	}
	layer, err := strconv.Atoi(layerField)
	if err != nil {
		return Record{}, rowMalformed
	}

	svMean, ok := getFloat("Sv_mean")
	if !ok {
		return Record{}, rowMalformed
	}
	frequency, ok := getFloat("Frequency")
	if !ok {
		return Record{}, rowMalformed
	}
	lat, ok := getFloat("Lat_M")
	if !ok {
		return Record{}, rowMalformed
	}

	date, ok := get("Date_M")
	if !ok {
		return Record{}, rowMalformed
	}
	timeS, ok := get("Time_S")
	if !ok {
		return Record{}, rowMalformed
	}
	timeE, ok := get("Time_E")
	if !ok {
		return Record{}, rowMalformed
	}

	start, err := time.ParseInLocation(timestampLayout, date+" "+timeS, time.UTC)
	if err != nil {
		return Record{}, rowMalformed
	}
	end, err := time.ParseInLocation(timestampLayout, date+" "+timeE, time.UTC)
	if err != nil {
		return Record{}, rowMalformed
	}
	// Intervals that straddle midnight end on the next day.
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}

	return Record{
		Interval:  interval,
		Layer:     layer,
		SvMean:    scrub(svMean),
		Frequency: scrub(frequency),
		Start:     start,
		End:       end,
		Lat:       scrub(lat),
		Lon:       scrub(lon),
	}, rowOK
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
			return nil, fmt.Errorf("survey: missing required column %q", name)
		}
		cols[name] = idx
	}
	return cols, nil
}
