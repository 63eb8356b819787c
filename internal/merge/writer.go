package merge

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// WriteEnriched saves the enriched acoustic table to a CSV file. Missing
// values become empty cells so nothing downstream mistakes them for
// measurements.
func WriteEnriched(filename string, rows []Enriched) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return WriteEnrichedTo(file, rows)
}

// WriteEnrichedTo writes the enriched acoustic table to an io.Writer.
func WriteEnrichedTo(w io.Writer, rows []Enriched) error {
	cw := csv.NewWriter(w)

	header := []string{
		"interval", "layer", "sv_mean", "frequency",
		"start_time", "end_time", "latitude", "longitude",
		"mean_depth", "depth_display",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.Interval),
			strconv.Itoa(row.Layer),
			formatOptional(row.SvMean),
			formatOptional(row.Frequency),
			row.Start.UTC().Format(time.RFC3339),
			row.End.UTC().Format(time.RFC3339),
			formatOptional(row.Lat),
			formatOptional(row.Lon),
			formatOptional(row.MeanDepth),
			formatOptional(row.DepthDisplay),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write enriched table: %w", err)
	}
	return nil
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
