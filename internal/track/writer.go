package track

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// WriteTrack saves the cleaned track to a CSV file so the plotting
// collaborator gets plain numeric distance/depth columns.
func WriteTrack(filename string, points []Point) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create track file: %w", err)
	}
	defer file.Close()

	return WriteTrackTo(file, points)
}

// WriteTrackTo writes the cleaned track to an io.Writer.
func WriteTrackTo(w io.Writer, points []Point) error {
	cw := csv.NewWriter(w)

	header := []string{"time", "latitude", "longitude", "depth", "leg_distance_m", "track_distance_m"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, p := range points {
		row := []string{
			p.Time.UTC().Format(time.RFC3339Nano),
			formatFloat(p.Lat),
			formatFloat(p.Lon),
			formatFloat(p.Depth),
			formatFloat(p.LegDistance),
			formatFloat(p.TrackDistance),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write track: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
