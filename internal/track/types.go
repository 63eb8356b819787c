package track

import (
	"time"
)

// StatusActiveFix is the position_status value marking a usable fix.
const StatusActiveFix = 1

// Fix is one raw depth-sounder position fix as ingested.
type Fix struct {
	Time   time.Time
	Lat    float64
	Lon    float64
	Depth  float64
	Status int
}

// Point is one cleaned track point with along-track distances attached.
type Point struct {
	Time  time.Time
	Lat   float64
	Lon   float64
	Depth float64

	// LegDistance is the great-circle distance in meters from the
	// previous point of the clean track; 0 for the first point.
	LegDistance float64

	// TrackDistance is the running sum of LegDistance up to and
	// including this point.
	TrackDistance float64
}

// Config holds cleaning parameters.
type Config struct {
	// ValidStatus is the position_status value a fix must carry to be
	// kept. Defaults to StatusActiveFix.
	ValidStatus int
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		ValidStatus: StatusActiveFix,
	}
}

// Stats reports what the cleaner did so callers can surface it to users.
type Stats struct {
	RawFixes       int     `json:"raw_fixes"`
	DroppedStatus  int     `json:"dropped_status"`
	DroppedCoords  int     `json:"dropped_coords"`
	CleanPoints    int     `json:"clean_points"`
	TotalDistanceM float64 `json:"total_distance_m"`
}

// Result contains the cleaned track and its statistics.
type Result struct {
	Points []Point
	Stats  Stats
}
