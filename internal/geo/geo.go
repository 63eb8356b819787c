package geo

import "math"

// EarthRadiusMeters is the mean spherical Earth radius used for
// great-circle distances.
const EarthRadiusMeters = 6371000.0

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the coordinates are finite and inside the
// geographic range.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lon) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lon, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Distance returns the great-circle (haversine) distance between a and b
// in meters. Identical points yield exactly 0. Invalid coordinates yield
// NaN so the caller can treat the leg as missing instead of aborting.
func Distance(a, b Point) float64 {
	if !a.Valid() || !b.Valid() {
		return math.NaN()
	}
	if a.Lat == b.Lat && a.Lon == b.Lon {
		return 0
	}

	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// CumulativeDistance returns the running along-track distance for the
// sequence: element 0 is 0, element i adds the great-circle distance from
// point i-1 to point i. The result is monotonically non-decreasing for
// valid coordinate sequences; an invalid point poisons the remainder of
// the sequence with NaN.
func CumulativeDistance(points []Point) []float64 {
	if len(points) == 0 {
		return nil
	}

	out := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		out[i] = out[i-1] + Distance(points[i-1], points[i])
	}
	return out
}
