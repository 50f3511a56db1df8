package routing

import "math"

const earthRadiusM = 6371000.0

// Coordinate is a coordinate pair. On the campus graph it is a geographic
// latitude/longitude in degrees; on an interior graph it is a local planar
// pair with y stored in Lat and x in Lon (the scale factor converts local
// units to meters).
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// HaversineDistance returns the great-circle distance in meters between two
// latitude/longitude pairs on a mean-radius spherical earth.
func HaversineDistance(a, b Coordinate) float64 {
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	deltaPhi := toRadians(b.Lat - a.Lat)
	deltaLambda := toRadians(b.Lon - a.Lon)

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

// EuclideanDistance returns the planar distance between two local coordinate
// pairs, scaled from local units to meters.
func EuclideanDistance(a, b Coordinate, scale float64) float64 {
	dx := b.Lon - a.Lon
	dy := b.Lat - a.Lat
	return math.Sqrt(dx*dx+dy*dy) * scale
}
