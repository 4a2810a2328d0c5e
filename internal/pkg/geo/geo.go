package geo

import "math"

const earthRadiusMeters = 6371000

// Distance computes the great-circle distance between two coordinates in
// meters using the Haversine formula. Inputs are decimal degrees; the caller
// is responsible for range validation.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLon := (lon2 - lon1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// Geofence is the admission boundary for check-in and check-out, anchored at
// the office coordinate. It is built from configuration and injected so it
// can be constructed directly in tests.
type Geofence struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
}

// Allows reports whether the given device coordinate falls inside the fence.
func (g Geofence) Allows(lat, lon float64) bool {
	return Distance(g.Latitude, g.Longitude, lat, lon) <= g.RadiusMeters
}
