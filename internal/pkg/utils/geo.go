package utils

import "math"

const earthRadiusKm = 6371.0

// kmPerDegreeLat is the rough size of one degree of latitude.
const kmPerDegreeLat = 111.0

// HaversineDistance returns the great-circle distance between two points in kilometers.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundingBox returns the lat/lng deltas that enclose a circle of radiusKm around
// a latitude. Used as a cheap SQL prefilter before the exact Haversine check.
func BoundingBox(lat, radiusKm float64) (latDelta, lngDelta float64) {
	latDelta = radiusKm / kmPerDegreeLat
	cosLat := math.Cos(lat * math.Pi / 180.0)
	if cosLat < 0.01 {
		cosLat = 0.01 // degenerate near the poles
	}
	lngDelta = radiusKm / (kmPerDegreeLat * cosLat)
	return latDelta, lngDelta
}

// ValidateCoordinates checks that a coordinate pair is on the globe.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
