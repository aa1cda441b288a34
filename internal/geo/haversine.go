package geo

import "math"

const earthRadiusKm = 6371

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers using the haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(lat1Rad)*math.Cos(lat2Rad)*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// BoundingBox returns the min/max latitude and longitude of a box that
// encloses a circle of radiusKm around the given point. Used as a cheap
// prefilter before the exact haversine check.
func BoundingBox(lat, lon, radiusKm float64) (minLat, maxLat, minLon, maxLon float64) {
	latDelta := radiusKm / 111.0 // ~111 km per degree of latitude
	lonDelta := latDelta
	if cos := math.Cos(toRadians(lat)); cos > 0.01 {
		lonDelta = latDelta / cos
	}
	return lat - latDelta, lat + latDelta, lon - lonDelta, lon + lonDelta
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
