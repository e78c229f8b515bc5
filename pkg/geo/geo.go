package geo

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusM radius bumi dalam meter.
const EarthRadiusM = 6371000.0

// Location lat/lon dalam radian.
type Location struct {
	Latitude  float64
	Longitude float64
}

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func NewLocation(latDegree float64, lonDegree float64) Location {
	return Location{
		Latitude:  degreeToRadians(latDegree),
		Longitude: degreeToRadians(lonDegree),
	}
}

// HaversineDistance great-circle distance in meters.
// https://www.movable-type.co.uk/scripts/latlong.html
func HaversineDistance(locationOne Location, locationTwo Location) float64 {
	dLat := locationTwo.Latitude - locationOne.Latitude
	dLon := locationTwo.Longitude - locationOne.Longitude

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	a := sinLat*sinLat + math.Cos(locationOne.Latitude)*math.Cos(locationTwo.Latitude)*sinLon*sinLon
	// rounding bisa bikin a sedikit diluar [0,1] untuk titik antipodal
	a = math.Max(0, math.Min(1, a))

	return EarthRadiusM * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// CalculateHaversineDistance same as HaversineDistance but takes degrees.
func CalculateHaversineDistance(latOne, lonOne, latTwo, lonTwo float64) float64 {
	return HaversineDistance(NewLocation(latOne, lonOne), NewLocation(latTwo, lonTwo))
}

// BoundingRect returns the lat/lon rectangle (degrees) enclosing the circle of radiusM meters
// around (lat, lon).
func BoundingRect(lat, lon, radiusM float64) (minLat, minLon, maxLat, maxLon float64) {
	center := s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon))
	capAngle := s1.Angle(radiusM / EarthRadiusM)
	rect := s2.CapFromCenterAngle(center, capAngle).RectBound()

	lo, hi := rect.Lo(), rect.Hi()
	return lo.Lat.Degrees(), lo.Lng.Degrees(), hi.Lat.Degrees(), hi.Lng.Degrees()
}

//	φ is latitude, λ is longitude
//
// https://www.movable-type.co.uk/scripts/latlong.html
func MidPoint(lat1, lon1 float64, lat2, lon2 float64) (float64, float64) {
	p1LatRad := degreeToRadians(lat1)
	p2LatRad := degreeToRadians(lat2)

	diffLon := degreeToRadians(lon2 - lon1)

	bx := math.Cos(p2LatRad) * math.Cos(diffLon)
	by := math.Cos(p2LatRad) * math.Sin(diffLon)

	newLon := degreeToRadians(lon1) + math.Atan2(by, math.Cos(p1LatRad)+bx)
	newLat := math.Atan2(math.Sin(p1LatRad)+math.Sin(p2LatRad), math.Sqrt((math.Cos(p1LatRad)+bx)*(math.Cos(p1LatRad)+bx)+by*by))

	return radToDeg(newLat), radToDeg(newLon)
}

func radToDeg(r float64) float64 {
	return 180.0 * r / math.Pi
}
