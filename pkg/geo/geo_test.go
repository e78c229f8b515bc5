package geo_test

import (
	"math"
	"testing"

	"lintang/busnavigator/pkg/geo"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	points := [][2]float64{
		{10.7677, 106.6894},
		{10.8437, 106.6134},
		{10.76306747151454, 106.68247166704994},
		{-7.5513, 110.8286},
		{0, 0},
		{89.9, -179.9},
	}

	t.Run("symmetric", func(t *testing.T) {
		for _, a := range points {
			for _, b := range points {
				ab := geo.CalculateHaversineDistance(a[0], a[1], b[0], b[1])
				ba := geo.CalculateHaversineDistance(b[0], b[1], a[0], a[1])
				assert.InDelta(t, ab, ba, 1e-6)
				assert.GreaterOrEqual(t, ab, 0.0)
				assert.False(t, math.IsNaN(ab))
			}
		}
	})

	t.Run("zero for same point", func(t *testing.T) {
		for _, a := range points {
			assert.Equal(t, 0.0, geo.CalculateHaversineDistance(a[0], a[1], a[0], a[1]))
		}
	})

	t.Run("one degree of longitude on the equator", func(t *testing.T) {
		d := geo.CalculateHaversineDistance(0, 0, 0, 1)
		assert.InDelta(t, 111194.93, d, 0.01)
	})

	t.Run("antipodal points stay finite", func(t *testing.T) {
		d := geo.CalculateHaversineDistance(0, 0, 0, 180)
		assert.InDelta(t, math.Pi*geo.EarthRadiusM, d, 1e-3)
	})
}

func TestBoundingRect(t *testing.T) {
	lat, lon := 10.7677, 106.6894
	minLat, minLon, maxLat, maxLon := geo.BoundingRect(lat, lon, 500)

	assert.Less(t, minLat, lat)
	assert.Greater(t, maxLat, lat)
	assert.Less(t, minLon, lon)
	assert.Greater(t, maxLon, lon)

	// the rect must enclose the circle
	assert.GreaterOrEqual(t, geo.CalculateHaversineDistance(lat, lon, maxLat, lon), 499.0)
	assert.GreaterOrEqual(t, geo.CalculateHaversineDistance(lat, lon, lat, maxLon), 499.0)
}
