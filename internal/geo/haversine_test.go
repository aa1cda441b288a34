package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	t.Run("Zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(10.762622, 106.660172, 10.762622, 106.660172))
		assert.Equal(t, 0.0, DistanceKm(0, 0, 0, 0))
		assert.Equal(t, 0.0, DistanceKm(-45.5, 170.2, -45.5, 170.2))
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := DistanceKm(10.762622, 106.660172, 10.823099, 106.629662)
		b := DistanceKm(10.823099, 106.629662, 10.762622, 106.660172)
		assert.InDelta(t, a, b, 1e-9)
	})

	t.Run("Known distance", func(t *testing.T) {
		// Hanoi to Ho Chi Minh City, roughly 1140-1170 km great-circle.
		d := DistanceKm(21.028511, 105.804817, 10.762622, 106.660172)
		assert.InDelta(t, 1150, d, 30)
	})

	t.Run("Short hop", func(t *testing.T) {
		// ~1 degree of latitude is ~111 km.
		d := DistanceKm(10.0, 106.0, 11.0, 106.0)
		assert.InDelta(t, 111.2, d, 0.5)
	})
}

func TestBoundingBox(t *testing.T) {
	minLat, maxLat, minLon, maxLon := BoundingBox(10.76, 106.66, 5)
	assert.Less(t, minLat, 10.76)
	assert.Greater(t, maxLat, 10.76)
	assert.Less(t, minLon, 106.66)
	assert.Greater(t, maxLon, 106.66)

	// The box must contain every point within the radius.
	assert.LessOrEqual(t, maxLat-minLat, 0.1)
}
