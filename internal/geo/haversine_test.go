package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	toronto   = Point{Lat: 43.6532, Lng: -79.3832}
	montreal  = Point{Lat: 45.5019, Lng: -73.5674}
	vancouver = Point{Lat: 49.2827, Lng: -123.1207}
)

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Торонто - Монреаль примерно 504 км
	assert.InDelta(t, 504, toronto.DistanceKm(montreal), 5)
}

func TestHaversineKm_Symmetric(t *testing.T) {
	points := []Point{toronto, montreal, vancouver, {Lat: -33.86, Lng: 151.2}, {Lat: 0, Lng: 0}}
	for _, a := range points {
		for _, b := range points {
			assert.InDelta(t, a.DistanceKm(b), b.DistanceKm(a), 1e-9)
		}
	}
}

func TestHaversineKm_ZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, toronto.DistanceKm(toronto))
	assert.Equal(t, 0.0, HaversineKm(0, 0, 0, 0))
}

func TestHaversineKm_MonotonicInSeparation(t *testing.T) {
	prev := 0.0
	for lat := 0.5; lat <= 90; lat += 0.5 {
		d := HaversineKm(0, 0, lat, 0)
		assert.Greater(t, d, prev)
		prev = d
	}
}

func TestHaversineKm_Antipodes(t *testing.T) {
	d := HaversineKm(0, 0, 0, 180)
	assert.InDelta(t, 3.141592653589793*EarthRadiusKm, d, 1e-6)
}
