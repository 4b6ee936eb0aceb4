package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine_KnownDistances(t *testing.T) {
	alertLat, alertLng := 34.1700, 73.2200

	// Офицер A
	assert.InDelta(t, 0.19, Haversine(alertLat, alertLng, 34.1688, 73.2215), 0.01)
	// Офицер B
	assert.InDelta(t, 1.07, Haversine(alertLat, alertLng, 34.1750, 73.2300), 0.01)
}

func TestHaversine_Symmetric(t *testing.T) {
	d1 := Haversine(55.7558, 37.6173, 59.9343, 30.3351)
	d2 := Haversine(59.9343, 30.3351, 55.7558, 37.6173)

	assert.InDelta(t, d1, d2, 1e-9)
	assert.InDelta(t, 634, d1, 2) // Москва - Санкт-Петербург
}

func TestHaversine_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(10, 20, 10, 20))
}

func TestEstimateETA(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     int
	}{
		{"zero distance", 0, 1},
		{"short distance", 0.19, 1},
		{"just under two minutes", 1.99, 1},
		{"exactly two minutes", 2, 2},
		{"ten kilometers", 10, 10},
		{"fractional floor", 15.7, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateETA(tt.distance))
		})
	}
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(34.17, 73.22))
	assert.NoError(t, ValidateCoordinates(-90, 180))
	assert.Error(t, ValidateCoordinates(90.1, 0))
	assert.Error(t, ValidateCoordinates(0, -180.5))
	assert.Error(t, ValidateCoordinates(math.NaN(), 0))
	assert.Error(t, ValidateCoordinates(0, math.Inf(1)))
}
