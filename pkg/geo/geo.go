// Package geo содержит расчеты расстояний на сфере и оценку времени прибытия.
package geo

import (
	"fmt"
	"math"
)

const (
	// EarthRadiusKm - средний радиус Земли
	EarthRadiusKm = 6371.0

	// AverageSpeedKmh - принятая средняя скорость движения экипажа
	AverageSpeedKmh = 60.0
)

// Haversine возвращает расстояние по дуге большого круга между двумя точками в километрах.
// Координаты задаются в десятичных градусах.
func Haversine(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := toRadians(lat1)
	phi2 := toRadians(lat2)
	dPhi := toRadians(lat2 - lat1)
	dLambda := toRadians(lng2 - lng1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Asin(math.Sqrt(a))
	return EarthRadiusKm * c
}

// EstimateETA возвращает время прибытия в минутах, не меньше одной минуты
func EstimateETA(distanceKm float64) int {
	minutes := int(math.Floor(distanceKm / AverageSpeedKmh * 60))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// ValidateCoordinates проверяет, что точка лежит в допустимых границах
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates must be finite numbers")
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
