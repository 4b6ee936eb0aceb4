package service

import (
	"sort"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/pkg/geo"
)

// Matcher выбирает ближайшего доступного офицера полным перебором.
// Для парка масштаба городского отдела этого достаточно.
type Matcher struct {
	registry *OfficerRegistry
}

func NewMatcher(registry *OfficerRegistry) *Matcher {
	return &Matcher{registry: registry}
}

// NearestAvailable возвращает офицера с минимальным расстоянием; при равенстве - с меньшим id
func (m *Matcher) NearestAvailable(lat, lng float64) (models.Candidate, error) {
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return models.Candidate{}, validationError("%v", err)
	}

	var best models.Candidate
	found := false
	for _, officer := range m.registry.ListAvailable() {
		c := candidateFor(officer, lat, lng)
		if !found || c.DistanceKm < best.DistanceKm ||
			(c.DistanceKm == best.DistanceKm && c.OfficerID < best.OfficerID) {
			best = c
			found = true
		}
	}
	if !found {
		return models.Candidate{}, newError(ErrNoOfficerAvailable, "no available officer with a known location")
	}
	return best, nil
}

// Rank возвращает всех доступных офицеров по возрастанию расстояния
func (m *Matcher) Rank(lat, lng float64) ([]models.Candidate, error) {
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return nil, validationError("%v", err)
	}

	officers := m.registry.ListAvailable()
	candidates := make([]models.Candidate, 0, len(officers))
	for _, officer := range officers {
		candidates = append(candidates, candidateFor(officer, lat, lng))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].DistanceKm == candidates[j].DistanceKm {
			return candidates[i].OfficerID < candidates[j].OfficerID
		}
		return candidates[i].DistanceKm < candidates[j].DistanceKm
	})
	return candidates, nil
}

// EstimateETA - время прибытия в минутах при средней скорости 60 км/ч
func (m *Matcher) EstimateETA(distanceKm float64) int {
	return geo.EstimateETA(distanceKm)
}

func candidateFor(officer *models.Officer, lat, lng float64) models.Candidate {
	return models.Candidate{
		OfficerID:  officer.ID,
		DistanceKm: geo.Haversine(lat, lng, officer.Location.Latitude, officer.Location.Longitude),
	}
}
