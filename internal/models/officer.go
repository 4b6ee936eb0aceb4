package models

import (
	"time"
)

// OfficerStatus - статус офицера
type OfficerStatus string

const (
	OfficerOffline   OfficerStatus = "offline"
	OfficerAvailable OfficerStatus = "available"
	OfficerBusy      OfficerStatus = "busy"
	OfficerEnRoute   OfficerStatus = "en_route"
	OfficerOnScene   OfficerStatus = "on_scene"
)

// officerTransitions - допустимые переходы статуса офицера (переход в offline разрешен из любого статуса)
var officerTransitions = map[OfficerStatus][]OfficerStatus{
	OfficerOffline:   {OfficerAvailable},
	OfficerAvailable: {OfficerBusy},
	OfficerBusy:      {OfficerEnRoute},
	OfficerEnRoute:   {OfficerOnScene},
	OfficerOnScene:   {OfficerAvailable},
}

// legacyOfficerStatuses сопоставляет старые названия статусов с каноническими
var legacyOfficerStatuses = map[string]OfficerStatus{
	"free":       OfficerAvailable,
	"on_duty":    OfficerAvailable,
	"off_duty":   OfficerOffline,
	"assigned":   OfficerBusy,
	"responding": OfficerEnRoute,
}

// ParseOfficerStatus разбирает статус, принимая также устаревшие варианты
func ParseOfficerStatus(s string) (OfficerStatus, bool) {
	status := OfficerStatus(s)
	if status.Valid() {
		return status, true
	}
	if alias, ok := legacyOfficerStatuses[s]; ok {
		return alias, true
	}
	return "", false
}

func (s OfficerStatus) Valid() bool {
	switch s {
	case OfficerOffline, OfficerAvailable, OfficerBusy, OfficerEnRoute, OfficerOnScene:
		return true
	}
	return false
}

// Engaged - офицер занят активной задачей
func (s OfficerStatus) Engaged() bool {
	return s == OfficerBusy || s == OfficerEnRoute || s == OfficerOnScene
}

// CanTransitionTo проверяет переход по матрице статусов офицера
func (s OfficerStatus) CanTransitionTo(next OfficerStatus) bool {
	if next == OfficerOffline {
		return true
	}
	for _, allowed := range officerTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Location - последнее известное местоположение
type Location struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Officer - полевой сотрудник, которого можно направить на вызов
type Officer struct {
	ID          string        `json:"id"`
	BadgeNumber string        `json:"badge_number"`
	Location    *Location     `json:"location,omitempty"`
	Status      OfficerStatus `json:"status"`
}

// Clone возвращает независимую копию офицера
func (o *Officer) Clone() *Officer {
	c := *o
	if o.Location != nil {
		loc := *o.Location
		c.Location = &loc
	}
	return &c
}

// Candidate - доступный офицер и расстояние до точки вызова
type Candidate struct {
	OfficerID  string  `json:"officer_id"`
	DistanceKm float64 `json:"distance_km"`
}
