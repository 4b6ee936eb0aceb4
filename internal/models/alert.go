package models

import (
	"time"
)

// AlertStatus - статус экстренного вызова
type AlertStatus string

const (
	AlertPending   AlertStatus = "pending"
	AlertAssigned  AlertStatus = "assigned"
	AlertResolved  AlertStatus = "resolved"
	AlertCancelled AlertStatus = "cancelled"
)

func (s AlertStatus) Valid() bool {
	switch s {
	case AlertPending, AlertAssigned, AlertResolved, AlertCancelled:
		return true
	}
	return false
}

// EmergencyAlert - экстренный вызов от пользователя
type EmergencyAlert struct {
	ID          string      `json:"id"`
	ReporterID  string      `json:"reporter_id"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Description string      `json:"description,omitempty"`
	Status      AlertStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	ResolvedAt  *time.Time  `json:"resolved_at,omitempty"`
}

func (a *EmergencyAlert) Clone() *EmergencyAlert {
	c := *a
	if a.ResolvedAt != nil {
		t := *a.ResolvedAt
		c.ResolvedAt = &t
	}
	return &c
}
