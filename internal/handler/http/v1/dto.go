package v1

import (
	"time"
)

// RegisterOfficerRequest DTO для регистрации офицера
// @Description DTO для регистрации офицера
type RegisterOfficerRequest struct {
	ID          string `json:"id" validate:"required,max=64"`
	BadgeNumber string `json:"badge_number" validate:"required,max=64"`
}

// UpdateLocationRequest DTO для обновления позиции офицера.
// Если timestamp не передан, используется время получения запроса.
// @Description DTO для обновления позиции офицера
type UpdateLocationRequest struct {
	Latitude  *float64   `json:"latitude" validate:"required,latitude"`
	Longitude *float64   `json:"longitude" validate:"required,longitude"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// UpdateLocationResponse DTO результата обновления позиции
// @Description DTO результата обновления позиции
type UpdateLocationResponse struct {
	Applied bool `json:"applied"`
}

// SetOfficerStatusRequest DTO для входа/выхода офицера со смены
// @Description DTO для смены статуса офицера
type SetOfficerStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// LocationResponse DTO позиции
// @Description DTO позиции
type LocationResponse struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OfficerResponse DTO для ответа с информацией об офицере
// @Description DTO для ответа с информацией об офицере
type OfficerResponse struct {
	ID          string            `json:"id"`
	BadgeNumber string            `json:"badge_number"`
	Status      string            `json:"status"`
	Location    *LocationResponse `json:"location,omitempty"`
}

// CandidateResponse DTO кандидата на назначение
// @Description DTO кандидата на назначение
type CandidateResponse struct {
	OfficerID  string  `json:"officer_id"`
	DistanceKm float64 `json:"distance_km"`
	ETAMinutes int     `json:"eta_minutes"`
}

// CreateAlertRequest DTO для создания экстренного вызова
// @Description DTO для создания экстренного вызова
type CreateAlertRequest struct {
	ReporterID  string   `json:"reporter_id" validate:"required,max=64"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude"`
	Description string   `json:"description,omitempty" validate:"max=2000"`
}

// CancelAlertRequest DTO для отмены вызова заявителем
// @Description DTO для отмены вызова заявителем
type CancelAlertRequest struct {
	ReporterID string `json:"reporter_id" validate:"required"`
}

// AlertResponse DTO для ответа с информацией о вызове
// @Description DTO для ответа с информацией о вызове
type AlertResponse struct {
	ID          string     `json:"id"`
	ReporterID  string     `json:"reporter_id"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// AssignRequest DTO для ручного назначения офицера диспетчером
// @Description DTO для ручного назначения офицера
type AssignRequest struct {
	AlertID   string `json:"alert_id" validate:"required"`
	OfficerID string `json:"officer_id" validate:"required"`
}

// AssignResponse DTO результата назначения
// @Description DTO результата назначения
type AssignResponse struct {
	TaskID string `json:"task_id"`
}

// TransitionRequest DTO для смены статуса задачи
// @Description DTO для смены статуса задачи
type TransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined en_route arrived resolved"`
}

// TaskResponse DTO для ответа с информацией о задаче
// @Description DTO для ответа с информацией о задаче
type TaskResponse struct {
	ID         string     `json:"id"`
	AlertID    string     `json:"alert_id"`
	OfficerID  string     `json:"officer_id"`
	Status     string     `json:"status"`
	AssignedAt time.Time  `json:"assigned_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	ArrivedAt  *time.Time `json:"arrived_at,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}
