package models

import (
	"time"
)

// EventType - тип события для подписчиков
type EventType string

const (
	EventTaskAssigned    EventType = "task_assigned"
	EventTaskAccepted    EventType = "task_accepted"
	EventTaskDeclined    EventType = "task_declined"
	EventTaskEnRoute     EventType = "task_en_route"
	EventTaskArrived     EventType = "task_arrived"
	EventTaskResolved    EventType = "task_resolved"
	EventOfficerLocation EventType = "officer_location"
	EventOfficerStatus   EventType = "officer_status"
	EventAlertCreated    EventType = "alert_created"
	EventAlertCancelled  EventType = "alert_cancelled"
)

var taskEventTypes = map[TaskStatus]EventType{
	TaskPending:  EventTaskAssigned,
	TaskAccepted: EventTaskAccepted,
	TaskDeclined: EventTaskDeclined,
	TaskEnRoute:  EventTaskEnRoute,
	TaskArrived:  EventTaskArrived,
	TaskResolved: EventTaskResolved,
}

// TaskEventType возвращает тип события для перехода задачи в статус s
func TaskEventType(s TaskStatus) EventType {
	return taskEventTypes[s]
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event - событие о зафиксированном изменении состояния.
// ReporterID используется только для маршрутизации и не сериализуется.
type Event struct {
	Type        EventType    `json:"type"`
	TaskID      string       `json:"taskId,omitempty"`
	AlertID     string       `json:"alertId,omitempty"`
	OfficerID   string       `json:"officerId,omitempty"`
	ReporterID  string       `json:"-"`
	FromStatus  string       `json:"fromStatus,omitempty"`
	ToStatus    string       `json:"toStatus,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	ETA         *int         `json:"eta,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}
