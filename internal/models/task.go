package models

import (
	"time"
)

// TaskStatus - статус задачи на выезд
type TaskStatus string

const (
	TaskPending  TaskStatus = "pending"
	TaskAccepted TaskStatus = "accepted"
	TaskDeclined TaskStatus = "declined"
	TaskEnRoute  TaskStatus = "en_route"
	TaskArrived  TaskStatus = "arrived"
	TaskResolved TaskStatus = "resolved"
)

// taskTransitions - жизненный цикл задачи; declined и resolved терминальные
var taskTransitions = map[TaskStatus][]TaskStatus{
	TaskPending:  {TaskAccepted, TaskDeclined},
	TaskAccepted: {TaskEnRoute},
	TaskEnRoute:  {TaskArrived},
	TaskArrived:  {TaskResolved},
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskAccepted, TaskDeclined, TaskEnRoute, TaskArrived, TaskResolved:
		return true
	}
	return false
}

func (s TaskStatus) Terminal() bool {
	return s == TaskDeclined || s == TaskResolved
}

// Active - задача еще удерживает офицера и вызов
func (s TaskStatus) Active() bool {
	return s.Valid() && !s.Terminal()
}

// CanTransitionTo возвращает true, только если next - прямой преемник текущего статуса
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range taskTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// OfficerStatus возвращает статус, который должен иметь офицер, удерживающий задачу в статусе s
func (s TaskStatus) OfficerStatus() OfficerStatus {
	switch s {
	case TaskPending:
		return OfficerBusy
	case TaskAccepted, TaskEnRoute:
		return OfficerEnRoute
	case TaskArrived:
		return OfficerOnScene
	}
	return OfficerAvailable
}

// DispatchTask - назначение офицера на вызов; никогда не удаляется
type DispatchTask struct {
	ID         string     `json:"id"`
	AlertID    string     `json:"alert_id"`
	OfficerID  string     `json:"officer_id"`
	Status     TaskStatus `json:"status"`
	AssignedAt time.Time  `json:"assigned_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	ArrivedAt  *time.Time `json:"arrived_at,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

func (t *DispatchTask) Clone() *DispatchTask {
	c := *t
	c.AcceptedAt = cloneTime(t.AcceptedAt)
	c.ArrivedAt = cloneTime(t.ArrivedAt)
	c.ResolvedAt = cloneTime(t.ResolvedAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
