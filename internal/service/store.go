package service

import (
	"context"
	"time"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
)

// Store определяет контракт долговременного хранилища.
// Каждый метод выполняется одной транзакцией.
type Store interface {
	LoadSnapshot(ctx context.Context) (*models.Snapshot, error)
	SaveOfficer(ctx context.Context, officer *models.Officer) error
	// SaveOfficerLocation не перезаписывает более свежую позицию
	SaveOfficerLocation(ctx context.Context, officerID string, loc models.Location) error
	SaveAlert(ctx context.Context, alert *models.EmergencyAlert) error
	// CommitTask атомарно сохраняет задачу вместе с производными статусами офицера и вызова
	CommitTask(ctx context.Context, task *models.DispatchTask, officer *models.Officer, alert *models.EmergencyAlert) error
	GetTask(ctx context.Context, id string) (*models.DispatchTask, error)
}

// EventPublisher принимает события о зафиксированных переходах. Publish не должен блокировать.
type EventPublisher interface {
	Publish(event models.Event)
}

// MetricsRecorder собирает метрики диспетчеризации
type MetricsRecorder interface {
	RecordTransition(status string)
	RecordRejected(operation, reason string)
	RecordLocationUpdate(applied bool)
	RecordAssignLatency(d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) RecordTransition(string)           {}
func (nopRecorder) RecordRejected(string, string)     {}
func (nopRecorder) RecordLocationUpdate(bool)         {}
func (nopRecorder) RecordAssignLatency(time.Duration) {}
