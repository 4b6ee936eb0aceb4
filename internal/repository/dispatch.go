package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
)

// DispatchRepository хранит офицеров, вызовы и задачи в PostgreSQL
type DispatchRepository struct {
	db *pgxpool.Pool
}

func NewDispatchRepository(db *pgxpool.Pool) service.Store {
	return &DispatchRepository{db: db}
}

const (
	selectOfficers = `
		SELECT id, badge_number, status, latitude, longitude, location_updated_at
		FROM officers
		ORDER BY id;
	`
	selectAlerts = `
		SELECT id, reporter_id, latitude, longitude, description, status, created_at, resolved_at
		FROM alerts
		ORDER BY created_at;
	`
	selectTaskColumns = `
		SELECT id, alert_id, officer_id, status, assigned_at, accepted_at, arrived_at, resolved_at
		FROM dispatch_tasks
	`
)

// LoadSnapshot читает всех офицеров, все вызовы и только активные задачи
func (r *DispatchRepository) LoadSnapshot(ctx context.Context) (*models.Snapshot, error) {
	snapshot := &models.Snapshot{}

	rows, err := r.db.Query(ctx, selectOfficers)
	if err != nil {
		return nil, fmt.Errorf("failed to load officers: %w", err)
	}
	snapshot.Officers, err = pgx.CollectRows(rows, scanOfficer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan officer row: %w", err)
	}

	rows, err = r.db.Query(ctx, selectAlerts)
	if err != nil {
		return nil, fmt.Errorf("failed to load alerts: %w", err)
	}
	snapshot.Alerts, err = pgx.CollectRows(rows, scanAlert)
	if err != nil {
		return nil, fmt.Errorf("failed to scan alert row: %w", err)
	}

	rows, err = r.db.Query(ctx, selectTaskColumns+` WHERE status NOT IN ('declined', 'resolved') ORDER BY assigned_at;`)
	if err != nil {
		return nil, fmt.Errorf("failed to load active tasks: %w", err)
	}
	snapshot.Tasks, err = pgx.CollectRows(rows, scanTask)
	if err != nil {
		return nil, fmt.Errorf("failed to scan task row: %w", err)
	}

	return snapshot, nil
}

// SaveOfficer создает офицера или обновляет его статус. Позиция меняется только через SaveOfficerLocation.
func (r *DispatchRepository) SaveOfficer(ctx context.Context, officer *models.Officer) error {
	query := `
		INSERT INTO officers (id, badge_number, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			updated_at = NOW();
	`
	if _, err := r.db.Exec(ctx, query, officer.ID, officer.BadgeNumber, officer.Status); err != nil {
		return fmt.Errorf("failed to save officer: %w", err)
	}
	return nil
}

// SaveOfficerLocation сохраняет позицию, только если она новее сохраненной
func (r *DispatchRepository) SaveOfficerLocation(ctx context.Context, officerID string, loc models.Location) error {
	query := `
		UPDATE officers SET
			latitude = $2,
			longitude = $3,
			location_updated_at = $4,
			updated_at = NOW()
		WHERE id = $1
			AND (location_updated_at IS NULL OR location_updated_at < $4);
	`
	cmdTag, err := r.db.Exec(ctx, query, officerID, loc.Latitude, loc.Longitude, loc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save officer location: %w", err)
	}

	// 0 строк: либо офицера нет, либо позиция устарела
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM officers WHERE id = $1);`, officerID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check officer: %w", err)
		}
		if !exists {
			return fmt.Errorf("officer %s: %w", officerID, service.ErrNotFound)
		}
	}
	return nil
}

// SaveAlert создает вызов или обновляет его статус
func (r *DispatchRepository) SaveAlert(ctx context.Context, alert *models.EmergencyAlert) error {
	if err := saveAlert(ctx, r.db, alert); err != nil {
		return fmt.Errorf("failed to save alert: %w", err)
	}
	return nil
}

// CommitTask в одной транзакции сохраняет задачу и производные статусы офицера и вызова
func (r *DispatchRepository) CommitTask(ctx context.Context, task *models.DispatchTask, officer *models.Officer, alert *models.EmergencyAlert) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := saveAlert(ctx, tx, alert); err != nil {
			return fmt.Errorf("alert: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `UPDATE officers SET status = $2, updated_at = NOW() WHERE id = $1;`, officer.ID, officer.Status)
		if err != nil {
			return fmt.Errorf("officer: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("officer %s: %w", officer.ID, service.ErrNotFound)
		}

		query := `
			INSERT INTO dispatch_tasks (id, alert_id, officer_id, status, assigned_at, accepted_at, arrived_at, resolved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				status = EXCLUDED.status,
				accepted_at = EXCLUDED.accepted_at,
				arrived_at = EXCLUDED.arrived_at,
				resolved_at = EXCLUDED.resolved_at;
		`
		if _, err := tx.Exec(ctx, query,
			task.ID,
			task.AlertID,
			task.OfficerID,
			task.Status,
			task.AssignedAt,
			task.AcceptedAt,
			task.ArrivedAt,
			task.ResolvedAt,
		); err != nil {
			return fmt.Errorf("task: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to commit task %s: %w", task.ID, err)
	}
	return nil
}

// GetTask возвращает задачу по id, включая завершенные
func (r *DispatchRepository) GetTask(ctx context.Context, id string) (*models.DispatchTask, error) {
	rows, err := r.db.Query(ctx, selectTaskColumns+` WHERE id = $1;`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}
	task, err := pgx.CollectExactlyOneRow(rows, scanTask)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", id, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}
	return task, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func saveAlert(ctx context.Context, db execer, alert *models.EmergencyAlert) error {
	query := `
		INSERT INTO alerts (id, reporter_id, latitude, longitude, description, status, created_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			resolved_at = EXCLUDED.resolved_at;
	`
	_, err := db.Exec(ctx, query,
		alert.ID,
		alert.ReporterID,
		alert.Latitude,
		alert.Longitude,
		alert.Description,
		alert.Status,
		alert.CreatedAt,
		alert.ResolvedAt,
	)
	return err
}

func scanOfficer(row pgx.CollectableRow) (*models.Officer, error) {
	officer := &models.Officer{}
	var lat, lng *float64
	var updatedAt *time.Time
	if err := row.Scan(&officer.ID, &officer.BadgeNumber, &officer.Status, &lat, &lng, &updatedAt); err != nil {
		return nil, err
	}
	if lat != nil && lng != nil && updatedAt != nil {
		officer.Location = &models.Location{Latitude: *lat, Longitude: *lng, UpdatedAt: updatedAt.UTC()}
	}
	return officer, nil
}

func scanAlert(row pgx.CollectableRow) (*models.EmergencyAlert, error) {
	alert := &models.EmergencyAlert{}
	err := row.Scan(
		&alert.ID,
		&alert.ReporterID,
		&alert.Latitude,
		&alert.Longitude,
		&alert.Description,
		&alert.Status,
		&alert.CreatedAt,
		&alert.ResolvedAt,
	)
	return alert, err
}

func scanTask(row pgx.CollectableRow) (*models.DispatchTask, error) {
	task := &models.DispatchTask{}
	err := row.Scan(
		&task.ID,
		&task.AlertID,
		&task.OfficerID,
		&task.Status,
		&task.AssignedAt,
		&task.AcceptedAt,
		&task.ArrivedAt,
		&task.ResolvedAt,
	)
	return task, err
}
