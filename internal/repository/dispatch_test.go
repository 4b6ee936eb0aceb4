package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/repository"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/shenikar/emergency_dispatch_system/pkg/postgres"
)

// setupTestDB поднимает PostgreSQL в контейнере и применяет миграции
func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if os.Getenv("DOCKER_AVAILABLE") != "true" && os.Getenv("DOCKER_AVAILABLE") != "1" {
		t.Skip("docker not available")
	}
	ctx := context.Background()

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "dispatch",
				"POSTGRES_USER":     "dispatch",
				"POSTGRES_PASSWORD": "dispatch",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { tc.CleanupContainer(t, container) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)
	dsn := fmt.Sprintf("postgres://dispatch:dispatch@%s:%s/dispatch?sslmode=disable", host, port.Port())

	require.NoError(t, postgres.Migrate(dsn, "../../migrations", postgres.MigrateUp))
	require.NoError(t, postgres.Migrate(dsn, "../../migrations", postgres.MigrateDown))
	require.NoError(t, postgres.Migrate(dsn, "../../migrations", postgres.MigrateUp))

	pool, err := postgres.NewPool(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func TestDispatchRepository_Lifecycle(t *testing.T) {
	pool := setupTestDB(t)
	store := repository.NewDispatchRepository(pool)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	officer := &models.Officer{ID: "o1", BadgeNumber: "100", Status: models.OfficerAvailable}
	require.NoError(t, store.SaveOfficer(ctx, officer))
	require.NoError(t, store.SaveOfficerLocation(ctx, "o1", models.Location{Latitude: 34.1688, Longitude: 73.2215, UpdatedAt: now}))

	// более старая позиция не перезаписывает новую
	require.NoError(t, store.SaveOfficerLocation(ctx, "o1", models.Location{Latitude: 1, Longitude: 1, UpdatedAt: now.Add(-time.Minute)}))

	err := store.SaveOfficerLocation(ctx, "missing", models.Location{Latitude: 1, Longitude: 1, UpdatedAt: now})
	assert.True(t, errors.Is(err, service.ErrNotFound))

	alert := &models.EmergencyAlert{
		ID: "a1", ReporterID: "r1", Latitude: 34.17, Longitude: 73.22,
		Description: "help", Status: models.AlertPending, CreatedAt: now,
	}
	require.NoError(t, store.SaveAlert(ctx, alert))

	task := &models.DispatchTask{ID: "t1", AlertID: "a1", OfficerID: "o1", Status: models.TaskPending, AssignedAt: now}
	officer.Status = models.OfficerBusy
	alert.Status = models.AlertAssigned
	require.NoError(t, store.CommitTask(ctx, task, officer, alert))

	// вторая активная задача на тот же вызов запрещена уникальным индексом
	second := &models.DispatchTask{ID: "t2", AlertID: "a1", OfficerID: "o1", Status: models.TaskPending, AssignedAt: now}
	assert.Error(t, store.CommitTask(ctx, second, officer, alert))

	accepted := now.Add(time.Minute)
	task.Status = models.TaskAccepted
	task.AcceptedAt = &accepted
	officer.Status = models.OfficerEnRoute
	require.NoError(t, store.CommitTask(ctx, task, officer, alert))

	got, err := store.GetTask(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.TaskAccepted, got.Status)
	require.NotNil(t, got.AcceptedAt)
	assert.True(t, accepted.Equal(*got.AcceptedAt))

	_, err = store.GetTask(ctx, "missing")
	assert.True(t, errors.Is(err, service.ErrNotFound))

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Officers, 1)
	assert.Equal(t, models.OfficerEnRoute, snapshot.Officers[0].Status)
	require.NotNil(t, snapshot.Officers[0].Location)
	assert.Equal(t, 34.1688, snapshot.Officers[0].Location.Latitude)
	require.Len(t, snapshot.Alerts, 1)
	assert.Equal(t, models.AlertAssigned, snapshot.Alerts[0].Status)
	require.Len(t, snapshot.Tasks, 1)
	assert.Equal(t, "t1", snapshot.Tasks[0].ID)
}

func TestDispatchRepository_CommitRollsBack(t *testing.T) {
	pool := setupTestDB(t)
	store := repository.NewDispatchRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	alert := &models.EmergencyAlert{ID: "a1", ReporterID: "r1", Status: models.AlertPending, CreatedAt: now}
	require.NoError(t, store.SaveAlert(ctx, alert))

	// офицера нет: транзакция откатывается вместе со статусом вызова
	alert.Status = models.AlertAssigned
	task := &models.DispatchTask{ID: "t1", AlertID: "a1", OfficerID: "ghost", Status: models.TaskPending, AssignedAt: now}
	err := store.CommitTask(ctx, task, &models.Officer{ID: "ghost", Status: models.OfficerBusy}, alert)
	assert.True(t, errors.Is(err, service.ErrNotFound))

	snapshot, err := store.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Alerts, 1)
	assert.Equal(t, models.AlertPending, snapshot.Alerts[0].Status)
	assert.Empty(t, snapshot.Tasks)
}
