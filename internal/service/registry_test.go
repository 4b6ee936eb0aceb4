package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, officers ...*models.Officer) *OfficerRegistry {
	registry := NewOfficerRegistry()
	for _, o := range officers {
		require.NoError(t, registry.Add(o))
	}
	return registry
}

func TestRegistry_AddDuplicate(t *testing.T) {
	registry := newTestRegistry(t, &models.Officer{ID: "A", BadgeNumber: "100", Status: models.OfficerOffline})

	err := registry.Add(&models.Officer{ID: "A", BadgeNumber: "200"})
	assert.True(t, errors.Is(err, ErrConflict))

	err = registry.Add(&models.Officer{ID: "B", BadgeNumber: "100"})
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestRegistry_UpdateLocation_StaleIsNoOp(t *testing.T) {
	registry := newTestRegistry(t, &models.Officer{ID: "A", BadgeNumber: "100"})
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	applied, err := registry.UpdateLocation("A", 34.1688, 73.2215, t0)
	require.NoError(t, err)
	assert.True(t, applied)

	// та же метка времени
	applied, err = registry.UpdateLocation("A", 1, 1, t0)
	require.NoError(t, err)
	assert.False(t, applied)

	// более старая метка времени
	applied, err = registry.UpdateLocation("A", 2, 2, t0.Add(-time.Second))
	require.NoError(t, err)
	assert.False(t, applied)

	officer, err := registry.Get("A")
	require.NoError(t, err)
	assert.Equal(t, 34.1688, officer.Location.Latitude)
	assert.Equal(t, 73.2215, officer.Location.Longitude)
	assert.Equal(t, t0, officer.Location.UpdatedAt)

	applied, err = registry.UpdateLocation("A", 3, 3, t0.Add(time.Second))
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestRegistry_UpdateLocation_Errors(t *testing.T) {
	registry := newTestRegistry(t, &models.Officer{ID: "A", BadgeNumber: "100"})

	_, err := registry.UpdateLocation("missing", 1, 1, time.Now())
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = registry.UpdateLocation("A", 91, 1, time.Now())
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = registry.UpdateLocation("A", 1, 1, time.Time{})
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestRegistry_SetStatusMatrix(t *testing.T) {
	tests := []struct {
		from models.OfficerStatus
		to   models.OfficerStatus
		ok   bool
	}{
		{models.OfficerOffline, models.OfficerAvailable, true},
		{models.OfficerAvailable, models.OfficerOffline, true},
		{models.OfficerAvailable, models.OfficerBusy, true},
		{models.OfficerBusy, models.OfficerEnRoute, true},
		{models.OfficerEnRoute, models.OfficerOnScene, true},
		{models.OfficerOnScene, models.OfficerAvailable, true},
		{models.OfficerOnScene, models.OfficerOffline, true},
		{models.OfficerBusy, models.OfficerOffline, true},
		{models.OfficerOffline, models.OfficerBusy, false},
		{models.OfficerAvailable, models.OfficerOnScene, false},
		{models.OfficerBusy, models.OfficerAvailable, false},
		{models.OfficerEnRoute, models.OfficerAvailable, false},
		{models.OfficerAvailable, models.OfficerAvailable, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			registry := newTestRegistry(t, &models.Officer{ID: "A", BadgeNumber: "1", Status: tt.from})

			err := registry.SetStatus("A", tt.to)
			officer, _ := registry.Get("A")
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, officer.Status)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidTransition))
				assert.Equal(t, tt.from, officer.Status)
			}
		})
	}
}

func TestRegistry_ListAvailable(t *testing.T) {
	loc := &models.Location{Latitude: 1, Longitude: 1, UpdatedAt: time.Now()}
	registry := newTestRegistry(t,
		&models.Officer{ID: "C", BadgeNumber: "3", Status: models.OfficerAvailable, Location: loc},
		&models.Officer{ID: "A", BadgeNumber: "1", Status: models.OfficerAvailable, Location: loc},
		&models.Officer{ID: "B", BadgeNumber: "2", Status: models.OfficerAvailable}, // без позиции
		&models.Officer{ID: "D", BadgeNumber: "4", Status: models.OfficerBusy, Location: loc},
	)

	available := registry.ListAvailable()
	require.Len(t, available, 2)
	assert.Equal(t, "A", available[0].ID)
	assert.Equal(t, "C", available[1].ID)

	// снимок не связан с реестром
	available[0].Status = models.OfficerOffline
	officer, _ := registry.Get("A")
	assert.Equal(t, models.OfficerAvailable, officer.Status)
}

func TestRegistry_CompareAndSwapStatus(t *testing.T) {
	registry := newTestRegistry(t, &models.Officer{ID: "A", BadgeNumber: "1", Status: models.OfficerAvailable})

	require.NoError(t, registry.compareAndSwapStatus("A", models.OfficerAvailable, models.OfficerBusy))
	err := registry.compareAndSwapStatus("A", models.OfficerAvailable, models.OfficerBusy)
	assert.True(t, errors.Is(err, ErrConflict))
}
