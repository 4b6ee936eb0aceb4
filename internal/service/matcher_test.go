package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func availableAt(id string, lat, lng float64) *models.Officer {
	return &models.Officer{
		ID:          id,
		BadgeNumber: "badge-" + id,
		Status:      models.OfficerAvailable,
		Location:    &models.Location{Latitude: lat, Longitude: lng, UpdatedAt: time.Now()},
	}
}

func TestMatcher_NearestAvailable_Scenario(t *testing.T) {
	registry := newTestRegistry(t,
		availableAt("A", 34.1688, 73.2215),
		availableAt("B", 34.1750, 73.2300),
	)
	matcher := NewMatcher(registry)

	candidate, err := matcher.NearestAvailable(34.1700, 73.2200)
	require.NoError(t, err)
	assert.Equal(t, "A", candidate.OfficerID)
	assert.InDelta(t, 0.19, candidate.DistanceKm, 0.01)
	assert.Equal(t, 1, matcher.EstimateETA(candidate.DistanceKm))

	ranked, err := matcher.Rank(34.1700, 73.2200)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "B", ranked[1].OfficerID)
	assert.InDelta(t, 1.07, ranked[1].DistanceKm, 0.01)
}

func TestMatcher_TieBrokenByID(t *testing.T) {
	registry := newTestRegistry(t,
		availableAt("officer-9", 10, 10),
		availableAt("officer-2", 10, 10),
		availableAt("officer-5", 10, 10),
	)
	matcher := NewMatcher(registry)

	candidate, err := matcher.NearestAvailable(10.5, 10.5)
	require.NoError(t, err)
	assert.Equal(t, "officer-2", candidate.OfficerID)

	ranked, err := matcher.Rank(10.5, 10.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"officer-2", "officer-5", "officer-9"},
		[]string{ranked[0].OfficerID, ranked[1].OfficerID, ranked[2].OfficerID})
}

func TestMatcher_SkipsUnavailable(t *testing.T) {
	busy := availableAt("A", 34.1700, 73.2200)
	busy.Status = models.OfficerBusy
	registry := newTestRegistry(t, busy, availableAt("B", 34.1750, 73.2300))

	candidate, err := NewMatcher(registry).NearestAvailable(34.1700, 73.2200)
	require.NoError(t, err)
	assert.Equal(t, "B", candidate.OfficerID)
}

func TestMatcher_NoOfficerAvailable(t *testing.T) {
	offline := availableAt("A", 1, 1)
	offline.Status = models.OfficerOffline
	matcher := NewMatcher(newTestRegistry(t, offline))

	_, err := matcher.NearestAvailable(1, 1)
	assert.True(t, errors.Is(err, ErrNoOfficerAvailable))

	ranked, err := matcher.Rank(1, 1)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestMatcher_InvalidCoordinates(t *testing.T) {
	matcher := NewMatcher(NewOfficerRegistry())

	_, err := matcher.NearestAvailable(120, 0)
	assert.True(t, errors.Is(err, ErrValidation))
}
