package service

import (
	"sort"
	"sync"
	"time"

	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/pkg/geo"
)

// OfficerRegistry - авторитетное in-memory представление офицеров: позиция и статус
type OfficerRegistry struct {
	mu       sync.RWMutex
	officers map[string]*models.Officer
	badges   map[string]string
}

func NewOfficerRegistry() *OfficerRegistry {
	return &OfficerRegistry{
		officers: make(map[string]*models.Officer),
		badges:   make(map[string]string),
	}
}

// Add регистрирует офицера; id и номер жетона должны быть уникальны
func (r *OfficerRegistry) Add(officer *models.Officer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.officers[officer.ID]; exists {
		return conflictError("officer %s already registered", officer.ID)
	}
	if owner, exists := r.badges[officer.BadgeNumber]; exists {
		return conflictError("badge %s already belongs to officer %s", officer.BadgeNumber, owner)
	}
	r.officers[officer.ID] = officer.Clone()
	r.badges[officer.BadgeNumber] = officer.ID
	return nil
}

// Get возвращает копию офицера
func (r *OfficerRegistry) Get(id string) (*models.Officer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	officer, ok := r.officers[id]
	if !ok {
		return nil, notFoundError("officer %s", id)
	}
	return officer.Clone(), nil
}

// UpdateLocation сохраняет позицию, если ts строго новее сохраненной.
// Устаревшее обновление не является ошибкой: возвращается applied=false.
func (r *OfficerRegistry) UpdateLocation(id string, lat, lng float64, ts time.Time) (bool, error) {
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return false, validationError("%v", err)
	}
	if ts.IsZero() {
		return false, validationError("location timestamp is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	officer, ok := r.officers[id]
	if !ok {
		return false, notFoundError("officer %s", id)
	}
	if officer.Location != nil && !ts.After(officer.Location.UpdatedAt) {
		return false, nil
	}
	officer.Location = &models.Location{Latitude: lat, Longitude: lng, UpdatedAt: ts}
	return true, nil
}

// locationIsFresh сообщает, новее ли ts сохраненной позиции офицера
func (r *OfficerRegistry) locationIsFresh(id string, ts time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	officer, ok := r.officers[id]
	if !ok {
		return false, notFoundError("officer %s", id)
	}
	return officer.Location == nil || ts.After(officer.Location.UpdatedAt), nil
}

// SetStatus меняет статус по матрице переходов офицера
func (r *OfficerRegistry) SetStatus(id string, status models.OfficerStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	officer, ok := r.officers[id]
	if !ok {
		return notFoundError("officer %s", id)
	}
	if !officer.Status.CanTransitionTo(status) {
		return newError(ErrInvalidTransition, "officer %s: %s -> %s", id, officer.Status, status)
	}
	officer.Status = status
	return nil
}

// ListAvailable возвращает снимок доступных офицеров с известной позицией, упорядоченный по id
func (r *OfficerRegistry) ListAvailable() []*models.Officer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	available := make([]*models.Officer, 0)
	for _, officer := range r.officers {
		if officer.Status == models.OfficerAvailable && officer.Location != nil {
			available = append(available, officer.Clone())
		}
	}
	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })
	return available
}

// All возвращает копии всех офицеров
func (r *OfficerRegistry) All() []*models.Officer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*models.Officer, 0, len(r.officers))
	for _, officer := range r.officers {
		all = append(all, officer.Clone())
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}

// compareAndSwapStatus атомарно меняет статус from -> to в обход матрицы.
// Используется только координатором для производных статусов.
func (r *OfficerRegistry) compareAndSwapStatus(id string, from, to models.OfficerStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	officer, ok := r.officers[id]
	if !ok {
		return notFoundError("officer %s", id)
	}
	if officer.Status != from {
		return conflictError("officer %s is %s, expected %s", id, officer.Status, from)
	}
	officer.Status = to
	return nil
}
