package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/pkg/geo"
	"github.com/sirupsen/logrus"
)

// DispatchService определяет контракт ядра диспетчеризации
type DispatchService interface {
	Restore(ctx context.Context) error

	RegisterOfficer(ctx context.Context, officerID, badgeNumber string) (*models.Officer, error)
	GetOfficer(ctx context.Context, officerID string) (*models.Officer, error)
	UpdateLocation(ctx context.Context, officerID string, lat, lng float64, ts time.Time) (bool, error)
	SetStatus(ctx context.Context, officerID string, status models.OfficerStatus) error

	NearestAvailable(ctx context.Context, lat, lng float64) (models.Candidate, error)
	RankAvailable(ctx context.Context, lat, lng float64) ([]models.Candidate, error)

	CreateAlert(ctx context.Context, reporterID string, lat, lng float64, description string) (*models.EmergencyAlert, error)
	GetAlert(ctx context.Context, alertID string) (*models.EmergencyAlert, error)
	CancelAlert(ctx context.Context, alertID, reporterID string) error

	Assign(ctx context.Context, alertID, officerID string) (string, error)
	DispatchNearest(ctx context.Context, alertID string) (*models.DispatchTask, error)
	Transition(ctx context.Context, taskID, officerID string, status models.TaskStatus) error
	GetTask(ctx context.Context, taskID string) (*models.DispatchTask, error)
	ActiveTasks(ctx context.Context, officerID string) ([]*models.DispatchTask, error)
}

// Option настраивает dispatchService
type Option func(*dispatchService)

func WithMetrics(m MetricsRecorder) Option {
	return func(s *dispatchService) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *dispatchService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *dispatchService) { s.newID = newID }
}

// dispatchService сериализует все изменения вызовов и задач под одним мьютексом.
// Статус офицера меняется только через compareAndSwapStatus реестра внутри той же критической секции.
type dispatchService struct {
	mu        sync.RWMutex
	registry  *OfficerRegistry
	matcher   *Matcher
	store     Store
	publisher EventPublisher
	logger    *logrus.Logger
	metrics   MetricsRecorder
	now       func() time.Time
	newID     func() string

	alerts          map[string]*models.EmergencyAlert
	tasks           map[string]*models.DispatchTask
	activeByAlert   map[string]string
	activeByOfficer map[string]string
}

func NewDispatchService(registry *OfficerRegistry, store Store, publisher EventPublisher, logger *logrus.Logger, opts ...Option) DispatchService {
	s := &dispatchService{
		registry:        registry,
		matcher:         NewMatcher(registry),
		store:           store,
		publisher:       publisher,
		logger:          logger,
		metrics:         nopRecorder{},
		now:             time.Now,
		newID:           uuid.NewString,
		alerts:          make(map[string]*models.EmergencyAlert),
		tasks:           make(map[string]*models.DispatchTask),
		activeByAlert:   make(map[string]string),
		activeByOfficer: make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore загружает состояние из хранилища и восстанавливает индексы активных задач
func (s *dispatchService) Restore(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dispatch",
		"method":  "Restore",
	})
	log.Info("Restoring dispatch state from store")

	snapshot, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load snapshot")
		return fmt.Errorf("service: could not load snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, officer := range snapshot.Officers {
		if err := s.registry.Add(officer); err != nil {
			log.WithError(err).WithField("officer_id", officer.ID).Warn("Skipping officer from snapshot")
		}
	}
	for _, alert := range snapshot.Alerts {
		s.alerts[alert.ID] = alert.Clone()
	}
	for _, task := range snapshot.Tasks {
		if !task.Status.Active() {
			continue
		}
		if _, ok := s.alerts[task.AlertID]; !ok {
			log.WithField("task_id", task.ID).Warn("Active task references unknown alert")
			continue
		}
		if _, err := s.registry.Get(task.OfficerID); err != nil {
			log.WithField("task_id", task.ID).Warn("Active task references unknown officer")
			continue
		}
		s.tasks[task.ID] = task.Clone()
		s.activeByAlert[task.AlertID] = task.ID
		s.activeByOfficer[task.OfficerID] = task.ID
	}

	if err := s.reconcile(ctx, log); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"officers":     len(snapshot.Officers),
		"alerts":       len(s.alerts),
		"active_tasks": len(s.activeByAlert),
	}).Info("Dispatch state restored")
	return nil
}

// reconcile приводит статусы офицеров и вызовов в соответствие с активными задачами
// и сохраняет исправления. Вызывается под s.mu.
func (s *dispatchService) reconcile(ctx context.Context, log *logrus.Entry) error {
	for _, officer := range s.registry.All() {
		want := models.OfficerAvailable
		taskID, hasTask := s.activeByOfficer[officer.ID]
		switch {
		case hasTask:
			want = s.tasks[taskID].Status.OfficerStatus()
		case !officer.Status.Engaged():
			continue
		}
		if officer.Status == want {
			continue
		}

		log.WithFields(logrus.Fields{
			"officer_id": officer.ID,
			"stored":     officer.Status,
			"derived":    want,
		}).Warn("Officer status disagrees with active tasks, repairing")
		updated := officer.Clone()
		updated.Status = want
		if err := s.store.SaveOfficer(ctx, updated); err != nil {
			return fmt.Errorf("service: could not repair officer %s: %w", officer.ID, err)
		}
		if err := s.registry.compareAndSwapStatus(officer.ID, officer.Status, want); err != nil {
			return err
		}
	}

	for id, alert := range s.alerts {
		_, hasTask := s.activeByAlert[id]
		want := alert.Status
		switch {
		case hasTask:
			want = models.AlertAssigned
		case alert.Status == models.AlertAssigned:
			want = models.AlertPending
		}
		if alert.Status == want {
			continue
		}

		log.WithFields(logrus.Fields{
			"alert_id": id,
			"stored":   alert.Status,
			"derived":  want,
		}).Warn("Alert status disagrees with active tasks, repairing")
		updated := alert.Clone()
		updated.Status = want
		if err := s.store.SaveAlert(ctx, updated); err != nil {
			return fmt.Errorf("service: could not repair alert %s: %w", id, err)
		}
		s.alerts[id] = updated
	}
	return nil
}

// RegisterOfficer регистрирует нового офицера в статусе offline
func (s *dispatchService) RegisterOfficer(ctx context.Context, officerID, badgeNumber string) (*models.Officer, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "dispatch",
		"method":     "RegisterOfficer",
		"officer_id": officerID,
	})

	officerID = strings.TrimSpace(officerID)
	badgeNumber = strings.TrimSpace(badgeNumber)
	if officerID == "" || badgeNumber == "" {
		return nil, validationError("officer id and badge number are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	officer := &models.Officer{ID: officerID, BadgeNumber: badgeNumber, Status: models.OfficerOffline}
	for _, existing := range s.registry.All() {
		if existing.ID == officerID || existing.BadgeNumber == badgeNumber {
			log.Warn("Officer id or badge already registered")
			return nil, conflictError("officer %s or badge %s already registered", officerID, badgeNumber)
		}
	}

	if err := s.store.SaveOfficer(ctx, officer); err != nil {
		log.WithError(err).Error("Failed to save officer in store")
		return nil, fmt.Errorf("service: could not register officer: %w", err)
	}
	if err := s.registry.Add(officer); err != nil {
		return nil, err
	}

	log.Info("Officer registered successfully")
	return officer.Clone(), nil
}

func (s *dispatchService) GetOfficer(_ context.Context, officerID string) (*models.Officer, error) {
	return s.registry.Get(officerID)
}

// UpdateLocation принимает позицию от офицера. Устаревшие обновления молча отбрасываются.
func (s *dispatchService) UpdateLocation(ctx context.Context, officerID string, lat, lng float64, ts time.Time) (bool, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "dispatch",
		"method":     "UpdateLocation",
		"officer_id": officerID,
	})

	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return false, validationError("%v", err)
	}
	if ts.IsZero() {
		return false, validationError("location timestamp is required")
	}

	fresh, err := s.registry.locationIsFresh(officerID, ts)
	if err != nil {
		return false, err
	}
	if !fresh {
		s.metrics.RecordLocationUpdate(false)
		log.Debug("Stale location update discarded")
		return false, nil
	}

	loc := models.Location{Latitude: lat, Longitude: lng, UpdatedAt: ts.UTC()}
	// хранилище само отбрасывает позицию старше сохраненной
	if err := s.store.SaveOfficerLocation(ctx, officerID, loc); err != nil {
		log.WithError(err).Error("Failed to save officer location")
		return false, fmt.Errorf("service: could not save location: %w", err)
	}

	applied, err := s.registry.UpdateLocation(officerID, lat, lng, loc.UpdatedAt)
	if err != nil {
		return false, err
	}
	s.metrics.RecordLocationUpdate(applied)
	if !applied {
		log.Debug("Location overtaken by a newer update")
		return false, nil
	}

	s.publishLocation(officerID, loc)
	log.Debug("Officer location updated")
	return true, nil
}

// publishLocation публикует позицию под эксклюзивной блокировкой: проверка свежести и
// публикация атомарны, поэтому последнее событие офицера всегда несет сохраненную позицию.
func (s *dispatchService) publishLocation(officerID string, loc models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	officer, err := s.registry.Get(officerID)
	if err != nil {
		return
	}
	if officer.Location == nil || officer.Location.UpdatedAt.After(loc.UpdatedAt) {
		// более свежая позиция уже принята и опубликована другим вызовом
		return
	}
	event := models.Event{
		Type:        models.EventOfficerLocation,
		OfficerID:   officerID,
		FromStatus:  string(officer.Status),
		ToStatus:    string(officer.Status),
		Coordinates: &models.Coordinates{Lat: loc.Latitude, Lng: loc.Longitude},
		Timestamp:   loc.UpdatedAt,
	}
	if taskID, ok := s.activeByOfficer[officerID]; ok {
		task := s.tasks[taskID]
		alert := s.alerts[task.AlertID]
		event.TaskID = task.ID
		event.AlertID = alert.ID
		event.ReporterID = alert.ReporterID
		event.FromStatus = string(task.Status)
		event.ToStatus = string(task.Status)
		event.ETA = etaFor(officer, alert)
	}
	s.publisher.Publish(event)
}

// SetStatus используется только для входа и выхода офицера (offline <-> available).
// Статусы busy, en_route и on_scene устанавливаются исключительно координатором.
func (s *dispatchService) SetStatus(ctx context.Context, officerID string, status models.OfficerStatus) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "dispatch",
		"method":     "SetStatus",
		"officer_id": officerID,
		"status":     status,
	})

	if !status.Valid() {
		return validationError("unknown officer status %q", status)
	}
	if status != models.OfficerOffline && status != models.OfficerAvailable {
		s.metrics.RecordRejected("set_status", "invalid_transition")
		return newError(ErrInvalidTransition, "status %s is managed by dispatch", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	officer, err := s.registry.Get(officerID)
	if err != nil {
		return err
	}
	if officer.Status.Engaged() {
		s.metrics.RecordRejected("set_status", "conflict")
		log.Warn("Officer holds an active task")
		return conflictError("officer %s holds an active task", officerID)
	}
	if officer.Status == status && status == models.OfficerOffline {
		return nil
	}
	if !officer.Status.CanTransitionTo(status) {
		s.metrics.RecordRejected("set_status", "invalid_transition")
		return newError(ErrInvalidTransition, "officer %s: %s -> %s", officerID, officer.Status, status)
	}

	updated := officer.Clone()
	updated.Status = status
	if err := s.store.SaveOfficer(ctx, updated); err != nil {
		log.WithError(err).Error("Failed to save officer status")
		return fmt.Errorf("service: could not save officer status: %w", err)
	}
	if err := s.registry.compareAndSwapStatus(officerID, officer.Status, status); err != nil {
		return err
	}

	event := models.Event{
		Type:       models.EventOfficerStatus,
		OfficerID:  officerID,
		FromStatus: string(officer.Status),
		ToStatus:   string(status),
		Timestamp:  s.now().UTC(),
	}
	if officer.Location != nil {
		event.Coordinates = &models.Coordinates{Lat: officer.Location.Latitude, Lng: officer.Location.Longitude}
	}
	s.publisher.Publish(event)

	log.Info("Officer status changed")
	return nil
}

func (s *dispatchService) NearestAvailable(_ context.Context, lat, lng float64) (models.Candidate, error) {
	return s.matcher.NearestAvailable(lat, lng)
}

func (s *dispatchService) RankAvailable(_ context.Context, lat, lng float64) ([]models.Candidate, error) {
	return s.matcher.Rank(lat, lng)
}

// CreateAlert создает вызов в статусе pending и оповещает диспетчеров
func (s *dispatchService) CreateAlert(ctx context.Context, reporterID string, lat, lng float64, description string) (*models.EmergencyAlert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "CreateAlert",
		"reporter_id": reporterID,
	})
	log.Info("Attempting to create a new alert")

	if strings.TrimSpace(reporterID) == "" {
		return nil, validationError("reporter id is required")
	}
	if err := geo.ValidateCoordinates(lat, lng); err != nil {
		return nil, validationError("%v", err)
	}

	alert := &models.EmergencyAlert{
		ID:          s.newID(),
		ReporterID:  reporterID,
		Latitude:    lat,
		Longitude:   lng,
		Description: description,
		Status:      models.AlertPending,
		CreatedAt:   s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveAlert(ctx, alert); err != nil {
		log.WithError(err).Error("Failed to save alert in store")
		return nil, fmt.Errorf("service: could not create alert: %w", err)
	}
	s.alerts[alert.ID] = alert

	s.publisher.Publish(models.Event{
		Type:        models.EventAlertCreated,
		AlertID:     alert.ID,
		ReporterID:  alert.ReporterID,
		ToStatus:    string(alert.Status),
		Coordinates: &models.Coordinates{Lat: lat, Lng: lng},
		Timestamp:   alert.CreatedAt,
	})

	log.WithField("alert_id", alert.ID).Info("Alert created successfully")
	return alert.Clone(), nil
}

func (s *dispatchService) GetAlert(_ context.Context, alertID string) (*models.EmergencyAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alert, ok := s.alerts[alertID]
	if !ok {
		return nil, notFoundError("alert %s", alertID)
	}
	return alert.Clone(), nil
}

// CancelAlert отменяет вызов по просьбе заявителя, пока офицер не назначен
func (s *dispatchService) CancelAlert(ctx context.Context, alertID, reporterID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "dispatch",
		"method":      "CancelAlert",
		"alert_id":    alertID,
		"reporter_id": reporterID,
	})
	log.Info("Attempting to cancel alert")

	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts[alertID]
	if !ok {
		return notFoundError("alert %s", alertID)
	}
	if alert.ReporterID != reporterID {
		return newError(ErrForbidden, "alert %s belongs to another reporter", alertID)
	}
	if alert.Status != models.AlertPending {
		return conflictError("alert %s is %s", alertID, alert.Status)
	}

	updated := alert.Clone()
	updated.Status = models.AlertCancelled
	if err := s.store.SaveAlert(ctx, updated); err != nil {
		log.WithError(err).Error("Failed to save cancelled alert")
		return fmt.Errorf("service: could not cancel alert: %w", err)
	}
	s.alerts[alertID] = updated

	s.publisher.Publish(models.Event{
		Type:       models.EventAlertCancelled,
		AlertID:    alertID,
		ReporterID: alert.ReporterID,
		FromStatus: string(models.AlertPending),
		ToStatus:   string(models.AlertCancelled),
		Timestamp:  s.now().UTC(),
	})

	log.Info("Alert cancelled")
	return nil
}

// Assign атомарно проверяет, что офицер доступен, а у вызова нет активной задачи,
// и создает задачу в статусе pending.
func (s *dispatchService) Assign(ctx context.Context, alertID, officerID string) (string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "dispatch",
		"method":     "Assign",
		"alert_id":   alertID,
		"officer_id": officerID,
	})
	log.Info("Attempting to assign officer")
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	alert, ok := s.alerts[alertID]
	if !ok {
		return "", notFoundError("alert %s", alertID)
	}
	officer, err := s.registry.Get(officerID)
	if err != nil {
		return "", err
	}
	if taskID, busy := s.activeByAlert[alertID]; busy {
		s.metrics.RecordRejected("assign", "alert_busy")
		log.WithField("task_id", taskID).Warn("Alert already has an active task")
		return "", conflictError("alert %s already has active task %s", alertID, taskID)
	}
	if alert.Status != models.AlertPending {
		s.metrics.RecordRejected("assign", "alert_closed")
		return "", conflictError("alert %s is %s", alertID, alert.Status)
	}

	if err := s.registry.compareAndSwapStatus(officerID, models.OfficerAvailable, models.OfficerBusy); err != nil {
		s.metrics.RecordRejected("assign", "officer_unavailable")
		log.WithError(err).Warn("Officer is not available")
		return "", conflictError("officer %s is %s", officerID, officer.Status)
	}

	task := &models.DispatchTask{
		ID:         s.newID(),
		AlertID:    alertID,
		OfficerID:  officerID,
		Status:     models.TaskPending,
		AssignedAt: s.now().UTC(),
	}
	updatedOfficer := officer.Clone()
	updatedOfficer.Status = models.OfficerBusy
	updatedAlert := alert.Clone()
	updatedAlert.Status = models.AlertAssigned

	if err := s.store.CommitTask(ctx, task, updatedOfficer, updatedAlert); err != nil {
		if rbErr := s.registry.compareAndSwapStatus(officerID, models.OfficerBusy, models.OfficerAvailable); rbErr != nil {
			log.WithError(rbErr).Error("Failed to roll back officer status")
		}
		log.WithError(err).Error("Failed to commit assignment")
		return "", fmt.Errorf("service: could not commit assignment: %w", err)
	}

	s.alerts[alertID] = updatedAlert
	s.tasks[task.ID] = task
	s.activeByAlert[alertID] = task.ID
	s.activeByOfficer[officerID] = task.ID

	s.publisher.Publish(s.taskEvent(task, "", updatedOfficer, updatedAlert, task.AssignedAt))
	s.metrics.RecordTransition(string(models.TaskPending))
	s.metrics.RecordAssignLatency(time.Since(start))

	log.WithField("task_id", task.ID).Info("Officer assigned successfully")
	return task.ID, nil
}

// DispatchNearest подбирает ближайшего доступного офицера и назначает его на вызов.
// Выполняется одна попытка; при конфликте решение о повторе принимает вызывающий.
func (s *dispatchService) DispatchNearest(ctx context.Context, alertID string) (*models.DispatchTask, error) {
	alert, err := s.GetAlert(ctx, alertID)
	if err != nil {
		return nil, err
	}
	candidate, err := s.matcher.NearestAvailable(alert.Latitude, alert.Longitude)
	if err != nil {
		return nil, err
	}
	taskID, err := s.Assign(ctx, alertID, candidate.OfficerID)
	if err != nil {
		return nil, err
	}
	return s.GetTask(ctx, taskID)
}

// Transition переводит задачу в следующий статус от имени офицера-владельца
// и применяет производные статусы офицера и вызова.
func (s *dispatchService) Transition(ctx context.Context, taskID, officerID string, status models.TaskStatus) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "dispatch",
		"method":     "Transition",
		"task_id":    taskID,
		"officer_id": officerID,
		"status":     status,
	})
	log.Info("Attempting task transition")

	if !status.Valid() {
		return validationError("unknown task status %q", status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.lookupTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task.OfficerID != officerID {
		s.metrics.RecordRejected("transition", "forbidden")
		log.Warn("Officer does not own the task")
		return newError(ErrForbidden, "task %s is not assigned to officer %s", taskID, officerID)
	}
	if task.Status.Terminal() {
		s.metrics.RecordRejected("transition", "terminal")
		return conflictError("task %s is already %s", taskID, task.Status)
	}
	if !task.Status.CanTransitionTo(status) {
		s.metrics.RecordRejected("transition", "invalid_transition")
		log.WithField("current", task.Status).Warn("Illegal task transition")
		return newError(ErrInvalidTransition, "task %s: %s -> %s", taskID, task.Status, status)
	}

	alert, ok := s.alerts[task.AlertID]
	if !ok {
		return fmt.Errorf("service: alert %s of task %s missing from state", task.AlertID, taskID)
	}
	officer, err := s.registry.Get(officerID)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	updatedTask := task.Clone()
	updatedTask.Status = status
	updatedAlert := alert.Clone()
	updatedOfficer := officer.Clone()

	switch status {
	case models.TaskAccepted:
		updatedTask.AcceptedAt = &now
		updatedOfficer.Status = models.OfficerEnRoute
	case models.TaskArrived:
		updatedTask.ArrivedAt = &now
		updatedOfficer.Status = models.OfficerOnScene
	case models.TaskResolved:
		updatedTask.ResolvedAt = &now
		updatedOfficer.Status = models.OfficerAvailable
		updatedAlert.Status = models.AlertResolved
		updatedAlert.ResolvedAt = &now
	case models.TaskDeclined:
		updatedOfficer.Status = models.OfficerAvailable
		updatedAlert.Status = models.AlertPending
	}

	if updatedOfficer.Status != officer.Status {
		if err := s.registry.compareAndSwapStatus(officerID, officer.Status, updatedOfficer.Status); err != nil {
			return err
		}
	}
	if err := s.store.CommitTask(ctx, updatedTask, updatedOfficer, updatedAlert); err != nil {
		if updatedOfficer.Status != officer.Status {
			if rbErr := s.registry.compareAndSwapStatus(officerID, updatedOfficer.Status, officer.Status); rbErr != nil {
				log.WithError(rbErr).Error("Failed to roll back officer status")
			}
		}
		log.WithError(err).Error("Failed to commit transition")
		return fmt.Errorf("service: could not commit transition: %w", err)
	}

	s.tasks[taskID] = updatedTask
	s.alerts[alert.ID] = updatedAlert
	if status.Terminal() {
		delete(s.activeByAlert, alert.ID)
		delete(s.activeByOfficer, officerID)
	}

	s.publisher.Publish(s.taskEvent(updatedTask, task.Status, updatedOfficer, updatedAlert, now))
	s.metrics.RecordTransition(string(status))

	log.Info("Task transition committed")
	return nil
}

func (s *dispatchService) GetTask(ctx context.Context, taskID string) (*models.DispatchTask, error) {
	s.mu.RLock()
	task, ok := s.tasks[taskID]
	s.mu.RUnlock()
	if ok {
		return task.Clone(), nil
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// ActiveTasks возвращает активные задачи офицера (не более одной)
func (s *dispatchService) ActiveTasks(_ context.Context, officerID string) ([]*models.DispatchTask, error) {
	if _, err := s.registry.Get(officerID); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*models.DispatchTask, 0, 1)
	if taskID, ok := s.activeByOfficer[officerID]; ok {
		tasks = append(tasks, s.tasks[taskID].Clone())
	}
	return tasks, nil
}

// lookupTask ищет задачу в памяти, затем в хранилище. Вызывается под s.mu.
func (s *dispatchService) lookupTask(ctx context.Context, taskID string) (*models.DispatchTask, error) {
	if task, ok := s.tasks[taskID]; ok {
		return task, nil
	}
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *dispatchService) taskEvent(task *models.DispatchTask, from models.TaskStatus, officer *models.Officer, alert *models.EmergencyAlert, at time.Time) models.Event {
	event := models.Event{
		Type:       models.TaskEventType(task.Status),
		TaskID:     task.ID,
		AlertID:    alert.ID,
		OfficerID:  officer.ID,
		ReporterID: alert.ReporterID,
		FromStatus: string(from),
		ToStatus:   string(task.Status),
		Timestamp:  at,
	}
	if officer.Location != nil {
		event.Coordinates = &models.Coordinates{Lat: officer.Location.Latitude, Lng: officer.Location.Longitude}
		if task.Status.Active() {
			event.ETA = etaFor(officer, alert)
		}
	}
	return event
}

func etaFor(officer *models.Officer, alert *models.EmergencyAlert) *int {
	if officer.Location == nil {
		return nil
	}
	distance := geo.Haversine(officer.Location.Latitude, officer.Location.Longitude, alert.Latitude, alert.Longitude)
	eta := geo.EstimateETA(distance)
	return &eta
}
