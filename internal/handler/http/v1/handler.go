package v1

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shenikar/emergency_dispatch_system/internal/fanout"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	dispatchService service.DispatchService
	transport       fanout.Transport
	logger          *logrus.Logger
	validate        *validator.Validate
	now             func() time.Time
}

func NewHandler(dispatchService service.DispatchService, transport fanout.Transport, logger *logrus.Logger) *Handler {
	return &Handler{
		dispatchService: dispatchService,
		transport:       transport,
		logger:          logger,
		validate:        validator.New(),
		now:             time.Now,
	}
}

// writeServiceError переводит ошибки ядра в HTTP статусы
func writeServiceError(c *gin.Context, log *logrus.Entry, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrNoOfficerAvailable):
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		log.WithError(err).Error("Dispatch service failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	log.WithError(err).Warn("Request rejected by dispatch service")
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindAndValidate разбирает тело запроса и проверяет DTO
func (h *Handler) bindAndValidate(c *gin.Context, log *logrus.Entry, input any) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// authorizeOfficer запрещает офицеру действовать от имени другого офицера
func authorizeOfficer(c *gin.Context, officerID string) bool {
	if actor, ok := actingOfficer(c); ok && actor != officerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "officer may only update own state"})
		return false
	}
	return true
}

// @Summary Register an officer
// @Description Register a new field officer. New officers start offline without a location.
// @Tags Officers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param officer body RegisterOfficerRequest true "Officer registration request"
// @Success 201 {object} OfficerResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 409 {object} map[string]string "Officer id or badge already registered"
// @Router /officers [post]
func (h *Handler) registerOfficer(c *gin.Context) {
	var input RegisterOfficerRequest
	log := h.logger.WithField("method", "registerOfficer")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	officer, err := h.dispatchService.RegisterOfficer(c.Request.Context(), input.ID, input.BadgeNumber)
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToOfficerResponse(officer))
}

// @Summary Get officer by ID
// @Tags Officers
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Officer ID"
// @Success 200 {object} OfficerResponse
// @Failure 404 {object} map[string]string "Officer not found"
// @Router /officers/{id} [get]
func (h *Handler) getOfficer(c *gin.Context) {
	log := h.logger.WithField("method", "getOfficer").WithField("id", c.Param("id"))

	officer, err := h.dispatchService.GetOfficer(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToOfficerResponse(officer))
}

// @Summary Push officer location
// @Description Stale updates (older than the stored one) are ignored and reported with applied=false.
// @Tags Officers
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Officer ID"
// @Param location body UpdateLocationRequest true "Location update"
// @Success 200 {object} UpdateLocationResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 403 {object} map[string]string "Acting officer differs from path"
// @Failure 404 {object} map[string]string "Officer not found"
// @Router /officers/{id}/location [put]
func (h *Handler) updateLocation(c *gin.Context) {
	officerID := c.Param("id")
	log := h.logger.WithField("method", "updateLocation").WithField("id", officerID)
	if !authorizeOfficer(c, officerID) {
		return
	}

	var input UpdateLocationRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}
	ts := h.now()
	if input.Timestamp != nil {
		ts = *input.Timestamp
	}

	applied, err := h.dispatchService.UpdateLocation(c.Request.Context(), officerID, *input.Latitude, *input.Longitude, ts)
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, UpdateLocationResponse{Applied: applied})
}

// @Summary Officer goes on or off duty
// @Description Only "available" and "offline" are accepted; other statuses are set by dispatch.
// @Tags Officers
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Officer ID"
// @Param status body SetOfficerStatusRequest true "Target status"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Unknown status"
// @Failure 409 {object} map[string]string "Officer holds an active task"
// @Failure 422 {object} map[string]string "Transition not allowed"
// @Router /officers/{id}/status [put]
func (h *Handler) setOfficerStatus(c *gin.Context) {
	officerID := c.Param("id")
	log := h.logger.WithField("method", "setOfficerStatus").WithField("id", officerID)
	if !authorizeOfficer(c, officerID) {
		return
	}

	var input SetOfficerStatusRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}
	status, ok := models.ParseOfficerStatus(input.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown officer status"})
		return
	}

	if err := h.dispatchService.SetStatus(c.Request.Context(), officerID, status); err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Active tasks of an officer
// @Tags Officers
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Officer ID"
// @Success 200 {array} TaskResponse
// @Failure 404 {object} map[string]string "Officer not found"
// @Router /officers/{id}/tasks [get]
func (h *Handler) listOfficerTasks(c *gin.Context) {
	log := h.logger.WithField("method", "listOfficerTasks").WithField("id", c.Param("id"))

	tasks, err := h.dispatchService.ActiveTasks(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelsToTaskResponses(tasks))
}

func parseCoordinates(c *gin.Context) (float64, float64, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng query parameters are required"})
		return 0, 0, false
	}
	return lat, lng, true
}

// @Summary Rank available officers
// @Description All available officers with a known location, nearest first, ties broken by officer id.
// @Tags Matching
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {array} CandidateResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Router /match [get]
func (h *Handler) rankOfficers(c *gin.Context) {
	log := h.logger.WithField("method", "rankOfficers")
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}

	candidates, err := h.dispatchService.RankAvailable(c.Request.Context(), lat, lng)
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, CandidatesToResponses(candidates))
}

// @Summary Nearest available officer
// @Tags Matching
// @Produce json
// @Security ApiKeyAuth
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Success 200 {object} CandidateResponse
// @Failure 400 {object} map[string]string "Invalid coordinates"
// @Failure 503 {object} map[string]string "No officer available"
// @Router /match/nearest [get]
func (h *Handler) nearestOfficer(c *gin.Context) {
	log := h.logger.WithField("method", "nearestOfficer")
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}

	candidate, err := h.dispatchService.NearestAvailable(c.Request.Context(), lat, lng)
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, CandidatesToResponses([]models.Candidate{candidate})[0])
}

// @Summary Create an emergency alert
// @Tags Alerts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param alert body CreateAlertRequest true "Alert"
// @Success 201 {object} AlertResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /alerts [post]
func (h *Handler) createAlert(c *gin.Context) {
	var input CreateAlertRequest
	log := h.logger.WithField("method", "createAlert")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	alert, err := h.dispatchService.CreateAlert(c.Request.Context(), input.ReporterID, *input.Latitude, *input.Longitude, input.Description)
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToAlertResponse(alert))
}

// @Summary Get alert by ID
// @Tags Alerts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 200 {object} AlertResponse
// @Failure 404 {object} map[string]string "Alert not found"
// @Router /alerts/{id} [get]
func (h *Handler) getAlert(c *gin.Context) {
	log := h.logger.WithField("method", "getAlert").WithField("id", c.Param("id"))

	alert, err := h.dispatchService.GetAlert(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToAlertResponse(alert))
}

// @Summary Cancel an alert
// @Description The reporter withdraws a pending alert.
// @Tags Alerts
// @Accept json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Param body body CancelAlertRequest true "Reporter"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Not the reporter of the alert"
// @Failure 409 {object} map[string]string "Alert is no longer pending"
// @Router /alerts/{id}/cancel [post]
func (h *Handler) cancelAlert(c *gin.Context) {
	var input CancelAlertRequest
	log := h.logger.WithField("method", "cancelAlert").WithField("id", c.Param("id"))
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	if err := h.dispatchService.CancelAlert(c.Request.Context(), c.Param("id"), input.ReporterID); err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Dispatch the nearest officer
// @Description Single attempt: picks the nearest available officer and assigns them to the alert.
// @Tags Dispatch
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Alert ID"
// @Success 201 {object} TaskResponse
// @Failure 404 {object} map[string]string "Alert not found"
// @Failure 409 {object} map[string]string "Alert already assigned or officer taken concurrently"
// @Failure 503 {object} map[string]string "No officer available"
// @Router /alerts/{id}/dispatch [post]
func (h *Handler) dispatchNearest(c *gin.Context) {
	log := h.logger.WithField("method", "dispatchNearest").WithField("id", c.Param("id"))

	task, err := h.dispatchService.DispatchNearest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToTaskResponse(task))
}

// @Summary Assign an officer to an alert
// @Tags Dispatch
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AssignRequest true "Assignment"
// @Success 201 {object} AssignResponse
// @Failure 404 {object} map[string]string "Alert or officer not found"
// @Failure 409 {object} map[string]string "Officer not available or alert already assigned"
// @Router /dispatch/assign [post]
func (h *Handler) assign(c *gin.Context) {
	var input AssignRequest
	log := h.logger.WithField("method", "assign")
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	taskID, err := h.dispatchService.Assign(c.Request.Context(), input.AlertID, input.OfficerID)
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusCreated, AssignResponse{TaskID: taskID})
}

// @Summary Get task by ID
// @Tags Tasks
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Task ID"
// @Success 200 {object} TaskResponse
// @Failure 404 {object} map[string]string "Task not found"
// @Router /tasks/{id} [get]
func (h *Handler) getTask(c *gin.Context) {
	log := h.logger.WithField("method", "getTask").WithField("id", c.Param("id"))

	task, err := h.dispatchService.GetTask(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToTaskResponse(task))
}

// @Summary Advance a task
// @Description The assigned officer (X-Officer-ID) moves the task to its next status.
// @Tags Tasks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param X-Officer-ID header string true "Acting officer"
// @Param id path string true "Task ID"
// @Param body body TransitionRequest true "Target status"
// @Success 200 {object} TaskResponse
// @Failure 401 {object} map[string]string "Acting officer missing"
// @Failure 403 {object} map[string]string "Task assigned to another officer"
// @Failure 409 {object} map[string]string "Task already finished"
// @Failure 422 {object} map[string]string "Status is not the next one"
// @Router /tasks/{id}/status [put]
func (h *Handler) transitionTask(c *gin.Context) {
	taskID := c.Param("id")
	log := h.logger.WithField("method", "transitionTask").WithField("id", taskID)

	officerID, ok := actingOfficer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": officerIDHeader + " header required"})
		return
	}
	var input TransitionRequest
	if !h.bindAndValidate(c, log, &input) {
		return
	}

	ctx := c.Request.Context()
	if err := h.dispatchService.Transition(ctx, taskID, officerID, models.TaskStatus(input.Status)); err != nil {
		writeServiceError(c, log, err)
		return
	}
	task, err := h.dispatchService.GetTask(ctx, taskID)
	if err != nil {
		writeServiceError(c, log, err)
		return
	}
	c.JSON(http.StatusOK, ModelToTaskResponse(task))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
