package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/shenikar/emergency_dispatch_system/internal/service"
	"github.com/shenikar/emergency_dispatch_system/internal/service/mocks"
	"github.com/shenikar/emergency_dispatch_system/internal/transport/memory"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testAPIKey = "test-api-key"

var fixedNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

// newTestHandler создает новый экземпляр Handler с мокированным сервисом
func newTestHandler(t *testing.T) (*Handler, *mocks.MockDispatchService, *gin.Engine) {
	ctrl := gomock.NewController(t)
	mockService := mocks.NewMockDispatchService(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	broker := memory.NewBroker(logger)
	t.Cleanup(func() { _ = broker.Close() })

	handler := NewHandler(mockService, broker, logger)
	handler.now = func() time.Time { return fixedNow }

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api, []string{testAPIKey})

	return handler, mockService, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(apiKeyHeader, testAPIKey)
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func ptr[T any](v T) *T { return &v }

func TestAuth_MissingAndInvalidKey(t *testing.T) {
	_, _, router := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts/a1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")

	w = makeRequest(router, http.MethodGet, "/api/v1/alerts/a1", nil, map[string]string{apiKeyHeader: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestHealthCheck_NoAuth(t *testing.T) {
	_, _, router := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/system/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRegisterOfficer_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().RegisterOfficer(gomock.Any(), "o1", "100").
		Return(&models.Officer{ID: "o1", BadgeNumber: "100", Status: models.OfficerOffline}, nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/officers", jsonBody(t, RegisterOfficerRequest{ID: "o1", BadgeNumber: "100"}))

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp OfficerResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "offline", resp.Status)
	assert.Nil(t, resp.Location)
}

func TestRegisterOfficer_ValidationError(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().RegisterOfficer(gomock.Any(), gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, http.MethodPost, "/api/v1/officers", jsonBody(t, RegisterOfficerRequest{ID: "o1"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = makeRequest(router, http.MethodPost, "/api/v1/officers", bytes.NewBufferString(`{"id": "o1"`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", fmt.Errorf("wrap: %w", service.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("wrap: %w", service.ErrNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("wrap: %w", service.ErrForbidden), http.StatusForbidden},
		{"conflict", fmt.Errorf("wrap: %w", service.ErrConflict), http.StatusConflict},
		{"invalid transition", fmt.Errorf("wrap: %w", service.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{"no officer", fmt.Errorf("wrap: %w", service.ErrNoOfficerAvailable), http.StatusServiceUnavailable},
		{"internal", fmt.Errorf("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mockService, router := newTestHandler(t)
			mockService.EXPECT().Assign(gomock.Any(), "a1", "o1").Return("", tt.err).Times(1)

			w := makeRequest(router, http.MethodPost, "/api/v1/dispatch/assign", jsonBody(t, AssignRequest{AlertID: "a1", OfficerID: "o1"}))
			assert.Equal(t, tt.code, w.Code)
			if tt.code == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "db down")
			}
		})
	}
}

func TestAssign_Success(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().Assign(gomock.Any(), "a1", "o1").Return("t1", nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/dispatch/assign", jsonBody(t, AssignRequest{AlertID: "a1", OfficerID: "o1"}))
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"task_id":"t1"}`, w.Body.String())
}

func TestUpdateLocation(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	reported := fixedNow.Add(-time.Second)

	mockService.EXPECT().UpdateLocation(gomock.Any(), "o1", 34.1688, 73.2215, fixedNow).Return(true, nil).Times(1)
	mockService.EXPECT().UpdateLocation(gomock.Any(), "o1", 34.1688, 73.2215, reported).Return(false, nil).Times(1)

	w := makeRequest(router, http.MethodPut, "/api/v1/officers/o1/location",
		jsonBody(t, UpdateLocationRequest{Latitude: ptr(34.1688), Longitude: ptr(73.2215)}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"applied":true}`, w.Body.String())

	w = makeRequest(router, http.MethodPut, "/api/v1/officers/o1/location",
		jsonBody(t, UpdateLocationRequest{Latitude: ptr(34.1688), Longitude: ptr(73.2215), Timestamp: &reported}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"applied":false}`, w.Body.String())
}

func TestUpdateLocation_InvalidCoordinates(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().UpdateLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPut, "/api/v1/officers/o1/location",
		jsonBody(t, UpdateLocationRequest{Latitude: ptr(95.0), Longitude: ptr(73.2215)}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = makeRequest(router, http.MethodPut, "/api/v1/officers/o1/location", bytes.NewBufferString(`{"latitude": 1}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateLocation_ZeroCoordinatesAccepted(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().UpdateLocation(gomock.Any(), "o1", 0.0, 0.0, fixedNow).Return(true, nil).Times(1)

	w := makeRequest(router, http.MethodPut, "/api/v1/officers/o1/location", bytes.NewBufferString(`{"latitude": 0, "longitude": 0}`))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateLocation_OtherOfficerForbidden(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().UpdateLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, http.MethodPut, "/api/v1/officers/o1/location",
		jsonBody(t, UpdateLocationRequest{Latitude: ptr(1.0), Longitude: ptr(1.0)}),
		map[string]string{officerIDHeader: "o2"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSetOfficerStatus(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().SetStatus(gomock.Any(), "o1", models.OfficerAvailable).Return(nil).Times(2)

	w := makeRequest(router, http.MethodPut, "/api/v1/officers/o1/status", jsonBody(t, SetOfficerStatusRequest{Status: "available"}))
	assert.Equal(t, http.StatusNoContent, w.Code)

	// устаревшее название статуса принимается как синоним
	w = makeRequest(router, http.MethodPut, "/api/v1/officers/o1/status", jsonBody(t, SetOfficerStatusRequest{Status: "on_duty"}))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = makeRequest(router, http.MethodPut, "/api/v1/officers/o1/status", jsonBody(t, SetOfficerStatusRequest{Status: "sleeping"}))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRankOfficers(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().RankAvailable(gomock.Any(), 34.17, 73.22).Return([]models.Candidate{
		{OfficerID: "A", DistanceKm: 0.19},
		{OfficerID: "B", DistanceKm: 1.07},
	}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/match?lat=34.17&lng=73.22", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []CandidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "A", resp[0].OfficerID)
	assert.Equal(t, 1, resp[0].ETAMinutes)

	w = makeRequest(router, http.MethodGet, "/api/v1/match?lat=abc&lng=73.22", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearestOfficer_NoneAvailable(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().NearestAvailable(gomock.Any(), 1.0, 2.0).
		Return(models.Candidate{}, fmt.Errorf("match: %w", service.ErrNoOfficerAvailable)).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/match/nearest?lat=1&lng=2", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateAlert(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().CreateAlert(gomock.Any(), "r1", 34.17, 73.22, "fire").
		Return(&models.EmergencyAlert{
			ID: "a1", ReporterID: "r1", Latitude: 34.17, Longitude: 73.22,
			Description: "fire", Status: models.AlertPending, CreatedAt: fixedNow,
		}, nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/alerts",
		jsonBody(t, CreateAlertRequest{ReporterID: "r1", Latitude: ptr(34.17), Longitude: ptr(73.22), Description: "fire"}))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "a1", resp.ID)
	assert.Equal(t, "pending", resp.Status)
}

func TestCancelAlert(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().CancelAlert(gomock.Any(), "a1", "r1").Return(nil).Times(1)
	mockService.EXPECT().CancelAlert(gomock.Any(), "a1", "r2").Return(fmt.Errorf("x: %w", service.ErrForbidden)).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/alerts/a1/cancel", jsonBody(t, CancelAlertRequest{ReporterID: "r1"}))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = makeRequest(router, http.MethodPost, "/api/v1/alerts/a1/cancel", jsonBody(t, CancelAlertRequest{ReporterID: "r2"}))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDispatchNearest(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().DispatchNearest(gomock.Any(), "a1").Return(&models.DispatchTask{
		ID: "t1", AlertID: "a1", OfficerID: "A", Status: models.TaskPending, AssignedAt: fixedNow,
	}, nil).Times(1)

	w := makeRequest(router, http.MethodPost, "/api/v1/alerts/a1/dispatch", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A", resp.OfficerID)
	assert.Equal(t, "pending", resp.Status)
}

func TestTransitionTask(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	accepted := fixedNow
	gomock.InOrder(
		mockService.EXPECT().Transition(gomock.Any(), "t1", "o1", models.TaskAccepted).Return(nil),
		mockService.EXPECT().GetTask(gomock.Any(), "t1").Return(&models.DispatchTask{
			ID: "t1", AlertID: "a1", OfficerID: "o1", Status: models.TaskAccepted, AssignedAt: fixedNow, AcceptedAt: &accepted,
		}, nil),
	)

	w := makeRequest(router, http.MethodPut, "/api/v1/tasks/t1/status",
		jsonBody(t, TransitionRequest{Status: "accepted"}), map[string]string{officerIDHeader: "o1"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp TaskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "accepted", resp.Status)
	assert.NotNil(t, resp.AcceptedAt)
}

func TestTransitionTask_Rejections(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().Transition(gomock.Any(), "t1", "o1", models.TaskResolved).
		Return(fmt.Errorf("x: %w", service.ErrInvalidTransition)).Times(1)
	mockService.EXPECT().Transition(gomock.Any(), "t1", "o2", models.TaskAccepted).
		Return(fmt.Errorf("x: %w", service.ErrForbidden)).Times(1)

	// без X-Officer-ID
	w := makeRequest(router, http.MethodPut, "/api/v1/tasks/t1/status", jsonBody(t, TransitionRequest{Status: "accepted"}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// pending нельзя выставить вручную
	w = makeRequest(router, http.MethodPut, "/api/v1/tasks/t1/status",
		jsonBody(t, TransitionRequest{Status: "pending"}), map[string]string{officerIDHeader: "o1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = makeRequest(router, http.MethodPut, "/api/v1/tasks/t1/status",
		jsonBody(t, TransitionRequest{Status: "resolved"}), map[string]string{officerIDHeader: "o1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = makeRequest(router, http.MethodPut, "/api/v1/tasks/t1/status",
		jsonBody(t, TransitionRequest{Status: "accepted"}), map[string]string{officerIDHeader: "o2"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListOfficerTasks(t *testing.T) {
	_, mockService, router := newTestHandler(t)
	mockService.EXPECT().ActiveTasks(gomock.Any(), "o1").Return([]*models.DispatchTask{}, nil).Times(1)

	w := makeRequest(router, http.MethodGet, "/api/v1/officers/o1/tasks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
