package webhook

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(url string) *WebhookWorker {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewWebhookWorker(nil, logger, Config{
		URL:        url,
		Secret:     "s3cret",
		Timeout:    time.Second,
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
	})
}

func TestDeliver_SignsPayload(t *testing.T) {
	payload := []byte(`{"type":"task_assigned","taskId":"t1"}`)
	var gotSignature, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotSignature = r.Header.Get(signatureHeader)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	require.NoError(t, newTestWorker(server.URL).deliver(context.Background(), payload))
	assert.Equal(t, string(payload), gotBody)
	assert.Equal(t, Sign(payload, "s3cret"), gotSignature)
	assert.Len(t, gotSignature, 64)
}

func TestDeliver_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	require.NoError(t, newTestWorker(server.URL).deliver(context.Background(), []byte(`{}`)))
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliver_GivesUp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := newTestWorker(server.URL).deliver(context.Background(), []byte(`{}`))
	assert.ErrorContains(t, err, "503")
	assert.Equal(t, int32(3), calls.Load())
}

func TestDeliver_ClientErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	err := newTestWorker(server.URL).deliver(context.Background(), []byte(`{}`))
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDeliver_NoURLSkips(t *testing.T) {
	assert.NoError(t, newTestWorker("").deliver(context.Background(), []byte(`{}`)))
}

func TestPublisher_IgnoresNonDispatchTopics(t *testing.T) {
	// клиент не нужен: публикация в чужой топик не доходит до Redis
	publisher := NewRedisWebhookPublisher(nil)
	assert.NoError(t, publisher.Publish(context.Background(), "officer:1", []byte(`{}`)))
}
