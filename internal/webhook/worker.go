package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	signatureHeader = "X-Webhook-Signature"
	popTimeout      = 5 * time.Second
)

// Config - параметры доставки вебхуков
type Config struct {
	URL        string
	Secret     string
	Timeout    time.Duration
	MaxRetries uint
	BaseDelay  time.Duration
}

// WebhookWorker забирает события из очереди Redis и отправляет их на внешний URL диспетчерской
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         Config
	httpClient  *http.Client
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg Config) *WebhookWorker {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}
	return &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Run обрабатывает очередь до отмены контекста
func (w *WebhookWorker) Run(ctx context.Context) error {
	w.logger.Info("Starting webhook worker...")
	for {
		if ctx.Err() != nil {
			w.logger.Info("Stopping webhook worker.")
			return nil
		}

		// BRPOP с таймаутом, чтобы периодически проверять отмену контекста
		result, err := w.redisClient.BRPop(ctx, popTimeout, webhookQueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.logger.WithError(err).Error("Failed to pop webhook event from Redis")
			select {
			case <-ctx.Done():
			case <-time.After(w.cfg.BaseDelay):
			}
			continue
		}

		// result[0] - ключ, result[1] - значение
		if err := w.deliver(ctx, []byte(result[1])); err != nil {
			w.logger.WithError(err).Error("Failed to deliver webhook event")
		}
	}
}

func (w *WebhookWorker) deliver(ctx context.Context, payload []byte) error {
	log := w.logger.WithFields(logrus.Fields{
		"service": "webhook",
		"method":  "deliver",
	})

	if w.cfg.URL == "" {
		log.Debug("Webhook URL is not configured. Skipping webhook delivery.")
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = w.cfg.BaseDelay

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, w.send(ctx, payload)
	}, backoff.WithBackOff(b), backoff.WithMaxTries(w.cfg.MaxRetries))
	if err != nil {
		return fmt.Errorf("webhook: delivery failed after %d attempts: %w", w.cfg.MaxRetries, err)
	}

	log.Debug("Webhook delivered successfully.")
	return nil
}

func (w *WebhookWorker) send(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return backoff.Permanent(fmt.Errorf("failed to create webhook request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	// Добавляем HMAC подпись, если WEBHOOK_SECRET задан
	if w.cfg.Secret != "" {
		req.Header.Set(signatureHeader, Sign(payload, w.cfg.Secret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return backoff.Permanent(fmt.Errorf("webhook rejected with status code %d", resp.StatusCode))
	default:
		return fmt.Errorf("webhook delivery failed with status code %d", resp.StatusCode)
	}
}

// Sign возвращает HMAC-SHA256 подпись тела запроса
func Sign(payload []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
