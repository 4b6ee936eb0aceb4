package fanout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/shenikar/emergency_dispatch_system/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultQueueSize  = 1024
	defaultMaxRetries = 5
	defaultRetryBase  = 100 * time.Millisecond
	defaultDrain      = 2 * time.Second
	maxRetryInterval  = 5 * time.Second
)

// Metrics фиксирует результаты доставки событий
type Metrics interface {
	RecordDelivery(audience string, delivered bool)
	RecordDropped()
}

type nopMetrics struct{}

func (nopMetrics) RecordDelivery(string, bool) {}
func (nopMetrics) RecordDropped()              {}

// Config - параметры очереди и повторов доставки
type Config struct {
	QueueSize  int
	MaxRetries uint
	RetryBase  time.Duration
	// DrainTimeout ограничивает доставку оставшихся в очереди событий при остановке
	DrainTimeout time.Duration
}

// Fanout принимает события в порядке фиксации и асинхронно доставляет их в топики аудиторий.
// Publish никогда не блокирует: при переполненной очереди событие отбрасывается.
type Fanout struct {
	transport Transport
	logger    *logrus.Logger
	metrics   Metrics
	queue     chan models.Event
	cfg       Config
}

func New(transport Transport, logger *logrus.Logger, cfg Config, metrics Metrics) *Fanout {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = defaultQueueSize
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = defaultRetryBase
	}
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = defaultDrain
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Fanout{
		transport: transport,
		logger:    logger,
		metrics:   metrics,
		queue:     make(chan models.Event, cfg.QueueSize),
		cfg:       cfg,
	}
}

// Publish ставит событие в очередь доставки
func (f *Fanout) Publish(event models.Event) {
	select {
	case f.queue <- event:
	default:
		f.metrics.RecordDropped()
		f.logger.WithFields(logrus.Fields{
			"service":  "fanout",
			"method":   "Publish",
			"type":     event.Type,
			"task_id":  event.TaskID,
			"alert_id": event.AlertID,
		}).Error("Fanout queue is full, event dropped")
	}
}

// Run доставляет события из очереди до отмены контекста.
// При остановке уже принятые события дослаются в пределах DrainTimeout.
func (f *Fanout) Run(ctx context.Context) error {
	f.logger.Info("Starting event fanout...")
	for {
		select {
		case <-ctx.Done():
			f.drain(ctx, nil)
			return nil
		case event := <-f.queue:
			if ctx.Err() != nil {
				f.drain(ctx, &event)
				return nil
			}
			f.deliver(ctx, event)
		}
	}
}

func (f *Fanout) drain(parent context.Context, first *models.Event) {
	log := f.logger.WithFields(logrus.Fields{
		"service": "fanout",
		"method":  "drain",
	})
	log.WithField("pending", len(f.queue)).Info("Stopping event fanout, draining queue.")

	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), f.cfg.DrainTimeout)
	defer cancel()

	if first != nil {
		f.deliver(ctx, *first)
	}
	for {
		if ctx.Err() != nil {
			lost := len(f.queue)
			for i := 0; i < lost; i++ {
				f.metrics.RecordDropped()
			}
			log.WithField("lost", lost).Error("Drain deadline exceeded, events dropped")
			return
		}
		select {
		case event := <-f.queue:
			f.deliver(ctx, event)
		default:
			log.Info("Stopping event fanout.")
			return
		}
	}
}

// Topics возвращает топики, в которые доставляется событие
func Topics(event models.Event) []string {
	topics := make([]string, 0, 3)
	if event.OfficerID != "" {
		topics = append(topics, OfficerTopic(event.OfficerID))
	}
	topics = append(topics, DispatchTopic)
	if event.ReporterID != "" {
		topics = append(topics, ReporterTopic(event.ReporterID))
	}
	return topics
}

func (f *Fanout) deliver(ctx context.Context, event models.Event) {
	log := f.logger.WithFields(logrus.Fields{
		"service": "fanout",
		"method":  "deliver",
		"type":    event.Type,
		"task_id": event.TaskID,
	})

	payload, err := json.Marshal(event)
	if err != nil {
		log.WithError(err).Error("Failed to marshal event")
		return
	}

	sinks := f.sinks()
	for _, topic := range Topics(event) {
		for i, sink := range sinks {
			err := f.publishWithRetry(ctx, sink, topic, payload)
			if i == 0 {
				f.metrics.RecordDelivery(audience(topic), err == nil)
			}
			if err != nil {
				log.WithError(err).WithFields(logrus.Fields{
					"topic":  topic,
					"mirror": i > 0,
				}).Error("Failed to deliver event")
			}
		}
	}
}

// sinks раскладывает составной транспорт на приемники, чтобы сбой зеркала
// не вызывал повторной публикации в основной транспорт
func (f *Fanout) sinks() []Sink {
	if multi, ok := f.transport.(interface{ Sinks() []Sink }); ok {
		return multi.Sinks()
	}
	return []Sink{f.transport}
}

func (f *Fanout) publishWithRetry(ctx context.Context, sink Sink, topic string, payload []byte) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.cfg.RetryBase
	b.MaxInterval = maxRetryInterval

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		if err := sink.Publish(ctx, topic, payload); err != nil {
			f.logger.WithError(err).WithFields(logrus.Fields{
				"topic":   topic,
				"attempt": attempt,
			}).Warn("Publish attempt failed")
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(f.cfg.MaxRetries))
	if err != nil {
		return &TransportError{Topic: topic, Err: fmt.Errorf("after %d attempts: %w", attempt, err)}
	}
	return nil
}

func audience(topic string) string {
	switch {
	case topic == DispatchTopic:
		return "dispatch"
	case strings.HasPrefix(topic, officerTopicPrefix):
		return "officer"
	default:
		return "reporter"
	}
}
