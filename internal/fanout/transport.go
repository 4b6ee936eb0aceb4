package fanout

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DispatchTopic получает все события для диспетчерской консоли
	DispatchTopic = "dispatch:broadcast"

	officerTopicPrefix  = "officer:"
	reporterTopicPrefix = "reporter:"
)

func OfficerTopic(officerID string) string {
	return officerTopicPrefix + officerID
}

func ReporterTopic(reporterID string) string {
	return reporterTopicPrefix + reporterID
}

// ValidTopic проверяет, что топик относится к одной из трех аудиторий
func ValidTopic(topic string) bool {
	if topic == DispatchTopic {
		return true
	}
	for _, prefix := range []string{officerTopicPrefix, reporterTopicPrefix} {
		if id, ok := strings.CutPrefix(topic, prefix); ok && id != "" {
			return true
		}
	}
	return false
}

// Sink принимает сериализованные события для топика
type Sink interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}

// Subscription - поток сообщений одного топика
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// Transport - pub/sub шина доставки событий
type Transport interface {
	Sink
	Subscribe(ctx context.Context, topic string) (Subscription, error)
}

// TransportError - ошибка доставки события в топик. Не откатывает состояние диспетчеризации.
type TransportError struct {
	Topic string
	Err   error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: publish to %s: %v", e.Topic, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MultiTransport публикует в основной транспорт и зеркалирует события в дополнительные приемники.
// Подписки обслуживает только основной транспорт.
type MultiTransport struct {
	primary Transport
	mirrors []Sink
}

func NewMultiTransport(primary Transport, mirrors ...Sink) *MultiTransport {
	return &MultiTransport{primary: primary, mirrors: mirrors}
}

// Sinks возвращает приемники по отдельности: основной транспорт первым, затем зеркала.
// Fanout повторяет публикацию в каждый приемник независимо.
func (m *MultiTransport) Sinks() []Sink {
	sinks := make([]Sink, 0, len(m.mirrors)+1)
	sinks = append(sinks, m.primary)
	return append(sinks, m.mirrors...)
}

func (m *MultiTransport) Publish(ctx context.Context, topic string, payload []byte) error {
	var errs []error
	if err := m.primary.Publish(ctx, topic, payload); err != nil {
		errs = append(errs, err)
	}
	for _, mirror := range m.mirrors {
		if err := mirror.Publish(ctx, topic, payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiTransport) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	return m.primary.Subscribe(ctx, topic)
}
