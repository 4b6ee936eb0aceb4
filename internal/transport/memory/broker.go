package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/shenikar/emergency_dispatch_system/internal/fanout"
	"github.com/sirupsen/logrus"
)

const subscriberBuffer = 256

var ErrClosed = errors.New("memory broker: closed")

// Broker - внутрипроцессная pub/sub шина для одиночного инстанса и тестов.
// Медленный подписчик теряет сообщения, но не блокирует публикацию.
type Broker struct {
	logger  *logrus.Logger
	mu      sync.RWMutex
	topics  map[string]map[*subscription]struct{}
	closed  bool
	dropped atomic.Uint64
}

func NewBroker(logger *logrus.Logger) *Broker {
	return &Broker{logger: logger, topics: make(map[string]map[*subscription]struct{})}
}

// Dropped возвращает число сообщений, потерянных из-за переполненных буферов подписчиков
func (b *Broker) Dropped() uint64 {
	return b.dropped.Load()
}

func (b *Broker) Publish(_ context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrClosed
	}
	for sub := range b.topics[topic] {
		msg := append([]byte(nil), payload...)
		select {
		case sub.ch <- msg:
		default:
			b.dropped.Add(1)
			b.logger.WithField("topic", topic).Warn("Subscriber buffer full, message dropped")
		}
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context, topic string) (fanout.Subscription, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}
	sub := &subscription{broker: b, topic: topic, ch: make(chan []byte, subscriberBuffer)}
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*subscription]struct{})
	}
	b.topics[topic][sub] = struct{}{}

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()
	return sub, nil
}

// Close завершает все подписки
func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, subs := range b.topics {
		for sub := range subs {
			sub.once.Do(func() { close(sub.ch) })
		}
	}
	b.topics = nil
	return nil
}

func (b *Broker) remove(sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.topics[sub.topic]
	if !ok {
		return
	}
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	if len(subs) == 0 {
		delete(b.topics, sub.topic)
	}
	sub.once.Do(func() { close(sub.ch) })
}

type subscription struct {
	broker *Broker
	topic  string
	ch     chan []byte
	once   sync.Once
}

func (s *subscription) Messages() <-chan []byte {
	return s.ch
}

func (s *subscription) Close() error {
	s.broker.remove(s)
	return nil
}
