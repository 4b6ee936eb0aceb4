package redis

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch_system/internal/fanout"
)

// Transport - шина событий поверх Redis Pub/Sub для нескольких инстансов сервиса
type Transport struct {
	client *redis.Client
}

func NewTransport(client *redis.Client) *Transport {
	return &Transport{client: client}
}

func (t *Transport) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := t.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish to Redis channel %s: %w", topic, err)
	}
	return nil
}

func (t *Transport) Subscribe(ctx context.Context, topic string) (fanout.Subscription, error) {
	pubsub := t.client.Subscribe(ctx, topic)
	// Ждем подтверждения подписки, чтобы не потерять первые сообщения
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to Redis channel %s: %w", topic, err)
	}

	sub := &subscription{
		pubsub: pubsub,
		ch:     make(chan []byte, 256),
		done:   make(chan struct{}),
	}
	go sub.pump(ctx)
	return sub, nil
}

type subscription struct {
	pubsub *redis.PubSub
	ch     chan []byte
	done   chan struct{}
	once   sync.Once
}

func (s *subscription) pump(ctx context.Context) {
	defer close(s.ch)
	messages := s.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			_ = s.Close()
			return
		case <-s.done:
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			select {
			case s.ch <- []byte(msg.Payload):
			case <-s.done:
				return
			case <-ctx.Done():
				_ = s.Close()
				return
			}
		}
	}
}

func (s *subscription) Messages() <-chan []byte {
	return s.ch
}

func (s *subscription) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.pubsub.Close()
	})
	return err
}
