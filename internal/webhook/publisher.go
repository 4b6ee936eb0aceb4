package webhook

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_dispatch_system/internal/fanout"
)

const (
	webhookQueueKey = "dispatch_webhook_events"
)

// RedisWebhookPublisher зеркалирует события диспетчерского топика в очередь Redis.
// Остальные топики игнорируются.
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish реализует fanout.Sink
func (p *RedisWebhookPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if topic != fanout.DispatchTopic {
		return nil
	}
	// LPUSH + BRPOP в воркере дают FIFO
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
