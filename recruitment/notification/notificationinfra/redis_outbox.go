package notificationinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Abraxas-365/internhub/recruitment/notification"
	"github.com/go-redis/redis/v8"
)

const DefaultOutboxKey = "notifications:outbox"

// RedisOutbox implements notification.Outbox with a Redis list for ready
// messages and a sorted set, scored by due time, for delayed retries.
type RedisOutbox struct {
	client *redis.Client
	key    string
}

func NewRedisOutbox(client *redis.Client, key string) *RedisOutbox {
	if key == "" {
		key = DefaultOutboxKey
	}
	return &RedisOutbox{client: client, key: key}
}

func (q *RedisOutbox) delayedKey() string {
	return q.key + ":delayed"
}

func (q *RedisOutbox) Enqueue(ctx context.Context, msg *notification.OutboxMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal outbox message %s: %w", msg.ID, err)
	}

	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("enqueue outbox message %s: %w", msg.ID, err)
	}
	return nil
}

// Dequeue blocks up to timeout; nil means nothing was ready
func (q *RedisOutbox) Dequeue(ctx context.Context, timeout time.Duration) (*notification.OutboxMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue outbox message: %w", err)
	}

	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from outbox: expected 2 elements, got %d", len(result))
	}

	var msg notification.OutboxMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		return nil, fmt.Errorf("unmarshal outbox message: %w", err)
	}
	return &msg, nil
}

func (q *RedisOutbox) EnqueueDelayed(ctx context.Context, msg *notification.OutboxMessage, delay time.Duration) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal delayed outbox message %s: %w", msg.ID, err)
	}

	score := float64(time.Now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), &redis.Z{Score: score, Member: data}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed outbox message %s: %w", msg.ID, err)
	}
	return nil
}

// MoveDelayedToReady moves due retries onto the ready list
func (q *RedisOutbox) MoveDelayedToReady(ctx context.Context) (int, error) {
	due, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(time.Now().Unix(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed outbox messages: %w", err)
	}

	if len(due) == 0 {
		return 0, nil
	}

	pipe := q.client.TxPipeline()
	for _, m := range due {
		pipe.LPush(ctx, q.key, m)
		pipe.ZRem(ctx, q.delayedKey(), m)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("move delayed outbox messages: %w", err)
	}
	return len(due), nil
}

// Size counts ready and delayed messages
func (q *RedisOutbox) Size(ctx context.Context) (int64, error) {
	pipe := q.client.Pipeline()
	ready := pipe.LLen(ctx, q.key)
	delayed := pipe.ZCard(ctx, q.delayedKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("get outbox size: %w", err)
	}
	return ready.Val() + delayed.Val(), nil
}
