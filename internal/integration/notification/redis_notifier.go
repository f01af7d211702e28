package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/insights/internal/application/adapter"
)

const (
	orderKey  = "insights:notifications:order"
	expiryKey = "insights:notifications:expiry"
	dataKey   = "insights:notifications:data"
	seqKey    = "insights:notifications:seq"
)

// RedisNotifier keeps notifications in Redis so every API instance sees the
// same set. Push order lives in a sorted set scored by a sequence taken from
// INCR, creation time in milliseconds in a second sorted set, and payloads in
// a hash keyed by id.
type RedisNotifier struct {
	client *redis.Client
	opts   Options
}

var _ adapter.Notifier = (*RedisNotifier)(nil)

// NewRedisNotifier creates a new RedisNotifier.
func NewRedisNotifier(client *redis.Client, opts Options) *RedisNotifier {
	return &RedisNotifier{client: client, opts: opts.withDefaults()}
}

// Push stores a notification and trims expired and overflowing entries.
func (r *RedisNotifier) Push(ctx context.Context, n adapter.Notification) (*adapter.Notification, error) {
	n = stamp(n, r.opts.Now())

	payload, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification: %w", err)
	}

	seq, err := r.client.Incr(ctx, seqKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to sequence notification: %w", err)
	}

	id := n.ID.String()
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, orderKey, redis.Z{Score: float64(seq), Member: id})
		pipe.ZAdd(ctx, expiryKey, redis.Z{Score: float64(n.CreatedAt.UnixMilli()), Member: id})
		pipe.HSet(ctx, dataKey, id, payload)
		for _, key := range []string{orderKey, expiryKey, dataKey, seqKey} {
			pipe.Expire(ctx, key, r.opts.TTL)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	if err := r.prune(ctx); err != nil {
		return nil, err
	}
	return &n, nil
}

// List returns the live notifications, oldest first.
func (r *RedisNotifier) List(ctx context.Context) ([]adapter.Notification, error) {
	if err := r.prune(ctx); err != nil {
		return nil, err
	}

	ids, err := r.client.ZRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	if len(ids) == 0 {
		return []adapter.Notification{}, nil
	}

	values, err := r.client.HMGet(ctx, dataKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}

	notifications := make([]adapter.Notification, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var n adapter.Notification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// Dismiss removes the notification with the given id.
func (r *RedisNotifier) Dismiss(ctx context.Context, id uuid.UUID) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, orderKey, id.String())
		pipe.ZRem(ctx, expiryKey, id.String())
		pipe.HDel(ctx, dataKey, id.String())
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to dismiss notification: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (r *RedisNotifier) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// prune drops notifications older than the TTL, then the oldest ones beyond MaxItems.
func (r *RedisNotifier) prune(ctx context.Context) error {
	cutoff := r.opts.Now().Add(-r.opts.TTL).UnixMilli()
	expired, err := r.client.ZRangeByScore(ctx, expiryKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(cutoff, 10),
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to find expired notifications: %w", err)
	}
	if err := r.remove(ctx, expired); err != nil {
		return err
	}

	count, err := r.client.ZCard(ctx, orderKey).Result()
	if err != nil {
		return fmt.Errorf("failed to count notifications: %w", err)
	}
	overflow := count - int64(r.opts.MaxItems)
	if overflow <= 0 {
		return nil
	}
	oldest, err := r.client.ZRange(ctx, orderKey, 0, overflow-1).Result()
	if err != nil {
		return fmt.Errorf("failed to find overflowing notifications: %w", err)
	}
	return r.remove(ctx, oldest)
}

func (r *RedisNotifier) remove(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	members := make([]any, len(ids))
	for i, id := range ids {
		members[i] = id
	}
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRem(ctx, orderKey, members...)
		pipe.ZRem(ctx, expiryKey, members...)
		pipe.HDel(ctx, dataKey, ids...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to prune notifications: %w", err)
	}
	return nil
}
