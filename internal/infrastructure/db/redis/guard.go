package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultGuardTTL = 24 * time.Hour

// NotificationGuard records which notifications have been delivered.
// Key format: notify:<dedup_key>
type NotificationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNotificationGuard creates a guard wrapping the given Redis client. Keys
// expire after ttl, or after a day when ttl is not positive.
func NewNotificationGuard(client *redis.Client, ttl time.Duration) *NotificationGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &NotificationGuard{client: client, ttl: ttl}
}

// Claim atomically sets the key if absent and reports whether it was set.
func (g *NotificationGuard) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(key), "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("notification claim: %w", err)
	}
	return ok, nil
}

// Release deletes the key so the notification can be sent again.
func (g *NotificationGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, g.key(key)).Err()
}

func (g *NotificationGuard) key(k string) string {
	return "notify:" + k
}
