package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultInterestTTL = 24 * time.Hour

// InterestGuard rate-limits interest notifications per student and listing
// using a Redis key with a TTL. While the key lives, repeat interest in the
// same listing does not produce another email to the broker.
type InterestGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewInterestGuard(client *redis.Client, ttl time.Duration) *InterestGuard {
	if ttl <= 0 {
		ttl = defaultInterestTTL
	}
	return &InterestGuard{client: client, ttl: ttl}
}

func interestKey(studentEmail, propertyID string) string {
	return fmt.Sprintf("interest:%s:%s", studentEmail, propertyID)
}

// RecentlyNotified reports whether a notification for this student/listing
// pair went out within the TTL window.
func (g *InterestGuard) RecentlyNotified(ctx context.Context, studentEmail, propertyID string) (bool, error) {
	n, err := g.client.Exists(ctx, interestKey(studentEmail, propertyID)).Result()
	if err != nil {
		return false, fmt.Errorf("interest guard exists: %w", err)
	}
	return n > 0, nil
}

// MarkNotified records that a notification went out, starting the TTL window.
func (g *InterestGuard) MarkNotified(ctx context.Context, studentEmail, propertyID string) error {
	if err := g.client.Set(ctx, interestKey(studentEmail, propertyID), 1, g.ttl).Err(); err != nil {
		return fmt.Errorf("interest guard set: %w", err)
	}
	return nil
}
