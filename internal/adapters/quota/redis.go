// Package quota meters daily dayboard generations per user in Redis.
package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kmod24/moodboard/internal/core/ports"
)

const keyPrefix = "moodboard:quota:"

// DailyQuota counts generations per user per UTC day.
type DailyQuota struct {
	client redis.Cmdable
	limit  int
	now    func() time.Time
}

var (
	_ ports.GenerationQuota = (*DailyQuota)(nil)
	_ ports.QuotaReporter   = (*DailyQuota)(nil)
)

// NewDailyQuota returns a quota allowing limit generations a day. A limit of
// zero or less disables metering.
func NewDailyQuota(client redis.Cmdable, limit int) *DailyQuota {
	return &DailyQuota{client: client, limit: limit, now: time.Now}
}

// Consume records one generation and reports whether it fits today's budget.
func (q *DailyQuota) Consume(ctx context.Context, userID string) (bool, error) {
	if q.limit <= 0 {
		return true, nil
	}

	key := quotaKey(userID, q.now())
	var incr *redis.IntCmd
	_, err := q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, 24*time.Hour)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("redis: consume quota: %w", err)
	}
	return incr.Val() <= int64(q.limit), nil
}

// Remaining reports how many generations the user has left today.
func (q *DailyQuota) Remaining(ctx context.Context, userID string) (int, error) {
	if q.limit <= 0 {
		return -1, nil
	}
	used, err := q.client.Get(ctx, quotaKey(userID, q.now())).Int()
	if err == redis.Nil {
		return q.limit, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis: read quota: %w", err)
	}
	if used >= q.limit {
		return 0, nil
	}
	return q.limit - used, nil
}

func quotaKey(userID string, at time.Time) string {
	return keyPrefix + userID + ":" + at.UTC().Format("2006-01-02")
}
