package telegram

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	updateKeyPrefix = "gymbot:update:"
	updateKeyTTL    = 24 * time.Hour
)

// Deduplicator remembers processed update ids in redis, so a redelivered
// update after a restart or a retried long poll is handled once.
type Deduplicator struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewDeduplicator(redisClient *redis.Client) *Deduplicator {
	return &Deduplicator{
		redisClient: redisClient,
		ttl:         updateKeyTTL,
	}
}

// FirstSeen marks the update as seen and reports whether it was new.
func (d *Deduplicator) FirstSeen(ctx context.Context, updateID int) (bool, error) {
	first, err := d.redisClient.SetNX(ctx, updateKey(updateID), 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("mark update %d: %w", updateID, err)
	}
	return first, nil
}

func updateKey(updateID int) string {
	return updateKeyPrefix + strconv.Itoa(updateID)
}
