// Package registryredis provides a redis backed registry of in-flight
// registrations so deduplication holds across api instances.
package registryredis

import (
	"context"
	"strings"
	"time"

	"github.com/Mukeshmehta2041/crm-micro-sub000/foundation/logger"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "registration:inflight:"

// opTimeout bounds each redis call so a slow redis cannot stall the
// admit path.
const opTimeout = 2 * time.Second

// Registry tracks in-flight dedup keys in redis. Entries carry a TTL
// so a crashed instance cannot wedge a key forever. Redis errors fail
// open: a registration is admitted rather than blocked, at the cost of
// losing dedup protection for that window.
type Registry struct {
	log    *logger.Logger
	client *redis.Client
	ttl    time.Duration
}

// New constructs a registry backed by the specified redis client.
func New(log *logger.Logger, client *redis.Client, ttl time.Duration) *Registry {
	return &Registry{
		log:    log,
		client: client,
		ttl:    ttl,
	}
}

// TryAdmit inserts the key if absent and reports whether this call
// performed the insertion.
func (r *Registry) TryAdmit(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	ok, err := r.client.SetNX(ctx, keyPrefix+key, time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		r.log.Warn(ctx, "registry admit failed, admitting without dedup", "key", key, "err", err)
		return true
	}

	return ok
}

// Release removes the key. Releasing an absent key is a no-op.
func (r *Registry) Release(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		r.log.Warn(ctx, "registry release failed, ttl will reclaim the key", "key", key, "err", err)
	}
}

// Snapshot returns the keys currently held.
func (r *Registry) Snapshot() []string {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var keys []string

	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), keyPrefix))
	}

	if err := iter.Err(); err != nil {
		r.log.Warn(ctx, "registry snapshot failed", "err", err)
	}

	return keys
}

// Clear removes every key and returns how many were removed.
func (r *Registry) Clear() int {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var removed int

	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			r.log.Warn(ctx, "registry clear failed", "key", iter.Val(), "err", err)
			continue
		}
		removed++
	}

	if err := iter.Err(); err != nil {
		r.log.Warn(ctx, "registry clear scan failed", "err", err)
	}

	return removed
}
