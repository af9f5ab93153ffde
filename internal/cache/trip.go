// Package cache puts Redis in front of repository reads that are safe to cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tide-outfitters/tide/backend/internal/domain"
	"github.com/tide-outfitters/tide/backend/internal/repo"
)

const tripKeyPrefix = "trip:"

// TripCache is a read-through cache for single trip lookups. Trips never
// change once created, so entries only expire and are never invalidated.
// Filtered listings go straight to the wrapped repository.
//
// Redis failures are logged and the lookup falls back to the repository.
type TripCache struct {
	next   repo.TripRepo
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

var _ repo.TripRepo = (*TripCache)(nil)

// NewTripCache wraps next with a cache stored in client for ttl.
func NewTripCache(next repo.TripRepo, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *TripCache {
	return &TripCache{next: next, client: client, ttl: ttl, logger: logger}
}

func tripKey(id uuid.UUID) string {
	return tripKeyPrefix + id.String()
}

// FindTrip returns the cached trip when present, otherwise reads it from the
// wrapped repository and caches it. Misses are not cached.
func (c *TripCache) FindTrip(ctx context.Context, id uuid.UUID) (domain.Trip, bool, error) {
	key := tripKey(id)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var t domain.Trip
		if err := json.Unmarshal(raw, &t); err == nil {
			return t, true, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		c.logger.WarnContext(ctx, "trip cache read failed", "key", key, "error", err)
	}

	t, found, err := c.next.FindTrip(ctx, id)
	if err != nil || !found {
		return t, found, err
	}

	b, err := json.Marshal(t)
	if err != nil {
		c.logger.WarnContext(ctx, "trip cache encode failed", "key", key, "error", err)
		return t, true, nil
	}
	if err := c.client.Set(ctx, key, string(b), c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "trip cache write failed", "key", key, "error", err)
	}
	return t, true, nil
}

// FindTrips is not cached.
func (c *TripCache) FindTrips(ctx context.Context, filters domain.TripFilters) ([]domain.Trip, error) {
	return c.next.FindTrips(ctx, filters)
}
