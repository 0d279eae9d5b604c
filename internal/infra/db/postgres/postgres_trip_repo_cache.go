package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/domain/ports/repository"
	"travel-planner/internal/infra/metrics"
	red "travel-planner/internal/infra/redis"
)

var _ repository.TripRepository = (*tripRepoCacheDecorator)(nil)

// tripRepoCacheDecorator caches single-trip reads. Lists hit the database:
// trip lists change on every save and a stale list is worse than a slow one.
type tripRepoCacheDecorator struct {
	inner repository.TripRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewTripRepoCacheDecorator(inner repository.TripRepository, cache red.RedisClient, ttl time.Duration) repository.TripRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &tripRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

func tripKey(id string) string { return fmt.Sprintf("trip:id:%s", id) }

func (d *tripRepoCacheDecorator) Save(ctx context.Context, tx repository.Tx, trip *model.Trip) error {
	_ = d.cache.Del(ctx, tripKey(trip.ID))
	return d.inner.Save(ctx, tx, trip)
}

func (d *tripRepoCacheDecorator) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Trip, error) {
	key := tripKey(id)
	if val, err := d.cache.Get(ctx, key); err == nil {
		var trip model.Trip
		if json.Unmarshal([]byte(val), &trip) == nil {
			metrics.IncCacheRequest("trip", "hit")
			return &trip, nil
		}
	}

	metrics.IncCacheRequest("trip", "miss")
	trip, err := d.inner.FindByID(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if bytes, err := json.Marshal(trip); err == nil {
		_ = d.cache.Set(ctx, key, bytes, d.ttl)
	}
	return trip, nil
}

func (d *tripRepoCacheDecorator) ListByUser(ctx context.Context, userID string) ([]*model.Trip, error) {
	return d.inner.ListByUser(ctx, userID)
}

func (d *tripRepoCacheDecorator) Delete(ctx context.Context, tx repository.Tx, id string) error {
	_ = d.cache.Del(ctx, tripKey(id))
	return d.inner.Delete(ctx, tx, id)
}
