package redis

import (
	"context"
	"encoding/json"
	"time"

	"travel-planner/internal/domain/model"
	"travel-planner/internal/infra/metrics"
)

// StatusCache keeps the latest client-observed snapshot of each plan job so
// the UI's own polling of our API does not hit Postgres on every tick.
// The tracker overwrites the entry after every upstream poll.
type StatusCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewStatusCache(client RedisClient, ttl time.Duration) *StatusCache {
	return &StatusCache{client: client, ttl: ttl}
}

func key(jobID string) string { return "plan_job:" + jobID }

func (c *StatusCache) Store(ctx context.Context, job *model.PlanJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(job.ID), data, c.ttl)
}

func (c *StatusCache) Get(ctx context.Context, jobID string) (*model.PlanJob, error) {
	data, err := c.client.Get(ctx, key(jobID))
	if err != nil {
		if IsMiss(err) {
			metrics.IncCacheRequest("job_status", "miss")
		}
		return nil, err
	}
	metrics.IncCacheRequest("job_status", "hit")

	var job model.PlanJob
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *StatusCache) Delete(ctx context.Context, jobID string) error {
	return c.client.Del(ctx, key(jobID))
}
