package jobinfra

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/job"
	"github.com/redis/go-redis/v9"
)

// DefaultRunTTL is how long a run's status stays readable
const DefaultRunTTL = 7 * 24 * time.Hour

// RedisRunStore keeps scrape runs as JSON values with a TTL
type RedisRunStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ job.RunStore = (*RedisRunStore)(nil)

func NewRedisRunStore(client *redis.Client, prefix string, ttl time.Duration) *RedisRunStore {
	if ttl <= 0 {
		ttl = DefaultRunTTL
	}
	return &RedisRunStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisRunStore) key(id kernel.ScrapeRunID) string {
	return s.prefix + ":" + id.String()
}

func (s *RedisRunStore) Save(ctx context.Context, run *job.ScrapeRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("run_id", run.ID)
	}
	if err := s.client.Set(ctx, s.key(run.ID), data, s.ttl).Err(); err != nil {
		return job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("run_id", run.ID).
			WithDetail("operation", "save_run")
	}
	return nil
}

func (s *RedisRunStore) Get(ctx context.Context, id kernel.ScrapeRunID) (*job.ScrapeRun, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, job.ErrRunNotFound().WithDetail("run_id", id)
		}
		return nil, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("run_id", id).
			WithDetail("operation", "get_run")
	}

	var run job.ScrapeRun
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("run_id", id)
	}
	return &run, nil
}
