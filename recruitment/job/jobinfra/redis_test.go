package jobinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/Abraxas-365/careerpal/recruitment/job"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestRedisQueue_FIFO(t *testing.T) {
	client, _ := newRedis(t)
	q := NewRedisQueue(client, "scrape")
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, job.ScrapeTask{RunID: "run-1", Query: "go"}))
	require.NoError(t, q.Enqueue(ctx, job.ScrapeTask{RunID: "run-2", Query: "rust"}))

	first, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, job.ScrapeTask{RunID: "run-1", Query: "go"}, *first)

	second, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "run-2", second.RunID.String())
}

func TestRedisQueue_DequeueTimeout(t *testing.T) {
	client, _ := newRedis(t)
	q := NewRedisQueue(client, "scrape")

	task, err := q.Dequeue(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Nil(t, task)
}

func TestRedisQueue_DelayedTasks(t *testing.T) {
	client, _ := newRedis(t)
	q := NewRedisQueue(client, "scrape")
	ctx := context.Background()
	start := time.Now()
	q.now = func() time.Time { return start }

	require.NoError(t, q.EnqueueDelayed(ctx, job.ScrapeTask{RunID: "run-1", Query: "go"}, 2*time.Minute))

	moved, err := q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)

	ready, delayed, err := q.Size(ctx)
	require.NoError(t, err)
	assert.Zero(t, ready)
	assert.EqualValues(t, 1, delayed)

	q.now = func() time.Time { return start.Add(3 * time.Minute) }
	moved, err = q.MoveDelayedToReady(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moved)

	task, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, "run-1", task.RunID.String())

	ready, delayed, err = q.Size(ctx)
	require.NoError(t, err)
	assert.Zero(t, ready)
	assert.Zero(t, delayed)
}

func TestRedisRunStore(t *testing.T) {
	client, mr := newRedis(t)
	store := NewRedisRunStore(client, "scrape:run", time.Hour)
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

	run := &job.ScrapeRun{ID: "run-1", Query: "go", Status: job.RunStatusPending, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Save(ctx, run))
	assert.Equal(t, time.Hour, mr.TTL("scrape:run:run-1"))

	run.MarkRunning(now.Add(time.Minute))
	run.Saved = 4
	require.NoError(t, store.Save(ctx, run))

	got, err := store.Get(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, job.RunStatusRunning, got.Status)
	assert.Equal(t, 1, got.Attempts)
	assert.Equal(t, 4, got.Saved)

	_, err = store.Get(ctx, "missing")
	assert.True(t, errx.IsCode(err, job.CodeRunNotFound))
}
