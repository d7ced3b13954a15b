package jobinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Abraxas-365/careerpal/recruitment/job"
	"github.com/redis/go-redis/v9"
)

// RedisQueue is a list-backed scrape queue with a sorted set for delayed retries
type RedisQueue struct {
	client    *redis.Client
	queueName string
	now       func() time.Time
}

var _ job.Queue = (*RedisQueue)(nil)

func NewRedisQueue(client *redis.Client, queueName string) *RedisQueue {
	return &RedisQueue{
		client:    client,
		queueName: queueName,
		now:       time.Now,
	}
}

func (q *RedisQueue) delayedKey() string {
	return q.queueName + ":delayed"
}

func (q *RedisQueue) Enqueue(ctx context.Context, task job.ScrapeTask) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task for run %s: %w", task.RunID, err)
	}
	if err := q.client.LPush(ctx, q.queueName, data).Err(); err != nil {
		return fmt.Errorf("enqueue run %s: %w", task.RunID, err)
	}
	return nil
}

// Dequeue blocks up to timeout. A timeout returns (nil, nil).
func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*job.ScrapeTask, error) {
	result, err := q.client.BRPop(ctx, timeout, q.queueName).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("dequeue task: %w", err)
	}
	if len(result) < 2 {
		return nil, fmt.Errorf("invalid result from queue: expected 2 elements, got %d", len(result))
	}

	var task job.ScrapeTask
	if err := json.Unmarshal([]byte(result[1]), &task); err != nil {
		return nil, fmt.Errorf("decode task %q: %w", result[1], err)
	}
	return &task, nil
}

// EnqueueDelayed schedules task to become ready after delay
func (q *RedisQueue) EnqueueDelayed(ctx context.Context, task job.ScrapeTask, delay time.Duration) error {
	data, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal delayed task for run %s: %w", task.RunID, err)
	}

	score := float64(q.now().Add(delay).Unix())
	if err := q.client.ZAdd(ctx, q.delayedKey(), redis.Z{Score: score, Member: data}).Err(); err != nil {
		return fmt.Errorf("enqueue delayed run %s: %w", task.RunID, err)
	}
	return nil
}

// MoveDelayedToReady pushes due delayed tasks onto the ready list
func (q *RedisQueue) MoveDelayedToReady(ctx context.Context) (int, error) {
	due, err := q.client.ZRangeByScore(ctx, q.delayedKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(q.now().Unix(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("get delayed tasks: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	moved := 0
	for _, member := range due {
		// ZRem first so two movers never both push the same task
		removed, err := q.client.ZRem(ctx, q.delayedKey(), member).Result()
		if err != nil {
			return moved, fmt.Errorf("claim delayed task: %w", err)
		}
		if removed == 0 {
			continue
		}
		if err := q.client.LPush(ctx, q.queueName, member).Err(); err != nil {
			return moved, fmt.Errorf("move delayed task to ready: %w", err)
		}
		moved++
	}
	return moved, nil
}

func (q *RedisQueue) Size(ctx context.Context) (ready int64, delayed int64, err error) {
	pipe := q.client.Pipeline()
	readyCmd := pipe.LLen(ctx, q.queueName)
	delayedCmd := pipe.ZCard(ctx, q.delayedKey())
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("get queue size: %w", err)
	}
	return readyCmd.Val(), delayedCmd.Val(), nil
}
