package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/careerpal/recruitment/job"
	"github.com/stretchr/testify/assert"
)

type chanQueue struct {
	ready chan job.ScrapeTask
	moves atomic.Int32
}

func (q *chanQueue) Enqueue(_ context.Context, task job.ScrapeTask) error {
	q.ready <- task
	return nil
}

func (q *chanQueue) EnqueueDelayed(context.Context, job.ScrapeTask, time.Duration) error { return nil }

func (q *chanQueue) Dequeue(ctx context.Context, timeout time.Duration) (*job.ScrapeTask, error) {
	select {
	case t := <-q.ready:
		return &t, nil
	case <-time.After(timeout):
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (q *chanQueue) MoveDelayedToReady(context.Context) (int, error) {
	q.moves.Add(1)
	return 0, nil
}

type recorder struct {
	mu   sync.Mutex
	runs []string
}

func (r *recorder) ProcessScrape(_ context.Context, task job.ScrapeTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, task.RunID.String())
	return nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.runs)
}

func TestScrapeWorker_ProcessesAndStops(t *testing.T) {
	q := &chanQueue{ready: make(chan job.ScrapeTask, 4)}
	rec := &recorder{}
	w := NewScrapeWorker(rec, q, 2)
	w.tick = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	_ = q.Enqueue(ctx, job.ScrapeTask{RunID: "run-1", Query: "go"})
	_ = q.Enqueue(ctx, job.ScrapeTask{RunID: "run-2", Query: "rust"})

	assert.Eventually(t, func() bool { return rec.count() == 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return q.moves.Load() > 0 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	done := make(chan struct{})
	go func() {
		w.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(7 * time.Second):
		t.Fatal("workers did not stop")
	}
	assert.ElementsMatch(t, []string{"run-1", "run-2"}, rec.runs)
}
