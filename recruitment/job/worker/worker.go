package worker

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/job"
)

const (
	dequeueTimeout = 5 * time.Second
	delayedTick    = 30 * time.Second
)

// Processor runs one scrape task
type Processor interface {
	ProcessScrape(ctx context.Context, task job.ScrapeTask) error
}

type ScrapeWorker struct {
	processor Processor
	queue     job.Queue
	workers   int
	tick      time.Duration
	wg        sync.WaitGroup
}

func NewScrapeWorker(processor Processor, queue job.Queue, workers int) *ScrapeWorker {
	return &ScrapeWorker{
		processor: processor,
		queue:     queue,
		workers:   max(workers, 1),
		tick:      delayedTick,
	}
}

// Start launches the delayed-task mover and the worker pool. They stop when
// ctx is cancelled; Wait blocks until they have.
func (w *ScrapeWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d scrape workers", w.workers)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.moveDelayed(ctx)
	}()

	for i := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			w.processTasks(ctx, i)
		}()
	}
}

func (w *ScrapeWorker) Wait() {
	w.wg.Wait()
}

func (w *ScrapeWorker) processTasks(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
		}

		task, err := w.queue.Dequeue(ctx, dequeueTimeout)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			logx.Errorf("Worker %d dequeue error: %v", workerID, err)
			// back off so a down redis does not spin
			select {
			case <-ctx.Done():
			case <-time.After(time.Second):
			}
			continue
		}
		if task == nil {
			continue
		}

		logx.Infof("Worker %d processing run: %s", workerID, task.RunID)
		if err := w.processor.ProcessScrape(ctx, *task); err != nil {
			logx.Errorf("Worker %d run %s failed: %v", workerID, task.RunID, err)
		}
	}
}

func (w *ScrapeWorker) moveDelayed(ctx context.Context) {
	ticker := time.NewTicker(w.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed runs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed runs to ready queue", count)
			}
		}
	}
}
