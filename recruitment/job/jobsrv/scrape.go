package jobsrv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/job"
	"golang.org/x/sync/errgroup"
)

const (
	detailConcurrency = 4
	embedBatchSize    = 32
)

// ============================================================================
// Scrape runs
// ============================================================================

// StartScrape records a pending run and queues it
func (s *Service) StartScrape(ctx context.Context, req job.ScrapeRequest) (*job.ScrapeAcceptedResponse, error) {
	req.Query = strings.TrimSpace(req.Query)
	if err := s.validate.Struct(req); err != nil {
		return nil, job.ErrInvalidRequest().WithDetail("query", "required, 2 to 200 characters")
	}

	now := s.now().UTC()
	run := &job.ScrapeRun{
		ID:        kernel.NewScrapeRunID(kernel.GenerateID()),
		Query:     req.Query,
		Status:    job.RunStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.runs.Save(ctx, run); err != nil {
		return nil, err
	}

	if err := s.queue.Enqueue(ctx, job.ScrapeTask{RunID: run.ID, Query: run.Query}); err != nil {
		run.MarkFailed(err, s.now().UTC())
		if saveErr := s.runs.Save(ctx, run); saveErr != nil {
			logx.Errorf("Failed to mark run %s as failed: %v", run.ID, saveErr)
		}
		return nil, job.ErrRegistry.NewWithCause(job.CodeQueueFailed, err).WithDetail("run_id", run.ID)
	}

	logx.Infof("Scrape run queued: RunID=%s, Query=%q", run.ID, run.Query)
	return &job.ScrapeAcceptedResponse{RunID: run.ID, Status: run.Status}, nil
}

func (s *Service) GetRun(ctx context.Context, id kernel.ScrapeRunID) (*job.ScrapeRun, error) {
	if id.IsEmpty() {
		return nil, job.ErrRunNotFound()
	}
	return s.runs.Get(ctx, id)
}

// ProcessScrape executes a queued run. Failures are retried through the
// delayed queue until the run runs out of attempts.
func (s *Service) ProcessScrape(ctx context.Context, task job.ScrapeTask) error {
	run, err := s.runs.Get(ctx, task.RunID)
	if err != nil {
		return err
	}
	if run.IsTerminal() {
		logx.Warnf("Skipping run %s in status %s", run.ID, run.Status)
		return nil
	}

	run.MarkRunning(s.now().UTC())
	if err := s.runs.Save(ctx, run); err != nil {
		return err
	}
	logx.Infof("Processing scrape run %s (attempt %d/%d)", run.ID, run.Attempts, job.MaxRunAttempts)

	if err := s.scrape(ctx, run); err != nil {
		return s.handleRunError(ctx, run, err)
	}

	run.MarkCompleted(s.now().UTC())
	if err := s.runs.Save(ctx, run); err != nil {
		return err
	}
	logx.Infof("Scrape run %s completed: found=%d skipped=%d saved=%d embedded=%d",
		run.ID, run.Found, run.Skipped, run.Saved, run.Embedded)
	return nil
}

func (s *Service) handleRunError(ctx context.Context, run *job.ScrapeRun, cause error) error {
	if errors.Is(cause, context.Canceled) {
		// shutdown: leave it for the next worker
		run.MarkRetrying(cause, s.now().UTC())
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.runs.Save(saveCtx, run); err != nil {
			return err
		}
		return s.queue.Enqueue(saveCtx, job.ScrapeTask{RunID: run.ID, Query: run.Query})
	}

	if run.CanRetry() {
		delay := time.Duration(1<<run.Attempts) * time.Minute
		run.MarkRetrying(cause, s.now().UTC())
		if err := s.runs.Save(ctx, run); err != nil {
			return err
		}
		if err := s.queue.EnqueueDelayed(ctx, job.ScrapeTask{RunID: run.ID, Query: run.Query}, delay); err != nil {
			run.MarkFailed(err, s.now().UTC())
			_ = s.runs.Save(ctx, run)
			return err
		}
		logx.Warnf("Scrape run %s failed, retrying in %s: %v", run.ID, delay, cause)
		return cause
	}

	run.MarkFailed(cause, s.now().UTC())
	if err := s.runs.Save(ctx, run); err != nil {
		return err
	}
	logx.Errorf("Scrape run %s failed after %d attempts: %v", run.ID, run.Attempts, cause)
	return cause
}

// scrape collects listing links, skips stored ones, loads the rest and
// saves them. Embedding trouble does not fail the run.
func (s *Service) scrape(ctx context.Context, run *job.ScrapeRun) error {
	links, err := s.scraper.SearchLinks(ctx, run.Query)
	if err != nil {
		return err
	}
	run.Found = len(links)

	existing, err := s.repo.ExistingLinks(ctx, links)
	if err != nil {
		return err
	}
	fresh := make([]string, 0, len(links))
	for _, l := range links {
		if !existing[l] {
			fresh = append(fresh, l)
		}
	}
	run.Skipped = len(links) - len(fresh)

	jobs := make([]*job.Job, len(fresh))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, link := range fresh {
		g.Go(func() error {
			jobs[i] = s.scraper.FetchJob(gctx, link)
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	saved, err := s.repo.InsertMany(ctx, jobs)
	if err != nil {
		return err
	}
	run.Saved = saved

	run.Embedded = s.embedJobs(ctx, jobs)
	return nil
}

// embedJobs embeds the newly inserted jobs in batches and returns how many were stored
func (s *Service) embedJobs(ctx context.Context, jobs []*job.Job) int {
	var inserted []*job.Job
	for _, j := range jobs {
		if !j.ID.IsEmpty() {
			inserted = append(inserted, j)
		}
	}

	log := logx.With("op", "embed_jobs")
	stored := 0
	for start := 0; start < len(inserted); start += embedBatchSize {
		batch := inserted[start:min(start+embedBatchSize, len(inserted))]
		texts := make([]string, len(batch))
		for i, j := range batch {
			texts[i] = j.EmbeddingText()
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			log.Warnf("embedding batch of %d failed: %v", len(batch), err)
			continue
		}
		for i, j := range batch {
			if err := s.repo.SetEmbedding(ctx, j.ID, vectors[i]); err != nil {
				log.Warnf("storing embedding for job %s failed: %v", j.ID, err)
				continue
			}
			stored++
		}
	}
	return stored
}
