package job

import (
	"context"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

type Repository interface {
	// List returns one page of jobs, newest first
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Job], error)

	// GetByID retrieves a job by ID
	GetByID(ctx context.Context, id kernel.JobID) (*Job, error)

	// ExistingLinks returns the subset of links already stored
	ExistingLinks(ctx context.Context, links []string) (map[string]bool, error)

	// InsertMany stores jobs, ignoring links that already exist. Inserted
	// jobs get their ID set; the rest keep an empty ID.
	InsertMany(ctx context.Context, jobs []*Job) (int, error)

	// SetEmbedding stores the vector for a job
	SetEmbedding(ctx context.Context, id kernel.JobID, embedding []float32) error

	// Nearest returns the jobs closest to embedding by cosine distance
	Nearest(ctx context.Context, embedding []float32, limit int) ([]MatchedJob, error)
}

// Queue carries scrape tasks to the workers
type Queue interface {
	Enqueue(ctx context.Context, task ScrapeTask) error
	EnqueueDelayed(ctx context.Context, task ScrapeTask, delay time.Duration) error
	// Dequeue blocks up to timeout; a nil task means nothing was ready
	Dequeue(ctx context.Context, timeout time.Duration) (*ScrapeTask, error)
	MoveDelayedToReady(ctx context.Context) (int, error)
}

// RunStore keeps scrape run status
type RunStore interface {
	Save(ctx context.Context, run *ScrapeRun) error
	Get(ctx context.Context, id kernel.ScrapeRunID) (*ScrapeRun, error)
}

// Scraper reads the job board
type Scraper interface {
	// SearchLinks returns the detail links of every listing for query
	SearchLinks(ctx context.Context, query string) ([]string, error)

	// FetchJob loads one detail page. A page that fails to load yields
	// Unavailable(link).
	FetchJob(ctx context.Context, link string) *Job
}

// ResumeTextSource resolves a stored resume of a user to plain text
type ResumeTextSource interface {
	ResumeText(ctx context.Context, userID kernel.UserID, id kernel.ResumeID) (string, error)
}
