package job

import (
	"time"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

// NotAvailable fills listing fields the source page did not provide
const NotAvailable = "N/A"

const (
	NoDescription        = "No description available."
	DescriptionLoadError = "Error retrieving job description."
)

type Job struct {
	ID            kernel.JobID `db:"id" json:"id"`
	Title         string       `db:"title" json:"title"`
	Company       string       `db:"company" json:"company"`
	Location      string       `db:"location" json:"location"`
	Salary        string       `db:"salary" json:"salary"`
	Description   string       `db:"description" json:"description"`
	PostingDate   *time.Time   `db:"posting_date" json:"posting_date"`
	ClosingDate   *time.Time   `db:"closing_date" json:"closing_date"`
	Hours         string       `db:"hours" json:"hours"`
	JobType       string       `db:"job_type" json:"job_type"`
	RemoteWorking string       `db:"remote_working" json:"remote_working"`
	Link          string       `db:"link" json:"link"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// Unavailable is the record kept for a listing whose detail page could not be loaded
func Unavailable(link string) *Job {
	return &Job{
		Title:         NotAvailable,
		Company:       NotAvailable,
		Location:      NotAvailable,
		Salary:        NotAvailable,
		Description:   DescriptionLoadError,
		Hours:         NotAvailable,
		JobType:       NotAvailable,
		RemoteWorking: NotAvailable,
		Link:          link,
	}
}

// EmbeddingText is the text embedded for semantic matching
func (j *Job) EmbeddingText() string {
	return j.Title + "\n" + j.Company + "\n" + j.Location + "\n\n" + j.Description
}

// ============================================================================
// Scrape runs
// ============================================================================

type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// MaxRunAttempts bounds how often a failing run is retried
const MaxRunAttempts = 3

// ScrapeRun tracks one asynchronous scrape of the job board
type ScrapeRun struct {
	ID          kernel.ScrapeRunID `json:"id"`
	Query       string             `json:"query"`
	Status      RunStatus          `json:"status"`
	Attempts    int                `json:"attempts"`
	Found       int                `json:"found"`
	Skipped     int                `json:"skipped"`
	Saved       int                `json:"saved"`
	Embedded    int                `json:"embedded"`
	Error       string             `json:"error,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	CompletedAt *time.Time         `json:"completed_at,omitempty"`
}

// ============================================================================
// Domain Methods
// ============================================================================

func (r *ScrapeRun) IsTerminal() bool {
	return r.Status == RunStatusCompleted || r.Status == RunStatusFailed
}

func (r *ScrapeRun) CanRetry() bool {
	return r.Attempts < MaxRunAttempts
}

func (r *ScrapeRun) MarkRunning(now time.Time) {
	r.Status = RunStatusRunning
	r.Attempts++
	r.Error = ""
	r.UpdatedAt = now
}

func (r *ScrapeRun) MarkCompleted(now time.Time) {
	r.Status = RunStatusCompleted
	r.UpdatedAt = now
	r.CompletedAt = &now
}

// MarkRetrying records the failure and puts the run back to pending
func (r *ScrapeRun) MarkRetrying(err error, now time.Time) {
	r.Status = RunStatusPending
	r.Error = err.Error()
	r.UpdatedAt = now
}

func (r *ScrapeRun) MarkFailed(err error, now time.Time) {
	r.Status = RunStatusFailed
	r.Error = err.Error()
	r.UpdatedAt = now
	r.CompletedAt = &now
}

// ScrapeTask is the queue payload for a run
type ScrapeTask struct {
	RunID kernel.ScrapeRunID `json:"run_id"`
	Query string             `json:"query"`
}
