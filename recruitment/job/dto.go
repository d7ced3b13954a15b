package job

import (
	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

const (
	DefaultPageSize  = 20
	MaxPageSize      = 50
	DefaultMatchSize = 10
	MaxMatchSize     = 50
)

// ListJobsResponse is one page of stored jobs
type ListJobsResponse struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalJobs  int   `json:"total_jobs"`
	TotalPages int   `json:"total_pages"`
	Jobs       []Job `json:"jobs"`
}

func NewListJobsResponse(p *kernel.Paginated[Job]) ListJobsResponse {
	jobs := p.Items
	if jobs == nil {
		jobs = []Job{}
	}
	return ListJobsResponse{
		Page:       p.Page.Number,
		Limit:      p.Page.Size,
		TotalJobs:  p.Page.Total,
		TotalPages: p.Page.Pages,
		Jobs:       jobs,
	}
}

// ScrapeRequest starts a scrape run
type ScrapeRequest struct {
	Query string `json:"query" validate:"required,min=2,max=200"`
}

type ScrapeAcceptedResponse struct {
	RunID  kernel.ScrapeRunID `json:"run_id"`
	Status RunStatus          `json:"status"`
}

// MatchRequest finds jobs for a stored resume or raw text; exactly one is required
type MatchRequest struct {
	UserID   kernel.UserID   `json:"-"`
	ResumeID kernel.ResumeID `json:"resume_id"`
	Text     string          `json:"text"`
	Limit    int             `json:"limit"`
}

// MatchedJob is a stored job with its cosine similarity to the query
type MatchedJob struct {
	Job
	Similarity float64 `db:"similarity" json:"similarity"`
}

type MatchResponse struct {
	Jobs []MatchedJob `json:"jobs"`
}
