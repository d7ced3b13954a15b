package jobsrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/careerpal/internal/ai/embeddings"
	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/job"
	"github.com/go-playground/validator/v10"
)

type Service struct {
	repo     job.Repository
	queue    job.Queue
	runs     job.RunStore
	scraper  job.Scraper
	embedder embeddings.Embedder
	resumes  job.ResumeTextSource
	validate *validator.Validate
	now      func() time.Time
}

func NewService(
	repo job.Repository,
	queue job.Queue,
	runs job.RunStore,
	scraper job.Scraper,
	embedder embeddings.Embedder,
	resumes job.ResumeTextSource,
) *Service {
	return &Service{
		repo:     repo,
		queue:    queue,
		runs:     runs,
		scraper:  scraper,
		embedder: embedder,
		resumes:  resumes,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ============================================================================
// Listings
// ============================================================================

// List returns one page of stored jobs. page must be >= 1 and limit in [1, 50].
func (s *Service) List(ctx context.Context, page, limit int) (*job.ListJobsResponse, error) {
	if page < 1 {
		return nil, job.ErrInvalidRequest().WithDetail("page", page)
	}
	if limit < 1 || limit > job.MaxPageSize {
		return nil, job.ErrInvalidRequest().
			WithDetail("limit", limit).
			WithDetail("max", job.MaxPageSize)
	}

	result, err := s.repo.List(ctx, kernel.PaginationOptions{Page: page, PageSize: limit})
	if err != nil {
		return nil, err
	}
	resp := job.NewListJobsResponse(result)
	return &resp, nil
}

func (s *Service) Get(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	if id.IsEmpty() {
		return nil, job.ErrJobNotFound()
	}
	return s.repo.GetByID(ctx, id)
}

// ============================================================================
// Semantic matching
// ============================================================================

// Match embeds the resume text and returns the nearest stored jobs
func (s *Service) Match(ctx context.Context, req job.MatchRequest) (*job.MatchResponse, error) {
	text := strings.TrimSpace(req.Text)
	switch {
	case text != "" && !req.ResumeID.IsEmpty():
		return nil, job.ErrRegistry.NewWithMessage(job.CodeInvalidRequest, "Provide either resume_id or text, not both")
	case text == "" && req.ResumeID.IsEmpty():
		return nil, job.ErrRegistry.NewWithMessage(job.CodeInvalidRequest, "Either resume_id or text must be provided")
	case text == "":
		resumeText, err := s.resumes.ResumeText(ctx, req.UserID, req.ResumeID)
		if err != nil {
			return nil, err
		}
		text = strings.TrimSpace(resumeText)
		if text == "" {
			return nil, job.ErrRegistry.NewWithMessage(job.CodeInvalidRequest, "Resume has no extractable text")
		}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = job.DefaultMatchSize
	}
	limit = min(limit, job.MaxMatchSize)

	vector, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeEmbeddingFailed, err)
	}

	matches, err := s.repo.Nearest(ctx, vector, limit)
	if err != nil {
		return nil, err
	}
	logx.Infof("Matched %d jobs for user %s", len(matches), req.UserID)
	return &job.MatchResponse{Jobs: matches}, nil
}
