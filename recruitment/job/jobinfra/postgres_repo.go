package jobinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/job"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

type PostgresJobRepository struct {
	db *sqlx.DB
}

var _ job.Repository = (*PostgresJobRepository)(nil)

func NewPostgresJobRepository(db *sqlx.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, title, company, location, salary, description, posting_date, closing_date, hours, job_type, remote_working, link, created_at`

// ============================================================================
// Reads
// ============================================================================

func (r *PostgresJobRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[job.Job], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM jobs`); err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("operation", "count")
	}

	var jobs []job.Job
	err := r.db.SelectContext(ctx, &jobs, `
		SELECT `+jobColumns+`
		FROM jobs
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2`, pagination.PageSize, pagination.Offset())
	if err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("operation", "list")
	}

	page := kernel.NewPaginated(jobs, pagination, total)
	return &page, nil
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id kernel.JobID) (*job.Job, error) {
	var j job.Job
	err := r.db.GetContext(ctx, &j, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id)
		}
		var pqErr *pq.Error
		// invalid_text_representation: not a uuid
		if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
			return nil, job.ErrJobNotFound().WithDetail("job_id", id)
		}
		return nil, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("job_id", id).
			WithDetail("operation", "get")
	}
	return &j, nil
}

func (r *PostgresJobRepository) ExistingLinks(ctx context.Context, links []string) (map[string]bool, error) {
	found := make(map[string]bool)
	if len(links) == 0 {
		return found, nil
	}

	var rows []string
	if err := r.db.SelectContext(ctx, &rows, `SELECT link FROM jobs WHERE link = ANY($1)`, pq.Array(links)); err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("operation", "existing_links")
	}
	for _, l := range rows {
		found[l] = true
	}
	return found, nil
}

// ============================================================================
// Writes
// ============================================================================

// InsertMany inserts in one transaction. Rows whose link already exists are
// skipped by the unique constraint and keep an empty ID.
func (r *PostgresJobRepository) InsertMany(ctx context.Context, jobs []*job.Job) (int, error) {
	if len(jobs) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("operation", "begin_transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO jobs (title, company, location, salary, description, posting_date, closing_date, hours, job_type, remote_working, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (link) DO NOTHING
		RETURNING id`)
	if err != nil {
		return 0, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("operation", "prepare_insert")
	}
	defer stmt.Close()

	inserted := 0
	for _, j := range jobs {
		var id string
		err := stmt.QueryRowxContext(ctx,
			j.Title, j.Company, j.Location, j.Salary, j.Description,
			j.PostingDate, j.ClosingDate, j.Hours, j.JobType, j.RemoteWorking,
			j.Link, j.CreatedAt,
		).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			continue
		}
		if err != nil {
			return 0, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
				WithDetail("link", j.Link).
				WithDetail("operation", "insert")
		}
		j.ID = kernel.NewJobID(id)
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return 0, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("operation", "commit")
	}
	return inserted, nil
}

func (r *PostgresJobRepository) SetEmbedding(ctx context.Context, id kernel.JobID, embedding []float32) error {
	result, err := r.db.ExecContext(ctx, `UPDATE jobs SET embedding = $2 WHERE id = $1`, id, pgvector.NewVector(embedding))
	if err != nil {
		return job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("job_id", id).
			WithDetail("operation", "set_embedding")
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("job_id", id)
	}
	if rows == 0 {
		return job.ErrJobNotFound().WithDetail("job_id", id)
	}
	return nil
}

// ============================================================================
// Semantic search with pgvector
// ============================================================================

// Nearest orders embedded jobs by cosine distance (<=>) to embedding
func (r *PostgresJobRepository) Nearest(ctx context.Context, embedding []float32, limit int) ([]job.MatchedJob, error) {
	var matches []job.MatchedJob
	err := r.db.SelectContext(ctx, &matches, `
		SELECT `+jobColumns+`, 1 - (embedding <=> $1) AS similarity
		FROM jobs
		WHERE embedding IS NOT NULL
		ORDER BY embedding <=> $1
		LIMIT $2`, pgvector.NewVector(embedding), limit)
	if err != nil {
		return nil, job.ErrRegistry.NewWithCause(job.CodeRepositoryFailed, err).
			WithDetail("operation", "nearest")
	}
	if matches == nil {
		matches = []job.MatchedJob{}
	}
	return matches, nil
}
