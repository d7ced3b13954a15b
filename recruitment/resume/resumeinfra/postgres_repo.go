package resumeinfra

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresResumeRepository struct {
	db *sqlx.DB
}

var _ resume.Repository = (*PostgresResumeRepository)(nil)

func NewPostgresResumeRepository(db *sqlx.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, user_id, storage_path, file_name, is_primary, uploaded_at`

// ============================================================================
// CRUD Operations
// ============================================================================

// Create inserts the resume. A primary resume clears the user's other
// primaries in the same transaction.
func (r *PostgresResumeRepository) Create(ctx context.Context, rm *resume.Resume) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeRepositoryFailed, err).
			WithDetail("operation", "begin_transaction")
	}
	defer tx.Rollback()

	if rm.IsPrimary {
		_, err = tx.ExecContext(ctx, `
			UPDATE resumes
			SET is_primary = false
			WHERE user_id = $1 AND is_primary = true`, rm.UserID)
		if err != nil {
			return resume.ErrRegistry.NewWithCause(resume.CodeRepositoryFailed, err).
				WithDetail("user_id", rm.UserID).
				WithDetail("operation", "unset_primary")
		}
	}

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO resumes (`+resumeColumns+`)
		VALUES (:id, :user_id, :storage_path, :file_name, :is_primary, :uploaded_at)`, rm)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == "23505" || pqErr.Code == "23503") {
			return resume.ErrInvalidResumeData().
				WithDetail("resume_id", rm.ID).
				WithDetail("constraint", pqErr.Constraint)
		}
		return resume.ErrRegistry.NewWithCause(resume.CodeRepositoryFailed, err).
			WithDetail("resume_id", rm.ID).
			WithDetail("operation", "insert")
	}

	if err := tx.Commit(); err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeRepositoryFailed, err).
			WithDetail("operation", "commit")
	}
	return nil
}

func (r *PostgresResumeRepository) GetByIDAndUser(ctx context.Context, id kernel.ResumeID, userID kernel.UserID) (*resume.Resume, error) {
	var rm resume.Resume
	err := r.db.GetContext(ctx, &rm, `
		SELECT `+resumeColumns+`
		FROM resumes
		WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, resume.ErrResumeNotFound().WithDetail("resume_id", id)
		}
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeRepositoryFailed, err).
			WithDetail("resume_id", id).
			WithDetail("operation", "get")
	}
	return &rm, nil
}

func (r *PostgresResumeRepository) ListByUser(ctx context.Context, userID kernel.UserID) ([]*resume.Resume, error) {
	var rows []*resume.Resume
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+resumeColumns+`
		FROM resumes
		WHERE user_id = $1
		ORDER BY uploaded_at DESC`, userID)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeRepositoryFailed, err).
			WithDetail("user_id", userID).
			WithDetail("operation", "list")
	}
	return rows, nil
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, id kernel.ResumeID, userID kernel.UserID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resumes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeRepositoryFailed, err).
			WithDetail("resume_id", id).
			WithDetail("operation", "delete")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeRepositoryFailed, err).
			WithDetail("resume_id", id)
	}
	if rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("resume_id", id)
	}
	return nil
}
