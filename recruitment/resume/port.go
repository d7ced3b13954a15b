package resume

import (
	"context"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

type Repository interface {
	// Create inserts the row. When r.IsPrimary, the user's other resumes lose
	// their primary flag in the same transaction.
	Create(ctx context.Context, r *Resume) error

	// GetByIDAndUser returns the resume only when it belongs to userID
	GetByIDAndUser(ctx context.Context, id kernel.ResumeID, userID kernel.UserID) (*Resume, error)

	// ListByUser returns the user's resumes, newest first
	ListByUser(ctx context.Context, userID kernel.UserID) ([]*Resume, error)

	// Delete removes the resume scoped to userID
	Delete(ctx context.Context, id kernel.ResumeID, userID kernel.UserID) error
}

// TextExtractor converts a resume document to plain text
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}
