package resume

import (
	"time"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

// Resume is the metadata row of an uploaded resume file. The file itself
// lives in the object store at StoragePath.
type Resume struct {
	ID          kernel.ResumeID `db:"id" json:"resume_id"`
	UserID      kernel.UserID   `db:"user_id" json:"user_id"`
	StoragePath string          `db:"storage_path" json:"storage_path"`
	FileName    string          `db:"file_name" json:"file_name"`
	IsPrimary   bool            `db:"is_primary" json:"is_primary"`
	UploadedAt  time.Time       `db:"uploaded_at" json:"uploaded_at"`
}

// ============================================================================
// Business Logic Methods
// ============================================================================

// BelongsTo reports whether the resume is owned by userID
func (r *Resume) BelongsTo(userID kernel.UserID) bool {
	return r.UserID == userID
}

// StoragePathFor builds the object key for a new upload
func StoragePathFor(id kernel.ResumeID, ext string) string {
	return "resumes/" + id.String() + "." + ext
}
