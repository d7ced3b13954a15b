package resume

import (
	"time"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
)

// ============================================================================
// Request DTOs
// ============================================================================

// UploadRequest stores a new resume file for a user
type UploadRequest struct {
	UserID    kernel.UserID
	FileName  string
	Data      []byte
	IsPrimary bool
}

// Source names the resume an operation works on: an uploaded file or a
// stored resume of the caller
type Source struct {
	ResumeID kernel.ResumeID
	FileName string
	Data     []byte
}

func (s Source) HasFile() bool { return s.FileName != "" && len(s.Data) > 0 }

func (s Source) HasResumeID() bool { return !s.ResumeID.IsEmpty() }

type ScoreRequest struct {
	UserID         kernel.UserID
	Source         Source
	JobDescription string
}

// OptimizeRequest rewrites a resume for a job. Tailor switches to the
// keyword-targeted rewrite.
type OptimizeRequest struct {
	UserID         kernel.UserID
	Source         Source
	JobDescription string
	Tailor         bool
}

// ============================================================================
// Response DTOs
// ============================================================================

type UploadResponse struct {
	Message     string          `json:"message"`
	FileURL     string          `json:"file_url"`
	StoragePath string          `json:"storage_path"`
	ResumeID    kernel.ResumeID `json:"resume_id"`
}

// ResumeResponse is a stored resume with a time-limited download link
type ResumeResponse struct {
	ResumeID    kernel.ResumeID `json:"resume_id"`
	FileName    string          `json:"file_name"`
	StoragePath string          `json:"storage_path"`
	FileURL     string          `json:"file_url"`
	IsPrimary   bool            `json:"is_primary"`
	UploadedAt  time.Time       `json:"uploaded_at"`
}

type ResumeListResponse struct {
	Resumes []ResumeResponse `json:"resumes"`
}

type DeleteResponse struct {
	Message  string          `json:"message"`
	ResumeID kernel.ResumeID `json:"resume_id"`
}

type AnalysisResponse struct {
	ContactDetails   ContactDetails    `json:"contact_details"`
	StructuredResume StructuredResume  `json:"structured_resume"`
	Segments         map[string]string `json:"segments"`
	Error            string            `json:"error,omitempty"`
}

type ScoreResponse struct {
	Data            ScoreResult       `json:"data"`
	JobRequirements JobRequirements   `json:"job_requirements"`
	ContactDetails  ContactDetails    `json:"contact_details"`
	Segments        map[string]string `json:"segments"`
}

type OptimizeResponse struct {
	Data            OptimizedResume  `json:"data"`
	Original        StructuredResume `json:"original"`
	JobRequirements JobRequirements  `json:"job_requirements"`
}

type InterviewResponse struct {
	InterviewQuestions
	JobRequirements JobRequirements `json:"job_requirements"`
}

type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// ToResponse pairs the resume with its download link
func (r *Resume) ToResponse(fileURL string) ResumeResponse {
	return ResumeResponse{
		ResumeID:    r.ID,
		FileName:    r.FileName,
		StoragePath: r.StoragePath,
		FileURL:     fileURL,
		IsPrimary:   r.IsPrimary,
		UploadedAt:  r.UploadedAt,
	}
}
