package resumesrv

import (
	"context"
	"strings"
	"time"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/internal/document"
	"github.com/Abraxas-365/careerpal/pkg/fsx"
	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
	"github.com/Abraxas-365/careerpal/recruitment/resume/analysis"
	"github.com/google/uuid"
)

const (
	DefaultSignedURLTTL = time.Hour
	// MinJobDescriptionLength applies to the standalone requirements lookup
	MinJobDescriptionLength = 50
)

type Service struct {
	repo      resume.Repository
	files     fsx.FileSystem
	extractor resume.TextExtractor
	urlTTL    time.Duration

	contacts     *analysis.ContactExtractor
	segmenter    *analysis.Segmenter
	structurer   *analysis.Structurer
	requirements *analysis.RequirementExtractor
	scorer       *analysis.Scorer
	optimizer    *analysis.Optimizer
	interview    *analysis.InterviewGenerator
	skills       *analysis.SkillExtractor
}

// NewService wires the resume library and every analysis component to one completer
func NewService(
	repo resume.Repository,
	files fsx.FileSystem,
	extractor resume.TextExtractor,
	completer llm.Completer,
	signedURLTTL time.Duration,
) *Service {
	if signedURLTTL <= 0 {
		signedURLTTL = DefaultSignedURLTTL
	}
	return &Service{
		repo:         repo,
		files:        files,
		extractor:    extractor,
		urlTTL:       signedURLTTL,
		contacts:     analysis.NewContactExtractor(completer),
		segmenter:    analysis.NewSegmenter(completer),
		structurer:   analysis.NewStructurer(completer),
		requirements: analysis.NewRequirementExtractor(completer),
		scorer:       analysis.NewScorer(completer),
		optimizer:    analysis.NewOptimizer(completer),
		interview:    analysis.NewInterviewGenerator(completer),
		skills:       analysis.NewSkillExtractor(completer),
	}
}

// ============================================================================
// Resume library
// ============================================================================

// Upload stores the file and records its metadata. The extension is checked
// before anything is written.
func (s *Service) Upload(ctx context.Context, req resume.UploadRequest) (*resume.UploadResponse, error) {
	ext, ok := document.SupportedExtension(req.FileName)
	if !ok {
		return nil, document.ErrUnsupportedFormat().WithDetail("file_name", req.FileName)
	}
	if len(req.Data) == 0 {
		return nil, resume.ErrFileReadFailed().WithDetail("file_name", req.FileName)
	}

	id := kernel.NewResumeID(uuid.NewString())
	path := resume.StoragePathFor(id, ext)
	logx.Infof("Uploading resume: UserID=%s, File=%s, Path=%s", req.UserID, req.FileName, path)

	if err := s.files.WriteFile(ctx, path, req.Data, document.ContentType(ext)); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeUploadFailed, err).
			WithDetail("file_name", req.FileName)
	}

	r := &resume.Resume{
		ID:          id,
		UserID:      req.UserID,
		StoragePath: path,
		FileName:    req.FileName,
		IsPrimary:   req.IsPrimary,
		UploadedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		if delErr := s.files.DeleteFile(ctx, path); delErr != nil {
			logx.Warnf("Failed to remove orphaned upload %s: %v", path, delErr)
		}
		return nil, err
	}

	url, err := s.files.SignedURL(ctx, path, s.urlTTL)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeSignedURLFailed, err).
			WithDetail("resume_id", id)
	}

	logx.Infof("Resume uploaded: ResumeID=%s, Primary=%t", id, req.IsPrimary)
	return &resume.UploadResponse{
		Message:     "Resume uploaded successfully",
		FileURL:     url,
		StoragePath: path,
		ResumeID:    id,
	}, nil
}

// List returns the user's resumes newest first. Resumes whose link cannot
// be signed are left out.
func (s *Service) List(ctx context.Context, userID kernel.UserID) (*resume.ResumeListResponse, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]resume.ResumeResponse, 0, len(rows))
	for _, r := range rows {
		url, err := s.files.SignedURL(ctx, r.StoragePath, s.urlTTL)
		if err != nil {
			logx.Warnf("Skipping resume %s: cannot sign %s: %v", r.ID, r.StoragePath, err)
			continue
		}
		out = append(out, r.ToResponse(url))
	}
	return &resume.ResumeListResponse{Resumes: out}, nil
}

// Delete removes the caller's resume. A failure to remove the stored file
// does not stop the row from being deleted.
func (s *Service) Delete(ctx context.Context, id kernel.ResumeID, userID kernel.UserID) (*resume.DeleteResponse, error) {
	r, err := s.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.files.DeleteFile(ctx, r.StoragePath); err != nil {
		logx.Warnf("Failed to delete stored file %s for resume %s: %v", r.StoragePath, id, err)
	}
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return nil, err
	}

	logx.Infof("Resume deleted: ResumeID=%s, UserID=%s", id, userID)
	return &resume.DeleteResponse{Message: "Resume deleted successfully", ResumeID: id}, nil
}

// ResumeText extracts the text of one of the user's stored resumes
func (s *Service) ResumeText(ctx context.Context, userID kernel.UserID, id kernel.ResumeID) (string, error) {
	name, data, err := s.fetchStored(ctx, userID, id)
	if err != nil {
		return "", err
	}
	return s.extractor.Extract(ctx, name, data)
}

// ============================================================================
// Analysis
// ============================================================================

// Analyze extracts text from the document and derives contact details,
// sections and the structured resume
func (s *Service) Analyze(ctx context.Context, fileName string, data []byte) (*resume.ExtractedResume, error) {
	text, err := s.extractor.Extract(ctx, fileName, data)
	if err != nil {
		return nil, err
	}
	extracted := s.analyzeText(ctx, text)
	return &extracted, nil
}

// Score rates the resume against the job description. Upstream trouble
// shows up in the result's error fields, never as an error.
func (s *Service) Score(ctx context.Context, req resume.ScoreRequest) (*resume.ScoreResponse, error) {
	jd, err := requireJobDescription(req.JobDescription)
	if err != nil {
		return nil, err
	}
	extracted, err := s.resolve(ctx, req.UserID, req.Source, false)
	if err != nil {
		return nil, err
	}

	requirements := s.requirements.Extract(ctx, jd)
	result := s.scorer.Score(ctx, *extracted, jd)
	logx.Infof("Resume scored: UserID=%s, Score=%d", req.UserID, result.MatchScore)

	return &resume.ScoreResponse{
		Data:            result,
		JobRequirements: requirements,
		ContactDetails:  extracted.ContactDetails,
		Segments:        extracted.Segments,
	}, nil
}

// Optimize rewrites the resume for the job. Exactly one source is accepted.
func (s *Service) Optimize(ctx context.Context, req resume.OptimizeRequest) (*resume.OptimizeResponse, error) {
	jd, err := requireJobDescription(req.JobDescription)
	if err != nil {
		return nil, err
	}
	extracted, err := s.resolve(ctx, req.UserID, req.Source, true)
	if err != nil {
		return nil, err
	}

	requirements := s.requirements.Extract(ctx, jd)
	optimized := s.optimizer.Optimize(ctx, analysis.OptimizeInput{
		Resume:         *extracted,
		JobDescription: jd,
		Requirements:   requirements,
		Tailor:         req.Tailor,
	})

	return &resume.OptimizeResponse{
		Data:            optimized,
		Original:        extracted.StructuredResume,
		JobRequirements: requirements,
	}, nil
}

func (s *Service) InterviewQuestions(ctx context.Context, jobDescription string) (*resume.InterviewResponse, error) {
	jd, err := requireJobDescription(jobDescription)
	if err != nil {
		return nil, err
	}
	return &resume.InterviewResponse{
		InterviewQuestions: s.interview.Generate(ctx, jd),
		JobRequirements:    s.requirements.Extract(ctx, jd),
	}, nil
}

func (s *Service) JobRequirements(ctx context.Context, jobDescription string) (*resume.JobRequirements, error) {
	jd := strings.TrimSpace(jobDescription)
	if len([]rune(jd)) < MinJobDescriptionLength {
		return nil, resume.ErrJobDescriptionTooShort().
			WithDetail("min_length", MinJobDescriptionLength).
			WithDetail("length", len([]rune(jd)))
	}
	req := s.requirements.Extract(ctx, jd)
	return &req, nil
}

func (s *Service) Skills(ctx context.Context, text string) (*resume.SkillsResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, resume.ErrInvalidResumeData().WithDetail("text", "required")
	}
	return &resume.SkillsResponse{Skills: s.skills.Extract(ctx, text)}, nil
}

// ============================================================================
// Helpers
// ============================================================================

// resolve loads and analyzes the resume named by src. A file wins over a
// resume id unless exactlyOne rejects the combination.
func (s *Service) resolve(ctx context.Context, userID kernel.UserID, src resume.Source, exactlyOne bool) (*resume.ExtractedResume, error) {
	switch {
	case src.HasFile() && src.HasResumeID() && exactlyOne:
		return nil, resume.ErrAmbiguousSource()
	case src.HasFile():
		return s.Analyze(ctx, src.FileName, src.Data)
	case src.HasResumeID():
		name, data, err := s.fetchStored(ctx, userID, src.ResumeID)
		if err != nil {
			return nil, err
		}
		return s.Analyze(ctx, name, data)
	default:
		return nil, resume.ErrSourceRequired()
	}
}

// fetchStored reads a stored resume owned by userID. The storage path is
// returned as the name since it always carries the extension.
func (s *Service) fetchStored(ctx context.Context, userID kernel.UserID, id kernel.ResumeID) (string, []byte, error) {
	r, err := s.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return "", nil, err
	}
	data, err := s.files.ReadFile(ctx, r.StoragePath)
	if err != nil {
		return "", nil, resume.ErrRegistry.NewWithCause(resume.CodeStorageFetchFailed, err).
			WithDetail("resume_id", id)
	}
	return r.StoragePath, data, nil
}

func requireJobDescription(jd string) (string, error) {
	jd = strings.TrimSpace(jd)
	if jd == "" {
		return "", resume.ErrJobDescriptionRequired()
	}
	return jd, nil
}
