package resumeapi

import (
	"io"
	"strconv"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
	"github.com/Abraxas-365/careerpal/recruitment/resume/resumesrv"
	"github.com/Abraxas-365/careerpal/recruitment/user/userauth"
	"github.com/gofiber/fiber/v2"
)

// DefaultMaxUploadBytes bounds a single uploaded document
const DefaultMaxUploadBytes = 10 << 20

type ResumeHandlers struct {
	service        *resumesrv.Service
	maxUploadBytes int64
}

func NewResumeHandlers(service *resumesrv.Service, maxUploadBytes int64) *ResumeHandlers {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &ResumeHandlers{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	resumes := app.Group("/api/v1/resumes", authMiddleware)

	// Library
	resumes.Post("/upload", h.Upload)
	resumes.Get("/", h.List)
	resumes.Delete("/:id", h.Delete)

	// Analysis
	resumes.Post("/analyze", h.Analyze)
	resumes.Post("/score", h.Score)
	resumes.Post("/optimize", h.Optimize)
	resumes.Post("/tailor", h.Tailor)
	resumes.Post("/interview-questions", h.InterviewQuestions)
	resumes.Get("/job-requirements", h.JobRequirements)
	resumes.Post("/skills", h.Skills)
}

// ============================================================================
// Library Handlers
// ============================================================================

// Upload stores a resume file
// POST /api/v1/resumes/upload
func (h *ResumeHandlers) Upload(c *fiber.Ctx) error {
	userID, err := userauth.RequireUserID(c)
	if err != nil {
		return err
	}

	name, data, err := h.readFile(c, true)
	if err != nil {
		return err
	}

	isPrimary := false
	if raw := c.FormValue("is_primary"); raw != "" {
		isPrimary, err = strconv.ParseBool(raw)
		if err != nil {
			return resume.ErrInvalidResumeData().WithDetail("is_primary", raw)
		}
	}

	resp, err := h.service.Upload(c.UserContext(), resume.UploadRequest{
		UserID:    userID,
		FileName:  name,
		Data:      data,
		IsPrimary: isPrimary,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List returns the caller's resumes, newest first
// GET /api/v1/resumes
func (h *ResumeHandlers) List(c *fiber.Ctx) error {
	userID, err := userauth.RequireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.List(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Delete removes one of the caller's resumes
// DELETE /api/v1/resumes/:id
func (h *ResumeHandlers) Delete(c *fiber.Ctx) error {
	userID, err := userauth.RequireUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Delete(c.UserContext(), kernel.NewResumeID(c.Params("id")), userID)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ============================================================================
// Analysis Handlers
// ============================================================================

// Analyze
// POST /api/v1/resumes/analyze
func (h *ResumeHandlers) Analyze(c *fiber.Ctx) error {
	name, data, err := h.readFile(c, true)
	if err != nil {
		return err
	}

	extracted, err := h.service.Analyze(c.UserContext(), name, data)
	if err != nil {
		return err
	}
	return c.JSON(resume.AnalysisResponse{
		ContactDetails:   extracted.ContactDetails,
		StructuredResume: extracted.StructuredResume,
		Segments:         extracted.Segments,
		Error:            extracted.Error,
	})
}

// Score rates a resume against a job description
// POST /api/v1/resumes/score
func (h *ResumeHandlers) Score(c *fiber.Ctx) error {
	userID, err := userauth.RequireUserID(c)
	if err != nil {
		return err
	}
	src, err := h.source(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Score(c.UserContext(), resume.ScoreRequest{
		UserID:         userID,
		Source:         src,
		JobDescription: c.FormValue("job_description"),
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Optimize
// POST /api/v1/resumes/optimize
func (h *ResumeHandlers) Optimize(c *fiber.Ctx) error {
	return h.optimize(c, false)
}

// Tailor
// POST /api/v1/resumes/tailor
func (h *ResumeHandlers) Tailor(c *fiber.Ctx) error {
	return h.optimize(c, true)
}

func (h *ResumeHandlers) optimize(c *fiber.Ctx, tailor bool) error {
	userID, err := userauth.RequireUserID(c)
	if err != nil {
		return err
	}
	src, err := h.source(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Optimize(c.UserContext(), resume.OptimizeRequest{
		UserID:         userID,
		Source:         src,
		JobDescription: c.FormValue("job_description"),
		Tailor:         tailor,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// InterviewQuestions
// POST /api/v1/resumes/interview-questions
func (h *ResumeHandlers) InterviewQuestions(c *fiber.Ctx) error {
	resp, err := h.service.InterviewQuestions(c.UserContext(), c.FormValue("job_description"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// JobRequirements
// GET /api/v1/resumes/job-requirements?job_description=
func (h *ResumeHandlers) JobRequirements(c *fiber.Ctx) error {
	resp, err := h.service.JobRequirements(c.UserContext(), c.Query("job_description"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Skills
// POST /api/v1/resumes/skills
func (h *ResumeHandlers) Skills(c *fiber.Ctx) error {
	resp, err := h.service.Skills(c.UserContext(), c.FormValue("text"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ============================================================================
// Helpers
// ============================================================================

// source reads the optional file and resume_id fields
func (h *ResumeHandlers) source(c *fiber.Ctx) (resume.Source, error) {
	name, data, err := h.readFile(c, false)
	if err != nil {
		return resume.Source{}, err
	}
	return resume.Source{
		ResumeID: kernel.NewResumeID(c.FormValue("resume_id")),
		FileName: name,
		Data:     data,
	}, nil
}

// readFile loads the multipart "file" field. A missing file is an error
// only when required.
func (h *ResumeHandlers) readFile(c *fiber.Ctx, required bool) (string, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if !required {
			return "", nil, nil
		}
		return "", nil, fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	if header.Size > h.maxUploadBytes {
		return "", nil, resume.ErrFileTooLarge().
			WithDetail("max_bytes", h.maxUploadBytes).
			WithDetail("size", header.Size)
	}

	f, err := header.Open()
	if err != nil {
		return "", nil, resume.ErrRegistry.NewWithCause(resume.CodeFileReadFailed, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		return "", nil, resume.ErrRegistry.NewWithCause(resume.CodeFileReadFailed, err)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return "", nil, resume.ErrFileTooLarge().WithDetail("max_bytes", h.maxUploadBytes)
	}
	return header.Filename, data, nil
}
