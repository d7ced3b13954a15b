package jobapi

import (
	"strconv"

	"github.com/Abraxas-365/careerpal/pkg/kernel"
	"github.com/Abraxas-365/careerpal/recruitment/job"
	"github.com/Abraxas-365/careerpal/recruitment/job/jobsrv"
	"github.com/Abraxas-365/careerpal/recruitment/user/userauth"
	"github.com/gofiber/fiber/v2"
)

// Handlers provides HTTP handlers for job listings, scrape runs and matching
type Handlers struct {
	service *jobsrv.Service
}

func NewHandlers(service *jobsrv.Service) *Handlers {
	return &Handlers{service: service}
}

// RegisterRoutes mounts the job routes. Listings are public, scraping and
// matching need a bearer token.
func (h *Handlers) RegisterRoutes(app *fiber.App, authMiddleware fiber.Handler) {
	jobs := app.Group("/api/v1/jobs")

	jobs.Post("/scrape", authMiddleware, h.StartScrape)
	jobs.Get("/scrape/:id", authMiddleware, h.GetScrapeRun)
	jobs.Post("/match", authMiddleware, h.Match)

	jobs.Get("/", h.ListJobs)
	jobs.Get("/:id", h.GetJob)
}

// ListJobs returns a page of stored jobs
// GET /api/v1/jobs?page=1&limit=20
func (h *Handlers) ListJobs(c *fiber.Ctx) error {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return err
	}
	limit, err := intQuery(c, "limit", job.DefaultPageSize)
	if err != nil {
		return err
	}

	resp, err := h.service.List(c.UserContext(), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetJob returns a single job
// GET /api/v1/jobs/:id
func (h *Handlers) GetJob(c *fiber.Ctx) error {
	j, err := h.service.Get(c.UserContext(), kernel.NewJobID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(j)
}

// StartScrape queues a scrape run for a search query
// POST /api/v1/jobs/scrape
func (h *Handlers) StartScrape(c *fiber.Ctx) error {
	var req job.ScrapeRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	resp, err := h.service.StartScrape(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(resp)
}

// GetScrapeRun reports the progress of a scrape run
// GET /api/v1/jobs/scrape/:id
func (h *Handlers) GetScrapeRun(c *fiber.Ctx) error {
	run, err := h.service.GetRun(c.UserContext(), kernel.NewScrapeRunID(c.Params("id")))
	if err != nil {
		return err
	}
	return c.JSON(run)
}

// Match finds jobs closest to a stored resume or pasted text
// POST /api/v1/jobs/match
func (h *Handlers) Match(c *fiber.Ctx) error {
	userID, err := userauth.RequireUserID(c)
	if err != nil {
		return err
	}

	var req job.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return job.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}
	req.UserID = userID

	resp, err := h.service.Match(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func intQuery(c *fiber.Ctx, key string, fallback int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, job.ErrInvalidRequest().WithDetail(key, raw)
	}
	return n, nil
}
