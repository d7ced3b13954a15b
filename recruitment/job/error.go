package job

import (
	"net/http"

	"github.com/Abraxas-365/careerpal/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

var (
	CodeJobNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeRunNotFound      = ErrRegistry.Register("RUN_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Scrape run not found")
	CodeInvalidRequest   = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request")
	CodeQueueFailed      = ErrRegistry.Register("QUEUE_FAILED", errx.TypeInternal, http.StatusServiceUnavailable, "Failed to queue scrape run")
	CodeScrapeFailed     = ErrRegistry.Register("SCRAPE_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to scrape job listings")
	CodeEmbeddingFailed  = ErrRegistry.Register("EMBEDDING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to embed text")
	CodeRepositoryFailed = ErrRegistry.Register("REPOSITORY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Job storage operation failed")
)

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrRunNotFound() *errx.Error {
	return ErrRegistry.New(CodeRunNotFound)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrQueueFailed() *errx.Error {
	return ErrRegistry.New(CodeQueueFailed)
}

func ErrScrapeFailed() *errx.Error {
	return ErrRegistry.New(CodeScrapeFailed)
}

func ErrEmbeddingFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbeddingFailed)
}
