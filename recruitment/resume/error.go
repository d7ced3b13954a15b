package resume

import (
	"net/http"

	"github.com/Abraxas-365/careerpal/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("RESUME")

var (
	CodeResumeNotFound          = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Resume not found or not owned by this user")
	CodeInvalidResumeData       = ErrRegistry.Register("INVALID_DATA", errx.TypeValidation, http.StatusBadRequest, "Invalid resume data")
	CodeSourceRequired          = ErrRegistry.Register("SOURCE_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Either file or resume_id must be provided")
	CodeAmbiguousSource         = ErrRegistry.Register("AMBIGUOUS_SOURCE", errx.TypeValidation, http.StatusBadRequest, "Cannot provide both file and resume_id")
	CodeJobDescriptionRequired  = ErrRegistry.Register("JOB_DESCRIPTION_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Job description is required")
	CodeJobDescriptionTooShort  = ErrRegistry.Register("JOB_DESCRIPTION_TOO_SHORT", errx.TypeValidation, http.StatusBadRequest, "Job description must be at least 50 characters")
	CodeFileTooLarge            = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusRequestEntityTooLarge, "Uploaded file is too large")
	CodeFileReadFailed          = ErrRegistry.Register("FILE_READ_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to read file")
	CodeUploadFailed            = ErrRegistry.Register("UPLOAD_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to upload file to storage")
	CodeStorageFetchFailed      = ErrRegistry.Register("STORAGE_FETCH_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to fetch resume from storage")
	CodeSignedURLFailed         = ErrRegistry.Register("SIGNED_URL_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to create a download link")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeRepositoryFailed        = ErrRegistry.Register("REPOSITORY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Resume storage operation failed")
)

func ErrResumeNotFound() *errx.Error {
	return ErrRegistry.New(CodeResumeNotFound)
}

func ErrInvalidResumeData() *errx.Error {
	return ErrRegistry.New(CodeInvalidResumeData)
}

func ErrSourceRequired() *errx.Error {
	return ErrRegistry.New(CodeSourceRequired)
}

func ErrAmbiguousSource() *errx.Error {
	return ErrRegistry.New(CodeAmbiguousSource)
}

func ErrJobDescriptionRequired() *errx.Error {
	return ErrRegistry.New(CodeJobDescriptionRequired)
}

func ErrJobDescriptionTooShort() *errx.Error {
	return ErrRegistry.New(CodeJobDescriptionTooShort)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrFileReadFailed() *errx.Error {
	return ErrRegistry.New(CodeFileReadFailed)
}

func ErrUploadFailed() *errx.Error {
	return ErrRegistry.New(CodeUploadFailed)
}

func ErrStorageFetchFailed() *errx.Error {
	return ErrRegistry.New(CodeStorageFetchFailed)
}

func ErrSignedURLFailed() *errx.Error {
	return ErrRegistry.New(CodeSignedURLFailed)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}
