package document

import (
	"net/http"

	"github.com/Abraxas-365/careerpal/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("DOCUMENT")

var (
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported file format. Upload a PDF, DOC or DOCX file")
	CodeExtractionFailed  = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Could not extract text from the document")
)

func ErrUnsupportedFormat() *errx.Error { return ErrRegistry.New(CodeUnsupportedFormat) }
func ErrExtractionFailed() *errx.Error  { return ErrRegistry.New(CodeExtractionFailed) }
