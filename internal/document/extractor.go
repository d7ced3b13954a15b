// Package document turns uploaded resume files into plain text.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	ExtPDF  = "pdf"
	ExtDOC  = "doc"
	ExtDOCX = "docx"
)

var contentTypes = map[string]string{
	ExtPDF:  "application/pdf",
	ExtDOC:  "application/msword",
	ExtDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// SupportedExtension returns the lower-cased extension of name without the dot,
// and whether it is one the extractor accepts
func SupportedExtension(name string) (string, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	_, ok := contentTypes[ext]
	return ext, ok
}

// ContentType returns the MIME type for a supported extension
func ContentType(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extractor converts PDF and Word documents to text. Line structure is kept
// because contact and section heuristics work line by line.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the document text. Unsupported extensions fail with
// DOCUMENT.UNSUPPORTED_FORMAT, unreadable files with DOCUMENT.EXTRACTION_FAILED.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	ext, ok := SupportedExtension(filename)
	if !ok {
		return "", ErrUnsupportedFormat().WithDetail("filename", filename)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ExtPDF:
		text, err = extractPDF(data)
	default:
		text, err = extractWord(data)
	}
	if err != nil {
		return "", ErrRegistry.NewWithCause(CodeExtractionFailed, err).
			WithDetail("filename", filename)
	}
	return text, nil
}

var errNoText = errors.New("no page yielded extractable text")

// extractPDF prefers MuPDF, which keeps one line per text line. The pure-Go
// reader only covers files MuPDF cannot open; it tends to merge lines.
func extractPDF(data []byte) (string, error) {
	text, err := extractPDFFitz(data)
	if err == nil {
		return text, nil
	}
	logx.Debugf("mupdf failed, falling back to pdf reader: %v", err)

	fallback, perr := extractPDFPlain(data)
	if perr != nil {
		return "", fmt.Errorf("%v; pdf reader: %w", err, perr)
	}
	return fallback, nil
}

func extractPDFPlain(data []byte) (text string, err error) {
	// the pure-Go reader panics on some malformed xref tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, perr := page.GetPlainText(nil)
		if perr != nil || strings.TrimSpace(content) == "" {
			continue
		}
		pages = append(pages, content)
	}
	if len(pages) == 0 {
		return "", errNoText
	}
	return strings.Join(pages, "\n"), nil
}

func extractPDFFitz(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := range doc.NumPage() {
		content, perr := doc.Text(i)
		if perr != nil || strings.TrimSpace(content) == "" {
			continue
		}
		pages = append(pages, content)
	}
	if len(pages) == 0 {
		return "", errNoText
	}
	return strings.Join(pages, "\n"), nil
}

func extractWord(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	return wordXMLToText(doc.Editable().GetContent()), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	lineBreak    = regexp.MustCompile(`<w:(?:br|cr)\b[^>]*/>`)
	tabRun       = regexp.MustCompile(`<w:tab/>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
)

// wordXMLToText flattens WordprocessingML body XML to text, one paragraph per line
func wordXMLToText(body string) string {
	body = paragraphEnd.ReplaceAllString(body, "\n")
	body = lineBreak.ReplaceAllString(body, "\n")
	body = tabRun.ReplaceAllString(body, "\t")
	body = anyTag.ReplaceAllString(body, "")
	return html.UnescapeString(body)
}
