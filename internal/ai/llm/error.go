package llm

import (
	"net/http"

	"github.com/Abraxas-365/careerpal/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("LLM")

var (
	// ErrUpstreamUnavailable covers network, auth and provider-side failures
	ErrUpstreamUnavailable = ErrRegistry.Register("UPSTREAM_UNAVAILABLE", errx.TypeExternal, http.StatusBadGateway, "Text-understanding service unavailable")
	// ErrUpstreamParse means the provider answered with content that is not the expected JSON
	ErrUpstreamParse = ErrRegistry.Register("UPSTREAM_PARSE", errx.TypeExternal, http.StatusBadGateway, "Text-understanding service returned an unparseable response")
)

func ErrUnavailable() *errx.Error { return ErrRegistry.New(ErrUpstreamUnavailable) }
func ErrParse() *errx.Error       { return ErrRegistry.New(ErrUpstreamParse) }

// IsParseError reports whether err is an unparseable-response failure
func IsParseError(err error) bool { return errx.IsCode(err, ErrUpstreamParse) }
