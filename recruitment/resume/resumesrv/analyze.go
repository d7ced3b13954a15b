package resumesrv

import (
	"context"

	"github.com/Abraxas-365/careerpal/recruitment/resume"
	"github.com/Abraxas-365/careerpal/recruitment/resume/analysis"
	"golang.org/x/sync/errgroup"
)

// analyzeText runs the three independent passes over the text concurrently.
// None of them fail; structuring reports trouble through the Error field.
func (s *Service) analyzeText(ctx context.Context, text string) resume.ExtractedResume {
	out := resume.ExtractedResume{RawText: text}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.ContactDetails = s.contacts.Extract(gctx, text)
		return nil
	})
	g.Go(func() error {
		out.Segments = s.segmenter.Segment(gctx, text)
		return nil
	})
	g.Go(func() error {
		structured, err := s.structurer.Structure(gctx, text)
		out.StructuredResume = structured
		if err != nil {
			out.Error = analysis.StructureFailed
		}
		return nil
	})
	_ = g.Wait()

	return out
}
