package analysis

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
)

const (
	OptimizeParseFailed = "Failed to parse optimization response"
	OptimizeUnavailable = "Optimization service unavailable"
	OptimizeFailedHint  = "The resume optimization service encountered an error. Please try again."

	fallbackKeywordCount = 10
)

var genericTechnicalSkills = []string{"Microsoft Office", "Data Analysis", "Project Management", "Technical Documentation"}

// OptimizeInput is one rewrite request. Tailor asks for a keyword-targeted
// rewrite and enables the keyword check on every work experience entry.
type OptimizeInput struct {
	Resume         resume.ExtractedResume
	JobDescription string
	Requirements   resume.JobRequirements
	Tailor         bool
}

// Optimizer rewrites a structured resume for a job description
type Optimizer struct {
	llm llm.Completer
}

func NewOptimizer(c llm.Completer) *Optimizer {
	return &Optimizer{llm: c}
}

// Optimize never fails. On upstream failure the original content comes back
// post-processed with Error and Message set.
func (o *Optimizer) Optimize(ctx context.Context, in OptimizeInput) resume.OptimizedResume {
	op := "optimize"
	if in.Tailor {
		op = "tailor"
	}
	keywords := in.Requirements.Keywords()
	if len(keywords) == 0 {
		keywords = TopTerms(in.JobDescription, fallbackKeywordCount)
	}
	original := cloneStructured(in.Resume.StructuredResume)

	reply, err := o.llm.Complete(ctx, llm.Request{
		Operation:   op,
		System:      optimizeSystemPrompt,
		User:        optimizePrompt(in, keywords),
		JSON:        true,
		Temperature: 0.2,
	})
	var obj map[string]json.RawMessage
	if err == nil {
		obj, err = llm.DecodeObject(reply)
	}
	if err != nil {
		logx.With("op", op).Warnf("rewrite failed, returning original content: %v", err)
		out := resume.OptimizedResume{
			StructuredResume: postProcess(original, original.Education, keywords, in.Tailor),
			Error:            failureMessage(err, OptimizeParseFailed, OptimizeUnavailable),
			Message:          OptimizeFailedHint,
		}
		return out
	}

	rewritten := structuredFrom(normalizeKeys(obj))
	return resume.OptimizedResume{
		StructuredResume: postProcess(rewritten, original.Education, keywords, in.Tailor),
	}
}

func optimizePrompt(in OptimizeInput, keywords []string) string {
	structured, _ := json.MarshalIndent(in.Resume.StructuredResume, "", "  ")
	requirements, _ := json.MarshalIndent(in.Requirements, "", "  ")

	var b strings.Builder
	if in.Tailor {
		b.WriteString(tailorUserPrompt)
	} else {
		b.WriteString(optimizeUserPrompt)
	}
	b.WriteString("\nResume:\n")
	b.Write(structured)
	b.WriteString("\n\nJob requirements:\n")
	b.Write(requirements)
	if in.Tailor && len(keywords) > 0 {
		b.WriteString("\n\nJob keywords: ")
		b.WriteString(strings.Join(keywords, ", "))
	}
	b.WriteString("\n\nJob description:\n")
	b.WriteString(in.JobDescription)
	return b.String()
}

var bulletPrefix = regexp.MustCompile(`^\s*[-•*]\s+`)

// postProcess applies the guarantees every rewrite must meet: education is
// never rewritten, bullets are plain text, technical skills are never empty
// and, when tailoring, every job mentions a keyword
func postProcess(s resume.StructuredResume, education json.RawMessage, keywords []string, tailor bool) resume.StructuredResume {
	s.Education = append(json.RawMessage(nil), education...)
	s.Normalize()

	s.Skills.TechnicalSkills = stripBullets(s.Skills.TechnicalSkills)
	s.Skills.SoftSkills = stripBullets(s.Skills.SoftSkills)
	if len(s.Skills.TechnicalSkills) == 0 {
		s.Skills.TechnicalSkills = append([]string(nil), genericTechnicalSkills...)
	}

	for i := range s.WorkExperience {
		w := &s.WorkExperience[i]
		w.Achievements = stripBullets(w.Achievements)
		if tailor && len(keywords) > 0 && !mentionsAny(w.Achievements, keywords) {
			w.Achievements = append(w.Achievements,
				"Applied "+keywords[0]+" skills to deliver results aligned with team objectives")
		}
	}
	return s
}

func stripBullets(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(bulletPrefix.ReplaceAllString(s, "")); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// mentionsAny reports whether any line contains a keyword as a whole word.
// Boundaries are non-alphanumerics rather than \b so "C++" and "C#" still match.
func mentionsAny(lines, keywords []string) bool {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.TrimSpace(k); k == "" {
			continue
		}
		patterns = append(patterns, regexp.MustCompile(
			`(?i)(?:^|[^\p{L}\p{N}_])`+regexp.QuoteMeta(k)+`(?:$|[^\p{L}\p{N}_])`))
	}
	for _, l := range lines {
		for _, p := range patterns {
			if p.MatchString(l) {
				return true
			}
		}
	}
	return false
}

// cloneStructured deep-copies s so post-processing never touches the caller's value
func cloneStructured(s resume.StructuredResume) resume.StructuredResume {
	b, err := json.Marshal(s)
	if err != nil {
		return s
	}
	var out resume.StructuredResume
	if json.Unmarshal(b, &out) != nil {
		return s
	}
	// keep education bytes exactly as given, not re-encoded
	out.Education = append(json.RawMessage(nil), s.Education...)
	out.Normalize()
	return out
}
