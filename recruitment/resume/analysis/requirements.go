package analysis

import (
	"context"
	"encoding/json"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
)

const (
	RequirementsParseFailed = "Failed to parse job requirements"
	RequirementsUnavailable = "Job requirements service unavailable"
)

// RequirementExtractor lists what a job description asks for
type RequirementExtractor struct {
	llm llm.Completer
}

func NewRequirementExtractor(c llm.Completer) *RequirementExtractor {
	return &RequirementExtractor{llm: c}
}

// Extract always returns the full shape; failures only set Error
func (r *RequirementExtractor) Extract(ctx context.Context, jobDescription string) resume.JobRequirements {
	reply, err := r.llm.Complete(ctx, llm.Request{
		Operation:   "requirements",
		System:      requirementsSystemPrompt,
		User:        requirementsUserPrompt + jobDescription,
		JSON:        true,
		Temperature: 0.1,
	})
	if err == nil {
		var obj map[string]json.RawMessage
		if obj, err = llm.DecodeObject(reply); err == nil {
			req := requirementsFrom(normalizeKeys(obj))
			req.Normalize()
			return req
		}
	}

	logx.With("op", "requirements").Warnf("requirement extraction failed: %v", err)
	req := resume.JobRequirements{Error: failureMessage(err, RequirementsParseFailed, RequirementsUnavailable)}
	req.Normalize()
	return req
}

func requirementsFrom(o object) resume.JobRequirements {
	return resume.JobRequirements{
		RequiredTechnicalSkills:  o.list("required_technical_skills", "technical_skills", "required_skills"),
		PreferredTechnicalSkills: o.list("preferred_technical_skills", "preferred_skills", "nice_to_have"),
		RequiredSoftSkills:       o.list("required_soft_skills", "soft_skills"),
		ExperienceLevel:          o.str("experience_level", "experience_level_required", "seniority", "experience"),
		KeyResponsibilities:      o.list("key_responsibilities", "responsibilities"),
		RequiredQualifications:   o.list("required_qualifications", "qualifications", "education"),
	}
}

// failureMessage picks the message for an unparseable reply or an unreachable service
func failureMessage(err error, parse, unavailable string) string {
	if llm.IsParseError(err) {
		return parse
	}
	return unavailable
}
