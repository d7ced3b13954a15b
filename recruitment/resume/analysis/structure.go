package analysis

import (
	"context"
	"encoding/json"
	"sort"
	"strings"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
)

// StructureFailed is the ExtractedResume.Error value when structuring falls back
const StructureFailed = "Failed to structure resume"

// Structurer turns raw resume text into a StructuredResume
type Structurer struct {
	llm llm.Completer
}

func NewStructurer(c llm.Completer) *Structurer {
	return &Structurer{llm: c}
}

// Structure returns the empty shape together with the upstream error when
// the model call or its decoding fails
func (s *Structurer) Structure(ctx context.Context, text string) (resume.StructuredResume, error) {
	reply, err := s.llm.Complete(ctx, llm.Request{
		Operation:   "structure",
		System:      structureSystemPrompt,
		User:        structureUserPrompt + text,
		JSON:        true,
		Temperature: 0.1,
	})
	if err != nil {
		logx.With("op", "structure").Warnf("structuring failed: %v", err)
		return resume.EmptyStructuredResume(), err
	}

	obj, err := llm.DecodeObject(reply)
	if err != nil {
		logx.With("op", "structure").Warnf("structuring returned unparseable content: %v", err)
		return resume.EmptyStructuredResume(), err
	}
	return structuredFrom(normalizeKeys(obj)), nil
}

// ============================================================================
// Tolerant mapping
// ============================================================================

// structuredFrom maps the many key spellings models use onto StructuredResume
func structuredFrom(o object) resume.StructuredResume {
	var s resume.StructuredResume

	if v, ok := o.pick("summary", "professional_summary", "profile", "objective", "career_objective"); ok {
		if kind(v) == '[' {
			s.Summary = strings.Join(asStringList(v), " ")
		} else {
			s.Summary = asString(v)
		}
	}

	if v, ok := o.pick("work_experience", "experience", "professional_experience", "employment_history", "work_history", "employment"); ok {
		for _, job := range asObjects(v) {
			s.WorkExperience = append(s.WorkExperience, workExperienceFrom(job))
		}
	}

	s.Skills = skillsFrom(o)

	if v, ok := o.pick("education", "educational_background"); ok {
		s.Education = append(json.RawMessage(nil), v...)
	}

	if v, ok := o.pick("certifications", "certificates", "professional_certifications", "licenses_and_certifications"); ok {
		s.Certifications = asStringList(v)
	}

	if v, ok := o.pick("projects", "personal_projects", "key_projects"); ok {
		for _, p := range asObjects(v) {
			s.Projects = append(s.Projects, projectFrom(p))
		}
	}

	s.Normalize()
	return s
}

func workExperienceFrom(o object) resume.WorkExperience {
	w := resume.WorkExperience{
		Company:  o.str("company", "employer", "organization", "company_name"),
		Title:    o.str("title", "job_title", "role", "position"),
		Dates:    o.str("dates", "date_range", "duration", "period", "date"),
		Location: o.str("location", "city"),
	}
	if w.Dates == "" {
		start, end := o.str("start_date", "from"), o.str("end_date", "to")
		switch {
		case start != "" && end != "":
			w.Dates = start + " - " + end
		case start != "":
			w.Dates = start + " - Present"
		}
	}
	if v, ok := o.pick("achievements", "accomplishments", "responsibilities", "bullets", "highlights", "description", "details"); ok {
		if kind(v) == '"' {
			w.Achievements = splitLines(asString(v))
		} else {
			w.Achievements = asStringList(v)
		}
	}
	return w
}

func skillsFrom(o object) resume.Skills {
	var sk resume.Skills

	if v, ok := o.pick("skills", "key_skills", "skill_set"); ok {
		switch kind(v) {
		case '{':
			var inner map[string]json.RawMessage
			if json.Unmarshal(v, &inner) == nil {
				groups := normalizeKeys(inner)
				sk.TechnicalSkills = groups.list("technical_skills", "technical", "hard_skills", "hard")
				sk.SoftSkills = groups.list("soft_skills", "soft", "interpersonal_skills")
				// other groupings ("tools", "languages", ...) count as technical
				keys := make([]string, 0, len(groups))
				for k := range groups {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					switch k {
					case "technical_skills", "technical", "hard_skills", "hard",
						"soft_skills", "soft", "interpersonal_skills":
						continue
					}
					sk.TechnicalSkills = append(sk.TechnicalSkills, asStringList(groups[k])...)
				}
			}
		case '"':
			sk.TechnicalSkills = splitList(asString(v))
		default:
			sk.TechnicalSkills = asStringList(v)
		}
	}

	if len(sk.TechnicalSkills) == 0 {
		sk.TechnicalSkills = o.list("technical_skills", "hard_skills")
	}
	if len(sk.SoftSkills) == 0 {
		sk.SoftSkills = o.list("soft_skills", "interpersonal_skills")
	}
	return sk
}

func projectFrom(o object) resume.Project {
	p := resume.Project{
		Title:       o.str("title", "name", "project_name"),
		Description: o.str("description", "summary", "details"),
	}
	if v, ok := o.pick("technologies", "tech_stack", "tools", "stack", "skills"); ok {
		if kind(v) == '"' {
			p.Technologies = splitList(asString(v))
		} else {
			p.Technologies = asStringList(v)
		}
	}
	return p
}

// splitList splits "Go, SQL; Docker" into items
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '\n' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
