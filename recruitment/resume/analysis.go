package resume

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// NotProvided is the value of any contact field that could not be extracted
const NotProvided = "Not Provided"

// ============================================================================
// Contact details
// ============================================================================

type ContactDetails struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	LinkedIn    string `json:"linkedin"`
	GitHub      string `json:"github"`
}

func NewContactDetails() ContactDetails {
	return ContactDetails{
		Name:        NotProvided,
		PhoneNumber: NotProvided,
		Email:       NotProvided,
		Location:    NotProvided,
		LinkedIn:    NotProvided,
		GitHub:      NotProvided,
	}
}

// Normalize replaces empty fields with NotProvided
func (c *ContactDetails) Normalize() {
	for _, f := range []*string{&c.Name, &c.PhoneNumber, &c.Email, &c.Location, &c.LinkedIn, &c.GitHub} {
		if *f == "" {
			*f = NotProvided
		}
	}
}

// ============================================================================
// Structured resume
// ============================================================================

type WorkExperience struct {
	Company      string   `json:"company"`
	Title        string   `json:"title"`
	Dates        string   `json:"dates"`
	Location     string   `json:"location,omitempty"`
	Achievements []string `json:"achievements"`
}

type Skills struct {
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
}

// All returns technical then soft skills
func (s Skills) All() []string {
	out := make([]string, 0, len(s.TechnicalSkills)+len(s.SoftSkills))
	out = append(out, s.TechnicalSkills...)
	return append(out, s.SoftSkills...)
}

type Project struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// StructuredResume is the fixed-key view of a resume. Education is kept as
// raw JSON so it can be carried through rewrites byte for byte.
type StructuredResume struct {
	Summary        string           `json:"summary"`
	WorkExperience []WorkExperience `json:"work_experience"`
	Skills         Skills           `json:"skills"`
	Education      json.RawMessage  `json:"education"`
	Certifications []string         `json:"certifications"`
	Projects       []Project        `json:"projects"`
}

var emptyList = json.RawMessage("[]")

// Normalize fills absent keys with empty values
func (s *StructuredResume) Normalize() {
	if s.WorkExperience == nil {
		s.WorkExperience = []WorkExperience{}
	}
	for i := range s.WorkExperience {
		if s.WorkExperience[i].Achievements == nil {
			s.WorkExperience[i].Achievements = []string{}
		}
	}
	if s.Skills.TechnicalSkills == nil {
		s.Skills.TechnicalSkills = []string{}
	}
	if s.Skills.SoftSkills == nil {
		s.Skills.SoftSkills = []string{}
	}
	trimmed := bytes.TrimSpace(s.Education)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		s.Education = append(json.RawMessage(nil), emptyList...)
	}
	if s.Certifications == nil {
		s.Certifications = []string{}
	}
	if s.Projects == nil {
		s.Projects = []Project{}
	}
	for i := range s.Projects {
		if s.Projects[i].Technologies == nil {
			s.Projects[i].Technologies = []string{}
		}
	}
}

// EmptyStructuredResume has every key present and empty
func EmptyStructuredResume() StructuredResume {
	var s StructuredResume
	s.Normalize()
	return s
}

// ExtractedResume is everything derived from one resume document
type ExtractedResume struct {
	RawText          string            `json:"raw_text"`
	ContactDetails   ContactDetails    `json:"contact_details"`
	StructuredResume StructuredResume  `json:"structured_resume"`
	Segments         map[string]string `json:"segments"`
	// Error is set when structuring fell back to the empty shape
	Error string `json:"error,omitempty"`
}

// ============================================================================
// Job requirements
// ============================================================================

type JobRequirements struct {
	RequiredTechnicalSkills  []string `json:"required_technical_skills"`
	PreferredTechnicalSkills []string `json:"preferred_technical_skills"`
	RequiredSoftSkills       []string `json:"required_soft_skills"`
	ExperienceLevel          string   `json:"experience_level"`
	KeyResponsibilities      []string `json:"key_responsibilities"`
	RequiredQualifications   []string `json:"required_qualifications"`
	Error                    string   `json:"error,omitempty"`
}

func (j *JobRequirements) Normalize() {
	for _, l := range []*[]string{
		&j.RequiredTechnicalSkills, &j.PreferredTechnicalSkills, &j.RequiredSoftSkills,
		&j.KeyResponsibilities, &j.RequiredQualifications,
	} {
		if *l == nil {
			*l = []string{}
		}
	}
}

// Keywords returns required technical, preferred technical and required soft
// skills, de-duplicated case-insensitively, in that order
func (j JobRequirements) Keywords() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{j.RequiredTechnicalSkills, j.PreferredTechnicalSkills, j.RequiredSoftSkills} {
		for _, k := range list {
			k = strings.TrimSpace(k)
			key := strings.ToLower(k)
			if k == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, k)
		}
	}
	return out
}

// ============================================================================
// Scoring
// ============================================================================

// Category keys of ScoreResult.CategoryScores
const (
	CategorySkillsMatch             = "skills_match"
	CategoryExperienceRelevance     = "experience_relevance"
	CategoryEducationCertifications = "education_certifications"
	CategoryAdditionalFactors       = "additional_factors"
)

// DefaultCategoryScores is used when the scorer does not return a breakdown
func DefaultCategoryScores() map[string]float64 {
	return map[string]float64{
		CategorySkillsMatch:             20,
		CategoryExperienceRelevance:     15,
		CategoryEducationCertifications: 7,
		CategoryAdditionalFactors:       8,
	}
}

type ScoreResult struct {
	MatchScore           int                `json:"match_score"`
	CategoryScores       map[string]float64 `json:"category_scores"`
	MissingSkills        []string           `json:"missing_skills"`
	MatchedSkills        []string           `json:"matched_skills"`
	KeyMatches           []string           `json:"key_matches"`
	Recommendations      []string           `json:"recommendations"`
	AlternativePositions []string           `json:"alternative_positions,omitempty"`
	Timestamp            time.Time          `json:"timestamp"`
	Error                string             `json:"error,omitempty"`
}

// ============================================================================
// Optimization and interview preparation
// ============================================================================

// OptimizedResume is a rewritten StructuredResume. Error and Message are set
// when the rewrite failed and the original content was returned instead.
type OptimizedResume struct {
	StructuredResume
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

type InterviewQuestions struct {
	Technical   []string `json:"technical"`
	Behavioral  []string `json:"behavioral"`
	Situational []string `json:"situational"`
	Error       string   `json:"error,omitempty"`
}

func (q *InterviewQuestions) Normalize() {
	for _, l := range []*[]string{&q.Technical, &q.Behavioral, &q.Situational} {
		if *l == nil {
			*l = []string{}
		}
	}
}
