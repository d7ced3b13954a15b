package analysis

import (
	"context"
	"testing"

	"github.com/Abraxas-365/careerpal/internal/ai/llm/llmtest"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
	"github.com/stretchr/testify/assert"
)

const backendJob = `We are hiring a backend engineer to build and operate Kubernetes services in Go.
You will design APIs, mentor engineers and own PostgreSQL schemas. Kubernetes experience is a must.`

func TestRequirementExtractor_Extract(t *testing.T) {
	fake := llmtest.New().On("requirements", `{
		"Required Technical Skills": ["Go", "Kubernetes"],
		"preferred_technical_skills": "PostgreSQL",
		"required_soft_skills": ["Mentoring"],
		"experience_level": "Senior",
		"responsibilities": ["Design APIs"]
	}`)

	got := NewRequirementExtractor(fake).Extract(context.Background(), backendJob)

	assert.Equal(t, resume.JobRequirements{
		RequiredTechnicalSkills:  []string{"Go", "Kubernetes"},
		PreferredTechnicalSkills: []string{"PostgreSQL"},
		RequiredSoftSkills:       []string{"Mentoring"},
		ExperienceLevel:          "Senior",
		KeyResponsibilities:      []string{"Design APIs"},
		RequiredQualifications:   []string{},
	}, got)
	assert.Contains(t, fake.LastUser("requirements"), "Kubernetes services in Go")
}

func TestRequirementExtractor_Failures(t *testing.T) {
	tests := []struct {
		name string
		fake *llmtest.Scripted
		want string
	}{
		{"unparseable", llmtest.New().On("requirements", "no json here"), RequirementsParseFailed},
		{"unavailable", llmtest.New().Fail("requirements"), RequirementsUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRequirementExtractor(tt.fake).Extract(context.Background(), backendJob)

			assert.Equal(t, tt.want, got.Error)
			assert.Equal(t, []string{}, got.RequiredTechnicalSkills)
			assert.Equal(t, []string{}, got.KeyResponsibilities)
			assert.Empty(t, got.ExperienceLevel)
		})
	}
}
