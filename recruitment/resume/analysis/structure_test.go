package analysis

import (
	"context"
	"testing"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/internal/ai/llm/llmtest"
	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructurer_MapsKeyVariants(t *testing.T) {
	fake := llmtest.New().On("structure", `{
		"Professional Summary": ["Backend engineer.", "Go and SQL."],
		"Work Experience": [
			{"Company": "Acme", "Role": "Engineer", "start_date": "2020", "end_date": "2023",
			 "responsibilities": "- Built APIs\n- Led team"},
			"Freelance consultant"
		],
		"Skills": {"Technical": ["Go"], "Soft Skills": ["Communication"], "Tools": ["Docker"]},
		"Education": [{"school": "MIT", "degree": "BSc"}],
		"Certifications": [{"name": "CKA"}, "AWS SAA"],
		"projects": [{"name": "crawler", "description": "Scrapes jobs", "tech_stack": "Go, Redis"}]
	}`)

	got, err := NewStructurer(fake).Structure(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Equal(t, "Backend engineer. Go and SQL.", got.Summary)
	require.Len(t, got.WorkExperience, 2)
	assert.Equal(t, resume.WorkExperience{
		Company:      "Acme",
		Title:        "Engineer",
		Dates:        "2020 - 2023",
		Achievements: []string{"- Built APIs", "- Led team"},
	}, got.WorkExperience[0])
	assert.Equal(t, "Freelance consultant", got.WorkExperience[1].Title)
	assert.Equal(t, []string{}, got.WorkExperience[1].Achievements)
	assert.Equal(t, []string{"Go", "Docker"}, got.Skills.TechnicalSkills)
	assert.Equal(t, []string{"Communication"}, got.Skills.SoftSkills)
	assert.JSONEq(t, `[{"school": "MIT", "degree": "BSc"}]`, string(got.Education))
	assert.Equal(t, []string{"CKA", "AWS SAA"}, got.Certifications)
	assert.Equal(t, []resume.Project{{Title: "crawler", Description: "Scrapes jobs", Technologies: []string{"Go", "Redis"}}}, got.Projects)

	assert.Equal(t, 0.1, fake.Requests[0].Temperature)
	assert.True(t, fake.Requests[0].JSON)
}

func TestStructurer_TopLevelSkillLists(t *testing.T) {
	fake := llmtest.New().On("structure", `{"summary": "x", "technical_skills": ["Go"], "soft_skills": "Teamwork"}`)

	got, err := NewStructurer(fake).Structure(context.Background(), "resume text")
	require.NoError(t, err)

	assert.Equal(t, []string{"Go"}, got.Skills.TechnicalSkills)
	assert.Equal(t, []string{"Teamwork"}, got.Skills.SoftSkills)
	assert.Equal(t, "[]", string(got.Education))
}

func TestStructurer_FailureReturnsEmptyShape(t *testing.T) {
	t.Run("unavailable", func(t *testing.T) {
		got, err := NewStructurer(llmtest.New().Fail("structure")).Structure(context.Background(), "text")
		assert.True(t, errx.IsCode(err, llm.ErrUpstreamUnavailable))
		assert.Equal(t, resume.EmptyStructuredResume(), got)
	})

	t.Run("unparseable", func(t *testing.T) {
		got, err := NewStructurer(llmtest.New().On("structure", "I cannot do that")).Structure(context.Background(), "text")
		assert.True(t, llm.IsParseError(err))
		assert.Equal(t, resume.EmptyStructuredResume(), got)
	})
}
