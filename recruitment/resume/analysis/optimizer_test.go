package analysis

import (
	"context"
	"testing"

	"github.com/Abraxas-365/careerpal/internal/ai/llm/llmtest"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rewrittenResume = `{
	"summary": "Backend engineer shipping Go services.",
	"work_experience": [
		{"company": "Acme", "title": "Backend Engineer", "dates": "2020 - 2023",
		 "achievements": ["- Built REST APIs serving 2M requests a day", "• Cut p99 latency by 40%"]},
		{"company": "Initech", "title": "Developer", "dates": "2018 - 2020",
		 "achievements": ["Ran Kubernetes clusters for 30 services"]}
	],
	"skills": {"technical_skills": [], "soft_skills": ["- Mentoring"]},
	"education": [{"school": "Invented University"}],
	"certifications": ["CKA"],
	"projects": []
}`

func TestOptimizer_PostProcessesRewrite(t *testing.T) {
	fake := llmtest.New().On("optimize", rewrittenResume)
	in := OptimizeInput{Resume: sampleExtracted(), JobDescription: backendJob}

	got := NewOptimizer(fake).Optimize(context.Background(), in)

	require.Empty(t, got.Error)
	assert.Equal(t, "Backend engineer shipping Go services.", got.Summary)
	assert.JSONEq(t, `[{"school":"MIT"}]`, string(got.Education))
	assert.Equal(t, string(in.Resume.StructuredResume.Education), string(got.Education))
	assert.Equal(t, genericTechnicalSkills, got.Skills.TechnicalSkills)
	assert.Equal(t, []string{"Mentoring"}, got.Skills.SoftSkills)
	assert.Equal(t, []string{"Built REST APIs serving 2M requests a day", "Cut p99 latency by 40%"}, got.WorkExperience[0].Achievements)
	assert.Len(t, got.WorkExperience[1].Achievements, 1, "optimize never adds keyword bullets")

	assert.Equal(t, 0.2, fake.Requests[0].Temperature)
	assert.Contains(t, fake.LastUser("optimize"), backendJob)
}

func TestOptimizer_TailorAddsKeywordBullet(t *testing.T) {
	fake := llmtest.New().On("tailor", rewrittenResume)
	in := OptimizeInput{
		Resume:         sampleExtracted(),
		JobDescription: backendJob,
		Requirements:   resume.JobRequirements{RequiredTechnicalSkills: []string{"Kubernetes", "Go"}},
		Tailor:         true,
	}

	got := NewOptimizer(fake).Optimize(context.Background(), in)

	assert.Equal(t, []string{
		"Built REST APIs serving 2M requests a day",
		"Cut p99 latency by 40%",
		"Applied Kubernetes skills to deliver results aligned with team objectives",
	}, got.WorkExperience[0].Achievements)
	assert.Equal(t, []string{"Ran Kubernetes clusters for 30 services"}, got.WorkExperience[1].Achievements)
	assert.Contains(t, fake.LastUser("tailor"), "Job keywords: Kubernetes, Go")
}

func TestOptimizer_TailorFallsBackToDescriptionTerms(t *testing.T) {
	fake := llmtest.New().On("tailor", rewrittenResume)
	in := OptimizeInput{
		Resume:         sampleExtracted(),
		JobDescription: "Terraform engineers wanted. Terraform modules, terraform state and AWS.",
		Tailor:         true,
	}

	got := NewOptimizer(fake).Optimize(context.Background(), in)

	ach := got.WorkExperience[0].Achievements
	assert.Equal(t, "Applied terraform skills to deliver results aligned with team objectives", ach[len(ach)-1])
}

func TestOptimizer_FailureReturnsOriginal(t *testing.T) {
	tests := []struct {
		name string
		fake *llmtest.Scripted
		want string
	}{
		{"unparseable", llmtest.New().On("optimize", "Here is your improved resume: great job"), OptimizeParseFailed},
		{"unavailable", llmtest.New().Fail("optimize"), OptimizeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := OptimizeInput{Resume: sampleExtracted(), JobDescription: backendJob}
			in.Resume.StructuredResume.WorkExperience[0].Achievements = []string{"- Built APIs in Go"}

			got := NewOptimizer(tt.fake).Optimize(context.Background(), in)

			assert.Equal(t, tt.want, got.Error)
			assert.Equal(t, OptimizeFailedHint, got.Message)
			assert.Equal(t, "Backend engineer", got.Summary)
			assert.Equal(t, []string{"Built APIs in Go"}, got.WorkExperience[0].Achievements)
			assert.Equal(t, []string{"Go", "PostgreSQL"}, got.Skills.TechnicalSkills)
			assert.Equal(t, []string{"- Built APIs in Go"}, in.Resume.StructuredResume.WorkExperience[0].Achievements,
				"input is not modified")
		})
	}
}

func TestMentionsAny(t *testing.T) {
	tests := []struct {
		line     string
		keywords []string
		want     bool
	}{
		{"Good communication with stakeholders", []string{"Go"}, false},
		{"Wrote Go services", []string{"Go"}, true},
		{"go, rust and sql", []string{"Go"}, true},
		{"Maintained C++ trading engine", []string{"C++"}, true},
		{"Shipped C# tooling", []string{"C"}, true},
		{"Managed Kubernetes-based clusters", []string{"Kubernetes"}, true},
		{"Ran Kubernetesish things", []string{"Kubernetes"}, false},
		{"Anything", []string{" "}, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, mentionsAny([]string{tt.line}, tt.keywords))
		})
	}
}

func TestOptimizer_TailorIgnoresKeywordInsideWords(t *testing.T) {
	fake := llmtest.New().On("tailor", `{"work_experience": [
		{"company": "Acme", "title": "Lead", "achievements": ["Good communication across teams"]}
	]}`)
	in := OptimizeInput{
		Resume:         sampleExtracted(),
		JobDescription: backendJob,
		Requirements:   resume.JobRequirements{RequiredTechnicalSkills: []string{"Go"}},
		Tailor:         true,
	}

	got := NewOptimizer(fake).Optimize(context.Background(), in)

	require.Len(t, got.WorkExperience, 1)
	assert.Equal(t, []string{
		"Good communication across teams",
		"Applied Go skills to deliver results aligned with team objectives",
	}, got.WorkExperience[0].Achievements)
}
