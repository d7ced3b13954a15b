package analysis

import (
	"context"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
)

const (
	technicalQuestions   = 5
	behavioralQuestions  = 5
	situationalQuestions = 3

	InterviewParseFailed = "Failed to generate interview questions"
	InterviewUnavailable = "Interview question service unavailable"
)

// InterviewGenerator writes interview questions for a job description
type InterviewGenerator struct {
	llm llm.Completer
}

func NewInterviewGenerator(c llm.Completer) *InterviewGenerator {
	return &InterviewGenerator{llm: c}
}

func (g *InterviewGenerator) Generate(ctx context.Context, jobDescription string) resume.InterviewQuestions {
	reply, err := g.llm.Complete(ctx, llm.Request{
		Operation:   "interview",
		System:      interviewSystemPrompt,
		User:        interviewUserPrompt + jobDescription,
		JSON:        true,
		Temperature: 0.3,
	})
	if err == nil {
		obj, decodeErr := llm.DecodeObject(reply)
		if decodeErr == nil {
			o := normalizeKeys(obj)
			q := resume.InterviewQuestions{
				Technical:   firstN(o.list("technical", "technical_questions"), technicalQuestions),
				Behavioral:  firstN(o.list("behavioral", "behavioral_questions", "behavioural"), behavioralQuestions),
				Situational: firstN(o.list("situational", "situational_questions"), situationalQuestions),
			}
			q.Normalize()
			return q
		}
		err = decodeErr
	}

	logx.With("op", "interview").Warnf("question generation failed: %v", err)
	q := resume.InterviewQuestions{Error: failureMessage(err, InterviewParseFailed, InterviewUnavailable)}
	q.Normalize()
	return q
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
