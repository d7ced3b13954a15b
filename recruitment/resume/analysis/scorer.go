package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
)

const (
	defaultMatchScore = 50
	// below this score the result carries alternative positions
	alternativeThreshold = 40
	maxAlternatives      = 3
	rawTextContext       = 3000

	ScoreParseFailed = "Failed to parse scoring response"
)

var (
	defaultRecommendations = []string{"Enhance resume with more specific skills and experience"}
	parseFailedAdvice      = []string{"Try uploading a more detailed resume"}
	unavailableAdvice      = []string{"An error occurred during scoring. Please try again."}
	genericAlternatives    = []string{"Administrative Assistant", "Customer Service Representative"}
)

// Scorer rates how well a resume matches a job description
type Scorer struct {
	llm llm.Completer
	now func() time.Time
}

func NewScorer(c llm.Completer) *Scorer {
	return &Scorer{llm: c, now: time.Now}
}

// Score never fails. Upstream problems produce the default result with Error set.
func (s *Scorer) Score(ctx context.Context, r resume.ExtractedResume, jobDescription string) resume.ScoreResult {
	log := logx.With("op", "score")

	reply, err := s.llm.Complete(ctx, llm.Request{
		Operation:   "score",
		System:      scoreSystemPrompt,
		User:        scorePrompt(r, jobDescription),
		JSON:        true,
		Temperature: 0.2,
	})
	if err != nil {
		log.Warnf("scoring failed: %v", err)
		return s.fallback(fmt.Sprintf("Scoring error: %s", causeOf(err)), unavailableAdvice)
	}

	obj, err := llm.DecodeObject(reply)
	if err != nil {
		log.Warnf("scoring returned unparseable content: %v", err)
		return s.fallback(ScoreParseFailed, parseFailedAdvice)
	}
	o := normalizeKeys(obj)

	result := resume.ScoreResult{
		MatchScore:      defaultMatchScore,
		CategoryScores:  categoryScores(o),
		MissingSkills:   o.list("missing_skills"),
		MatchedSkills:   o.list("matched_skills"),
		KeyMatches:      o.list("key_matches"),
		Recommendations: o.list("recommendations"),
		Timestamp:       s.now(),
	}
	if v, ok := o.pick("match_score", "score", "overall_score"); ok {
		if f, ok := asNumber(v); ok {
			// clamp before converting: out-of-range float to int is undefined
			result.MatchScore = int(math.Round(min(max(f, 0), 100)))
		}
	}
	if len(result.Recommendations) == 0 {
		result.Recommendations = append([]string(nil), defaultRecommendations...)
	}

	if result.MatchScore < alternativeThreshold {
		result.AlternativePositions = alternativePositions(o.list("alternative_positions"), r)
		result.Recommendations = append([]string{
			"Consider roles that better match your background, such as: " +
				strings.Join(result.AlternativePositions, ", ") + ".",
		}, result.Recommendations...)
	}
	return result
}

func (s *Scorer) fallback(msg string, advice []string) resume.ScoreResult {
	return resume.ScoreResult{
		MatchScore:      defaultMatchScore,
		CategoryScores:  resume.DefaultCategoryScores(),
		MissingSkills:   []string{},
		MatchedSkills:   []string{},
		KeyMatches:      []string{},
		Recommendations: append([]string(nil), advice...),
		Timestamp:       s.now(),
		Error:           msg,
	}
}

func scorePrompt(r resume.ExtractedResume, jobDescription string) string {
	structured, _ := json.MarshalIndent(r.StructuredResume, "", "  ")

	var b strings.Builder
	b.WriteString(scoreUserPrompt)
	b.WriteString("\nStructured resume:\n")
	b.Write(structured)
	b.WriteString("\n\nResume text:\n")
	b.WriteString(clipRunes(r.RawText, rawTextContext))
	for _, sec := range []struct{ label, text string }{
		{"Summary section", segmentText(r.Segments, "summary", "objective", "profile")},
		{"Experience section", segmentText(r.Segments, "experience", "employment", "work history")},
		{"Skills section", segmentText(r.Segments, "skills", "competencies")},
	} {
		if sec.text != "" {
			fmt.Fprintf(&b, "\n\n%s:\n%s", sec.label, sec.text)
		}
	}
	b.WriteString("\n\nJob description:\n")
	b.WriteString(jobDescription)
	return b.String()
}

// segmentText joins segments whose heading contains any of names, in heading order
func segmentText(segments map[string]string, names ...string) string {
	var keys []string
	for k := range segments {
		lower := strings.ToLower(k)
		for _, n := range names {
			if strings.Contains(lower, n) {
				keys = append(keys, k)
				break
			}
		}
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if t := strings.TrimSpace(segments[k]); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}

func categoryScores(o object) map[string]float64 {
	v, ok := o.pick("category_scores", "categories", "breakdown")
	if !ok || kind(v) != '{' {
		return resume.DefaultCategoryScores()
	}
	var raw map[string]json.RawMessage
	if json.Unmarshal(v, &raw) != nil {
		return resume.DefaultCategoryScores()
	}
	out := make(map[string]float64, len(raw))
	for k, val := range normalizeKeys(raw) {
		if f, ok := asNumber(val); ok {
			out[k] = f
		}
	}
	if len(out) == 0 {
		return resume.DefaultCategoryScores()
	}
	return out
}

// causeOf returns the innermost message of an upstream failure
func causeOf(err error) string {
	if e, ok := errx.As(err); ok && e.Cause != nil {
		return e.Cause.Error()
	}
	return err.Error()
}

// ============================================================================
// Alternative positions
// ============================================================================

type roleBucket struct {
	keywords *regexp.Regexp
	titles   []string
}

func bucket(titles []string, keywords ...string) roleBucket {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = regexp.QuoteMeta(k)
	}
	return roleBucket{
		keywords: regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`),
		titles:   titles,
	}
}

var roleBuckets = []roleBucket{
	bucket([]string{"Software Developer", "Junior Software Engineer"},
		"python", "java", "javascript", "programming", "software", "developer", "sql", "coding", "react", "golang"),
	bucket([]string{"Graphic Designer", "UI/UX Designer"},
		"design", "photoshop", "figma", "illustrator", "ui", "ux", "creative"),
	bucket([]string{"Teacher", "Education Coordinator"},
		"teaching", "curriculum", "tutoring", "classroom", "lesson", "education"),
	bucket([]string{"Healthcare Assistant", "Patient Care Coordinator"},
		"patient", "clinical", "nursing", "healthcare", "medical", "care"),
	bucket([]string{"Marketing Coordinator", "Digital Marketing Specialist"},
		"marketing", "seo", "social media", "content", "campaign", "branding"),
	bucket([]string{"Project Coordinator", "Operations Manager"},
		"management", "leadership", "project management", "team lead", "operations", "budget"),
}

var titleWords = regexp.MustCompile(`(?i)\b(?:engineer|developer|manager|analyst|designer|teacher|nurse|assistant|` +
	`specialist|consultant|coordinator|director|officer|administrator|technician|lead|intern|associate|` +
	`representative|executive|scientist|architect|accountant|supervisor)\b`)

var titleCut = regexp.MustCompile(`(?i)\s+(?:at|@)\s+|\s+[-–|]\s+|,`)

// alternativePositions picks up to three roles: the model's suggestions,
// else roles the candidate held, else roles their skills point to, else
// generic entry roles
func alternativePositions(suggested []string, r resume.ExtractedResume) []string {
	if alts := limitUnique(suggested); len(alts) > 0 {
		return alts
	}

	var held []string
	for _, w := range r.StructuredResume.WorkExperience {
		held = append(held, w.Title)
	}
	if alts := limitUnique(held); len(alts) > 0 {
		return alts
	}
	if alts := limitUnique(titleLines(segmentText(r.Segments, "experience", "employment", "work history"))); len(alts) > 0 {
		return alts
	}

	skillsText := strings.Join(r.StructuredResume.Skills.All(), " ") + "\n" +
		segmentText(r.Segments, "skills", "competencies")
	var fromSkills []string
	for _, b := range roleBuckets {
		if b.keywords.MatchString(skillsText) {
			fromSkills = append(fromSkills, b.titles...)
		}
	}
	if alts := limitUnique(fromSkills); len(alts) > 0 {
		return alts
	}

	return append([]string(nil), genericAlternatives...)
}

// titleLines finds short non-bullet lines naming a role, e.g.
// "Shift Supervisor at Cafe Nero" or "Acme - Backend Engineer"
func titleLines(section string) []string {
	var out []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.IndexAny(line, "-•*") == 0 || len(strings.Fields(line)) > 8 {
			continue
		}
		for _, part := range titleCut.Split(line, -1) {
			if titleWords.MatchString(part) {
				out = append(out, strings.TrimSpace(part))
				break
			}
		}
	}
	return out
}

func limitUnique(items []string) []string {
	var cleaned []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return firstN(dedupe(cleaned), maxAlternatives)
}
