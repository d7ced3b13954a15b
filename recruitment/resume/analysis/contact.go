package analysis

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/Abraxas-365/careerpal/recruitment/resume"
)

// strategy tries to find one contact field in text
type strategy func(ctx context.Context, text string) (string, bool)

// firstOf runs strategies in order and returns the first hit, or NotProvided
func firstOf(ctx context.Context, text string, strategies ...strategy) string {
	for _, s := range strategies {
		if v, ok := s(ctx, text); ok {
			return v
		}
	}
	return resume.NotProvided
}

// ContactExtractor pulls contact details out of raw resume text with
// pattern heuristics, asking the model only for what the patterns miss
type ContactExtractor struct {
	llm llm.Completer
}

func NewContactExtractor(c llm.Completer) *ContactExtractor {
	return &ContactExtractor{llm: c}
}

// Extract never fails; fields that cannot be found are resume.NotProvided
func (e *ContactExtractor) Extract(ctx context.Context, text string) resume.ContactDetails {
	details := resume.ContactDetails{
		Name:        firstOf(ctx, text, nameFromHeading, e.nameFromModel),
		PhoneNumber: firstOf(ctx, text, phone),
		Email:       firstOf(ctx, text, email),
		Location:    firstOf(ctx, text, locationStrategies...),
		LinkedIn:    firstOf(ctx, text, linkedInStrategies...),
		GitHub:      firstOf(ctx, text, gitHubStrategies...),
	}

	if details.LinkedIn == resume.NotProvided || details.GitHub == resume.NotProvided {
		e.fillSocialFromModel(ctx, text, &details)
	}
	details.Normalize()
	return details
}

// ============================================================================
// Name
// ============================================================================

// nameFromHeading looks for a 2-4 word capitalized line among the first five
func nameFromHeading(_ context.Context, text string) (string, bool) {
	seen := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if seen++; seen > 5 {
			break
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		if allCapitalized(words) {
			return line, true
		}
	}
	return "", false
}

func allCapitalized(words []string) bool {
	for _, w := range words {
		r := []rune(w)
		if !unicode.IsUpper(r[0]) {
			return false
		}
	}
	return true
}

var namePrefixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^the name is\s*`),
	regexp.MustCompile(`(?i)^name:?\s*`),
}

func (e *ContactExtractor) nameFromModel(ctx context.Context, text string) (string, bool) {
	reply, err := e.llm.Complete(ctx, llm.Request{
		Operation:   "contact.name",
		System:      nameSystemPrompt,
		User:        nameUserPrompt + clipRunes(text, 1000),
		Temperature: 0.1,
		MaxTokens:   20,
	})
	if err != nil {
		logx.With("op", "contact.name").Warnf("name lookup failed: %v", err)
		return "", false
	}

	name := strings.TrimSpace(reply)
	for _, p := range namePrefixes {
		name = p.ReplaceAllString(name, "")
	}
	name = strings.Trim(strings.TrimSpace(name), `"'.`)
	if name == "" || strings.EqualFold(name, "unknown") {
		return "", false
	}
	return name, true
}

// ============================================================================
// Phone and email
// ============================================================================

var (
	phonePattern = regexp.MustCompile(`\+?[\d \t()-]{7,20}`)
	emailPattern = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
)

func phone(_ context.Context, text string) (string, bool) {
	for _, m := range phonePattern.FindAllString(text, -1) {
		digits := 0
		for _, r := range m {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if digits >= 7 {
			return strings.TrimSpace(m), true
		}
	}
	return "", false
}

func email(_ context.Context, text string) (string, bool) {
	m := emailPattern.FindString(text)
	return m, m != ""
}

// ============================================================================
// Social profiles
// ============================================================================

var (
	linkedInStrategies = []strategy{
		match(`(?i)https?://(?:www\.)?linkedin\.com/in/[\w-]+/?`),
		match(`(?i)www\.linkedin\.com/in/[\w-]+/?`),
		match(`(?i)linkedin\.com/in/[\w-]+/?`),
		match(`(?i)LinkedIn:?[ \t]*(?:https?://(?:www\.)?linkedin\.com/in/[\w-]+/?|[\w-]+)`),
		nearbyURL("linkedin"),
	}
	gitHubStrategies = []strategy{
		match(`(?i)https?://(?:www\.)?github\.com/[\w-]+/?`),
		match(`(?i)github\.com/[\w-]+/?`),
		match(`(?i)GitHub:?[ \t]*(?:https?://(?:www\.)?github\.com/[\w-]+/?|[\w-]+)`),
		nearbyURL("github"),
	}
)

// match returns the whole first match of pattern
func match(pattern string) strategy {
	re := regexp.MustCompile(pattern)
	return func(_ context.Context, text string) (string, bool) {
		m := re.FindString(text)
		return m, m != ""
	}
}

var urlPattern = regexp.MustCompile(`https?://\S+`)

// nearbyURL finds a URL mentioning site on any line that names the site, or
// on the line before or after it
func nearbyURL(site string) strategy {
	mention := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(site) + `\b`)
	return func(_ context.Context, text string) (string, bool) {
		if !mention.MatchString(text) {
			return "", false
		}
		lines := strings.Split(text, "\n")
		for i, line := range lines {
			if !mention.MatchString(line) {
				continue
			}
			for _, j := range []int{i, i - 1, i + 1} {
				if j < 0 || j >= len(lines) {
					continue
				}
				for _, u := range urlPattern.FindAllString(lines[j], -1) {
					if strings.Contains(strings.ToLower(u), site) {
						return u, true
					}
				}
			}
		}
		return "", false
	}
}

type socialProfiles struct {
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

var absentValues = map[string]bool{
	"": true, "none": true, "null": true, "n/a": true,
	"not found": true, "not provided": true,
}

func (e *ContactExtractor) fillSocialFromModel(ctx context.Context, text string, d *resume.ContactDetails) {
	log := logx.With("op", "contact.social")
	reply, err := e.llm.Complete(ctx, llm.Request{
		Operation:   "contact.social",
		System:      socialSystemPrompt,
		User:        socialUserPrompt + text,
		JSON:        true,
		Temperature: 0.1,
	})
	if err != nil {
		log.Warnf("social lookup failed: %v", err)
		return
	}
	found, err := llm.Decode[socialProfiles](reply)
	if err != nil {
		log.Warnf("social lookup returned unparseable content: %v", err)
		return
	}

	if d.LinkedIn == resume.NotProvided {
		if v := strings.TrimSpace(found.LinkedIn); !absentValues[strings.ToLower(v)] {
			d.LinkedIn = v
		}
	}
	if d.GitHub == resume.NotProvided {
		if v := strings.TrimSpace(found.GitHub); !absentValues[strings.ToLower(v)] {
			d.GitHub = v
		}
	}
}

// clipRunes cuts s to at most n runes
func clipRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
