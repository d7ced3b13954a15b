package analysis

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/pkg/logx"
)

// SkillExtractor lists the skills mentioned in free text
type SkillExtractor struct {
	llm llm.Completer
}

func NewSkillExtractor(c llm.Completer) *SkillExtractor {
	return &SkillExtractor{llm: c}
}

var bulletItem = regexp.MustCompile(`[-•*]\s*([^•\n]+)`)

// Extract returns an empty list when the service is unavailable. A reply that
// is not a JSON list is read as bullet lines.
func (x *SkillExtractor) Extract(ctx context.Context, text string) []string {
	log := logx.With("op", "skills")
	reply, err := x.llm.Complete(ctx, llm.Request{
		Operation:   "skills",
		System:      skillsSystemPrompt,
		User:        skillsUserPrompt + text,
		Temperature: 0.1,
	})
	if err != nil {
		log.Warnf("skill extraction failed: %v", err)
		return []string{}
	}

	if raw, err := llm.Decode[json.RawMessage](reply); err == nil {
		switch kind(raw) {
		case '[':
			return dedupe(asStringList(raw))
		case '{':
			var obj map[string]json.RawMessage
			if json.Unmarshal(raw, &obj) == nil {
				if v, ok := normalizeKeys(obj).pick("skills", "technical_skills"); ok {
					return dedupe(asStringList(v))
				}
			}
		}
	}

	log.Warnf("skill list unparseable, reading bullet lines")
	out := []string{}
	for _, m := range bulletItem.FindAllStringSubmatch(reply, -1) {
		if s := strings.TrimSpace(m[1]); s != "" {
			out = append(out, s)
		}
	}
	return dedupe(out)
}

// dedupe drops case-insensitive repeats, keeping first occurrences
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, s := range items {
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
