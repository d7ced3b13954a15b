package analysis

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
	"github.com/Abraxas-365/careerpal/pkg/logx"
)

const (
	// HeaderSection holds text that precedes the first recognized heading
	HeaderSection = "Header"
	// FullResumeSection holds the whole text when no heading is recognized
	FullResumeSection = "Full Resume"
)

// Segmenter splits resume text into named sections
type Segmenter struct {
	llm llm.Completer
}

func NewSegmenter(c llm.Completer) *Segmenter {
	return &Segmenter{llm: c}
}

// Segment asks the model first and falls back to heading patterns on any failure
func (s *Segmenter) Segment(ctx context.Context, text string) map[string]string {
	log := logx.With("op", "segment")

	reply, err := s.llm.Complete(ctx, llm.Request{
		Operation:   "segment",
		System:      segmentSystemPrompt,
		User:        segmentUserPrompt + text,
		JSON:        true,
		Temperature: 0.1,
	})
	if err != nil {
		log.Warnf("falling back to heading patterns: %v", err)
		return SegmentByHeadings(text)
	}
	obj, err := llm.DecodeObject(reply)
	if err != nil {
		log.Warnf("falling back to heading patterns: %v", err)
		return SegmentByHeadings(text)
	}

	out := make(map[string]string, len(obj))
	for k, v := range obj {
		out[k] = asString(v)
	}
	return out
}

var headingPatterns = func() []*regexp.Regexp {
	headings := []string{
		`(?:professional[ \t]+)?summary`,
		`(?:career[ \t]+)?objective`,
		`work[ \t]+(?:experience|history)`,
		`professional[ \t]+experience`,
		`employment(?:[ \t]+history)?`,
		`education(?:al[ \t]+background)?`,
		`skills(?:[ \t]+&[ \t]+abilities)?`,
		`technical[ \t]+skills`,
		`(?:key[ \t]+)?competencies`,
		`(?:professional[ \t]+)?certifications`,
		`projects`,
		`publications`,
		`awards(?:[ \t]+(?:&|and)[ \t]+honors)?`,
		`languages`,
		`interests`,
		`volunteer(?:[ \t]+experience)?`,
		`additional[ \t]+information`,
		`references`,
	}
	out := make([]*regexp.Regexp, len(headings))
	for i, h := range headings {
		// a heading is alone on its line, optionally followed by a colon
		out[i] = regexp.MustCompile(`(?im)^[ \t]*(?:` + h + `)[ \t:\r]*$`)
	}
	return out
}()

type heading struct {
	start, end int
	name       string
}

// SegmentByHeadings splits text on well-known section headings. Text before
// the first heading goes to HeaderSection; with no headings the whole text is
// returned under FullResumeSection.
func SegmentByHeadings(text string) map[string]string {
	var found []heading
	for _, re := range headingPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			found = append(found, heading{
				start: loc[0],
				end:   loc[1],
				name:  strings.Trim(text[loc[0]:loc[1]], " \t\r\n:"),
			})
		}
	}
	if len(found) == 0 {
		return map[string]string{FullResumeSection: text}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].start != found[j].start {
			return found[i].start < found[j].start
		}
		return found[i].end > found[j].end
	})
	kept := found[:0]
	for _, h := range found {
		if len(kept) > 0 && h.start < kept[len(kept)-1].end {
			continue
		}
		kept = append(kept, h)
	}

	sections := make(map[string]string)
	if head := strings.TrimSpace(text[:kept[0].start]); head != "" {
		sections[HeaderSection] = head
	}
	for i, h := range kept {
		end := len(text)
		if i+1 < len(kept) {
			end = kept[i+1].start
		}
		body := strings.TrimSpace(text[h.end:end])
		if prev, ok := sections[h.name]; ok {
			body = prev + "\n\n" + body
		}
		sections[h.name] = body
	}
	return sections
}
