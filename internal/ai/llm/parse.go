package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSON strips markdown code fences and any prose around the outermost JSON value
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.Index(text, "\n"); idx >= 0 {
			first := text[:idx]
			if len(first) < 20 && !strings.ContainsAny(first, " {[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		return text
	}

	// prose preamble: cut to the outermost object or array
	open := strings.IndexAny(text, "{[")
	if open < 0 {
		return text
	}
	closer := "}"
	if text[open] == '[' {
		closer = "]"
	}
	if end := strings.LastIndex(text, closer); end > open {
		return text[open : end+1]
	}
	return text
}

// Decode parses the model's reply into T. The raw text is tried first, then
// once more after fence stripping. Failure is ErrUpstreamParse.
func Decode[T any](text string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(text), &out); err == nil {
		return out, nil
	}

	var cleaned T
	if err := json.Unmarshal([]byte(CleanJSON(text)), &cleaned); err != nil {
		var zero T
		return zero, ErrRegistry.NewWithCause(ErrUpstreamParse, err).
			WithDetail("response", truncate(text, 200))
	}
	return cleaned, nil
}

// DecodeObject decodes a JSON object whose values are kept raw. An empty object is a parse failure.
func DecodeObject(text string) (map[string]json.RawMessage, error) {
	obj, err := Decode[map[string]json.RawMessage](text)
	if err != nil {
		return nil, err
	}
	if len(obj) == 0 {
		return nil, ErrParse().WithDetail("response", truncate(text, 200))
	}
	return obj, nil
}

// truncate keeps the first n runes of s
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
