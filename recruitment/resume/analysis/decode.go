package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Model replies rarely agree on key spelling or value shape. These helpers
// read a decoded object loosely and always produce a value.

type object map[string]json.RawMessage

// normalizeKeys lower-cases keys and folds spaces and hyphens to underscores
func normalizeKeys(obj map[string]json.RawMessage) object {
	out := make(object, len(obj))
	for k, v := range obj {
		key := strings.ToLower(strings.TrimSpace(k))
		key = strings.NewReplacer(" ", "_", "-", "_", "&", "and").Replace(key)
		if _, exists := out[key]; !exists {
			out[key] = v
		}
	}
	return out
}

// pick returns the first present, non-null value among keys
func (o object) pick(keys ...string) (json.RawMessage, bool) {
	for _, k := range keys {
		if v, ok := o[k]; ok && !isNull(v) {
			return v, true
		}
	}
	return nil, false
}

func (o object) str(keys ...string) string {
	v, ok := o.pick(keys...)
	if !ok {
		return ""
	}
	return asString(v)
}

func (o object) list(keys ...string) []string {
	v, ok := o.pick(keys...)
	if !ok {
		return []string{}
	}
	return asStringList(v)
}

func isNull(raw json.RawMessage) bool {
	t := bytes.TrimSpace(raw)
	return len(t) == 0 || bytes.Equal(t, []byte("null"))
}

func kind(raw json.RawMessage) byte {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return 0
	}
	return t[0]
}

// asString renders any JSON value as text: strings verbatim, arrays joined
// by newline, anything else as compact JSON
func asString(raw json.RawMessage) string {
	switch kind(raw) {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	case '[':
		return strings.Join(asStringList(raw), "\n")
	case 0, 'n':
		return ""
	}
	return compact(raw)
}

// asStringList reads a list of strings. Non-string items are rendered with
// asString; a bare string becomes a one-element list.
func asStringList(raw json.RawMessage) []string {
	out := []string{}
	switch kind(raw) {
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			return out
		}
		for _, item := range items {
			var s string
			if kind(item) == '{' {
				s = objectLabel(item)
			} else {
				s = asString(item)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case '"':
		if s := strings.TrimSpace(asString(raw)); s != "" {
			out = append(out, s)
		}
	case '{':
		if s := objectLabel(raw); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// objectLabel picks a human-readable field out of an object item, falling
// back to compact JSON
func objectLabel(raw json.RawMessage) string {
	var obj map[string]json.RawMessage
	if json.Unmarshal(raw, &obj) != nil {
		return compact(raw)
	}
	if s := normalizeKeys(obj).str("name", "title", "skill", "question", "text", "value"); s != "" {
		return s
	}
	return compact(raw)
}

// asObjects reads a list of objects; a single object becomes a one-element list
func asObjects(raw json.RawMessage) []object {
	switch kind(raw) {
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(raw, &items) != nil {
			return nil
		}
		out := make([]object, 0, len(items))
		for _, item := range items {
			var obj map[string]json.RawMessage
			switch kind(item) {
			case '{':
				if json.Unmarshal(item, &obj) == nil {
					out = append(out, normalizeKeys(obj))
				}
			case '"':
				// a bare string item is treated as a title
				out = append(out, object{"title": item})
			}
		}
		return out
	case '{':
		var obj map[string]json.RawMessage
		if json.Unmarshal(raw, &obj) == nil {
			return []object{normalizeKeys(obj)}
		}
	}
	return nil
}

// asNumber reads a JSON number or numeric string ("72", "72%")
func asNumber(raw json.RawMessage) (float64, bool) {
	switch kind(raw) {
	case '"':
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return 0, false
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "%")
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case 0, '[', '{', 't', 'f', 'n':
		return 0, false
	}
	var f float64
	if json.Unmarshal(raw, &f) != nil {
		return 0, false
	}
	return f, true
}

func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if json.Compact(&buf, raw) != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
