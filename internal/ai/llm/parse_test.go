package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"json fence", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic fence", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"fence with language", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain", `{"key": "value"}`, `{"key": "value"}`},
		{"preamble", "Here is the JSON:\n{\"company\": \"Acme\"}\nThanks", `{"company": "Acme"}`},
		{"array preamble", "Skills: [\"Go\", \"SQL\"]", `["Go", "SQL"]`},
		{"no json", "sorry, I can't", "sorry, I can't"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	type payload struct {
		Score int `json:"score"`
	}

	t.Run("plain json", func(t *testing.T) {
		p, err := Decode[payload](`{"score": 71}`)
		require.NoError(t, err)
		assert.Equal(t, 71, p.Score)
	})

	t.Run("fenced json", func(t *testing.T) {
		p, err := Decode[payload]("```json\n{\"score\": 12}\n```")
		require.NoError(t, err)
		assert.Equal(t, 12, p.Score)
	})

	t.Run("garbage is a parse error", func(t *testing.T) {
		_, err := Decode[payload]("not json at all")
		require.Error(t, err)
		assert.True(t, IsParseError(err))
	})
}

func TestDecodeObjectRejectsEmpty(t *testing.T) {
	_, err := DecodeObject("{}")
	require.Error(t, err)
	assert.True(t, IsParseError(err))

	obj, err := DecodeObject(`{"Summary": "hi"}`)
	require.NoError(t, err)
	assert.Contains(t, obj, "Summary")
}

func TestTruncateKeepsWholeRunes(t *testing.T) {
	s := strings.Repeat("é", 150)

	got := truncate(s, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, s, got, "150 runes fit in 200")

	got = truncate(strings.Repeat("日本", 150), 201)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 201, utf8.RuneCountInString(strings.TrimSuffix(got, "...")))
}
