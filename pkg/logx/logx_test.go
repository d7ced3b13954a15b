package logx

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: LevelWarn, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{Level: LevelInfo, Format: "json"}) })

	Infof("hidden %d", 1)
	Warnf("shown %d", 2)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "shown 2", entry["message"])
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: LevelDebug, Format: "json", Output: &buf})
	t.Cleanup(func() { Init(Config{Level: LevelInfo, Format: "json"}) })

	With("op", "score").With("attempt", 2).Infof("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "score", entry["op"])
	assert.EqualValues(t, 2, entry["attempt"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}
