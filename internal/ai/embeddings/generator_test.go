package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedBatchKeepsOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		var body struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "text-embedding-3-small", body.Model)
		assert.Equal(t, []string{"first", "second"}, body.Input)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"model":  body.Model,
			"data": []map[string]any{
				{"object": "embedding", "index": 1, "embedding": []float64{0, 1}},
				{"object": "embedding", "index": 0, "embedding": []float64{1, 0}},
			},
			"usage": map[string]any{"prompt_tokens": 2, "total_tokens": 2},
		})
	}))
	defer srv.Close()

	g := NewGenerator("sk-test", srv.URL+"/", "")
	out, err := g.EmbedBatch(context.Background(), []string{"first", "second"})

	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0}, {0, 1}}, out)
}

func TestEmbedRejectsEmpty(t *testing.T) {
	g := NewGenerator("sk-test", "http://127.0.0.1:1/", "")

	_, err := g.Embed(context.Background(), "")
	assert.Error(t, err)

	_, err = g.EmbedBatch(context.Background(), []string{"ok", ""})
	assert.Error(t, err)
}

func TestClipKeepsValidUTF8(t *testing.T) {
	long := strings.Repeat("é", maxInputChars)
	clipped := clip(long)
	assert.LessOrEqual(t, len(clipped), maxInputChars)
	assert.True(t, utf8.ValidString(clipped))
}
