package embeddings

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Dimensions of text-embedding-3-small vectors, matching the jobs.embedding column
const Dimensions = 1536

// maxInputChars keeps a single input well under the model's token window
const maxInputChars = 24000

// Embedder turns text into vectors for semantic job matching
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator creates embeddings through the OpenAI embeddings endpoint
type Generator struct {
	client openai.Client
	model  string
}

var _ Embedder = (*Generator)(nil)

func NewGenerator(apiKey, baseURL, model string) *Generator {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = string(openai.EmbeddingModelTextEmbedding3Small)
	}
	return &Generator{
		client: openai.NewClient(opts...),
		model:  model,
	}
}

// Embed creates an embedding vector for text
func (g *Generator) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, errors.New("text cannot be empty")
	}
	out, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch embeds texts in one request. Empty inputs are rejected so the
// result stays index-aligned with texts.
func (g *Generator) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts provided")
	}
	inputs := make([]string, len(texts))
	for i, t := range texts {
		if t == "" {
			return nil, fmt.Errorf("text %d is empty", i)
		}
		inputs[i] = clip(t)
	}

	resp, err := g.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: inputs,
		},
		Model: openai.EmbeddingModel(g.model),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(resp.Data) != len(inputs) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(inputs), len(resp.Data))
	}

	out := make([][]float32, len(resp.Data))
	for _, data := range resp.Data {
		if data.Index < 0 || int(data.Index) >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range", data.Index)
		}
		out[data.Index] = toFloat32(data.Embedding)
	}
	return out, nil
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, f := range v {
		out[i] = float32(f)
	}
	return out
}

func clip(s string) string {
	if len(s) <= maxInputChars {
		return s
	}
	s = s[:maxInputChars]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
