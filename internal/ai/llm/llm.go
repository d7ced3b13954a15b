// Package llm wraps the external text-understanding service. Callers build a
// Request, get raw text back from a Completer and decode it with Decode.
package llm

import "context"

// Request is one system+user exchange with the model
type Request struct {
	// Operation names the caller in logs, e.g. "score"
	Operation   string
	System      string
	User        string
	JSON        bool
	Temperature float64
	MaxTokens   int
}

// Completer returns the raw text of the model's reply
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to Completer
type CompleterFunc func(ctx context.Context, req Request) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
