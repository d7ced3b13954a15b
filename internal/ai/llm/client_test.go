package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completionBody(content string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 0,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	}
}

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientComplete(t *testing.T) {
	var got map[string]any
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody(`{"ok": true}`))
	})

	c := NewClient(Options{APIKey: "sk-test", BaseURL: srv.URL + "/", Timeout: time.Second})
	out, err := c.Complete(context.Background(), Request{
		Operation:   "test",
		System:      "sys",
		User:        "user",
		JSON:        true,
		Temperature: 0.2,
		MaxTokens:   50,
	})

	require.NoError(t, err)
	assert.Equal(t, `{"ok": true}`, out)
	assert.Equal(t, "gpt-4o-mini", got["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, got["response_format"])
	assert.Len(t, got["messages"], 2)
}

func TestClientRetriesOnceOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody("second time lucky"))
	})

	c := NewClient(Options{APIKey: "sk-test", BaseURL: srv.URL + "/", Retry: true, Timeout: time.Second})
	out, err := c.Complete(context.Background(), Request{Operation: "retry"})

	require.NoError(t, err)
	assert.Equal(t, "second time lucky", out)
	assert.EqualValues(t, 2, calls.Load())
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "bad key", "type": "invalid_request_error"}}`))
	})

	c := NewClient(Options{APIKey: "sk-bad", BaseURL: srv.URL + "/", Retry: true, Timeout: time.Second})
	_, err := c.Complete(context.Background(), Request{Operation: "auth"})

	require.Error(t, err)
	assert.True(t, errx.IsCode(err, ErrUpstreamUnavailable))
	assert.EqualValues(t, 1, calls.Load())
}

func TestClientWithoutRetryFailsFast(t *testing.T) {
	var calls atomic.Int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	c := NewClient(Options{APIKey: "sk-test", BaseURL: srv.URL + "/", Timeout: time.Second})
	_, err := c.Complete(context.Background(), Request{Operation: "once"})

	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestPerMinute(t *testing.T) {
	assert.Equal(t, 60, perMinute(120).Burst())
	assert.Equal(t, 1, perMinute(1).Burst())
	assert.InDelta(t, 2.0, float64(perMinute(120).Limit()), 1e-9)
}

func TestClientThrottlesRequests(t *testing.T) {
	var calls int32
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(completionBody(`{}`))
	})
	c := NewClient(Options{APIKey: "sk-test", BaseURL: srv.URL + "/", Timeout: time.Second, RequestsPerMinute: 1})

	_, err := c.Complete(context.Background(), Request{Operation: "first", User: "u"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Complete(ctx, Request{Operation: "second", User: "u"})

	assert.True(t, errx.IsCode(err, ErrUpstreamUnavailable))
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}
