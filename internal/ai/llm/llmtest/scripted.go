// Package llmtest provides a scripted llm.Completer for tests.
package llmtest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Abraxas-365/careerpal/internal/ai/llm"
)

// Reply is one canned answer. Err takes precedence over Text.
type Reply struct {
	Text string
	Err  error
}

// Scripted answers requests by operation name. Operations without a reply
// fail with an unavailable error.
type Scripted struct {
	mu       sync.Mutex
	replies  map[string][]Reply
	Requests []llm.Request
}

func New() *Scripted {
	return &Scripted{replies: make(map[string][]Reply)}
}

// On queues text for the next call of op
func (s *Scripted) On(op, text string) *Scripted {
	return s.queue(op, Reply{Text: text})
}

// Fail queues a failure for the next call of op
func (s *Scripted) Fail(op string) *Scripted {
	return s.queue(op, Reply{Err: llm.ErrRegistry.NewWithCause(llm.ErrUpstreamUnavailable, errors.New("connection refused"))})
}

func (s *Scripted) queue(op string, r Reply) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[op] = append(s.replies[op], r)
	return s
}

func (s *Scripted) Complete(_ context.Context, req llm.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Requests = append(s.Requests, req)

	queue := s.replies[req.Operation]
	if len(queue) == 0 {
		return "", llm.ErrRegistry.NewWithCause(llm.ErrUpstreamUnavailable, errors.New("no scripted reply for "+req.Operation))
	}
	r := queue[0]
	// the last reply sticks so repeated calls keep answering
	if len(queue) > 1 {
		s.replies[req.Operation] = queue[1:]
	}
	return r.Text, r.Err
}

// Calls counts requests made for op
func (s *Scripted) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.Requests {
		if r.Operation == op {
			n++
		}
	}
	return n
}

// LastUser returns the user prompt of the most recent request for op
func (s *Scripted) LastUser(op string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.Requests) - 1; i >= 0; i-- {
		if s.Requests[i].Operation == op {
			return s.Requests[i].User
		}
	}
	return ""
}

// Contains reports whether any prompt for op contains substr
func (s *Scripted) Contains(op, substr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.Requests {
		if r.Operation == op && (strings.Contains(r.User, substr) || strings.Contains(r.System, substr)) {
			return true
		}
	}
	return false
}
