// Package aitest provides a scripted ai.Generator for tests.
package aitest

import (
	"context"
	"errors"
	"sync"
)

var ErrUnavailable = errors.New("generator unavailable")

type Reply struct {
	Text string
	Err  error
}

// Scripted returns its replies in order. Once they run out every call
// fails with ErrUnavailable.
type Scripted struct {
	mu      sync.Mutex
	replies []Reply
	prompts []string
}

func New(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

// Failing fails every call.
func Failing() *Scripted {
	return &Scripted{}
}

func (s *Scripted) Generate(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if len(s.replies) == 0 {
		return "", ErrUnavailable
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	return r.Text, r.Err
}

func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.prompts)
}

func (s *Scripted) Prompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
