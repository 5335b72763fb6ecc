// Package testutils provides helpers shared by package tests.
package testutils

import (
	"context"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// FakeModel is an llms.Model that replays canned replies and records every
// request it receives.
type FakeModel struct {
	// Replies are returned in order; the last one repeats.
	Replies []string
	// Errs, when set at the index of a call, fail that call instead.
	Errs []error

	mu    sync.Mutex
	calls [][]llms.MessageContent
}

func NewFakeModel(replies ...string) *FakeModel {
	return &FakeModel{Replies: replies}
}

func (f *FakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := len(f.calls)
	f.calls = append(f.calls, messages)
	if i < len(f.Errs) && f.Errs[i] != nil {
		return nil, f.Errs[i]
	}
	if len(f.Replies) == 0 {
		return &llms.ContentResponse{}, nil
	}
	reply := f.Replies[min(i, len(f.Replies)-1)]
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (f *FakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// Calls returns the number of requests made so far.
func (f *FakeModel) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// Text returns the text of message j in call i.
func (f *FakeModel) Text(i, j int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out string
	for _, p := range f.calls[i][j].Parts {
		if tc, ok := p.(llms.TextContent); ok {
			out += tc.Text
		}
	}
	return out
}

// Roles returns the message roles of call i.
func (f *FakeModel) Roles(i int) []llms.ChatMessageType {
	f.mu.Lock()
	defer f.mu.Unlock()
	roles := make([]llms.ChatMessageType, len(f.calls[i]))
	for j, m := range f.calls[i] {
		roles[j] = m.Role
	}
	return roles
}
