package content

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/jonathan/archinews-creator/internal/llm"
)

// fakeClient records requests and answers through respond.
type fakeClient struct {
	mu       sync.Mutex
	requests []llm.Request
	respond  func(req llm.Request) (string, error)
}

func (f *fakeClient) Generate(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	return f.respond(req)
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return string(tier) }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) calls() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}

var wordTargetPattern = regexp.MustCompile(`about (\d+) words long`)

// articleResponder answers with a headline and a body of exactly the requested word count.
func articleResponder(req llm.Request) (string, error) {
	n := 10
	if m := wordTargetPattern.FindStringSubmatch(req.Prompt); m != nil {
		n, _ = strconv.Atoi(m[1])
	}
	return "Headline: Oakview School opens its doors\n" + strings.TrimSpace(strings.Repeat("word ", n)), nil
}
