package instagram

import (
	"context"

	"github.com/jonathan/archinews-creator/internal/llm"
)

type fakeClient struct {
	requests []llm.Request
	response string
	err      error
}

func (f *fakeClient) Generate(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	return f.response, f.err
}

func (f *fakeClient) GetModel(tier llm.ModelTier) string { return string(tier) }

func (f *fakeClient) Close() error { return nil }
