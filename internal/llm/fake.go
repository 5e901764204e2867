package llm

import "context"

// FakeClient returns scripted responses in order, for offline use and tests.
// With no script it answers with a fixed placeholder.
type FakeClient struct {
	Responses []string
	next      int
}

func NewFakeClient(responses ...string) *FakeClient {
	return &FakeClient{Responses: responses}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Generate(_ context.Context, _ string) (string, error) {
	if len(f.Responses) == 0 {
		return "FakeLLM has no scripted response.", nil
	}
	out := f.Responses[f.next%len(f.Responses)]
	f.next++
	return out, nil
}
