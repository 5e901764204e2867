package llm

import "context"

// NewDefaultRegistry wires the standard provider set: the local Ollama
// default, the hosted Groq and Gemini alternatives, and the offline fake.
func NewDefaultRegistry(defaultModel, ollamaBaseURL, groqAPIKey, geminiAPIKey string) (*Registry, error) {
	r, err := NewRegistry(defaultModel, 8)
	if err != nil {
		return nil, err
	}
	r.Register("ollama", func(_ context.Context, model string) (Client, error) {
		return NewOllamaClient(ollamaBaseURL, model), nil
	})
	r.Register("groq", func(_ context.Context, model string) (Client, error) {
		return NewGroqClient(groqAPIKey, model)
	})
	r.Register("gemini", func(ctx context.Context, model string) (Client, error) {
		return NewGeminiClient(ctx, geminiAPIKey, model)
	})
	r.Register("fake", func(_ context.Context, _ string) (Client, error) {
		return NewFakeClient(), nil
	})
	return r, nil
}
