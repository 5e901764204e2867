package llm

import (
	"context"
	"time"

	genai "google.golang.org/genai"
)

// GeminiClient is a thin wrapper around the official genai client.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// NewGeminiClient creates a Gemini client. An empty apiKey lets the genai
// SDK resolve credentials from its own environment.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

func (g *GeminiClient) Name() string { return "Gemini:" + g.model }
func (g *GeminiClient) Close() error { return nil }

// Generate sends the prompt and returns the first candidate's text, retrying
// transient failures with exponential backoff.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		resp, err := g.cli.Models.GenerateContent(ctx, g.model,
			[]*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}},
			nil,
		)
		if err != nil {
			lastErr = err
		} else if text, terr := candidateText(resp); terr != nil {
			lastErr = terr
		} else {
			return text, nil
		}
		if attempt < 2 {
			time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
		}
	}
	return "", lastErr
}

// candidateText pulls the first candidate's text out of a response. Safety
// blocks and empty candidates leave Content nil, so every level is checked
// before indexing into it.
func candidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	return content.Parts[0].Text, nil
}
