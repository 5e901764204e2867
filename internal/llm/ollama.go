package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// OllamaClient calls a local Ollama server's generate endpoint.
// See: https://github.com/ollama/ollama/blob/main/docs/api.md
type OllamaClient struct {
	http    *http.Client
	model   string
	baseURL string
}

// NewOllamaClient creates an Ollama client. An empty baseURL falls back to
// the default local server address.
func NewOllamaClient(baseURL, model string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaClient{
		http:    &http.Client{Timeout: 120 * time.Second},
		model:   model,
		baseURL: baseURL,
	}
}

func (o *OllamaClient) Name() string { return "Ollama:" + o.model }
func (o *OllamaClient) Close() error { return nil }

type ollamaGenerateReq struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}
type ollamaGenerateResp struct {
	Response string `json:"response"`
}

// Generate sends the prompt as one non-streaming request and returns the
// response text.
func (o *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	b, _ := json.Marshal(ollamaGenerateReq{Model: o.model, Prompt: prompt})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errors.New("ollama: unexpected status " + resp.Status)
	}
	var out ollamaGenerateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.Response == "" {
		return "", ErrEmptyResponse
	}
	return out.Response, nil
}
