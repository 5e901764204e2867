// Package llm provides the model backends behind chat requests: a local
// Ollama default, hosted Groq and Gemini alternatives, a deterministic fake
// for offline use, and a registry that builds each client once per selector.
package llm

import (
	"context"
	"errors"
)

// ErrEmptyResponse reports a backend that answered without any text.
var ErrEmptyResponse = errors.New("llm: empty response from model")

// Client is one model backend.
type Client interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
