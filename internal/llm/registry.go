package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrUnknownProvider = errors.New("llm: unknown provider")
	ErrInvalidSelector = errors.New("llm: invalid model selector")
)

// Factory builds a client for one provider given the bare model name.
type Factory func(ctx context.Context, model string) (Client, error)

// Registry resolves "provider:model" selectors to clients. Each client is
// constructed on first use and reused for later requests; evicted clients
// are closed.
type Registry struct {
	mu        sync.Mutex
	factories map[string]Factory
	def       string
	clients   *lru.Cache[string, Client]
}

// NewRegistry creates a registry holding at most size live clients. The
// default selector is used when a request carries none.
func NewRegistry(defaultSelector string, size int) (*Registry, error) {
	if size <= 0 {
		size = 8
	}
	cache, err := lru.NewWithEvict[string, Client](size, func(_ string, c Client) {
		_ = c.Close()
	})
	if err != nil {
		return nil, err
	}
	return &Registry{
		factories: map[string]Factory{},
		def:       strings.TrimSpace(defaultSelector),
		clients:   cache,
	}, nil
}

// Register installs the factory for a provider prefix, e.g. "ollama".
func (r *Registry) Register(provider string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(strings.TrimSpace(provider))] = f
}

// Resolve returns the client for selector, building it on first use.
// An empty selector resolves to the registry default.
func (r *Registry) Resolve(ctx context.Context, selector string) (Client, error) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		selector = r.def
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.clients.Get(selector); ok {
		return c, nil
	}
	provider, model, ok := strings.Cut(selector, ":")
	if !ok || strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSelector, selector)
	}
	f, ok := r.factories[strings.ToLower(strings.TrimSpace(provider))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	c, err := f(ctx, strings.TrimSpace(model))
	if err != nil {
		return nil, err
	}
	r.clients.Add(selector, c)
	return c, nil
}

// Close evicts and closes every cached client.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients.Purge()
}
