// Package registry keeps the provider clients a benchmark can route to.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/davidbz/llmbench/internal/domain"
)

// Registry implements domain.ProviderRegistry. Models are routed through a reverse
// index built from each client's SupportedModels at registration time.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]domain.ShapeClient
	models  map[string]string // model -> provider name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mu:      sync.RWMutex{},
		clients: make(map[string]domain.ShapeClient),
		models:  make(map[string]string),
	}
}

// Register adds a client. A model may only be served by one provider.
func (r *Registry) Register(ctx context.Context, client domain.ShapeClient) error {
	if client == nil {
		return errors.New("provider cannot be nil")
	}

	name := client.Name()
	if name == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.clients[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}

	models := client.SupportedModels(ctx)
	for _, model := range models {
		if owner, taken := r.models[model]; taken {
			return fmt.Errorf("model %s already served by provider %s", model, owner)
		}
	}

	r.clients[name] = client
	for _, model := range models {
		r.models[model] = name
	}

	return nil
}

// Get retrieves a client by provider name.
func (r *Registry) Get(_ context.Context, providerName string) (domain.ShapeClient, error) {
	if providerName == "" {
		return nil, errors.New("provider name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	client, exists := r.clients[providerName]
	if !exists {
		return nil, fmt.Errorf("provider %s not found", providerName)
	}

	return client, nil
}

// GetByModel retrieves the client serving a model. Models missing from the index
// are offered to each provider in name order.
func (r *Registry) GetByModel(ctx context.Context, model string) (domain.ShapeClient, error) {
	if model == "" {
		return nil, errors.New("model cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if name, indexed := r.models[model]; indexed {
		return r.clients[name], nil
	}

	for _, name := range r.sortedNames() {
		if client := r.clients[name]; client.IsModelSupported(ctx, model) {
			return client, nil
		}
	}

	return nil, fmt.Errorf("no provider found for model: %s", model)
}

// List returns registered provider names, sorted.
func (r *Registry) List(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(), nil
}

// sortedNames must be called with the lock held.
func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.clients))
	for name := range r.clients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
