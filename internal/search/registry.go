package search

import (
	"fmt"
	"sort"
	"sync"

	"github.com/planestic/ud-assistant/internal/config"
)

type Registry struct {
	factories map[string]EngineFactory
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[string]EngineFactory),
	}

	r.Register("tavily", NewTavilyEngine)

	return r
}

func (r *Registry) Register(engineType string, factory EngineFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[engineType] = factory
}

func (r *Registry) CreateEngine(engineType string, cfg config.WebSearchConfig) (Engine, error) {
	r.mu.RLock()
	factory, ok := r.factories[engineType]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown engine type: %s", engineType)
	}

	return factory(cfg)
}

func (r *Registry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
