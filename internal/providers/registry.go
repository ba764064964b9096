package providers

import "sync"

// Registry holds the active provider. It is created once in main and passed
// to every consumer.
type Registry struct {
	mu      sync.RWMutex
	current Provider
}

func NewRegistry(initial Provider) *Registry {
	return &Registry{current: initial}
}

func (r *Registry) Get() Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Set swaps the active provider. A nil provider is ignored.
func (r *Registry) Set(p Provider) {
	if p == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = p
}
