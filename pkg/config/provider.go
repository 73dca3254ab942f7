package config

import (
	"context"
	"sync"
)

// Provider resolves a settings struct once and serves the same copy for the
// rest of the process. It is passed explicitly to whoever needs settings.
type Provider[T any] struct {
	files []string

	once     sync.Once
	mu       sync.RWMutex
	value    T
	err      error
	resolved bool
}

// NewProvider returns a provider that loads files (see LoadEnv) before parsing.
func NewProvider[T any](files ...string) *Provider[T] {
	return &Provider[T]{files: files}
}

// Resolve loads and parses the settings on the first call. Later calls return
// the outcome of the first one, including its error.
func (p *Provider[T]) Resolve(_ context.Context) error {
	p.once.Do(func() {
		var v T
		err := LoadEnv(p.files...)
		if err == nil {
			err = Load(&v)
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		if err != nil {
			p.err = err
			return
		}
		p.value = v
		p.resolved = true
	})

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

// Get returns a copy of the resolved settings.
func (p *Provider[T]) Get() (T, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.err != nil {
		var zero T
		return zero, p.err
	}
	if !p.resolved {
		var zero T
		return zero, ErrConfigNotLoaded
	}
	return p.value, nil
}

// Static returns an already resolved provider holding v. Useful in tests and
// when settings come from somewhere other than the environment.
func Static[T any](v T) *Provider[T] {
	p := &Provider[T]{value: v, resolved: true}
	p.once.Do(func() {})
	return p
}
