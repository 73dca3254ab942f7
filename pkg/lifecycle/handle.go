package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Resource is a service handle the controller can acquire and release.
type Resource interface {
	Name() string
	Acquire(ctx context.Context) error
	Close(ctx context.Context) error
	State() HandleState
}

// ConnectFunc opens a client for a handle.
type ConnectFunc[C any] func(ctx context.Context) (C, error)

// CloseFunc releases a client previously returned by a ConnectFunc.
type CloseFunc[C any] func(ctx context.Context, client C) error

// Handle owns one process-wide client of type C.
// The client is created once, shared by all request handlers while connected
// and closed once.
type Handle[C any] struct {
	name    string
	connect ConnectFunc[C]
	close   CloseFunc[C]

	mu     sync.RWMutex
	client C
	state  HandleState
}

// NewHandle creates an unconnected handle.
// It panics on an empty name or a nil connect function.
func NewHandle[C any](name string, connect ConnectFunc[C], closeFn CloseFunc[C]) *Handle[C] {
	if name == "" {
		panic("lifecycle: handle name cannot be empty")
	}
	if connect == nil {
		panic("lifecycle: nil connect func for handle " + name)
	}
	return &Handle[C]{name: name, connect: connect, close: closeFn}
}

func (h *Handle[C]) Name() string { return h.name }

func (h *Handle[C]) State() HandleState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

// Acquire connects the handle. It is a no-op when the handle is already
// connected and fails with ErrHandleClosed once the handle has been closed.
// Connection errors, including a panicking connect func, are joined with
// ErrConnection and leave the handle unconnected.
func (h *Handle[C]) Acquire(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case HandleConnected:
		return nil
	case HandleClosed:
		return fmt.Errorf("%s: %w", h.name, ErrHandleClosed)
	}

	client, err := h.dial(ctx)
	if err != nil {
		return errors.Join(ErrConnection, fmt.Errorf("%s: %w", h.name, err))
	}
	h.client = client
	h.state = HandleConnected
	return nil
}

func (h *Handle[C]) dial(ctx context.Context) (client C, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero C
			client, err = zero, fmt.Errorf("panic in connect: %v", r)
		}
	}()
	return h.connect(ctx)
}

// Close releases the client. Closing an unconnected or closed handle is a no-op.
// The handle is marked closed even if the underlying close fails.
func (h *Handle[C]) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != HandleConnected {
		return nil
	}

	client := h.client
	var zero C
	h.client = zero
	h.state = HandleClosed

	if h.close == nil {
		return nil
	}
	if err := h.close(ctx, client); err != nil {
		return errors.Join(ErrRelease, fmt.Errorf("%s: %w", h.name, err))
	}
	return nil
}

// Client returns the live client. It fails unless the handle is connected.
func (h *Handle[C]) Client() (C, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch h.state {
	case HandleConnected:
		return h.client, nil
	case HandleClosed:
		var zero C
		return zero, fmt.Errorf("%s: %w", h.name, ErrHandleClosed)
	default:
		var zero C
		return zero, fmt.Errorf("%s: %w", h.name, ErrHandleNotConnected)
	}
}
