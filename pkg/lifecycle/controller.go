package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rehabflow/backend/pkg/logger"
)

// Controller sequences handle acquisition before the server accepts traffic
// and handle release after it stops.
type Controller struct {
	cfg *config
	log *slog.Logger

	mu       sync.Mutex
	state    State
	acquired []Resource

	startDone chan struct{}
	stopOnce  sync.Once
}

// New returns a controller in the Uninitialized state.
func New(opts ...Option) *Controller {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.logger
	if log == nil {
		log = logger.Noop()
	}
	return &Controller{
		cfg:       cfg,
		log:       log.With(logger.Component("lifecycle")),
		startDone: make(chan struct{}),
	}
}

// Configure applies opts to a controller that has not started yet. It fails
// with ErrAlreadyStarted or ErrStopped afterwards.
func (c *Controller) Configure(opts ...Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case StateUninitialized:
	case StateStopped:
		return ErrStopped
	default:
		return ErrAlreadyStarted
	}
	for _, opt := range opts {
		opt(c.cfg)
	}
	return nil
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Start resolves settings and acquires every handle in declared order.
//
// The first failure aborts the sequence: handles acquired so far are released
// in reverse order, the controller moves to Stopped and the error is returned.
// Acquisition runs on a context detached from ctx cancellation so a shutdown
// signal never interrupts a half-finished acquisition; the start timeout still
// applies. Start runs at most once.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateUninitialized:
		c.setState(StateStarting)
	case StateStopped:
		c.mu.Unlock()
		return ErrStopped
	default:
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.mu.Unlock()
	defer close(c.startDone)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.startTimeout)
	defer cancel()

	if c.cfg.resolve != nil {
		if err := c.resolveSettings(ctx); err != nil {
			err = errors.Join(ErrConfiguration, err)
			c.log.ErrorContext(ctx, "Failed to resolve settings", logger.Error(err))
			c.abort(ctx)
			return err
		}
	}

	for _, r := range c.cfg.resources {
		if err := r.Acquire(ctx); err != nil {
			c.log.ErrorContext(ctx, "Failed to acquire service handle",
				logger.Handle(r.Name()),
				logger.Error(err),
			)
			c.abort(ctx)
			return err
		}
		c.mu.Lock()
		c.acquired = append(c.acquired, r)
		c.mu.Unlock()
		c.log.DebugContext(ctx, "Service handle acquired", logger.Handle(r.Name()))
	}

	c.mu.Lock()
	c.setState(StateReady)
	c.mu.Unlock()

	c.log.InfoContext(ctx, "All service connections established", logger.State(StateReady.String()))
	return nil
}

// Stop releases every acquired handle and moves the controller to Stopped.
//
// A Stop that arrives while Start is running waits for Start to finish first.
// Release failures are logged and never abort the remaining releases.
// Only the first call has any effect.
func (c *Controller) Stop(ctx context.Context) {
	c.stopOnce.Do(func() { c.stop(ctx) })
}

func (c *Controller) stop(ctx context.Context) {
	c.mu.Lock()
	if c.state == StateUninitialized {
		c.setState(StateStopped)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	<-c.startDone

	c.mu.Lock()
	if c.state != StateReady {
		// Start failed and already rolled back.
		c.mu.Unlock()
		return
	}
	c.setState(StateStopping)
	acquired := c.acquired
	c.acquired = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.cfg.stopTimeout)
	defer cancel()

	c.release(ctx, acquired)

	c.mu.Lock()
	c.setState(StateStopped)
	c.mu.Unlock()

	c.log.InfoContext(ctx, "Service shut down cleanly", logger.State(StateStopped.String()))
}

// Healthcheck returns a check that fails unless the controller is Ready.
func (c *Controller) Healthcheck() func(context.Context) error {
	return func(context.Context) error {
		if s := c.State(); s != StateReady {
			return fmt.Errorf("%w: state %s", ErrNotReady, s)
		}
		return nil
	}
}

func (c *Controller) resolveSettings(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in settings resolver: %v", r)
		}
	}()
	return c.cfg.resolve(ctx)
}

// abort rolls back a failed start. Caller must not hold mu.
func (c *Controller) abort(ctx context.Context) {
	c.mu.Lock()
	acquired := c.acquired
	c.acquired = nil
	c.mu.Unlock()

	c.release(ctx, acquired)

	c.mu.Lock()
	c.setState(StateStopped)
	c.mu.Unlock()
}

// release closes rs in reverse order, best-effort.
func (c *Controller) release(ctx context.Context, rs []Resource) {
	for i := len(rs) - 1; i >= 0; i-- {
		r := rs[i]
		if err := r.Close(ctx); err != nil {
			c.log.ErrorContext(ctx, "Failed to release service handle",
				logger.Handle(r.Name()),
				logger.Error(err),
			)
			continue
		}
		c.log.DebugContext(ctx, "Service handle released", logger.Handle(r.Name()))
	}
}

// setState must be called with mu held.
func (c *Controller) setState(next State) {
	if !c.state.CanTransition(next) {
		panic(fmt.Sprintf("lifecycle: invalid transition %s -> %s", c.state, next))
	}
	c.state = next
}
