package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/rehabflow/backend/pkg/clientip"
	"github.com/rehabflow/backend/pkg/config"
	"github.com/rehabflow/backend/pkg/cors"
	"github.com/rehabflow/backend/pkg/httpserver"
	"github.com/rehabflow/backend/pkg/lifecycle"
	"github.com/rehabflow/backend/pkg/logger"
	mongopkg "github.com/rehabflow/backend/pkg/mongo"
	redispkg "github.com/rehabflow/backend/pkg/redis"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the process logger. Nil discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithDocumentStoreConnector replaces the MongoDB dialer.
func WithDocumentStoreConnector(fn lifecycle.ConnectFunc[*mongo.Client]) Option {
	if fn == nil {
		panic("WithDocumentStoreConnector: nil connector")
	}
	return func(a *App) { a.connectDocs = fn }
}

// WithCacheConnector replaces the Redis dialer.
func WithCacheConnector(fn lifecycle.ConnectFunc[*goredis.Client]) Option {
	if fn == nil {
		panic("WithCacheConnector: nil connector")
	}
	return func(a *App) { a.connectCache = fn }
}

// WithServerOptions appends options applied after the HTTP_* settings.
func WithServerOptions(opts ...httpserver.Option) Option {
	return func(a *App) { a.serverOpts = append(a.serverOpts, opts...) }
}

// WithRouterOptions appends router options, e.g. WithMiddleware.
func WithRouterOptions(opts ...RouterOption) Option {
	return func(a *App) { a.routerOpts = append(a.routerOpts, opts...) }
}

// WithServiceRoutes registers routes that use the shared clients.
func WithServiceRoutes(fn func(chi.Router, *Services)) Option {
	if fn == nil {
		panic("WithServiceRoutes: nil route registrar")
	}
	return func(a *App) {
		a.routerOpts = append(a.routerOpts, WithRoutes(func(r chi.Router) { fn(r, a.services) }))
	}
}

// App ties settings, service handles, the lifecycle controller and the HTTP
// server together.
type App struct {
	settings *config.Provider[Settings]
	log      *slog.Logger

	connectDocs  lifecycle.ConnectFunc[*mongo.Client]
	connectCache lifecycle.ConnectFunc[*goredis.Client]
	serverOpts   []httpserver.Option
	routerOpts   []RouterOption

	docs     *lifecycle.Handle[*mongo.Client]
	cache    *lifecycle.Handle[*goredis.Client]
	services *Services
	ctrl     *lifecycle.Controller

	mu     sync.Mutex
	policy *cors.Policy
	srv    *httpserver.Server
}

// New wires an App. Nothing is resolved or connected until Run.
func New(settings *config.Provider[Settings], opts ...Option) *App {
	if settings == nil {
		panic("app: nil settings provider")
	}
	a := &App{settings: settings, services: &Services{}}
	a.connectDocs = a.dialMongo
	a.connectCache = a.dialRedis
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = logger.Noop()
	}

	// Document store first: later handles may rely on it.
	a.docs = lifecycle.NewHandle("mongo", a.connectDocs, mongopkg.Close)
	a.cache = lifecycle.NewHandle("redis", a.connectCache, redispkg.Close)
	a.services.docs = a.docs
	a.services.cache = a.cache

	a.ctrl = lifecycle.New(
		lifecycle.WithLogger(a.log),
		lifecycle.WithSettings(a.resolve),
		lifecycle.WithHandles(a.docs, a.cache),
	)
	return a
}

// Run starts the controller, serves until ctx is done and then stops the
// controller after in-flight requests have drained. A startup failure is
// returned before the listener is bound. A ctx cancelled while Start was
// running is honoured once Start returns: handles are released and nothing
// is served.
func (a *App) Run(ctx context.Context) error {
	// A resolve error is cached and reported by Start.
	if a.settings.Resolve(ctx) == nil {
		if s, err := a.settings.Get(); err == nil && s.StartTimeout > 0 && s.StopTimeout > 0 {
			if err := a.ctrl.Configure(
				lifecycle.WithStartTimeout(s.StartTimeout),
				lifecycle.WithStopTimeout(s.StopTimeout),
			); err != nil {
				return err
			}
		}
	}

	if err := a.ctrl.Start(ctx); err != nil {
		return err
	}
	defer a.ctrl.Stop(ctx)

	if ctx.Err() != nil {
		a.log.InfoContext(ctx, "Shutdown requested during startup, not serving")
		return nil
	}

	s, err := a.settings.Get()
	if err != nil {
		return errors.Join(lifecycle.ErrConfiguration, err)
	}

	a.mu.Lock()
	policy := a.policy
	srv := httpserver.NewFromConfig(s.HTTP, append([]httpserver.Option{
		httpserver.WithLogger(a.log),
		httpserver.WithStopHook(func(ctx context.Context, _ *slog.Logger) { a.ctrl.Stop(ctx) }),
	}, a.serverOpts...)...)
	a.srv = srv
	a.mu.Unlock()

	router := NewRouter(policy, append([]RouterOption{
		WithEnvironment(s.Env),
		WithRouterLogger(a.log),
		WithClientIP(clientip.New(s.ClientIP)),
		WithReadinessChecks(
			httpserver.Check{Name: "lifecycle", Fn: a.ctrl.Healthcheck()},
			httpserver.Check{Name: "mongo", Fn: a.services.mongoCheck},
			httpserver.Check{Name: "redis", Fn: a.services.redisCheck},
		),
	}, a.routerOpts...)...)

	return srv.Run(ctx, router)
}

// State reports the lifecycle state.
func (a *App) State() lifecycle.State { return a.ctrl.State() }

// Services returns the shared client accessors.
func (a *App) Services() *Services { return a.services }

// Addr returns the bound HTTP address, or "" while not serving.
func (a *App) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.srv == nil {
		return ""
	}
	return a.srv.Addr()
}

// resolve is the controller's settings step: it parses and validates the
// settings, compiles the CORS policy and logs the startup banner.
func (a *App) resolve(ctx context.Context) error {
	if err := a.settings.Resolve(ctx); err != nil {
		return err
	}
	s, err := a.settings.Get()
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	policy, err := cors.New(s.CORS)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.policy = policy
	a.mu.Unlock()
	a.services.database = s.Mongo.Database
	a.services.redisCfg = s.Redis

	a.log.InfoContext(ctx, "Starting "+s.AppName,
		slog.String("environment", s.Env.String()),
		slog.String("http_addr", s.HTTP.Addr),
	)
	return nil
}

func (a *App) dialMongo(ctx context.Context) (*mongo.Client, error) {
	s, err := a.settings.Get()
	if err != nil {
		return nil, err
	}
	return mongopkg.New(ctx, s.Mongo)
}

func (a *App) dialRedis(ctx context.Context) (*goredis.Client, error) {
	s, err := a.settings.Get()
	if err != nil {
		return nil, err
	}
	return redispkg.Connect(ctx, s.Redis)
}
