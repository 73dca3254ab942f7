package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rehabflow/backend/pkg/clientip"
	"github.com/rehabflow/backend/pkg/cors"
	"github.com/rehabflow/backend/pkg/environment"
	"github.com/rehabflow/backend/pkg/httpserver"
	"github.com/rehabflow/backend/pkg/logger"
	"github.com/rehabflow/backend/pkg/requestid"
)

// RouterOption configures NewRouter.
type RouterOption func(*routerConfig)

type routerConfig struct {
	env        environment.Environment
	log        *slog.Logger
	clientIP   *clientip.Resolver
	checks     []httpserver.Check
	middleware []func(http.Handler) http.Handler
	routes     []func(chi.Router)
}

func WithEnvironment(env environment.Environment) RouterOption {
	return func(c *routerConfig) { c.env = env }
}

// WithClientIP sets the resolver of the client IP stage. The default trusts
// only RemoteAddr.
func WithClientIP(res *clientip.Resolver) RouterOption {
	return func(c *routerConfig) { c.clientIP = res }
}

func WithRouterLogger(l *slog.Logger) RouterOption {
	return func(c *routerConfig) { c.log = l }
}

// WithReadinessChecks adds checks to GET /health/ready.
func WithReadinessChecks(checks ...httpserver.Check) RouterOption {
	return func(c *routerConfig) { c.checks = append(c.checks, checks...) }
}

// WithMiddleware appends stages after the built-in ones. They never see
// pre-flight requests.
func WithMiddleware(mw ...func(http.Handler) http.Handler) RouterOption {
	for _, m := range mw {
		if m == nil {
			panic("WithMiddleware: nil middleware")
		}
	}
	return func(c *routerConfig) { c.middleware = append(c.middleware, mw...) }
}

// WithRoutes registers routes after the health endpoints.
func WithRoutes(fn func(chi.Router)) RouterOption {
	if fn == nil {
		panic("WithRoutes: nil route registrar")
	}
	return func(c *routerConfig) { c.routes = append(c.routes, fn) }
}

// NewRouter builds the request pipeline. The stage order is fixed:
//
//	cors -> request id -> client ip -> panic recovery -> environment -> extra middleware -> routes
//
// so the CORS policy answers pre-flight requests before any other stage runs.
func NewRouter(policy *cors.Policy, opts ...RouterOption) chi.Router {
	if policy == nil {
		panic("app: nil cors policy")
	}
	cfg := &routerConfig{env: environment.Development}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.log == nil {
		cfg.log = logger.Noop()
	}
	if cfg.clientIP == nil {
		cfg.clientIP = clientip.New(clientip.Config{})
	}

	r := chi.NewRouter()
	r.Use(policy.Handler)
	r.Use(requestid.Middleware)
	r.Use(cfg.clientIP.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(environment.Middleware(cfg.env))
	r.Use(cfg.middleware...)

	r.Get("/health", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(cfg.log, cfg.checks...))

	for _, fn := range cfg.routes {
		fn(r)
	}
	return r
}
