package app_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/rehabflow/backend/app"
	"github.com/rehabflow/backend/pkg/clientip"
	"github.com/rehabflow/backend/pkg/cors"
	"github.com/rehabflow/backend/pkg/environment"
	"github.com/rehabflow/backend/pkg/httpserver"
	"github.com/rehabflow/backend/pkg/requestid"
)

// requireToken stands in for an authentication stage: it rejects anything
// without an Authorization header.
func requireToken(calls *atomic.Int32) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			if r.Header.Get("Authorization") == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter_PreflightBypassesInnerStages(t *testing.T) {
	t.Parallel()

	var authCalls atomic.Int32
	r := app.NewRouter(cors.MustNew(cors.AllowAll()),
		app.WithMiddleware(requireToken(&authCalls)),
	)

	for _, path := range []string{"/health", "/no/such/route"} {
		t.Run(path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodOptions, path, nil)
			req.Header.Set("Origin", "https://clinic.example")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Authorization")
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
			assert.Equal(t, http.MethodPost, rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Equal(t, "Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
			assert.Empty(t, rec.Header().Get(requestid.Header), "request id stage runs inside cors")
		})
	}
	assert.Zero(t, authCalls.Load())
}

func TestRouter_RejectedRequestKeepsCORSHeaders(t *testing.T) {
	t.Parallel()

	var authCalls atomic.Int32
	r := app.NewRouter(cors.MustNew(cors.AllowAll()),
		app.WithMiddleware(requireToken(&authCalls)),
	)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://clinic.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(requestid.Header))
	assert.Equal(t, int32(1), authCalls.Load())

	req.Header.Set("Authorization", "Bearer token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestRouter_EnvironmentAndRoutes(t *testing.T) {
	t.Parallel()

	r := app.NewRouter(cors.MustNew(cors.AllowAll()),
		app.WithEnvironment(environment.Production),
		app.WithClientIP(clientip.New(clientip.Config{TrustedHeaders: []string{"X-Forwarded-For"}})),
		app.WithRoutes(func(r chi.Router) {
			r.Get("/env", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(environment.FromContext(r.Context()).String() + "|" + clientip.FromContext(r.Context())))
			})
		}),
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/env", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	// httptest requests come from 192.0.2.1.
	assert.Equal(t, "production|192.0.2.1", rec.Body.String())
}

func TestRouter_Readiness(t *testing.T) {
	t.Parallel()

	healthy := true
	r := app.NewRouter(cors.MustNew(cors.AllowAll()),
		app.WithReadinessChecks(httpserver.Check{Name: "mongo", Fn: func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("no reachable servers")
		}}),
	)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "READY", rec.Body.String())

	healthy = false
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "NOT_READY", rec.Body.String())
}

func TestRouter_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { app.NewRouter(nil) })
	assert.Panics(t, func() { app.WithMiddleware(nil) })
	assert.Panics(t, func() { app.WithRoutes(nil) })
}
