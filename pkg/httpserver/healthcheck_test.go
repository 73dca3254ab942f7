package httpserver_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rehabflow/backend/pkg/httpserver"
)

func TestLivenessHandler(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	httpserver.LivenessHandler()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ALIVE", rec.Body.String())
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	ok := httpserver.Check{Name: "mongo", Fn: func(context.Context) error { return nil }}
	calledAfterFailure := false
	failing := httpserver.Check{Name: "redis", Fn: func(context.Context) error { return errors.New("i/o timeout") }}
	after := httpserver.Check{Name: "lifecycle", Fn: func(context.Context) error { calledAfterFailure = true; return nil }}

	t.Run("all pass", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpserver.ReadinessHandler(nil, ok)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("first failure wins", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpserver.ReadinessHandler(nil, ok, failing, after)(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "NOT_READY", rec.Body.String())
		assert.False(t, calledAfterFailure)
	})
}
