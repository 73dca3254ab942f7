package app_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehabflow/backend/app"
	"github.com/rehabflow/backend/pkg/config"
	"github.com/rehabflow/backend/pkg/environment"
)

func TestSettingsFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("MONGODB_URL", "mongodb://db:27017")
	t.Setenv("MONGODB_DATABASE", "clinic")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.rehabflow.example,https://*.rehabflow.example")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "false")
	t.Setenv("LIFECYCLE_START_TIMEOUT", "20s")

	var s app.Settings
	require.NoError(t, config.Load(&s))
	require.NoError(t, s.Validate())

	assert.Equal(t, "rehabflow", s.AppName)
	assert.Equal(t, environment.Production, s.Env)
	assert.Equal(t, "mongodb://db:27017", s.Mongo.ConnectionURL)
	assert.Equal(t, "clinic", s.Mongo.Database)
	assert.Equal(t, "redis://cache:6379/1", s.Redis.ConnectionURL)
	assert.Equal(t, ":9000", s.HTTP.Addr)
	assert.Equal(t, 5*time.Second, s.HTTP.ShutdownTimeout)
	assert.Equal(t, []string{"https://app.rehabflow.example", "https://*.rehabflow.example"}, s.CORS.AllowedOrigins)
	assert.False(t, s.CORS.AllowCredentials)
	assert.Equal(t, []string{"*"}, s.CORS.AllowedMethods)
	assert.Equal(t, 20*time.Second, s.StartTimeout)
	assert.Equal(t, 15*time.Second, s.StopTimeout)
}

func TestSettingsRejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "qa")
	t.Setenv("MONGODB_URL", "mongodb://db:27017")

	var s app.Settings
	err := config.Load(&s)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
	assert.ErrorContains(t, err, environment.ErrUnknownEnvironment.Error())
}

func TestSettingsValidate(t *testing.T) {
	t.Parallel()

	s := testSettings()
	assert.NoError(t, s.Validate())

	s.LogLevel = "verbose"
	assert.ErrorIs(t, s.Validate(), app.ErrInvalidLogLevel)

	s = testSettings()
	s.StopTimeout = 0
	assert.ErrorIs(t, s.Validate(), app.ErrInvalidTimeout)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("development logs text at debug", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		s := testSettings()
		s.Env = environment.Development

		log, err := app.NewLogger(s, &buf)
		require.NoError(t, err)
		log.Debug("debug line")

		assert.Contains(t, buf.String(), "msg=\"debug line\"")
		assert.Contains(t, buf.String(), "service=rehabflow")
		assert.Contains(t, buf.String(), "env=development")
	})

	t.Run("LOG_LEVEL overrides the environment default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		s := testSettings()
		s.LogLevel = "warn"

		log, err := app.NewLogger(s, &buf)
		require.NoError(t, err)
		log.Info("hidden")
		log.Warn("shown")

		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), `"msg":"shown"`)
		assert.Contains(t, buf.String(), `"env":"production"`)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()
		s := testSettings()
		s.LogLevel = "chatty"
		_, err := app.NewLogger(s, &bytes.Buffer{})
		assert.ErrorIs(t, err, app.ErrInvalidLogLevel)
	})
}
