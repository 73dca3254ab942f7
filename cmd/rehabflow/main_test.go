package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehabflow/backend/pkg/config"
	"github.com/rehabflow/backend/pkg/lifecycle"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "rehabflow dev")
}

func TestServeFailsOnMissingEnvFile(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"serve", "--env-file", "testdata/does-not-exist.env"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, lifecycle.ErrConfiguration)
	assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
}

func TestServeFailsOnInvalidSettings(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://127.0.0.1:1")
	t.Setenv("APP_ENV", "moon")

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	assert.ErrorIs(t, err, lifecycle.ErrConfiguration)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestServeRejectsArgs(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve", "extra"})
	assert.Error(t, cmd.Execute())
}
