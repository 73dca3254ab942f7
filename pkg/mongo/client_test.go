package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rehabflow/backend/pkg/mongo"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := mongo.New(context.Background(), mongo.Config{})
		assert.ErrorIs(t, err, mongo.ErrEmptyConnectionURL)
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		_, err := mongo.New(context.Background(), mongo.Config{
			ConnectionURL:  "not-a-mongo-url",
			ConnectTimeout: 100 * time.Millisecond,
			RetryAttempts:  2,
			RetryInterval:  time.Millisecond,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
	})

	t.Run("unreachable server", func(t *testing.T) {
		t.Parallel()
		_, err := mongo.New(context.Background(), mongo.Config{
			ConnectionURL:  "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100",
			ConnectTimeout: 100 * time.Millisecond,
			RetryAttempts:  1,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
	})

	t.Run("context cancelled between attempts", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		_, err := mongo.New(ctx, mongo.Config{
			ConnectionURL:  "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=100",
			ConnectTimeout: 100 * time.Millisecond,
			RetryAttempts:  5,
			RetryInterval:  time.Hour,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, mongo.ErrFailedToConnectToMongo)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), 10*time.Second)
	})
}

func TestHealthcheckNilClient(t *testing.T) {
	t.Parallel()
	err := mongo.Healthcheck(nil)(context.Background())
	assert.ErrorIs(t, err, mongo.ErrHealthcheckFailed)
}

func TestCloseNilClient(t *testing.T) {
	t.Parallel()
	assert.NoError(t, mongo.Close(context.Background(), nil))
}
