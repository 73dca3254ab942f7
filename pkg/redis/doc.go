// Package redis connects the service to its Redis cache.
//
// The package wraps github.com/redis/go-redis/v9 and adds:
//
//   - Connect, which parses REDIS_URL, pings the server and retries using the
//     supplied Config until the attempts run out or the context is done.
//   - Storage, a thin key-value view request handlers use for caching.
//   - Healthcheck, a readiness probe.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err // errors.Is(err, redis.ErrRedisNotReady)
//	}
//	defer redis.Close(ctx, client)
//
//	store := redis.NewStorageWithConfig(client, cfg)
//	_ = store.Set(ctx, "session:42", []byte("…"), time.Hour)
//
// # Errors
//
// Sentinel errors (ErrRedisNotReady, ErrFailedToParseRedisConnString, ...)
// are joined with the underlying go-redis error via errors.Join.
package redis
