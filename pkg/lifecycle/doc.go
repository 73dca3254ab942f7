// Package lifecycle coordinates the connections a server needs before it can
// accept traffic and tears them down once it stops.
//
// The package has two building blocks:
//
//   - Handle wraps one process-wide client (a database client, a cache client)
//     together with its connect and close functions. Acquire is idempotent while
//     the handle is connected, Close is idempotent in every state, and Client
//     refuses to hand out a client that is not connected.
//
//   - Controller owns an ordered list of handles. Start resolves settings and
//     acquires the handles one after another; the first failure aborts the
//     sequence, rolls back what was already acquired and returns the error.
//     Stop waits for an in-flight Start, releases every acquired handle in
//     reverse order and logs, but never returns, release failures.
//
// # States
//
//	Uninitialized -> Starting -> Ready -> Stopping -> Stopped
//	                 Starting -> Stopped            (failed start)
//	Uninitialized -> Stopped                        (stop before start)
//
// Transitions never move backwards. Start and Stop each take effect once.
//
// # Usage
//
//	docs := lifecycle.NewHandle("mongo",
//		func(ctx context.Context) (*mongo.Client, error) { return mongopkg.New(ctx, cfg.Mongo) },
//		func(ctx context.Context, c *mongo.Client) error { return c.Disconnect(ctx) },
//	)
//	cache := lifecycle.NewHandle("redis",
//		func(ctx context.Context) (*redis.Client, error) { return redispkg.Connect(ctx, cfg.Redis) },
//		func(_ context.Context, c *redis.Client) error { return c.Close() },
//	)
//
//	ctrl := lifecycle.New(
//		lifecycle.WithLogger(log),
//		lifecycle.WithSettings(provider.Resolve),
//		lifecycle.WithHandles(docs, cache),
//	)
//	if err := ctrl.Start(ctx); err != nil {
//		return err // fatal: never serve traffic
//	}
//	defer ctrl.Stop(context.Background())
//
// # Errors
//
// Start returns errors joined with ErrConfiguration or ErrConnection. Handle.Close
// returns errors joined with ErrRelease; the controller only logs them.
package lifecycle
