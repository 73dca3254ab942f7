// Package httpserver wraps net/http with graceful shutdown, lifecycle hooks
// and health probes.
//
// Run binds the listener first, then runs start hooks and serves until the
// context is cancelled, SIGINT/SIGTERM arrives (unless WithoutSignals is set)
// or serving fails. Shutdown stops accepting connections, drains in-flight
// requests within the shutdown timeout and then runs stop hooks, so a stop
// hook can safely release resources the handlers were using.
//
// # Usage
//
//	r := chi.NewRouter()
//	r.Get("/health", httpserver.LivenessHandler())
//	r.Get("/health/ready", httpserver.ReadinessHandler(log,
//		httpserver.Check{Name: "mongo", Fn: mongo.Healthcheck(client)},
//	))
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//		httpserver.WithLogger(log),
//		httpserver.WithStopHook(func(ctx context.Context, _ *slog.Logger) { ctrl.Stop(ctx) }),
//	)
//	if err := srv.Run(ctx, r); err != nil {
//		return err
//	}
//
// # Errors
//
// Run joins bind and serve errors with ErrStart; Shutdown joins drain errors
// with ErrShutdown.
package httpserver
