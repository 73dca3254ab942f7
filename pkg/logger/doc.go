// Package logger builds *slog.Logger instances with functional options and
// injects request-scoped values from context.Context into every record.
//
// New picks slog.NewTextHandler or slog.NewJSONHandler based on the configured
// Format and wraps it with LogHandlerDecorator, which runs the registered
// ContextExtractor callbacks before delegating.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(environment.Production, "rehabflow"),
//	    logger.WithContextExtractors(
//	        requestid.LoggerExtractor(),
//	        clientip.LoggerExtractor(),
//	    ),
//	)
//	logger.SetAsDefault(log)
//
//	log.ErrorContext(ctx, "Failed to acquire service handle",
//	    logger.Handle("mongo"),
//	    logger.Error(err),
//	)
//
// Error and Errors return an empty attribute for nil errors, so they can be
// passed without a nil check. Noop returns a logger that discards everything;
// packages use it when the caller injects no logger.
package logger
