// Package requestid tags every request with a correlation ID.
//
// Middleware reads X-Request-ID from the client, keeps it when it is a short
// token of letters, digits, '-' and '_', and otherwise generates a UUIDv4. The
// ID is stored in the request context and echoed in the response header.
// Register LoggerExtractor with logger.WithContextExtractors so every record
// logged with the request context carries "request_id".
//
// The middleware sits inside the CORS policy, so pre-flight responses do not
// carry the header.
package requestid
