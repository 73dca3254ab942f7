// Package cors implements the cross-origin access policy of the HTTP pipeline.
//
// A Config (populated from CORS_* environment variables) is compiled into an
// immutable Policy by New, backed by github.com/go-chi/cors. Policy.Handler
// is a plain net/http middleware:
//
//	policy := cors.MustNew(cfg)
//	r := chi.NewRouter()
//	r.Use(policy.Handler) // first, before auth or anything that may reject
//	r.Use(requestid.Middleware)
//
// # Ordering
//
// Pre-flight requests carry no credentials. If an authentication stage saw
// them first it would reject them and the browser would fail the real
// request, so the policy must be the outermost stage. Pre-flight requests are
// always answered by the policy itself and never reach inner stages: 204 when
// allowed, 403 when the origin, method or headers are not.
//
// # Origins
//
// Entries are "*" (any origin), an exact origin such as
// "https://app.example.com" or "https://app.example.com:8443", or a subdomain
// pattern such as "https://*.example.com" which matches any subdomain but not
// the apex. With credentials enabled a wildcard origin is answered by echoing
// the request Origin.
package cors
