package cors

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	chicors "github.com/go-chi/cors"
)

const (
	headerOrigin        = "Origin"
	headerRequestMethod = "Access-Control-Request-Method"
	headerAllowOrigin   = "Access-Control-Allow-Origin"
)

// anyMethod is what a "*" method entry expands to.
var anyMethod = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// Policy is a compiled, immutable Config.
type Policy struct {
	anyOrigin  bool
	origins    map[string]struct{}
	subdomains []originPattern

	cors *chicors.Cors
}

type originPattern struct {
	scheme string
	suffix string // ".example.com"
}

// New compiles cfg. It fails on an empty origin or method list and on origin
// entries that are not "*", an absolute origin or a "scheme://*.host" pattern.
func New(cfg Config) (*Policy, error) {
	p := &Policy{origins: make(map[string]struct{})}

	origins := clean(cfg.AllowedOrigins)
	if len(origins) == 0 {
		return nil, ErrNoOrigins
	}
	for _, o := range origins {
		if o == "*" {
			p.anyOrigin = true
			continue
		}
		if err := p.addOrigin(o); err != nil {
			return nil, err
		}
	}

	methods := clean(cfg.AllowedMethods)
	if len(methods) == 0 {
		return nil, ErrNoMethods
	}
	var allowedMethods []string
	for _, m := range methods {
		if m == "*" {
			allowedMethods = anyMethod
			break
		}
		allowedMethods = append(allowedMethods, strings.ToUpper(m))
	}

	opts := chicors.Options{
		AllowedMethods:     allowedMethods,
		AllowedHeaders:     clean(cfg.AllowedHeaders),
		ExposedHeaders:     clean(cfg.ExposeHeaders),
		AllowCredentials:   cfg.AllowCredentials,
		MaxAge:             int(cfg.MaxAge / time.Second),
		OptionsPassthrough: true,
	}
	if p.anyOrigin && !cfg.AllowCredentials {
		opts.AllowedOrigins = []string{"*"}
	} else {
		// Browsers reject "*" with credentials, so a matched origin is echoed.
		opts.AllowOriginFunc = func(_ *http.Request, origin string) bool {
			return p.OriginAllowed(origin)
		}
	}
	p.cors = chicors.New(opts)
	return p, nil
}

// MustNew is like New but panics on an invalid Config.
func MustNew(cfg Config) *Policy {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Middleware returns p as a standard net/http middleware. It must be the
// outermost stage so pre-flight requests are answered before any
// authentication stage can reject them.
func Middleware(cfg Config) (func(http.Handler) http.Handler, error) {
	p, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return p.Handler, nil
}

// Handler wraps next with the policy.
//
// Pre-flight requests (OPTIONS with Origin and Access-Control-Request-Method)
// never reach next: allowed ones get 204 with the pre-flight headers, rejected
// ones get 403 without any CORS header. Other requests from an allowed origin
// get the response headers and continue to next. Requests from other origins
// continue without CORS headers and the browser blocks the response.
func (p *Policy) Handler(next http.Handler) http.Handler {
	if next == nil {
		panic("cors: nil next handler")
	}
	actual := p.cors.Handler(next)
	preflight := p.cors.Handler(http.HandlerFunc(answerPreflight))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPreflight(r) {
			preflight.ServeHTTP(w, r)
			return
		}
		actual.ServeHTTP(w, r)
	})
}

// answerPreflight ends a pre-flight once the library has set or withheld the
// allow headers.
func answerPreflight(w http.ResponseWriter, _ *http.Request) {
	if w.Header().Get(headerAllowOrigin) == "" {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OriginAllowed reports whether origin passes the origin list.
func (p *Policy) OriginAllowed(origin string) bool {
	if p.anyOrigin {
		return true
	}
	key := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(origin), "/"))
	if _, ok := p.origins[key]; ok {
		return true
	}
	if len(p.subdomains) == 0 {
		return false
	}
	u, err := url.Parse(key)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	for _, sp := range p.subdomains {
		if u.Scheme == sp.scheme && strings.HasSuffix(u.Host, sp.suffix) && len(u.Host) > len(sp.suffix) {
			return true
		}
	}
	return false
}

func (p *Policy) addOrigin(raw string) error {
	scheme, host, ok := strings.Cut(strings.ToLower(strings.TrimSuffix(raw, "/")), "://")
	if !ok || scheme == "" || host == "" || strings.ContainsAny(scheme+host, "/?# ") {
		return fmt.Errorf("%w: %q", ErrInvalidOrigin, raw)
	}
	if rest, ok := strings.CutPrefix(host, "*."); ok {
		if rest == "" || strings.Contains(rest, "*") {
			return fmt.Errorf("%w: %q", ErrInvalidOrigin, raw)
		}
		p.subdomains = append(p.subdomains, originPattern{scheme: scheme, suffix: "." + rest})
		return nil
	}
	if strings.Contains(host, "*") {
		return fmt.Errorf("%w: %q", ErrInvalidOrigin, raw)
	}
	p.origins[scheme+"://"+host] = struct{}{}
	return nil
}

func isPreflight(r *http.Request) bool {
	return r.Method == http.MethodOptions &&
		r.Header.Get(headerOrigin) != "" &&
		r.Header.Get(headerRequestMethod) != ""
}

func clean(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
