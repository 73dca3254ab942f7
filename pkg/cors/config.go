package cors

import "time"

// Config declares the cross-origin policy. A single "*" entry in a list means
// "any". With credentials allowed, a wildcard origin is answered by echoing
// the request Origin, since browsers reject "*" together with credentials.
type Config struct {
	AllowedOrigins   []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`           // Exact origins ("https://app.example.com"), subdomain patterns ("https://*.example.com") or "*".
	AllowCredentials bool          `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`                       // AllowCredentials sets Access-Control-Allow-Credentials: true.
	AllowedMethods   []string      `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"*"`           // AllowedMethods limits methods; "*" allows any.
	AllowedHeaders   []string      `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"*"`           // AllowedHeaders limits pre-flight request headers; "*" reflects whatever was asked.
	ExposeHeaders    []string      `env:"CORS_EXPOSE_HEADERS" envSeparator:"," envDefault:"X-Request-ID"` // ExposeHeaders is sent on non pre-flight responses.
	MaxAge           time.Duration `env:"CORS_MAX_AGE" envDefault:"10m"`                                  // MaxAge caches pre-flight answers; <= 0 omits the header.
}

// AllowAll is the permissive policy: any origin, method and header, with credentials.
func AllowAll() Config {
	return Config{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		AllowedMethods:   []string{"*"},
		AllowedHeaders:   []string{"*"},
		ExposeHeaders:    []string{"X-Request-ID"},
		MaxAge:           10 * time.Minute,
	}
}
