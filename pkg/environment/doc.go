// Package environment defines the deployment tag of the process
// (development, staging, production) and propagates it through
// context.Context and HTTP requests.
//
// Parse normalizes user input and accepts the short aliases dev, stage and
// prod. Environment implements encoding.TextUnmarshaler, so settings structs
// parsed by github.com/caarlos0/env reject unknown tags at startup:
//
//	type Settings struct {
//	    Env environment.Environment `env:"APP_ENV" envDefault:"development"`
//	}
//
// Middleware stores the tag on every request context; handlers read it back
// with FromContext or the Is* helpers:
//
//	r.Use(environment.Middleware(environment.Production))
package environment
