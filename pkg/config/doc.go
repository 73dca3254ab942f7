// Package config loads application settings from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv loads one or more .env files into the process environment
//     (the default ./.env is optional).
//   - Load parses the environment into any struct annotated with `env` tags.
//   - Provider resolves a settings struct exactly once and hands out the same
//     immutable copy afterwards. It is a plain value owned by the caller, so
//     tests can build as many independent providers as they like.
//
// # Usage
//
//	type Settings struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	    DB   string `env:"MONGODB_URL,required"`
//	}
//
//	provider := config.NewProvider[Settings](".env.local")
//	if err := provider.Resolve(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	settings, _ := provider.Get()
//
// Provider.Resolve has the func(context.Context) error shape expected by
// lifecycle.WithSettings, so settings are resolved as the first step of
// startup.
//
// # Error Handling
//
// Errors are joined with sentinel values so they can be matched with errors.Is:
//
//   - ErrParsingConfig   – env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile  – an explicitly requested .env file could not be read.
//   - ErrConfigNotLoaded – Get was called before Resolve.
//   - ErrNilPointer      – nil pointer passed to Load/MustLoad.
package config
