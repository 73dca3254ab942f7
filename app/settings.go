package app

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/rehabflow/backend/pkg/clientip"
	"github.com/rehabflow/backend/pkg/cors"
	"github.com/rehabflow/backend/pkg/environment"
	"github.com/rehabflow/backend/pkg/httpserver"
	"github.com/rehabflow/backend/pkg/logger"
	"github.com/rehabflow/backend/pkg/mongo"
	"github.com/rehabflow/backend/pkg/redis"
	"github.com/rehabflow/backend/pkg/requestid"
)

// Settings is the process configuration, parsed once from the environment.
type Settings struct {
	AppName      string                  `env:"APP_NAME" envDefault:"rehabflow"`
	Env          environment.Environment `env:"APP_ENV" envDefault:"development"`
	LogLevel     string                  `env:"LOG_LEVEL"` // Overrides the environment default when set.
	StartTimeout time.Duration           `env:"LIFECYCLE_START_TIMEOUT" envDefault:"60s"`
	StopTimeout  time.Duration           `env:"LIFECYCLE_STOP_TIMEOUT" envDefault:"15s"`

	HTTP     httpserver.Config
	ClientIP clientip.Config
	Mongo    mongo.Config
	Redis    redis.Config
	CORS     cors.Config
}

// Validate checks the fields the env parser cannot.
func (s Settings) Validate() error {
	if _, err := s.level(); err != nil {
		return err
	}
	if s.StartTimeout <= 0 || s.StopTimeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}

func (s Settings) level() (*slog.Level, error) {
	if s.LogLevel == "" {
		return nil, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, errors.Join(ErrInvalidLogLevel, err)
	}
	return &l, nil
}

// NewLogger builds the process logger for s: text at debug level in
// development, JSON at info level elsewhere, LOG_LEVEL taking precedence.
// Every record carries the service name, the environment and, when logged
// with a request context, the request ID and client IP.
func NewLogger(s Settings, w io.Writer) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(s.Env, s.AppName),
		logger.WithOutput(w),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}
	l, err := s.level()
	if err != nil {
		return nil, err
	}
	if l != nil {
		opts = append(opts, logger.WithLevel(*l))
	}
	return logger.New(opts...), nil
}
