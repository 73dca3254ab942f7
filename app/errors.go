package app

import "errors"

var (
	ErrInvalidLogLevel = errors.New("invalid LOG_LEVEL")
	ErrInvalidTimeout  = errors.New("lifecycle timeouts must be positive")
)
