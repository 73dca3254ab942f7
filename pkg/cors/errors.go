package cors

import "errors"

var (
	// ErrNoOrigins is returned when the origin list is empty.
	ErrNoOrigins = errors.New("cors: no allowed origins configured")
	// ErrInvalidOrigin is returned for an origin entry that cannot be parsed.
	ErrInvalidOrigin = errors.New("cors: invalid allowed origin")
	// ErrNoMethods is returned when the method list is empty.
	ErrNoMethods = errors.New("cors: no allowed methods configured")
)
