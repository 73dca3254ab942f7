package lifecycle

import "errors"

var (
	// ErrConfiguration is returned by Start when settings cannot be resolved.
	// No handle is acquired when it occurs.
	ErrConfiguration = errors.New("failed to resolve settings")
	// ErrConnection is returned when a handle cannot be acquired.
	ErrConnection = errors.New("failed to acquire service handle")
	// ErrRelease is returned by Handle.Close when the underlying client fails to close.
	// The controller only logs it.
	ErrRelease = errors.New("failed to release service handle")

	ErrAlreadyStarted     = errors.New("lifecycle controller already started")
	ErrStopped            = errors.New("lifecycle controller already stopped")
	ErrNotReady           = errors.New("lifecycle controller is not ready")
	ErrHandleClosed       = errors.New("service handle is closed")
	ErrHandleNotConnected = errors.New("service handle is not connected")
)
