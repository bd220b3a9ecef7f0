package transport

import "errors"

// Sentinel errors returned by transport implementations. The typed client
// wraps these into its error taxonomy; they stay matchable via errors.Is.
var (
	// ErrNotConnected is returned by Send on a transport that never
	// connected or whose connection has closed.
	ErrNotConnected = errors.New("transport: not connected")

	// ErrClosed is returned for requests that were still pending when the
	// connection closed.
	ErrClosed = errors.New("transport: connection closed")

	// ErrTimeout is returned when a request's read timeout elapses before
	// its response frame arrives.
	ErrTimeout = errors.New("transport: request timed out")

	// ErrTooLarge is returned when a payload exceeds the configured maximum
	// message size, in either direction.
	ErrTooLarge = errors.New("transport: message exceeds maximum size")
)
