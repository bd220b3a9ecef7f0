package client

import (
	"errors"
	"fmt"

	"github.com/stratadb/strata-go/transport"
)

// --------------------------------------------------------------------------
// Error Taxonomy
// --------------------------------------------------------------------------
// ConnectionError is fatal to the connection, not to the process.
// ProtocolError indicates a request-level failure; the connection itself may
// remain usable. TransactionError covers transaction lifecycle failures.
// All three support errors.Is/errors.As and unwrap to their cause.

// ConnectionError covers connect failures, connect timeouts, socket errors,
// write failures, "not connected" misuse, request timeouts and requests that
// were pending when the connection closed.
type ConnectionError struct {
	Op  string // the operation that observed the failure
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError covers explicit server error frames, malformed response
// payloads and response opcodes the calling operation does not expect.
type ProtocolError struct {
	Op      string
	Message string // server-provided text for explicit error frames
	Err     error  // decode cause for malformed payloads, nil otherwise
}

func (e *ProtocolError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("protocol error during %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("protocol error during %s: %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// TransactionError covers transaction-specific failures: begin failed,
// commit or abort against a failed or closed connection.
type TransactionError struct {
	TxnID uint64 // zero when begin itself failed
	Op    string
	Err   error
}

func (e *TransactionError) Error() string {
	if e.TxnID == 0 {
		return fmt.Sprintf("transaction error during %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("transaction %d error during %s: %v", e.TxnID, e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// wrapTransportErr maps transport-layer failures into the taxonomy. The
// transport only produces connection-class failures (timeouts, write errors,
// closed or never-opened connections), so everything wraps the same way; the
// sentinels stay reachable through errors.Is.
func wrapTransportErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &ConnectionError{Op: op, Err: err}
}

// IsTimeout reports whether err stems from a request read timeout.
func IsTimeout(err error) bool {
	return errors.Is(err, transport.ErrTimeout)
}
