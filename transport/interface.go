package transport

import (
	"github.com/stratadb/strata-go/common"
)

// --------------------------------------------------------------------------
// Client Transport
// --------------------------------------------------------------------------

// IClientTransport is the interface for the client transport layer.
//
// Correlation is purely positional: there is no request id on the wire, the
// server answers every request with exactly one response (or one response
// stream) in send order. Concurrent callers are serialized onto a single
// pending queue and resolved strictly FIFO.
type IClientTransport interface {
	// Connect opens the underlying stream socket and performs the connect
	// handshake. Exactly one of success, timeout or error occurs within the
	// configured connect timeout. A transport whose connection has closed
	// cannot be reconnected; create a new transport instead.
	Connect(config common.ClientConfig) error

	// Send writes one request frame and blocks until the matching response
	// frame arrives, the per-request read timeout elapses, or the connection
	// closes. Concurrent Send calls pipeline: they queue rather than block
	// each other and their responses are delivered in send order.
	Send(op common.Opcode, payload []byte) (common.Frame, error)

	// SendStream writes one request frame and collects response frames until
	// a terminal frame arrives (anything other than the continuation opcode
	// OpRow). The returned slice holds the continuation frames followed by
	// the terminal frame. The read timeout applies to each frame of the
	// stream individually.
	SendStream(op common.Opcode, payload []byte) ([]common.Frame, error)

	// Stats returns a snapshot of the connection counters.
	Stats() Stats

	// Close closes the transport connection. It is idempotent; every still
	// pending request fails with a connection-closed error exactly once.
	Close() error
}

// Stats is a point-in-time snapshot of per-connection counters.
type Stats struct {
	BytesWritten   uint64
	BytesRead      uint64
	RequestsSent   uint64
	ResponsesRecvd uint64
	Timeouts       uint64
	RequestsByOp   map[string]uint64
}
