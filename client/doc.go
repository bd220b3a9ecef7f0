// Package client provides the typed StrataDB client. Each public operation
// encodes its arguments into an operation payload, sends it through the
// transport's FIFO pipeline and interprets the response frame into typed
// results or typed errors.
//
// The package focuses on:
//   - Typed key-value, path, scan, query and transaction operations
//   - A small error taxonomy (ConnectionError, ProtocolError,
//     TransactionError) so callers never see raw byte-offset or socket-layer
//     detail
//   - Best-effort liveness checks via Ping
//
// Usage:
//
//	c, err := client.NewClient(
//		common.ClientConfig{Endpoint: "/var/run/strata.sock"},
//		unix.NewUnixClientTransport(),
//	)
//	if err != nil {
//		...
//	}
//	defer c.Close()
//
//	value, found, err := c.Get("answer")
//
// All operations are safe for concurrent use. Concurrent calls pipeline onto
// the single connection and resolve in send order; they queue rather than
// block each other.
package client
