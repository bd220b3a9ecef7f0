// Package transport defines the interface for the client-side transport
// layer of the StrataDB wire protocol. It provides a common contract that all
// socket transports (unix, tcp) fulfill, so the typed client never touches a
// net.Conn directly.
//
// The package focuses on:
//   - A single long-lived connection as the unit of design
//   - Strictly pipelined FIFO request/response correlation: the Nth frame
//     written corresponds to the Nth response frame read
//   - Per-request read timeouts and uniform failure on connection close
//
// Key Components:
//
//   - IClientTransport: Interface for client-side transport implementations
//     that handles connection management, frame exchange and correlation.
//
//   - Stats: A snapshot of per-connection counters (frames, bytes, timeouts)
//     maintained by the transport.
package transport
