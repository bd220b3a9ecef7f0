// Package base implements the generic client connection shared by all socket
// transports (unix, tcp). The transport-specific part is reduced to an
// IClientConnector that dials and tunes the socket; everything else lives
// here:
//
//   - Connection lifecycle: Connecting -> Open on a successful dial within
//     the connect timeout, any state -> Closed on socket error or Close().
//     No transition leaves Closed; a new transport is required to reconnect.
//
//   - Frame reassembly: inbound bytes are accumulated in a single growing
//     buffer and sliced into complete frames. Extraction is gated on at least
//     one outstanding request, because the protocol has no unsolicited server
//     pushes - a complete frame with no waiter indicates a correlation bug or
//     a malformed stream, and stalling surfaces that instead of corrupting
//     correlation order.
//
//   - FIFO correlation: requests carry no id on the wire. The Nth frame
//     written corresponds to the Nth response read. Send appends a pending
//     request and writes the frame inside one critical section, so send order
//     equals queue order equals expected response order. Each request times
//     out independently; timed-out requests are removed by identity so the
//     requests behind them stay correlated.
package base
