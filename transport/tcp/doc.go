// Package tcp implements TCP socket transport for the StrataDB client, for
// deployments where the server is not reachable through a local Unix socket.
//
// Key Components:
//
//   - clientConnector: TCP-specific implementation of base.IClientConnector
//     that dials host:port endpoints and applies TCP_NODELAY, keep-alive,
//     linger and buffer settings from the configuration.
package tcp
