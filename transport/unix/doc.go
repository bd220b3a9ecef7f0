// Package unix implements Unix domain socket transport for the StrataDB
// client. This is the reference deployment transport: the server listens on
// a filesystem socket path and the client dials it with the configured
// connect timeout.
//
// Key Components:
//
//   - clientConnector: Unix-socket-specific implementation of
//     base.IClientConnector that dials the socket path and applies the
//     configured read/write buffer sizes.
package unix
