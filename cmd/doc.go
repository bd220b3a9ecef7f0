// Package cmd implements the command-line interface for the StrataDB client.
// It provides a hierarchical command structure for interacting with a
// StrataDB server over unix or tcp sockets.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value and path operations (get, set, delete,
//     scan, pget, pset) plus a performance testing tool
//   - query: Command for running document queries
//   - txn: Commands for the transaction lifecycle (begin, commit, abort)
//   - admin: Commands for server administration (stats, checkpoint, ping,
//     metrics)
//   - util: Shared utilities for command-line processing and configuration
//     (internal use)
//
// See strata -help for a list of all commands.
package cmd
