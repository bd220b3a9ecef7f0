// Package common defines the StrataDB wire protocol and the shared
// configuration and logging facilities used by the client and transport
// packages.
//
// The package focuses on:
//   - The opcode enumeration shared with the server (numeric values are part
//     of the wire contract and must match the server exactly)
//   - Frame encoding and decoding (opcode + little-endian length + payload)
//   - Per-opcode payload codecs for keys, values, paths, scans, queries and
//     transaction ids
//   - Client configuration structs with sensible defaults
//
// Key Components:
//
//   - Opcode: single-byte operation/response discriminator. Request and
//     response opcodes live in disjoint value ranges so a decoder can tell
//     which kind of frame it received without additional context.
//
//   - Frame: one complete opcode+length+payload unit on the wire. EncodeFrame
//     and DecodeFrame convert between Frame values and their byte form; they
//     are pure functions with no I/O.
//
//   - ClientConfig: all tunables for a client connection (endpoint, connect
//     and read timeouts, maximum message size, socket options).
package common
