package common

import (
	"encoding/binary"
	"fmt"
)

// --------------------------------------------------------------------------
// Frame Codec
// --------------------------------------------------------------------------

const (
	// HeaderSize is the fixed size of a frame header:
	// 1 byte opcode + 4 bytes little-endian payload length.
	HeaderSize = 5

	// DefaultMaxMessageSize is the maximum payload length either side may
	// send (16 MiB). A frame declaring a larger length is a protocol
	// violation.
	DefaultMaxMessageSize uint32 = 16 << 20
)

// Frame is one complete opcode+length+payload unit on the wire.
type Frame struct {
	Opcode  Opcode
	Payload []byte
}

// EncodeFrame serializes a frame into its on-wire byte form:
//
//	[1 byte]  opcode
//	[4 bytes] payload length (little-endian uint32)
//	[N bytes] payload
//
// The payload length must fit into 32 bits; this is the caller's
// responsibility and checked against MaxMessageSize by the transport.
func EncodeFrame(op Opcode, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	buf[0] = byte(op)
	binary.LittleEndian.PutUint32(buf[1:HeaderSize], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf
}

// DecodeFrame parses exactly one complete frame from buf. The caller (the
// reassembler) guarantees that buf holds one whole frame. Opcode membership
// is deliberately not validated here so unknown opcodes pass through to the
// caller for interpretation.
func DecodeFrame(buf []byte) (Frame, error) {
	if len(buf) < HeaderSize {
		return Frame{}, fmt.Errorf("frame too short: %d bytes", len(buf))
	}
	length := binary.LittleEndian.Uint32(buf[1:HeaderSize])
	if len(buf) != HeaderSize+int(length) {
		return Frame{}, fmt.Errorf("frame length mismatch: header declares %d payload bytes, got %d", length, len(buf)-HeaderSize)
	}
	payload := make([]byte, length)
	copy(payload, buf[HeaderSize:])
	return Frame{Opcode: Opcode(buf[0]), Payload: payload}, nil
}
