package common

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// TestFrameRoundTrip tests that frames survive encode/decode for request and
// response opcodes with different payload shapes
func TestFrameRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":  nil,
		"small":  []byte("hello"),
		"binary": {0x00, 0xFF, 0x7F, 0x80, 0x01},
		"large":  bytes.Repeat([]byte{0xAB}, 1<<16),
	}

	opcodes := []Opcode{OpPut, OpGet, OpScan, OpPing, OpOK, OpError, OpValue, OpTxnId, OpEndStream}

	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			for _, op := range opcodes {
				encoded := EncodeFrame(op, payload)

				if len(encoded) != HeaderSize+len(payload) {
					t.Errorf("encoded frame for %s has %d bytes, expected %d", op, len(encoded), HeaderSize+len(payload))
				}
				if Opcode(encoded[0]) != op {
					t.Errorf("opcode byte is 0x%02x, expected 0x%02x", encoded[0], byte(op))
				}
				if got := binary.LittleEndian.Uint32(encoded[1:5]); got != uint32(len(payload)) {
					t.Errorf("length field is %d, expected %d", got, len(payload))
				}

				frame, err := DecodeFrame(encoded)
				if err != nil {
					t.Fatalf("failed to decode frame for %s: %v", op, err)
				}
				if frame.Opcode != op {
					t.Errorf("decoded opcode %s, expected %s", frame.Opcode, op)
				}
				if !bytes.Equal(frame.Payload, payload) {
					t.Errorf("decoded payload doesn't match original for %s", op)
				}
			}
		})
	}
}

// TestDecodeFrameRejectsBadInput tests the decoder preconditions
func TestDecodeFrameRejectsBadInput(t *testing.T) {
	t.Run("too short", func(t *testing.T) {
		if _, err := DecodeFrame([]byte{0x01, 0x00}); err == nil {
			t.Error("expected error for truncated header")
		}
	})

	t.Run("length mismatch", func(t *testing.T) {
		// header declares 10 payload bytes but only 6 follow
		buf := make([]byte, HeaderSize+6)
		buf[0] = byte(OpValue)
		binary.LittleEndian.PutUint32(buf[1:5], 10)
		if _, err := DecodeFrame(buf); err == nil {
			t.Error("expected error for length mismatch")
		}
	})
}

// TestDecodeFrameUnknownOpcode tests that the codec stays opcode-agnostic
func TestDecodeFrameUnknownOpcode(t *testing.T) {
	encoded := EncodeFrame(Opcode(0xEE), []byte("future"))
	frame, err := DecodeFrame(encoded)
	if err != nil {
		t.Fatalf("unknown opcode must pass through the codec: %v", err)
	}
	if frame.Opcode != Opcode(0xEE) {
		t.Errorf("decoded opcode 0x%02x, expected 0xEE", byte(frame.Opcode))
	}
	if frame.Opcode.String() != "unknown" {
		t.Errorf("String() = %q, expected %q", frame.Opcode.String(), "unknown")
	}
}

// TestOpcodeRanges tests that request and response opcodes stay disjoint
func TestOpcodeRanges(t *testing.T) {
	requests := []Opcode{OpPut, OpGet, OpDelete, OpBeginTxn, OpCommitTxn, OpAbortTxn, OpQuery, OpCreateTable, OpPutPath, OpGetPath, OpScan, OpCheckpoint, OpStats, OpPing}
	responses := []Opcode{OpOK, OpError, OpValue, OpTxnId, OpRow, OpEndStream, OpStatsResp, OpPong}

	for _, op := range requests {
		if op.IsResponse() {
			t.Errorf("request opcode %s (0x%02x) reports IsResponse", op, byte(op))
		}
	}
	for _, op := range responses {
		if !op.IsResponse() {
			t.Errorf("response opcode %s (0x%02x) does not report IsResponse", op, byte(op))
		}
	}
}
