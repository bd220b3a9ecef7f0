package base

import (
	"bytes"
	"testing"

	"github.com/stratadb/strata-go/common"
)

// feedAll feeds data and drains every extractable frame assuming waiters are
// always available
func feedAll(t *testing.T, r *frameReassembler, data []byte) []common.Frame {
	t.Helper()
	r.feed(data)

	var frames []common.Frame
	for {
		frame, ok, err := r.next(1)
		if err != nil {
			t.Fatalf("reassembly failed: %v", err)
		}
		if !ok {
			return frames
		}
		frames = append(frames, frame)
	}
}

// TestReassemblyFragmentation tests that a frame split at every possible
// boundary is emitted exactly once and byte-identical
func TestReassemblyFragmentation(t *testing.T) {
	payload := []byte("fragmented payload")
	encoded := common.EncodeFrame(common.OpValue, payload)

	for split := 1; split < len(encoded); split++ {
		r := newFrameReassembler(common.DefaultMaxMessageSize)

		frames := feedAll(t, r, encoded[:split])
		if len(frames) != 0 {
			t.Fatalf("split %d: frame emitted from incomplete data", split)
		}

		frames = feedAll(t, r, encoded[split:])
		if len(frames) != 1 {
			t.Fatalf("split %d: got %d frames, expected 1", split, len(frames))
		}
		if frames[0].Opcode != common.OpValue || !bytes.Equal(frames[0].Payload, payload) {
			t.Fatalf("split %d: emitted frame differs from original", split)
		}
		if r.buffered() != 0 {
			t.Fatalf("split %d: %d bytes left in buffer", split, r.buffered())
		}
	}
}

// TestReassemblyByteByByte feeds one byte per inbound event
func TestReassemblyByteByByte(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	encoded := common.EncodeFrame(common.OpRow, payload)

	r := newFrameReassembler(common.DefaultMaxMessageSize)
	var frames []common.Frame
	for _, b := range encoded {
		frames = append(frames, feedAll(t, r, []byte{b})...)
	}

	if len(frames) != 1 {
		t.Fatalf("got %d frames, expected 1", len(frames))
	}
	if !bytes.Equal(frames[0].Payload, payload) {
		t.Error("payload differs from original")
	}
}

// TestReassemblyMultipleFramesPerRead tests that several frames arriving in
// one chunk are all extracted, in order
func TestReassemblyMultipleFramesPerRead(t *testing.T) {
	var stream []byte
	stream = append(stream, common.EncodeFrame(common.OpOK, nil)...)
	stream = append(stream, common.EncodeFrame(common.OpValue, []byte("v"))...)
	stream = append(stream, common.EncodeFrame(common.OpPong, nil)...)

	r := newFrameReassembler(common.DefaultMaxMessageSize)
	frames := feedAll(t, r, stream)

	expected := []common.Opcode{common.OpOK, common.OpValue, common.OpPong}
	if len(frames) != len(expected) {
		t.Fatalf("got %d frames, expected %d", len(frames), len(expected))
	}
	for i, op := range expected {
		if frames[i].Opcode != op {
			t.Errorf("frame %d has opcode %s, expected %s", i, frames[i].Opcode, op)
		}
	}
}

// TestReassemblyDeclaredLengthNotYetAvailable is the concrete scenario from
// the protocol contract: a header declares length 10 but only 6 payload
// bytes have arrived; no frame may be emitted until the remaining 4 arrive,
// across any number of additional fragmented events
func TestReassemblyDeclaredLengthNotYetAvailable(t *testing.T) {
	encoded := common.EncodeFrame(common.OpValue, []byte("0123456789"))

	r := newFrameReassembler(common.DefaultMaxMessageSize)

	// header + 6 of 10 payload bytes
	if frames := feedAll(t, r, encoded[:common.HeaderSize+6]); len(frames) != 0 {
		t.Fatal("frame emitted before the declared length arrived")
	}
	// two more fragments of 2 bytes each
	if frames := feedAll(t, r, encoded[common.HeaderSize+6:common.HeaderSize+8]); len(frames) != 0 {
		t.Fatal("frame emitted before the declared length arrived")
	}
	frames := feedAll(t, r, encoded[common.HeaderSize+8:])
	if len(frames) != 1 {
		t.Fatalf("got %d frames after final fragment, expected 1", len(frames))
	}
	if !bytes.Equal(frames[0].Payload, []byte("0123456789")) {
		t.Error("payload differs from original")
	}
}

// TestReassemblyGatesOnWaiters tests that a complete frame stays buffered
// while no request is outstanding
func TestReassemblyGatesOnWaiters(t *testing.T) {
	encoded := common.EncodeFrame(common.OpOK, nil)

	r := newFrameReassembler(common.DefaultMaxMessageSize)
	r.feed(encoded)

	if _, ok, err := r.next(0); ok || err != nil {
		t.Fatalf("extraction must stall without a waiter (ok=%t, err=%v)", ok, err)
	}
	if r.buffered() != len(encoded) {
		t.Errorf("buffer holds %d bytes, expected %d", r.buffered(), len(encoded))
	}

	frame, ok, err := r.next(1)
	if err != nil || !ok {
		t.Fatalf("extraction failed once a waiter arrived (ok=%t, err=%v)", ok, err)
	}
	if frame.Opcode != common.OpOK {
		t.Errorf("got opcode %s, expected %s", frame.Opcode, common.OpOK)
	}
}

// TestReassemblyRejectsOversizedFrame tests the maximum message size check
func TestReassemblyRejectsOversizedFrame(t *testing.T) {
	r := newFrameReassembler(16)

	// header declaring a 17-byte payload against a 16-byte maximum
	r.feed([]byte{byte(common.OpValue), 17, 0, 0, 0})
	if _, _, err := r.next(1); err == nil {
		t.Fatal("expected protocol violation for oversized frame")
	}
}
