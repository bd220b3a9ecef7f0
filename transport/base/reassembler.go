package base

import (
	"encoding/binary"
	"fmt"

	"github.com/stratadb/strata-go/common"
)

// frameReassembler converts an unbounded, arbitrarily-chunked byte stream
// into a sequence of complete frames. It is owned exclusively by the reader
// goroutine; no locking happens here.
type frameReassembler struct {
	buf     []byte
	maxSize uint32
}

func newFrameReassembler(maxSize uint32) *frameReassembler {
	return &frameReassembler{maxSize: maxSize}
}

// feed appends newly arrived bytes to the buffer.
func (r *frameReassembler) feed(data []byte) {
	r.buf = append(r.buf, data...)
}

// next extracts the next complete frame from the buffer, if one is available
// and at least one request is waiting for it. It returns ok=false when more
// data (or a waiter) is needed. The buffer is trimmed past every emitted
// frame, so it never retains a byte that belongs to an already-emitted frame.
func (r *frameReassembler) next(waiting int) (common.Frame, bool, error) {
	if waiting == 0 || len(r.buf) < common.HeaderSize {
		return common.Frame{}, false, nil
	}

	length := binary.LittleEndian.Uint32(r.buf[1:common.HeaderSize])
	if length > r.maxSize {
		return common.Frame{}, false, fmt.Errorf("frame payload of %d bytes exceeds maximum of %d", length, r.maxSize)
	}

	total := common.HeaderSize + int(length)
	if len(r.buf) < total {
		return common.Frame{}, false, nil
	}

	frame, err := common.DecodeFrame(r.buf[:total])
	if err != nil {
		return common.Frame{}, false, err
	}

	// Trim the emitted frame off the front
	r.buf = append(r.buf[:0], r.buf[total:]...)
	return frame, true, nil
}

// buffered returns the number of bytes not yet assembled into a frame.
func (r *frameReassembler) buffered() int {
	return len(r.buf)
}
