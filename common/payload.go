package common

import (
	"encoding/binary"
	"fmt"
	"math"
)

// --------------------------------------------------------------------------
// Payload Codecs
// --------------------------------------------------------------------------
// Per-opcode payload layouts. All integers are little-endian. Encoders
// allocate exactly once; decoders bounds-check every read so a truncated
// payload surfaces as an error instead of a panic.

// KVPair is one key/value pair of a scan result.
type KVPair struct {
	Key   []byte
	Value []byte
}

// EncodePut builds a Put payload:
//
//	key_len:u32-LE | key | value (value runs to the end of the payload)
func EncodePut(key string, value []byte) []byte {
	buf := make([]byte, 4+len(key)+len(value))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(key)))
	copy(buf[4:], key)
	copy(buf[4+len(key):], value)
	return buf
}

// DecodePut is the inverse of EncodePut. Used by test servers.
func DecodePut(payload []byte) (key string, value []byte, err error) {
	if len(payload) < 4 {
		return "", nil, fmt.Errorf("put payload too short: %d bytes", len(payload))
	}
	keyLen := binary.LittleEndian.Uint32(payload[0:4])
	if 4+int(keyLen) > len(payload) {
		return "", nil, fmt.Errorf("put payload too short for key of %d bytes", keyLen)
	}
	return string(payload[4 : 4+keyLen]), payload[4+keyLen:], nil
}

// EncodePath builds a PutPath/GetPath payload:
//
//	path_count:u16-LE | (path_len:u16-LE | path_segment)* | value?
//
// value is nil for GetPath. Each segment must fit into 16 bits.
func EncodePath(segments []string, value []byte) ([]byte, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("path must have at least one segment")
	}
	if len(segments) > math.MaxUint16 {
		return nil, fmt.Errorf("too many path segments: %d", len(segments))
	}
	size := 2
	for _, seg := range segments {
		if len(seg) > math.MaxUint16 {
			return nil, fmt.Errorf("path segment exceeds %d bytes", math.MaxUint16)
		}
		size += 2 + len(seg)
	}
	size += len(value)

	buf := make([]byte, size)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(segments)))
	pos := 2
	for _, seg := range segments {
		binary.LittleEndian.PutUint16(buf[pos:pos+2], uint16(len(seg)))
		pos += 2
		copy(buf[pos:], seg)
		pos += len(seg)
	}
	copy(buf[pos:], value)
	return buf, nil
}

// DecodePath is the inverse of EncodePath. The trailing bytes after the last
// segment are returned as the value (empty for GetPath requests).
func DecodePath(payload []byte) (segments []string, value []byte, err error) {
	if len(payload) < 2 {
		return nil, nil, fmt.Errorf("path payload too short: %d bytes", len(payload))
	}
	count := binary.LittleEndian.Uint16(payload[0:2])
	pos := 2
	segments = make([]string, 0, count)
	for i := 0; i < int(count); i++ {
		if pos+2 > len(payload) {
			return nil, nil, fmt.Errorf("path payload too short for segment %d length", i)
		}
		segLen := binary.LittleEndian.Uint16(payload[pos : pos+2])
		pos += 2
		if pos+int(segLen) > len(payload) {
			return nil, nil, fmt.Errorf("path payload too short for segment %d data", i)
		}
		segments = append(segments, string(payload[pos:pos+int(segLen)]))
		pos += int(segLen)
	}
	return segments, payload[pos:], nil
}

// EncodeQuery builds a Query payload:
//
//	path_len:u16-LE | path | limit:u32-LE | offset:u32-LE |
//	col_count:u16-LE | (col_len:u16-LE | col)*
func EncodeQuery(path string, limit, offset uint32, columns []string) ([]byte, error) {
	if len(path) > math.MaxUint16 {
		return nil, fmt.Errorf("query path exceeds %d bytes", math.MaxUint16)
	}
	if len(columns) > math.MaxUint16 {
		return nil, fmt.Errorf("too many query columns: %d", len(columns))
	}
	size := 2 + len(path) + 4 + 4 + 2
	for _, col := range columns {
		if len(col) > math.MaxUint16 {
			return nil, fmt.Errorf("query column exceeds %d bytes", math.MaxUint16)
		}
		size += 2 + len(col)
	}

	buf := make([]byte, size)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(len(path)))
	pos := 2
	copy(buf[pos:], path)
	pos += len(path)
	binary.LittleEndian.PutUint32(buf[pos:pos+4], limit)
	pos += 4
	binary.LittleEndian.PutUint32(buf[pos:pos+4], offset)
	pos += 4
	binary.LittleEndian.PutUint16(buf[pos:pos+2], uint16(len(columns)))
	pos += 2
	for _, col := range columns {
		binary.LittleEndian.PutUint16(buf[pos:pos+2], uint16(len(col)))
		pos += 2
		copy(buf[pos:], col)
		pos += len(col)
	}
	return buf, nil
}

// EncodeTxnId builds a CommitTxn/AbortTxn payload: an 8-byte little-endian
// unsigned transaction id.
func EncodeTxnId(id uint64) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, id)
	return buf
}

// DecodeTxnId parses a TxnId response payload.
func DecodeTxnId(payload []byte) (uint64, error) {
	if len(payload) != 8 {
		return 0, fmt.Errorf("transaction id payload must be 8 bytes, got %d", len(payload))
	}
	return binary.LittleEndian.Uint64(payload), nil
}

// EncodeScanResult builds a Scan response payload:
//
//	count:u32-LE | (key_len:u16-LE | key | value_len:u32-LE | value)*
//
// Used by test servers; the client only decodes this shape.
func EncodeScanResult(pairs []KVPair) ([]byte, error) {
	size := 4
	for _, p := range pairs {
		if len(p.Key) > math.MaxUint16 {
			return nil, fmt.Errorf("scan key exceeds %d bytes", math.MaxUint16)
		}
		size += 2 + len(p.Key) + 4 + len(p.Value)
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(pairs)))
	pos := 4
	for _, p := range pairs {
		binary.LittleEndian.PutUint16(buf[pos:pos+2], uint16(len(p.Key)))
		pos += 2
		copy(buf[pos:], p.Key)
		pos += len(p.Key)
		binary.LittleEndian.PutUint32(buf[pos:pos+4], uint32(len(p.Value)))
		pos += 4
		copy(buf[pos:], p.Value)
		pos += len(p.Value)
	}
	return buf, nil
}

// DecodeScanResult parses a Scan response payload into key/value pairs.
func DecodeScanResult(payload []byte) ([]KVPair, error) {
	if len(payload) < 4 {
		return nil, fmt.Errorf("scan payload too short: %d bytes", len(payload))
	}
	count := binary.LittleEndian.Uint32(payload[0:4])
	// each pair carries at least its two length fields (6 bytes); a count
	// beyond that bound is malformed and must never size an allocation
	if uint64(count) > uint64(len(payload)-4)/6 {
		return nil, fmt.Errorf("scan payload declares %d pairs, only %d bytes follow", count, len(payload)-4)
	}
	pos := 4
	pairs := make([]KVPair, 0, count)
	for i := uint32(0); i < count; i++ {
		if pos+2 > len(payload) {
			return nil, fmt.Errorf("scan payload too short for pair %d key length", i)
		}
		keyLen := binary.LittleEndian.Uint16(payload[pos : pos+2])
		pos += 2
		if pos+int(keyLen) > len(payload) {
			return nil, fmt.Errorf("scan payload too short for pair %d key data", i)
		}
		key := make([]byte, keyLen)
		copy(key, payload[pos:pos+int(keyLen)])
		pos += int(keyLen)

		if pos+4 > len(payload) {
			return nil, fmt.Errorf("scan payload too short for pair %d value length", i)
		}
		valueLen := binary.LittleEndian.Uint32(payload[pos : pos+4])
		pos += 4
		if pos+int(valueLen) > len(payload) {
			return nil, fmt.Errorf("scan payload too short for pair %d value data", i)
		}
		value := make([]byte, valueLen)
		copy(value, payload[pos:pos+int(valueLen)])
		pos += int(valueLen)

		pairs = append(pairs, KVPair{Key: key, Value: value})
	}
	if pos != len(payload) {
		return nil, fmt.Errorf("scan payload has %d trailing bytes", len(payload)-pos)
	}
	return pairs, nil
}
