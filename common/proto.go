package common

// --------------------------------------------------------------------------
// Opcode Definition
// --------------------------------------------------------------------------

// Opcode identifies a request or response frame on the wire.
// The numeric values are part of the wire contract and must match the
// server exactly. Request opcodes occupy 0x01-0x7F, response opcodes
// 0x80-0xFF, so the two spaces never overlap.
type Opcode uint8

const (
	// Request opcodes

	OpPut         Opcode = 0x01 // Set a key to a value
	OpGet         Opcode = 0x02 // Get the value of a key
	OpDelete      Opcode = 0x03 // Delete a key
	OpBeginTxn    Opcode = 0x04 // Begin a transaction
	OpCommitTxn   Opcode = 0x05 // Commit a transaction
	OpAbortTxn    Opcode = 0x06 // Abort a transaction
	OpQuery       Opcode = 0x07 // Run a query against a document path
	OpCreateTable Opcode = 0x08 // Create a table
	OpPutPath     Opcode = 0x09 // Set a value addressed by a hierarchical path
	OpGetPath     Opcode = 0x0A // Get a value addressed by a hierarchical path
	OpScan        Opcode = 0x0B // Scan all keys with a given prefix
	OpCheckpoint  Opcode = 0x0C // Force a server checkpoint
	OpStats       Opcode = 0x0D // Fetch server statistics
	OpPing        Opcode = 0x0E // Liveness check

	// Response opcodes

	OpOK        Opcode = 0x80 // Generic success, empty payload
	OpError     Opcode = 0x81 // Server error, payload is UTF-8 text
	OpValue     Opcode = 0x82 // Value payload (empty means "not found")
	OpTxnId     Opcode = 0x83 // 8-byte little-endian transaction id
	OpRow       Opcode = 0x84 // One chunk of a query result
	OpEndStream Opcode = 0x85 // Terminates a sequence of Row frames
	OpStatsResp Opcode = 0x86 // Server statistics, payload is UTF-8 JSON
	OpPong      Opcode = 0x87 // Response to Ping
)

// IsResponse reports whether op lies in the response opcode range.
func (op Opcode) IsResponse() bool {
	return op >= 0x80
}

// String returns the string representation of an Opcode.
func (op Opcode) String() string {
	switch op {
	case OpPut:
		return "put"
	case OpGet:
		return "get"
	case OpDelete:
		return "delete"
	case OpBeginTxn:
		return "beginTxn"
	case OpCommitTxn:
		return "commitTxn"
	case OpAbortTxn:
		return "abortTxn"
	case OpQuery:
		return "query"
	case OpCreateTable:
		return "createTable"
	case OpPutPath:
		return "putPath"
	case OpGetPath:
		return "getPath"
	case OpScan:
		return "scan"
	case OpCheckpoint:
		return "checkpoint"
	case OpStats:
		return "stats"
	case OpPing:
		return "ping"
	case OpOK:
		return "ok"
	case OpError:
		return "error"
	case OpValue:
		return "value"
	case OpTxnId:
		return "txnId"
	case OpRow:
		return "row"
	case OpEndStream:
		return "endStream"
	case OpStatsResp:
		return "statsResp"
	case OpPong:
		return "pong"
	default:
		return "unknown"
	}
}
