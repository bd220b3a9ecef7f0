package client

import (
	"encoding/json"
	"fmt"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/stratadb/strata-go/common"
	"github.com/stratadb/strata-go/rows"
	"github.com/stratadb/strata-go/transport"
)

var Logger = logger.GetLogger("client")

// Client is a typed StrataDB client bound to a single connection. Create it
// with NewClient; after Close (or a fatal connection error) a new Client is
// required to reconnect.
type Client struct {
	config    common.ClientConfig
	transport transport.IClientTransport
}

// ServerStats holds the decoded Stats response. Unknown fields of the JSON
// payload are preserved in Raw.
type ServerStats struct {
	Keys          uint64 `json:"keys"`
	Tables        uint64 `json:"tables"`
	DiskBytes     uint64 `json:"disk_bytes"`
	UptimeSeconds uint64 `json:"uptime_seconds"`

	Raw []byte `json:"-"`
}

// NewClient connects the given transport and returns a ready client.
func NewClient(config common.ClientConfig, t transport.IClientTransport) (*Client, error) {
	config = config.WithDefaults()

	if err := t.Connect(config); err != nil {
		return nil, wrapTransportErr("connect", err)
	}

	return &Client{
		config:    config,
		transport: t,
	}, nil
}

// Close closes the underlying connection. Idempotent.
func (c *Client) Close() error {
	return c.transport.Close()
}

// --------------------------------------------------------------------------
// Key-Value Operations
// --------------------------------------------------------------------------

// Put stores value under key.
func (c *Client) Put(key string, value []byte) error {
	_, err := c.invoke(common.OpPut, common.EncodePut(key, value), common.OpOK)
	return err
}

// Get fetches the value stored under key. An empty Value response means the
// key does not exist; this is reported as found=false, not an error.
func (c *Client) Get(key string) (value []byte, found bool, err error) {
	frame, err := c.invoke(common.OpGet, []byte(key), common.OpValue)
	if err != nil {
		return nil, false, err
	}
	if len(frame.Payload) == 0 {
		return nil, false, nil
	}
	return frame.Payload, true, nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Client) Delete(key string) error {
	_, err := c.invoke(common.OpDelete, []byte(key), common.OpOK)
	return err
}

// --------------------------------------------------------------------------
// Path Operations
// --------------------------------------------------------------------------

// PutPath stores value under a hierarchical path of one or more segments.
func (c *Client) PutPath(path []string, value []byte) error {
	payload, err := common.EncodePath(path, value)
	if err != nil {
		return &ProtocolError{Op: common.OpPutPath.String(), Err: err}
	}
	_, err = c.invoke(common.OpPutPath, payload, common.OpOK)
	return err
}

// GetPath fetches the value stored under a hierarchical path. Like Get, an
// empty Value response means "not found".
func (c *Client) GetPath(path ...string) (value []byte, found bool, err error) {
	payload, err := common.EncodePath(path, nil)
	if err != nil {
		return nil, false, &ProtocolError{Op: common.OpGetPath.String(), Err: err}
	}
	frame, err := c.invoke(common.OpGetPath, payload, common.OpValue)
	if err != nil {
		return nil, false, err
	}
	if len(frame.Payload) == 0 {
		return nil, false, nil
	}
	return frame.Payload, true, nil
}

// --------------------------------------------------------------------------
// Scan and Query
// --------------------------------------------------------------------------

// Scan returns all key/value pairs whose key starts with prefix.
func (c *Client) Scan(prefix string) ([]common.KVPair, error) {
	frame, err := c.invoke(common.OpScan, []byte(prefix), common.OpValue)
	if err != nil {
		return nil, err
	}
	pairs, err := common.DecodeScanResult(frame.Payload)
	if err != nil {
		return nil, &ProtocolError{Op: common.OpScan.String(), Err: err}
	}
	return pairs, nil
}

// Query runs a query against a document path and parses the row-oriented
// text result. The server streams the result as Row frames terminated by
// EndStream; the read timeout applies to each frame individually.
func (c *Client) Query(path string, limit, offset uint32, columns []string) (*rows.Result, error) {
	op := common.OpQuery.String()

	payload, err := common.EncodeQuery(path, limit, offset, columns)
	if err != nil {
		return nil, &ProtocolError{Op: op, Err: err}
	}

	frames, err := c.transport.SendStream(common.OpQuery, payload)
	if err != nil {
		return nil, wrapTransportErr(op, err)
	}

	// the terminal frame decides the outcome
	terminal := frames[len(frames)-1]
	switch terminal.Opcode {
	case common.OpEndStream:
	case common.OpError:
		return nil, &ProtocolError{Op: op, Message: string(terminal.Payload)}
	default:
		return nil, &ProtocolError{Op: op, Err: fmt.Errorf("unexpected response opcode %s", terminal.Opcode)}
	}

	var text []byte
	for _, f := range frames[:len(frames)-1] {
		text = append(text, f.Payload...)
	}

	result, err := rows.Parse(string(text))
	if err != nil {
		return nil, &ProtocolError{Op: op, Err: err}
	}
	return result, nil
}

// CreateTable creates a table with the given name.
func (c *Client) CreateTable(name string) error {
	_, err := c.invoke(common.OpCreateTable, []byte(name), common.OpOK)
	return err
}

// --------------------------------------------------------------------------
// Administration
// --------------------------------------------------------------------------

// Stats fetches and decodes server statistics.
func (c *Client) Stats() (*ServerStats, error) {
	frame, err := c.invoke(common.OpStats, nil, common.OpStatsResp)
	if err != nil {
		return nil, err
	}

	stats := &ServerStats{Raw: frame.Payload}
	if err := json.Unmarshal(frame.Payload, stats); err != nil {
		return nil, &ProtocolError{Op: common.OpStats.String(), Err: fmt.Errorf("malformed stats payload: %w", err)}
	}
	return stats, nil
}

// Checkpoint forces a server checkpoint and waits for its acknowledgement.
func (c *Client) Checkpoint() error {
	_, err := c.invoke(common.OpCheckpoint, nil, common.OpOK)
	return err
}

// Ping is a best-effort liveness check. Any failure, including a connection
// that never opened, is reported as false rather than an error.
func (c *Client) Ping() bool {
	_, err := c.invoke(common.OpPing, nil, common.OpPong)
	if err != nil {
		Logger.Debugf("Ping failed: %v", err)
		return false
	}
	return true
}

// TransportStats returns the connection counters of the underlying transport.
func (c *Client) TransportStats() transport.Stats {
	return c.transport.Stats()
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// invoke sends one request and interprets the response frame: an Error frame
// fails with the server-provided text, a frame with any opcode other than
// expect is a protocol error.
func (c *Client) invoke(op common.Opcode, payload []byte, expect common.Opcode) (common.Frame, error) {
	frame, err := c.transport.Send(op, payload)
	if err != nil {
		return common.Frame{}, wrapTransportErr(op.String(), err)
	}

	if frame.Opcode == common.OpError {
		return common.Frame{}, &ProtocolError{Op: op.String(), Message: string(frame.Payload)}
	}
	if frame.Opcode != expect {
		return common.Frame{}, &ProtocolError{
			Op:  op.String(),
			Err: fmt.Errorf("unexpected response opcode %s, expected %s", frame.Opcode, expect),
		}
	}
	return frame, nil
}
