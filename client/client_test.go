package client

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stratadb/strata-go/common"
	"github.com/stratadb/strata-go/transport"
)

// --------------------------------------------------------------------------
// Test Helpers
// --------------------------------------------------------------------------

// fakeTransport answers each Send with the next scripted response, in order,
// and records every request for inspection
type fakeTransport struct {
	sent      []common.Frame
	responses []common.Frame
	sendErr   error

	stream    []common.Frame
	streamErr error

	closed bool
}

func (f *fakeTransport) Connect(config common.ClientConfig) error { return nil }

func (f *fakeTransport) Send(op common.Opcode, payload []byte) (common.Frame, error) {
	f.sent = append(f.sent, common.Frame{Opcode: op, Payload: payload})
	if f.sendErr != nil {
		return common.Frame{}, f.sendErr
	}
	if len(f.responses) == 0 {
		return common.Frame{}, fmt.Errorf("no scripted response for %s", op)
	}
	r := f.responses[0]
	f.responses = f.responses[1:]
	return r, nil
}

func (f *fakeTransport) SendStream(op common.Opcode, payload []byte) ([]common.Frame, error) {
	f.sent = append(f.sent, common.Frame{Opcode: op, Payload: payload})
	if f.streamErr != nil {
		return nil, f.streamErr
	}
	return f.stream, nil
}

func (f *fakeTransport) Stats() transport.Stats { return transport.Stats{} }

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

func newTestClient(t *testing.T, fake *fakeTransport) *Client {
	t.Helper()
	c, err := NewClient(common.ClientConfig{Endpoint: "test"}, fake)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func respond(frames ...common.Frame) *fakeTransport {
	return &fakeTransport{responses: frames}
}

// --------------------------------------------------------------------------
// Key-Value Operations
// --------------------------------------------------------------------------

func TestPut(t *testing.T) {
	fake := respond(common.Frame{Opcode: common.OpOK})
	c := newTestClient(t, fake)

	if err := c.Put("k", []byte("v")); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	if len(fake.sent) != 1 || fake.sent[0].Opcode != common.OpPut {
		t.Fatalf("sent %v, expected a single put request", fake.sent)
	}
	if !bytes.Equal(fake.sent[0].Payload, common.EncodePut("k", []byte("v"))) {
		t.Error("put request payload doesn't match the key/value encoding")
	}
}

func TestGet(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		c := newTestClient(t, respond(common.Frame{Opcode: common.OpValue, Payload: []byte("v")}))

		value, found, err := c.Get("k")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if !found || !bytes.Equal(value, []byte("v")) {
			t.Errorf("got (%q, %t), expected (v, true)", value, found)
		}
	})

	t.Run("not found", func(t *testing.T) {
		// an empty Value response means the key is absent, not an error
		c := newTestClient(t, respond(common.Frame{Opcode: common.OpValue}))

		value, found, err := c.Get("missing")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if found || value != nil {
			t.Errorf("got (%q, %t), expected a not-found result", value, found)
		}
	})
}

func TestDelete(t *testing.T) {
	fake := respond(common.Frame{Opcode: common.OpOK})
	c := newTestClient(t, fake)

	if err := c.Delete("k"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if fake.sent[0].Opcode != common.OpDelete || string(fake.sent[0].Payload) != "k" {
		t.Errorf("sent (%s, %q)", fake.sent[0].Opcode, fake.sent[0].Payload)
	}
}

// --------------------------------------------------------------------------
// Error Mapping
// --------------------------------------------------------------------------

func TestServerErrorFrame(t *testing.T) {
	c := newTestClient(t, respond(common.Frame{Opcode: common.OpError, Payload: []byte("key too large")}))

	err := c.Put("k", []byte("v"))
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("got %T, expected a protocol error", err)
	}
	if perr.Message != "key too large" {
		t.Errorf("server message is %q, expected %q", perr.Message, "key too large")
	}
}

func TestUnexpectedResponseOpcode(t *testing.T) {
	c := newTestClient(t, respond(common.Frame{Opcode: common.OpPong}))

	_, _, err := c.Get("k")
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("got %T (%v), expected a protocol error", err, err)
	}
}

func TestTransportFailureMapping(t *testing.T) {
	t.Run("closed", func(t *testing.T) {
		c := newTestClient(t, &fakeTransport{sendErr: transport.ErrClosed})

		err := c.Put("k", nil)
		var cerr *ConnectionError
		if !errors.As(err, &cerr) {
			t.Fatalf("got %T, expected a connection error", err)
		}
		if !errors.Is(err, transport.ErrClosed) {
			t.Error("the transport sentinel must stay reachable through errors.Is")
		}
		if IsTimeout(err) {
			t.Error("a closed connection must not be reported as a timeout")
		}
	})

	t.Run("timeout", func(t *testing.T) {
		c := newTestClient(t, &fakeTransport{sendErr: transport.ErrTimeout})

		err := c.Put("k", nil)
		if !IsTimeout(err) {
			t.Errorf("IsTimeout is false for %v", err)
		}
		var cerr *ConnectionError
		if !errors.As(err, &cerr) {
			t.Errorf("got %T, timeouts are connection-class failures", err)
		}
	})
}

// --------------------------------------------------------------------------
// Path Operations
// --------------------------------------------------------------------------

func TestPathOperations(t *testing.T) {
	t.Run("put and get", func(t *testing.T) {
		fake := respond(
			common.Frame{Opcode: common.OpOK},
			common.Frame{Opcode: common.OpValue, Payload: []byte("doc")},
		)
		c := newTestClient(t, fake)

		if err := c.PutPath([]string{"users", "42", "profile"}, []byte("doc")); err != nil {
			t.Fatalf("put path failed: %v", err)
		}

		value, found, err := c.GetPath("users", "42", "profile")
		if err != nil {
			t.Fatalf("get path failed: %v", err)
		}
		if !found || !bytes.Equal(value, []byte("doc")) {
			t.Errorf("got (%q, %t)", value, found)
		}

		expected, _ := common.EncodePath([]string{"users", "42", "profile"}, []byte("doc"))
		if !bytes.Equal(fake.sent[0].Payload, expected) {
			t.Error("put path payload doesn't match the path encoding")
		}
	})

	t.Run("empty path fails locally", func(t *testing.T) {
		fake := &fakeTransport{}
		c := newTestClient(t, fake)

		var perr *ProtocolError
		if err := c.PutPath(nil, []byte("doc")); !errors.As(err, &perr) {
			t.Errorf("got %T, expected a protocol error", err)
		}
		if len(fake.sent) != 0 {
			t.Error("an unencodable path must not reach the wire")
		}
	})

	t.Run("not found", func(t *testing.T) {
		c := newTestClient(t, respond(common.Frame{Opcode: common.OpValue}))

		_, found, err := c.GetPath("users", "missing")
		if err != nil || found {
			t.Errorf("got (found=%t, err=%v), expected a not-found result", found, err)
		}
	})
}

// --------------------------------------------------------------------------
// Scan and Query
// --------------------------------------------------------------------------

func TestScan(t *testing.T) {
	pairs := []common.KVPair{
		{Key: []byte("user:1"), Value: []byte("alice")},
		{Key: []byte("user:2"), Value: []byte("bob")},
	}
	payload, err := common.EncodeScanResult(pairs)
	if err != nil {
		t.Fatalf("failed to encode scan result: %v", err)
	}

	fake := respond(common.Frame{Opcode: common.OpValue, Payload: payload})
	c := newTestClient(t, fake)

	got, err := c.Scan("user:")
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if !reflect.DeepEqual(got, pairs) {
		t.Errorf("scanned %v, expected %v", got, pairs)
	}
	if string(fake.sent[0].Payload) != "user:" {
		t.Errorf("scan request carries %q, expected the raw prefix", fake.sent[0].Payload)
	}

	t.Run("malformed result", func(t *testing.T) {
		c := newTestClient(t, respond(common.Frame{Opcode: common.OpValue, Payload: []byte{0xFF}}))

		var perr *ProtocolError
		if _, err := c.Scan("x"); !errors.As(err, &perr) {
			t.Errorf("got %T, expected a protocol error", err)
		}
	})
}

func TestQuery(t *testing.T) {
	t.Run("streamed rows", func(t *testing.T) {
		fake := &fakeTransport{stream: []common.Frame{
			{Opcode: common.OpRow, Payload: []byte("name\tage\n")},
			{Opcode: common.OpRow, Payload: []byte("alice\t30\nbob\t25\n")},
			{Opcode: common.OpEndStream},
		}}
		c := newTestClient(t, fake)

		result, err := c.Query("users", 10, 0, []string{"name", "age"})
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if result.Len() != 2 {
			t.Fatalf("got %d rows, expected 2", result.Len())
		}
		if result.Row(1).String("name") != "bob" {
			t.Errorf("row 1 name is %q", result.Row(1).String("name"))
		}
		if fake.sent[0].Opcode != common.OpQuery {
			t.Errorf("sent %s, expected a query request", fake.sent[0].Opcode)
		}
	})

	t.Run("empty result", func(t *testing.T) {
		c := newTestClient(t, &fakeTransport{stream: []common.Frame{
			{Opcode: common.OpEndStream},
		}})

		result, err := c.Query("users", 0, 0, nil)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if result.Len() != 0 {
			t.Errorf("got %d rows, expected none", result.Len())
		}
	})

	t.Run("server error terminal", func(t *testing.T) {
		c := newTestClient(t, &fakeTransport{stream: []common.Frame{
			{Opcode: common.OpRow, Payload: []byte("partial\n")},
			{Opcode: common.OpError, Payload: []byte("no such table")},
		}})

		_, err := c.Query("nope", 0, 0, nil)
		var perr *ProtocolError
		if !errors.As(err, &perr) {
			t.Fatalf("got %T, expected a protocol error", err)
		}
		if perr.Message != "no such table" {
			t.Errorf("server message is %q", perr.Message)
		}
	})

	t.Run("unexpected terminal", func(t *testing.T) {
		c := newTestClient(t, &fakeTransport{stream: []common.Frame{
			{Opcode: common.OpPong},
		}})

		var perr *ProtocolError
		if _, err := c.Query("users", 0, 0, nil); !errors.As(err, &perr) {
			t.Errorf("got %T, expected a protocol error", err)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		c := newTestClient(t, &fakeTransport{streamErr: transport.ErrTimeout})

		_, err := c.Query("users", 0, 0, nil)
		if !IsTimeout(err) {
			t.Errorf("IsTimeout is false for %v", err)
		}
	})
}

func TestCreateTable(t *testing.T) {
	fake := respond(common.Frame{Opcode: common.OpOK})
	c := newTestClient(t, fake)

	if err := c.CreateTable("users"); err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	if fake.sent[0].Opcode != common.OpCreateTable || string(fake.sent[0].Payload) != "users" {
		t.Errorf("sent (%s, %q)", fake.sent[0].Opcode, fake.sent[0].Payload)
	}
}

// --------------------------------------------------------------------------
// Administration
// --------------------------------------------------------------------------

func TestStats(t *testing.T) {
	payload := []byte(`{"keys":1200,"tables":3,"disk_bytes":4096,"uptime_seconds":77,"extra":"kept"}`)
	c := newTestClient(t, respond(common.Frame{Opcode: common.OpStatsResp, Payload: payload}))

	stats, err := c.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Keys != 1200 || stats.Tables != 3 || stats.DiskBytes != 4096 || stats.UptimeSeconds != 77 {
		t.Errorf("decoded %+v", stats)
	}
	if !bytes.Equal(stats.Raw, payload) {
		t.Error("the raw payload must be preserved for unknown fields")
	}

	t.Run("malformed payload", func(t *testing.T) {
		c := newTestClient(t, respond(common.Frame{Opcode: common.OpStatsResp, Payload: []byte("not json")}))

		var perr *ProtocolError
		if _, err := c.Stats(); !errors.As(err, &perr) {
			t.Errorf("got %T, expected a protocol error", err)
		}
	})
}

func TestCheckpoint(t *testing.T) {
	c := newTestClient(t, respond(common.Frame{Opcode: common.OpOK}))
	if err := c.Checkpoint(); err != nil {
		t.Fatalf("checkpoint failed: %v", err)
	}
}

func TestPing(t *testing.T) {
	t.Run("alive", func(t *testing.T) {
		c := newTestClient(t, respond(common.Frame{Opcode: common.OpPong}))
		if !c.Ping() {
			t.Error("ping reported a responsive server as down")
		}
	})

	t.Run("failure is not an error", func(t *testing.T) {
		c := newTestClient(t, &fakeTransport{sendErr: transport.ErrClosed})
		if c.Ping() {
			t.Error("ping reported a dead connection as alive")
		}
	})
}

func TestClose(t *testing.T) {
	fake := &fakeTransport{}
	c := newTestClient(t, fake)

	if err := c.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !fake.closed {
		t.Error("close must reach the transport")
	}
}
