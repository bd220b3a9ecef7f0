package base

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lni/dragonboat/v4/logger"
	"github.com/stratadb/strata-go/common"
	"github.com/stratadb/strata-go/transport"
)

var Logger = logger.GetLogger("transport/strata")

// -----------------------------------------------------------
// Interface Definitions for dependency injection
// -----------------------------------------------------------

// IClientConnector defines the interface for transport-specific connection operations
type IClientConnector interface {
	// Connect establishes a single connection to the endpoint. It must
	// respect the timeout and abort a half-open connection when it elapses.
	Connect(endpoint string, timeout time.Duration) (net.Conn, error)

	// GetName returns the name of the transport type (e.g., "unix", "tcp")
	GetName() string

	// UpgradeConnection applies protocol-specific settings to an established connection
	UpgradeConnection(conn net.Conn, config common.ClientConfig) error
}

// -----------------------------------------------------------
// Helper Types
// -----------------------------------------------------------

// Connection states
const (
	stateConnecting int32 = iota
	stateOpen
	stateClosed
)

// result is the settlement of a pending request
type result struct {
	frame common.Frame
	err   error
}

// pendingRequest is one entry of the FIFO pending queue. It is created when
// a request frame is written and settles exactly once: with the matching
// response frame, a timeout, or a connection-closed error.
type pendingRequest struct {
	op         common.Opcode
	enqueuedAt time.Time

	// stream marks requests whose response is a sequence of OpRow frames
	// terminated by a non-OpRow frame. Row frames accumulate in rows while
	// the request stays at the head of the queue.
	stream   bool
	rows     []common.Frame
	progress chan struct{} // pulsed per row so the waiter can restart its timer

	done chan result // buffered; receives the terminal settlement
}

// clientTransport implements the core client transport functionality
// independent of the specific transport medium (unix, tcp, etc.)
type clientTransport struct {
	connector IClientConnector
	config    common.ClientConfig

	conn  net.Conn
	state atomic.Int32

	// mu guards the pending queue and the enqueue+write critical section.
	// Holding it across both keeps send order equal to queue order, which
	// the positional correlation depends on.
	mu      sync.Mutex
	pending []*pendingRequest

	stopCh    chan struct{}
	closeOnce sync.Once

	metrics *connMetrics
}

// -----------------------------------------------------------
// Transport Factory Method (used for tcp, unix, etc.)
// -----------------------------------------------------------

// NewBaseClientTransport creates a new base client transport with the specified connector
func NewBaseClientTransport(connector IClientConnector) transport.IClientTransport {
	t := &clientTransport{
		connector: connector,
		stopCh:    make(chan struct{}),
		metrics:   newConnMetrics(connector.GetName()),
	}
	t.state.Store(stateConnecting)
	return t
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IClientTransport)
// --------------------------------------------------------------------------

func (t *clientTransport) Connect(config common.ClientConfig) error {
	if config.Endpoint == "" {
		return fmt.Errorf("no endpoint provided")
	}
	if t.state.Load() != stateConnecting {
		return fmt.Errorf("transport already connected or closed")
	}

	config = config.WithDefaults()
	t.config = config

	conn, err := t.connector.Connect(config.Endpoint, config.ConnectTimeout)
	if err != nil {
		t.state.Store(stateClosed)
		t.metrics.connError()
		return fmt.Errorf("failed to connect to %s: %w", config.Endpoint, err)
	}

	if err := t.connector.UpgradeConnection(conn, config); err != nil {
		conn.Close()
		t.state.Store(stateClosed)
		return fmt.Errorf("failed to upgrade connection to %s: %w", config.Endpoint, err)
	}

	t.conn = conn
	t.state.Store(stateOpen)

	Logger.Infof("Connected to %s using %s transport", config.Endpoint, t.connector.GetName())

	// Start the response reader
	go t.readResponses()

	return nil
}

func (t *clientTransport) Send(op common.Opcode, payload []byte) (common.Frame, error) {
	p, err := t.enqueueAndWrite(op, payload, false)
	if err != nil {
		return common.Frame{}, err
	}
	return t.await(p)
}

func (t *clientTransport) SendStream(op common.Opcode, payload []byte) ([]common.Frame, error) {
	p, err := t.enqueueAndWrite(op, payload, true)
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(t.config.ReadTimeout)
	defer timer.Stop()

	for {
		select {
		case r := <-p.done:
			if r.err != nil {
				return nil, r.err
			}
			// rows is no longer touched by the reader once done fired
			return append(p.rows, r.frame), nil
		case <-p.progress:
			// a row arrived, restart the per-frame timeout
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(t.config.ReadTimeout)
		case <-timer.C:
			if t.abandon(p) {
				t.metrics.timedOut()
				return nil, fmt.Errorf("%s after %v: %w", op, t.config.ReadTimeout, transport.ErrTimeout)
			}
			// the terminal frame raced the timer, take the settlement
			r := <-p.done
			if r.err != nil {
				return nil, r.err
			}
			return append(p.rows, r.frame), nil
		}
	}
}

func (t *clientTransport) Stats() transport.Stats {
	return t.metrics.snapshot()
}

func (t *clientTransport) Close() error {
	t.closeOnce.Do(func() {
		close(t.stopCh)
		t.failAll(transport.ErrClosed)
		if t.conn != nil {
			t.conn.Close()
		}
		Logger.Infof("Closed %s transport", t.connector.GetName())
	})
	return nil
}

// --------------------------------------------------------------------------
// Send Path
// --------------------------------------------------------------------------

// enqueueAndWrite builds the frame, appends a pending request to the tail of
// the queue and writes the frame to the connection, all inside one critical
// section. A write failure removes the just-enqueued request before it can
// be confused with a future response.
func (t *clientTransport) enqueueAndWrite(op common.Opcode, payload []byte, stream bool) (*pendingRequest, error) {
	if t.state.Load() != stateOpen {
		return nil, transport.ErrNotConnected
	}
	if uint32(len(payload)) > t.config.MaxMessageSize {
		return nil, fmt.Errorf("%s payload of %d bytes: %w", op, len(payload), transport.ErrTooLarge)
	}

	frame := common.EncodeFrame(op, payload)

	p := &pendingRequest{
		op:         op,
		enqueuedAt: time.Now(),
		stream:     stream,
		done:       make(chan result, 1),
	}
	if stream {
		p.progress = make(chan struct{}, 1)
	}

	t.mu.Lock()
	if t.state.Load() != stateOpen {
		t.mu.Unlock()
		return nil, transport.ErrNotConnected
	}

	t.pending = append(t.pending, p)

	if err := t.conn.SetWriteDeadline(time.Now().Add(t.config.ReadTimeout)); err != nil {
		t.removeLocked(p)
		t.mu.Unlock()
		t.metrics.connError()
		return nil, fmt.Errorf("write failed for %s: %w", op, err)
	}
	_, err := t.conn.Write(frame)
	if err != nil {
		t.removeLocked(p)
		t.mu.Unlock()
		t.metrics.connError()
		return nil, fmt.Errorf("write failed for %s: %w", op, err)
	}
	t.mu.Unlock()

	t.metrics.requestSent(op, len(frame))
	return p, nil
}

// await blocks until the request settles or its read timeout elapses.
//
// Timeout removal is by identity, not position, so requests behind a
// timed-out one stay correctly correlated. If the server later replies to
// the timed-out request anyway, that frame is matched to the next queued
// request; callers that cannot tolerate this must close the connection on
// timeout.
func (t *clientTransport) await(p *pendingRequest) (common.Frame, error) {
	timer := time.NewTimer(t.config.ReadTimeout)
	defer timer.Stop()

	select {
	case r := <-p.done:
		return r.frame, r.err
	case <-timer.C:
		if t.abandon(p) {
			t.metrics.timedOut()
			return common.Frame{}, fmt.Errorf("%s after %v: %w", p.op, t.config.ReadTimeout, transport.ErrTimeout)
		}
		// the response raced the timer, take it
		r := <-p.done
		return r.frame, r.err
	}
}

// abandon removes p from the pending queue by identity. It reports false if
// p already settled (its response arrived or the connection closed).
func (t *clientTransport) abandon(p *pendingRequest) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.removeLocked(p)
}

func (t *clientTransport) removeLocked(p *pendingRequest) bool {
	for i, q := range t.pending {
		if q == p {
			t.pending = append(t.pending[:i], t.pending[i+1:]...)
			return true
		}
	}
	return false
}

// --------------------------------------------------------------------------
// Receive Path
// --------------------------------------------------------------------------

// readResponses reads inbound bytes in a loop, reassembles them into frames
// and settles the pending queue head with each one.
func (t *clientTransport) readResponses() {
	reasm := newFrameReassembler(t.config.MaxMessageSize)

	bufSize := t.config.Socket.ReadBufferSize
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	scratch := make([]byte, bufSize)

	for {
		n, err := t.conn.Read(scratch)
		if n > 0 {
			t.metrics.read(n)
			reasm.feed(scratch[:n])

			for {
				frame, ok, ferr := reasm.next(t.pendingLen())
				if ferr != nil {
					Logger.Errorf("Protocol violation on %s transport: %v", t.connector.GetName(), ferr)
					t.teardown(fmt.Errorf("protocol violation: %w", ferr))
					return
				}
				if !ok {
					break
				}
				t.dispatch(frame)
			}
		}

		if err != nil {
			select {
			case <-t.stopCh:
				// regular shutdown
			default:
				Logger.Warningf("Read failed on %s transport: %v", t.connector.GetName(), err)
				t.teardown(fmt.Errorf("%w: %v", transport.ErrClosed, err))
			}
			return
		}
	}
}

// dispatch matches one complete frame to the oldest outstanding request.
func (t *clientTransport) dispatch(frame common.Frame) {
	t.mu.Lock()
	if len(t.pending) == 0 {
		// gated by the reassembler, so this indicates a correlator bug
		t.mu.Unlock()
		Logger.Errorf("Received %s frame with no outstanding request", frame.Opcode)
		return
	}

	head := t.pending[0]
	if head.stream && frame.Opcode == common.OpRow {
		// continuation frame: accumulate, keep the waiter at the head
		head.rows = append(head.rows, frame)
		t.mu.Unlock()
		select {
		case head.progress <- struct{}{}:
		default:
		}
		return
	}

	t.pending = t.pending[1:]
	t.mu.Unlock()

	t.metrics.responseReceived()
	head.done <- result{frame: frame}
}

func (t *clientTransport) pendingLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// teardown is the failure path shared by read errors and protocol
// violations. It marks the connection closed, fails all pending requests in
// enqueue order and closes the socket.
func (t *clientTransport) teardown(cause error) {
	t.metrics.connError()
	t.failAll(cause)
	t.conn.Close()
}

// failAll settles every still-pending request with err, in enqueue order,
// and refuses further sends.
func (t *clientTransport) failAll(err error) {
	t.mu.Lock()
	t.state.Store(stateClosed)
	pending := t.pending
	t.pending = nil
	t.mu.Unlock()

	for _, p := range pending {
		p.done <- result{err: err}
	}
	if len(pending) > 0 {
		Logger.Warningf("Failed %d pending request(s): %v", len(pending), err)
	}
}
