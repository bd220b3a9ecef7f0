package base

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/stratadb/strata-go/common"
	"github.com/stratadb/strata-go/transport"
)

// connMetrics holds the per-connection counters. Byte counters sit on the
// hot read/write paths and use striped xsync counters; the named counters
// feed the process-wide Prometheus exposition.
type connMetrics struct {
	transportName string

	bytesWritten *xsync.Counter
	bytesRead    *xsync.Counter

	requests  *xsync.Counter
	responses *xsync.Counter
	timeouts  *xsync.Counter

	requestsByOp *xsync.MapOf[string, *xsync.Counter]

	// process-wide counters, shared across connections of the same transport
	vmRequests *metrics.Counter
	vmTimeouts *metrics.Counter
	vmErrors   *metrics.Counter
}

func newConnMetrics(transportName string) *connMetrics {
	return &connMetrics{
		transportName: transportName,
		bytesWritten:  xsync.NewCounter(),
		bytesRead:     xsync.NewCounter(),
		requests:      xsync.NewCounter(),
		responses:     xsync.NewCounter(),
		timeouts:      xsync.NewCounter(),
		requestsByOp:  xsync.NewMapOf[string, *xsync.Counter](),
		vmRequests:    metrics.GetOrCreateCounter(fmt.Sprintf(`strata_client_requests_total{transport=%q}`, transportName)),
		vmTimeouts:    metrics.GetOrCreateCounter(fmt.Sprintf(`strata_client_timeouts_total{transport=%q}`, transportName)),
		vmErrors:      metrics.GetOrCreateCounter(fmt.Sprintf(`strata_client_connection_errors_total{transport=%q}`, transportName)),
	}
}

func (m *connMetrics) requestSent(op common.Opcode, frameBytes int) {
	m.requests.Inc()
	m.bytesWritten.Add(int64(frameBytes))
	m.vmRequests.Inc()

	counter, _ := m.requestsByOp.LoadOrCompute(op.String(), xsync.NewCounter)
	counter.Inc()
}

func (m *connMetrics) responseReceived() {
	m.responses.Inc()
}

func (m *connMetrics) read(n int) {
	m.bytesRead.Add(int64(n))
}

func (m *connMetrics) timedOut() {
	m.timeouts.Inc()
	m.vmTimeouts.Inc()
}

func (m *connMetrics) connError() {
	m.vmErrors.Inc()
}

// snapshot materializes the counters into a transport.Stats value.
func (m *connMetrics) snapshot() transport.Stats {
	byOp := make(map[string]uint64)
	m.requestsByOp.Range(func(op string, c *xsync.Counter) bool {
		byOp[op] = uint64(c.Value())
		return true
	})

	return transport.Stats{
		BytesWritten:   uint64(m.bytesWritten.Value()),
		BytesRead:      uint64(m.bytesRead.Value()),
		RequestsSent:   uint64(m.requests.Value()),
		ResponsesRecvd: uint64(m.responses.Value()),
		Timeouts:       uint64(m.timeouts.Value()),
		RequestsByOp:   byOp,
	}
}
