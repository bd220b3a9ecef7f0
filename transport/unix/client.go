package unix

import (
	"fmt"
	"net"
	"time"

	"github.com/stratadb/strata-go/common"
	"github.com/stratadb/strata-go/transport"
	"github.com/stratadb/strata-go/transport/base"
)

// clientConnector implements the IClientConnector interface for Unix sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "unix"
}

func (c *clientConnector) Connect(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("unix", endpoint, timeout)
}

// UpgradeConnection applies socket buffer sizes from the configuration
func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	unixConn, ok := conn.(*net.UnixConn)
	if !ok {
		return fmt.Errorf("expected unix connection, got %T", conn)
	}

	if config.Socket.WriteBufferSize > 0 {
		if err := unixConn.SetWriteBuffer(config.Socket.WriteBufferSize); err != nil {
			return fmt.Errorf("failed to set write buffer: %v", err)
		}
	}
	if config.Socket.ReadBufferSize > 0 {
		if err := unixConn.SetReadBuffer(config.Socket.ReadBufferSize); err != nil {
			return fmt.Errorf("failed to set read buffer: %v", err)
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Method
// --------------------------------------------------------------------------

// NewUnixClientTransport creates a new Unix client transport
func NewUnixClientTransport() transport.IClientTransport {
	return base.NewBaseClientTransport(&clientConnector{})
}
