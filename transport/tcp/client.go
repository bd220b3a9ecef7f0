package tcp

import (
	"fmt"
	"net"
	"time"

	"github.com/stratadb/strata-go/common"
	"github.com/stratadb/strata-go/transport"
	"github.com/stratadb/strata-go/transport/base"
)

// clientConnector implements the IClientConnector interface for TCP sockets
type clientConnector struct{}

// --------------------------------------------------------------------------
// Interface Methods (docu see base.IClientConnector)
// --------------------------------------------------------------------------

func (c *clientConnector) GetName() string {
	return "tcp"
}

func (c *clientConnector) Connect(endpoint string, timeout time.Duration) (net.Conn, error) {
	return net.DialTimeout("tcp", endpoint, timeout)
}

// UpgradeConnection applies performance settings to a TCP connection using
// configuration values from TCPConf and SocketConf
func (c *clientConnector) UpgradeConnection(conn net.Conn, config common.ClientConfig) error {
	tcpConn, ok := conn.(*net.TCPConn)
	if !ok {
		return fmt.Errorf("expected tcp connection, got %T", conn)
	}

	if err := tcpConn.SetNoDelay(config.TCP.TCPNoDelay); err != nil {
		return fmt.Errorf("failed to set TCP_NODELAY: %v", err)
	}

	if config.TCP.TCPKeepAliveSec > 0 {
		if err := tcpConn.SetKeepAlive(true); err != nil {
			return fmt.Errorf("failed to enable keep-alive: %v", err)
		}
		if err := tcpConn.SetKeepAlivePeriod(time.Duration(config.TCP.TCPKeepAliveSec) * time.Second); err != nil {
			return fmt.Errorf("failed to set keep-alive period: %v", err)
		}
	}

	if config.TCP.TCPLingerSec > 0 {
		if err := tcpConn.SetLinger(config.TCP.TCPLingerSec); err != nil {
			return fmt.Errorf("failed to set linger: %v", err)
		}
	}

	if config.Socket.WriteBufferSize > 0 {
		if err := tcpConn.SetWriteBuffer(config.Socket.WriteBufferSize); err != nil {
			return fmt.Errorf("failed to set write buffer: %v", err)
		}
	}
	if config.Socket.ReadBufferSize > 0 {
		if err := tcpConn.SetReadBuffer(config.Socket.ReadBufferSize); err != nil {
			return fmt.Errorf("failed to set read buffer: %v", err)
		}
	}

	return nil
}

// --------------------------------------------------------------------------
// Client Transport Factory Method
// --------------------------------------------------------------------------

// NewTCPClientTransport creates a new TCP client transport
func NewTCPClientTransport() transport.IClientTransport {
	return base.NewBaseClientTransport(&clientConnector{})
}
