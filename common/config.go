package common

import (
	"fmt"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Client configuration structs
// --------------------------------------------------------------------------

const (
	// DefaultConnectTimeout governs only the initial connect handshake.
	DefaultConnectTimeout = 5 * time.Second

	// DefaultReadTimeout governs each individual request independently,
	// restarted fresh per request. It is not a connection-wide idle timeout.
	DefaultReadTimeout = 30 * time.Second
)

// SocketConf holds buffer tuning shared by all socket transports.
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP-specific socket options, ignored by the unix transport.
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int
}

// ClientConfig holds all configuration parameters for a client connection.
// A single connection with a single in-flight pipeline is the unit of design;
// there is no pooling or load balancing here.
type ClientConfig struct {
	// Endpoint is the socket address (a filesystem path for unix, host:port
	// for tcp)
	Endpoint string

	// Timeouts
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration

	// MaxMessageSize caps the payload length in both directions. Frames
	// exceeding it are a protocol violation.
	MaxMessageSize uint32

	// Socket tuning
	Socket SocketConf
	TCP    TCPConf

	// Logging configuration
	LogLevel string
}

// WithDefaults returns a copy of the config with zero values replaced by
// defaults.
func (c ClientConfig) WithDefaults() ClientConfig {
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = DefaultConnectTimeout
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = DefaultMaxMessageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}

// String returns a formatted string representation of the configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	addSection("Client")
	addField("Endpoint", c.Endpoint)
	addField("Connect Timeout", c.ConnectTimeout.String())
	addField("Read Timeout", c.ReadTimeout.String())
	addField("Max Message Size", fmt.Sprintf("%d bytes", c.MaxMessageSize))

	addSection("Socket")
	addField("Write Buffer", fmt.Sprintf("%d bytes", c.Socket.WriteBufferSize))
	addField("Read Buffer", fmt.Sprintf("%d bytes", c.Socket.ReadBufferSize))
	addField("TCP NoDelay", fmt.Sprintf("%t", c.TCP.TCPNoDelay))
	addField("TCP KeepAlive", fmt.Sprintf("%d sec", c.TCP.TCPKeepAliveSec))
	addField("TCP Linger", fmt.Sprintf("%d sec", c.TCP.TCPLingerSec))

	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
