// Package transport streams encoded frames to the LED matrix controller.
//
// A Transmitter owns a bounded Queue and a worker goroutine that pops packets
// and performs the blocking write and flush on a Sink. The game loop only ever
// pushes; a slow or broken link costs dropped frames, never a stalled loop.
package transport

import (
	"strings"

	"github.com/Murat2283plus/maliao/internal/config"
)

// Sink is a byte-oriented display link.
type Sink interface {
	// Open connects to the device. baud is ignored by sinks without a line rate.
	Open(port string, baud int) error
	Write(p []byte) (int, error)
	// Flush blocks until written bytes have left the host.
	Flush() error
	Close() error
}

// NewSink picks a sink implementation for the link configuration:
// the mock when cfg.Mock is set, a websocket sink for ws:// and wss:// ports,
// and a serial port otherwise.
func NewSink(cfg config.LinkConfig) Sink {
	switch {
	case cfg.Mock:
		return NewMockSink()
	case IsWebSocketURL(cfg.Port):
		return NewWebSocketSink(cfg.WriteTimeout)
	default:
		return NewSerialSink()
	}
}

// IsWebSocketURL reports whether port names a websocket endpoint.
func IsWebSocketURL(port string) bool {
	return strings.HasPrefix(port, "ws://") || strings.HasPrefix(port, "wss://")
}
