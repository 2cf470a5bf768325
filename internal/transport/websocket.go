package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsHandshakeTimeout = 5 * time.Second
	wsCloseWait        = time.Second
)

// WebSocketSink streams packets to a network LED controller, one binary
// message per packet.
type WebSocketSink struct {
	writeWait time.Duration

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocketSink creates an unopened websocket sink. writeWait bounds each
// message write; zero means no deadline.
func NewWebSocketSink(writeWait time.Duration) *WebSocketSink {
	return &WebSocketSink{writeWait: writeWait}
}

// Open dials the ws:// or wss:// URL. baud is ignored.
func (s *WebSocketSink) Open(url string, _ int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil {
		return fmt.Errorf("websocket: %s already open", url)
	}
	dialer := websocket.Dialer{
		HandshakeTimeout: wsHandshakeTimeout,
		WriteBufferSize:  4096,
	}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return fmt.Errorf("websocket: cannot dial %s: %w", url, err)
	}
	s.conn = conn
	go s.discardReads(conn)
	return nil
}

// discardReads keeps control frames (ping, close) flowing. The controller
// never sends data we need.
func (s *WebSocketSink) discardReads(conn *websocket.Conn) {
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (s *WebSocketSink) current() (*websocket.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil, ErrClosed
	}
	return s.conn, nil
}

// Write sends p as a single binary message.
func (s *WebSocketSink) Write(p []byte) (int, error) {
	conn, err := s.current()
	if err != nil {
		return 0, err
	}
	if s.writeWait > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(s.writeWait))
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush is a no-op; every Write is a complete message.
func (s *WebSocketSink) Flush() error {
	_, err := s.current()
	return err
}

// Close sends a close frame and closes the connection.
func (s *WebSocketSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(wsCloseWait))
	err := s.conn.Close()
	s.conn = nil
	return err
}
