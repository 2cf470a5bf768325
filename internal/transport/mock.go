package transport

import (
	"bufio"
	"bytes"
	"sync"
	"time"

	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/wire"
)

// mockHistory is how many writes a MockSink keeps for inspection.
const mockHistory = 64

// MockSink is an in-memory sink for running without hardware. Like a serial
// line it records a byte stream with no write boundaries; packets are split
// back out of it on demand. It can inject failures and latency.
// Safe for concurrent use.
type MockSink struct {
	mu sync.Mutex

	// Failure injection; set before Open.
	OpenErr    error
	WriteErr   error
	FailAfter  int // Writes that succeed before WriteErr is returned; 0 fails immediately
	WriteDelay time.Duration

	open    bool
	port    string
	writes  int
	bytes   int
	flushes int
	stream  []byte
	sizes   []int // lengths of the writes still held in stream
	closed  int
}

// NewMockSink creates a mock sink.
func NewMockSink() *MockSink {
	return &MockSink{}
}

// Open marks the sink open unless OpenErr is set.
func (m *MockSink) Open(port string, _ int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.open = true
	m.port = port
	return nil
}

// Write records a copy of p.
func (m *MockSink) Write(p []byte) (int, error) {
	m.mu.Lock()
	delay := m.WriteDelay
	m.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return 0, ErrClosed
	}
	if m.WriteErr != nil && m.writes >= m.FailAfter {
		return 0, m.WriteErr
	}
	m.writes++
	m.bytes += len(p)
	m.stream = append(m.stream, p...)
	m.sizes = append(m.sizes, len(p))
	if len(m.sizes) > mockHistory {
		drop := 0
		for _, n := range m.sizes[:len(m.sizes)-mockHistory] {
			drop += n
		}
		m.stream = append([]byte(nil), m.stream[drop:]...)
		m.sizes = append([]int(nil), m.sizes[len(m.sizes)-mockHistory:]...)
	}
	return len(p), nil
}

// Flush counts flushes.
func (m *MockSink) Flush() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return ErrClosed
	}
	m.flushes++
	return nil
}

// Close marks the sink closed.
func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open {
		m.closed++
	}
	m.open = false
	return nil
}

// IsOpen reports whether the sink is open.
func (m *MockSink) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// Closes returns how many times an open sink was closed.
func (m *MockSink) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Writes returns the number of successful writes, probes included.
func (m *MockSink) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Bytes returns the number of bytes written.
func (m *MockSink) Bytes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bytes
}

// Packets splits the recorded stream into packets, oldest first. Bytes that
// do not frame a packet are skipped.
func (m *MockSink) Packets() [][]byte {
	return m.split(wire.SplitPackets)
}

// LastFrame decodes the most recent w x h frame packet, skipping probes.
// Returns nil if no frame has been written.
func (m *MockSink) LastFrame(w, h int) *core.Frame {
	packets := m.split(wire.Splitter(w * h * 3))
	for i := len(packets) - 1; i >= 0; i-- {
		if wire.IsProbe(packets[i]) {
			continue
		}
		f, err := wire.Decode(packets[i], w, h)
		if err != nil {
			return nil
		}
		return f
	}
	return nil
}

func (m *MockSink) split(fn bufio.SplitFunc) [][]byte {
	m.mu.Lock()
	stream := append([]byte(nil), m.stream...)
	m.mu.Unlock()

	sc := bufio.NewScanner(bytes.NewReader(stream))
	sc.Buffer(make([]byte, 0, 4096), wire.MaxPayload+wire.Overhead)
	sc.Split(fn)
	var out [][]byte
	for sc.Scan() {
		out = append(out, append([]byte(nil), sc.Bytes()...))
	}
	return out
}
