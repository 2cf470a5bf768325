package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Murat2283plus/maliao/internal/config"
	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/wire"
)

// Stats is a point-in-time snapshot of link counters. Fields are read
// independently, so a snapshot may be slightly inconsistent under load.
type Stats struct {
	Connected  bool
	Port       string
	FramesSent uint64
	BytesSent  uint64
	Errors     uint64
	Dropped    uint64
	QueueDepth int
	QueueCap   int
	FPS        float64 // Frames written per second
	Since      time.Time
	LastError  string
}

// SinkFactory creates a fresh sink for each connection attempt.
type SinkFactory func() Sink

// session is one open connection: a sink and the worker draining into it.
type session struct {
	port      string
	sink      Sink
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func (s *session) closeSink(logger *log.Logger) {
	s.closeOnce.Do(func() {
		if err := s.sink.Close(); err != nil {
			logger.Warn("closing sink", "port", s.port, "error", err)
		}
	})
}

// Transmitter moves encoded frames from the game loop to the display sink.
type Transmitter struct {
	cfg    config.LinkConfig
	logger *log.Logger
	queue  *Queue
	events *eventBus

	newSink SinkFactory

	mu   sync.Mutex // guards sess and connect/disconnect sequencing
	sess *session

	connected  atomic.Bool
	framesSent atomic.Uint64
	bytesSent  atomic.Uint64
	errors     atomic.Uint64
	lastErr    atomic.Pointer[string]
	rate       *core.RateMeter
}

// NewTransmitter creates a disconnected transmitter. A nil logger discards output.
func NewTransmitter(cfg config.LinkConfig, logger *log.Logger) *Transmitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	t := &Transmitter{
		cfg:    cfg,
		logger: logger,
		queue:  NewQueue(cfg.QueueSize, cfg.DropPolicy),
		events: newEventBus(16),
		rate:   core.NewRateMeter(time.Second, nil),
	}
	t.newSink = func() Sink { return NewSink(t.cfg) }
	return t
}

// SetSinkFactory overrides how sinks are created. Call before Connect.
func (t *Transmitter) SetSinkFactory(f SinkFactory) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.newSink = f
}

// Events returns the link event channel. Events are dropped oldest-first if
// nobody reads them.
func (t *Transmitter) Events() <-chan Event {
	return t.events.ch
}

// Queue exposes the packet queue.
func (t *Transmitter) Queue() *Queue {
	return t.queue
}

// Port returns the configured port.
func (t *Transmitter) Port() string {
	return t.cfg.Port
}

// Connected reports whether the link is up.
func (t *Transmitter) Connected() bool {
	return t.connected.Load()
}

// Connect opens the sink, sends the liveness probe and starts the worker.
// On failure the transmitter stays disconnected and a *ConnectionError is returned.
// Connecting an already connected transmitter is a no-op.
func (t *Transmitter) Connect() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.connected.Load() {
		return nil
	}
	if t.sess != nil {
		// A worker that exited on a transmission error; reap it.
		t.reap(t.sess)
		t.sess = nil
	}

	port := t.cfg.Port
	sink := t.newSink()
	if err := sink.Open(port, t.cfg.Baud); err != nil {
		return t.connectFailed(port, err)
	}
	if err := probe(sink); err != nil {
		_ = sink.Close()
		return t.connectFailed(port, fmt.Errorf("%w: %w", ErrProbeFailed, err))
	}

	t.queue.Drain()
	t.rate.Reset()
	s := &session{
		port: port,
		sink: sink,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	t.sess = s
	t.connected.Store(true)
	go t.run(s)

	t.logger.Info("link connected", "port", port, "baud", t.cfg.Baud)
	t.events.send(ConnectedEvent{Port: port})
	return nil
}

func (t *Transmitter) connectFailed(port string, err error) error {
	cerr := &ConnectionError{Port: port, Err: err}
	t.errors.Add(1)
	t.setLastErr(cerr)
	t.logger.Error("link connect failed", "port", port, "error", err)
	t.events.send(ErrorEvent{Err: cerr})
	return cerr
}

func probe(sink Sink) error {
	p := wire.ProbePacket()
	n, err := sink.Write(p)
	if err != nil {
		return err
	}
	if n != len(p) {
		return io.ErrShortWrite
	}
	return sink.Flush()
}

// Disconnect stops the worker, waiting at most the join timeout. The worker
// closes the sink when it exits, so a write in flight is never cut short.
// Disconnecting a disconnected transmitter is a no-op.
func (t *Transmitter) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.sess
	if s == nil {
		return
	}
	t.sess = nil
	wasConnected := t.connected.CompareAndSwap(true, false)
	close(s.stop)
	t.reap(s)

	if wasConnected {
		t.logger.Info("link disconnected", "port", s.port)
		t.events.send(DisconnectedEvent{Port: s.port})
	}
}

// reap waits for a session's worker to exit, bounded by the join timeout.
func (t *Transmitter) reap(s *session) {
	select {
	case <-s.done:
	case <-time.After(t.cfg.JoinTimeout):
		t.logger.Warn("link worker did not stop in time; sink closes after the current write",
			"port", s.port, "timeout", t.cfg.JoinTimeout)
	}
}

// Enqueue pushes an encoded packet. It returns false if the link is down or
// the queue was full and a packet was dropped.
func (t *Transmitter) Enqueue(packet []byte) bool {
	if !t.connected.Load() {
		return false
	}
	return t.queue.Push(packet)
}

// SendFrame encodes and enqueues a frame.
func (t *Transmitter) SendFrame(f *core.Frame) bool {
	if !t.connected.Load() {
		return false
	}
	packet, err := wire.Encode(f)
	if err != nil {
		t.logger.Error("encode frame", "error", err)
		return false
	}
	return t.queue.Push(packet)
}

// run is the worker: pop, write, flush, repeat until stopped or broken.
func (t *Transmitter) run(s *session) {
	defer close(s.done)
	defer s.closeSink(t.logger)

	for {
		select {
		case <-s.stop:
			return
		default:
		}

		packet, ok := t.queue.Pop(t.cfg.PopTimeout)
		if !ok {
			continue
		}
		if err := write(s.sink, packet); err != nil {
			t.errors.Add(1)
			t.setLastErr(err)
			if t.connected.CompareAndSwap(true, false) {
				t.logger.Error("link transmission failed", "port", s.port, "error", err)
				t.events.send(ErrorEvent{Err: err})
				t.events.send(DisconnectedEvent{Port: s.port, Err: err})
			}
			return
		}
		t.framesSent.Add(1)
		t.bytesSent.Add(uint64(len(packet)))
		t.rate.Mark(1)
	}
}

func write(sink Sink, packet []byte) error {
	n, err := sink.Write(packet)
	if err == nil && n != len(packet) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &TransmissionError{Op: "write", Err: err}
	}
	if err := sink.Flush(); err != nil {
		return &TransmissionError{Op: "flush", Err: err}
	}
	return nil
}

func (t *Transmitter) setLastErr(err error) {
	msg := err.Error()
	t.lastErr.Store(&msg)
}

// Stats returns a snapshot of the link counters.
func (t *Transmitter) Stats() Stats {
	st := Stats{
		Connected:  t.connected.Load(),
		Port:       t.cfg.Port,
		FramesSent: t.framesSent.Load(),
		BytesSent:  t.bytesSent.Load(),
		Errors:     t.errors.Load(),
		Dropped:    t.queue.Dropped(),
		QueueDepth: t.queue.Len(),
		QueueCap:   t.queue.Cap(),
		FPS:        t.rate.Rate(),
		Since:      t.rate.Epoch(),
	}
	if p := t.lastErr.Load(); p != nil {
		st.LastError = *p
	}
	return st
}

// ResetStats zeroes the counters and starts a new rate epoch.
func (t *Transmitter) ResetStats() {
	t.framesSent.Store(0)
	t.bytesSent.Store(0)
	t.errors.Store(0)
	t.lastErr.Store(nil)
	t.queue.ResetDropped()
	t.rate.Reset()
}

// Close disconnects. It exists so the transmitter can be deferred like other resources.
func (t *Transmitter) Close() error {
	t.Disconnect()
	return nil
}

// IsConnectionError reports whether err is a *ConnectionError.
func IsConnectionError(err error) bool {
	var cerr *ConnectionError
	return errors.As(err, &cerr)
}
