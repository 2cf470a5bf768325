package transport

import "sync"

// Event is a link lifecycle notification emitted on the transmitter's event channel.
type Event interface {
	linkEvent()
}

// ConnectedEvent is sent when the sink is open, probed and the worker is running.
type ConnectedEvent struct {
	Port string
}

func (ConnectedEvent) linkEvent() {}

// DisconnectedEvent is sent when the link goes down, on request or after a
// transmission error. Err is nil for a requested disconnect.
type DisconnectedEvent struct {
	Port string
	Err  error
}

func (DisconnectedEvent) linkEvent() {}

// ErrorEvent is sent for connection and transmission errors.
type ErrorEvent struct {
	Err error
}

func (ErrorEvent) linkEvent() {}

// eventBus is a buffered event channel that never blocks the sender.
type eventBus struct {
	mu sync.Mutex
	ch chan Event
}

func newEventBus(size int) *eventBus {
	if size < 1 {
		size = 16 // Default buffer size
	}
	return &eventBus{ch: make(chan Event, size)}
}

// send delivers evt. If the buffer is full, the oldest event is dropped.
func (b *eventBus) send(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	select {
	case b.ch <- evt:
		return
	default:
	}
	// Buffer full, drop oldest and retry
	select {
	case <-b.ch:
	default:
	}
	select {
	case b.ch <- evt:
	default:
	}
}
