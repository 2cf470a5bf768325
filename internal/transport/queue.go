package transport

import (
	"sync/atomic"
	"time"

	"github.com/Murat2283plus/maliao/internal/config"
)

// Queue is a bounded FIFO of encoded packets between the game loop and the
// transmission worker. Push never blocks: when the queue is full a packet is
// dropped according to the drop policy and the drop counter increments.
type Queue struct {
	ch         chan []byte
	dropOldest bool
	dropped    atomic.Uint64
}

// NewQueue creates a queue with the given capacity and drop policy
// (config.DropNewest or config.DropOldest).
func NewQueue(capacity int, policy string) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		ch:         make(chan []byte, capacity),
		dropOldest: policy == config.DropOldest,
	}
}

// Push adds a packet without blocking. It returns false if a packet was dropped:
// the new one under the newest policy, the oldest queued one under the oldest policy.
func (q *Queue) Push(packet []byte) bool {
	select {
	case q.ch <- packet:
		return true
	default:
	}

	q.dropped.Add(1)
	if !q.dropOldest {
		return false
	}
	select {
	case <-q.ch:
	default:
	}
	select {
	case q.ch <- packet:
	default:
		// Another producer took the freed slot.
		q.dropped.Add(1)
	}
	return false
}

// Pop waits up to timeout for a packet. ok is false on timeout.
func (q *Queue) Pop(timeout time.Duration) (packet []byte, ok bool) {
	select {
	case packet = <-q.ch:
		return packet, true
	default:
	}
	if timeout <= 0 {
		return nil, false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case packet = <-q.ch:
		return packet, true
	case <-timer.C:
		return nil, false
	}
}

// Drain discards all queued packets and returns how many were removed.
func (q *Queue) Drain() int {
	n := 0
	for {
		select {
		case <-q.ch:
			n++
		default:
			return n
		}
	}
}

// Len returns the number of queued packets.
func (q *Queue) Len() int {
	return len(q.ch)
}

// Cap returns the queue capacity.
func (q *Queue) Cap() int {
	return cap(q.ch)
}

// Dropped returns the number of packets dropped since creation or the last ResetDropped.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// ResetDropped zeroes the drop counter.
func (q *Queue) ResetDropped() {
	q.dropped.Store(0)
}
