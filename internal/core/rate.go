package core

import (
	"sync"
	"time"
)

// RateMeter counts events and reports a per-second rate.
// The epoch is explicit: the meter measures from the last Reset, never from a
// lazily captured first event. Safe for concurrent use.
type RateMeter struct {
	mu     sync.Mutex
	now    func() time.Time
	epoch  time.Time
	count  uint64
	window time.Duration

	// rolling window state
	winStart time.Time
	winCount uint64
	lastRate float64
}

// NewRateMeter creates a meter with a rolling window. A zero window reports the
// average since the epoch. now may be nil to use the wall clock.
func NewRateMeter(window time.Duration, now func() time.Time) *RateMeter {
	if now == nil {
		now = time.Now
	}
	m := &RateMeter{now: now, window: window}
	m.Reset()
	return m
}

// Reset starts a new epoch and clears all counts.
func (m *RateMeter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.now()
	m.epoch = t
	m.winStart = t
	m.count = 0
	m.winCount = 0
	m.lastRate = 0
}

// Mark records n events.
func (m *RateMeter) Mark(n uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count += n
	m.winCount += n
	m.roll(m.now())
}

// Count returns the number of events since the epoch.
func (m *RateMeter) Count() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}

// Rate returns events per second. With a window it is the rate of the last
// completed window, or the running window while the first one is still open.
func (m *RateMeter) Rate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if m.window <= 0 {
		elapsed := now.Sub(m.epoch).Seconds()
		if elapsed <= 0 {
			return 0
		}
		return float64(m.count) / elapsed
	}
	m.roll(now)
	if m.lastRate == 0 && m.winStart.Equal(m.epoch) {
		elapsed := now.Sub(m.winStart).Seconds()
		if elapsed <= 0 {
			return 0
		}
		return float64(m.winCount) / elapsed
	}
	return m.lastRate
}

// Epoch returns the start of the current measurement epoch.
func (m *RateMeter) Epoch() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

func (m *RateMeter) roll(now time.Time) {
	if m.window <= 0 {
		return
	}
	elapsed := now.Sub(m.winStart)
	if elapsed < m.window {
		return
	}
	m.lastRate = float64(m.winCount) / elapsed.Seconds()
	m.winStart = now
	m.winCount = 0
}
