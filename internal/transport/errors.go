package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrProbeFailed means the sink opened but did not accept the liveness probe.
	ErrProbeFailed = errors.New("transport: liveness probe failed")
	// ErrClosed is returned by a sink used after Close.
	ErrClosed = errors.New("transport: sink closed")
)

// ConnectionError reports that the sink could not be opened or probed.
// The system keeps simulating headless; only an explicit reconnect retries.
type ConnectionError struct {
	Port string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("transport: cannot connect to %s: %v", e.Port, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TransmissionError reports a write or flush failure on an open link.
// The link is marked disconnected when it happens.
type TransmissionError struct {
	Op  string // "write" or "flush"
	Err error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("transport: %s failed: %v", e.Op, e.Err)
}

func (e *TransmissionError) Unwrap() error {
	return e.Err
}
