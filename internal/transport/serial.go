package transport

import (
	"fmt"
	"sort"
	"sync"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialSink writes packets to a serial port, 8N1.
type SerialSink struct {
	mu   sync.Mutex
	port serial.Port
}

// NewSerialSink creates an unopened serial sink.
func NewSerialSink() *SerialSink {
	return &SerialSink{}
}

// Open opens the named port at the given baud rate.
func (s *SerialSink) Open(port string, baud int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.port != nil {
		return fmt.Errorf("serial: %s already open", port)
	}
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	p, err := serial.Open(port, mode)
	if err != nil {
		return fmt.Errorf("serial: cannot open %s: %w", port, err)
	}
	// Stale bytes from a previous session would corrupt the first frame.
	_ = p.ResetOutputBuffer()
	s.port = p
	return nil
}

func (s *SerialSink) current() (serial.Port, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil, ErrClosed
	}
	return s.port, nil
}

// Write writes p to the port.
func (s *SerialSink) Write(p []byte) (int, error) {
	port, err := s.current()
	if err != nil {
		return 0, err
	}
	return port.Write(p)
}

// Flush waits until the output buffer has been transmitted.
func (s *SerialSink) Flush() error {
	port, err := s.current()
	if err != nil {
		return err
	}
	return port.Drain()
}

// Close closes the port. Closing an unopened sink is a no-op.
func (s *SerialSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	err := s.port.Close()
	s.port = nil
	return err
}

// PortInfo describes a serial port found on the host.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// ListPorts returns the serial ports available on the host, sorted by name.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		// Fall back to bare names when USB details are unavailable.
		names, nerr := serial.GetPortsList()
		if nerr != nil {
			return nil, fmt.Errorf("serial: cannot list ports: %w", nerr)
		}
		out := make([]PortInfo, 0, len(names))
		for _, n := range names {
			out = append(out, PortInfo{Name: n})
		}
		sortPorts(out)
		return out, nil
	}

	out := make([]PortInfo, 0, len(details))
	for _, d := range details {
		out = append(out, PortInfo{
			Name:         d.Name,
			IsUSB:        d.IsUSB,
			VID:          d.VID,
			PID:          d.PID,
			SerialNumber: d.SerialNumber,
			Product:      d.Product,
		})
	}
	sortPorts(out)
	return out, nil
}

func sortPorts(ports []PortInfo) {
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Name < ports[j].Name
	})
}
