// Package wire implements the framed binary packet that carries one frame to
// the LED matrix controller.
//
// Layout (all multi-byte fields little-endian):
//
//	AA 55 | length u16 | payload (W*H*3 bytes, row-major RGB) | xor u8 | 0D
//
// The checksum is the XOR of every payload byte. A zero-length packet is the
// liveness probe sent right after the link is opened.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/Murat2283plus/maliao/internal/core"
)

const (
	Start0  byte = 0xAA
	Start1  byte = 0x55
	Trailer byte = 0x0D

	// HeaderSize covers the two start markers and the length field.
	HeaderSize = 4
	// Overhead is the number of framing bytes around the payload.
	Overhead = HeaderSize + 2

	// MaxPayload is the largest payload the length field can describe.
	MaxPayload = 0xFFFF
)

var (
	ErrBadMarker    = errors.New("wire: bad start or end marker")
	ErrChecksum     = errors.New("wire: checksum mismatch")
	ErrShortPacket  = errors.New("wire: packet too short")
	ErrLength       = errors.New("wire: length field does not match packet")
	ErrSizeMismatch = errors.New("wire: payload does not match frame size")
	ErrTooLarge     = errors.New("wire: frame too large for length field")
)

// Size returns the encoded size of a w×h frame.
func Size(w, h int) int {
	return w*h*3 + Overhead
}

// Checksum returns the XOR of all bytes.
func Checksum(payload []byte) byte {
	var sum byte
	for _, b := range payload {
		sum ^= b
	}
	return sum
}

// Encode serializes a frame. Encoding is deterministic: identical frames
// always produce identical packets.
func Encode(f *core.Frame) ([]byte, error) {
	n := len(f.Pix) * 3
	if n > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, n)
	}
	out := make([]byte, HeaderSize, n+Overhead)
	out[0], out[1] = Start0, Start1
	binary.LittleEndian.PutUint16(out[2:4], uint16(n))

	var sum byte
	for _, p := range f.Pix {
		out = append(out, p.R, p.G, p.B)
		sum ^= p.R ^ p.G ^ p.B
	}
	return append(out, sum, Trailer), nil
}

// EncodePayload frames a raw payload.
func EncodePayload(payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(payload))
	}
	out := make([]byte, HeaderSize, len(payload)+Overhead)
	out[0], out[1] = Start0, Start1
	binary.LittleEndian.PutUint16(out[2:4], uint16(len(payload)))
	out = append(out, payload...)
	return append(out, Checksum(payload), Trailer), nil
}

// ProbePacket returns the zero-length packet used as a liveness probe.
func ProbePacket() []byte {
	p, _ := EncodePayload(nil)
	return p
}

// Payload validates framing and checksum and returns the payload slice.
// The result aliases packet.
func Payload(packet []byte) ([]byte, error) {
	if len(packet) < Overhead {
		return nil, fmt.Errorf("%w: %d bytes", ErrShortPacket, len(packet))
	}
	if packet[0] != Start0 || packet[1] != Start1 || packet[len(packet)-1] != Trailer {
		return nil, ErrBadMarker
	}
	n := int(binary.LittleEndian.Uint16(packet[2:4]))
	if n+Overhead != len(packet) {
		return nil, fmt.Errorf("%w: header says %d, packet carries %d", ErrLength, n, len(packet)-Overhead)
	}
	payload := packet[HeaderSize : HeaderSize+n]
	if got, want := Checksum(payload), packet[HeaderSize+n]; got != want {
		return nil, fmt.Errorf("%w: computed %#02x, packet has %#02x", ErrChecksum, got, want)
	}
	return payload, nil
}

// Decode parses a packet back into a w×h frame.
func Decode(packet []byte, w, h int) (*core.Frame, error) {
	payload, err := Payload(packet)
	if err != nil {
		return nil, err
	}
	if len(payload) != w*h*3 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrSizeMismatch, len(payload), w, h)
	}
	f := core.NewFrame(w, h)
	for i := range f.Pix {
		f.Pix[i] = core.RGB{R: payload[i*3], G: payload[i*3+1], B: payload[i*3+2]}
	}
	return f, nil
}

// IsProbe reports whether packet is a valid zero-length probe.
func IsProbe(packet []byte) bool {
	payload, err := Payload(packet)
	return err == nil && len(payload) == 0
}
