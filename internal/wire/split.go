package wire

import (
	"bufio"
	"bytes"
	"encoding/binary"
)

// SplitPackets is a bufio.SplitFunc that extracts whole packets from a byte
// stream. Garbage before a start marker is skipped, so a reader can resync
// after line noise. Tokens are raw packets; validate them with Payload.
//
// Scanners reading full frames need a buffer of at least Size(w, h) bytes.
func SplitPackets(data []byte, atEOF bool) (advance int, token []byte, err error) {
	return split(data, atEOF, MaxPayload)
}

// Splitter returns a SplitFunc that also treats any header claiming more than
// maxPayload bytes as noise. Use it when the frame size is known so a corrupt
// length field cannot stall the scanner.
func Splitter(maxPayload int) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		return split(data, atEOF, maxPayload)
	}
}

func split(data []byte, atEOF bool, maxPayload int) (int, []byte, error) {
	skipped := 0
	for {
		i := bytes.IndexByte(data, Start0)
		if i < 0 {
			return skipped + len(data), nil, nil
		}
		data = data[i:]
		skipped += i

		if len(data) < HeaderSize {
			if atEOF {
				return skipped + len(data), nil, nil
			}
			return skipped, nil, nil
		}
		if data[1] != Start1 {
			data = data[1:]
			skipped++
			continue
		}
		n := int(binary.LittleEndian.Uint16(data[2:4]))
		if n > maxPayload {
			data = data[1:]
			skipped++
			continue
		}
		end := n + Overhead
		if end > len(data) {
			if !atEOF {
				return skipped, nil, nil
			}
			// The stream ends before this header's claimed length, so the
			// header is noise or a truncated packet. A packet may still
			// start inside it.
			data = data[1:]
			skipped++
			continue
		}
		if data[end-1] != Trailer {
			// Not a real packet start; resync past this marker.
			data = data[1:]
			skipped++
			continue
		}
		return skipped + end, data[:end], nil
	}
}
