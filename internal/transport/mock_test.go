package transport

import (
	"testing"

	"github.com/Murat2283plus/maliao/internal/core"
	"github.com/Murat2283plus/maliao/internal/wire"
)

func TestMockSinkSplitsStream(t *testing.T) {
	sink := NewMockSink()
	if err := sink.Open("mock", 0); err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	f := core.NewFrame(4, 3)
	f.Fill(core.Red)
	packet, err := wire.Encode(f)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	writes := [][]byte{
		wire.ProbePacket(),
		{0xAA, 0x55, 0xFF, 0x00}, // noise header
		packet[:5],
		packet[5:],
	}
	for _, w := range writes {
		if _, err := sink.Write(w); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
	}

	packets := sink.Packets()
	if len(packets) != 2 {
		t.Fatalf("Packets() returned %d packets, expected 2", len(packets))
	}
	if !wire.IsProbe(packets[0]) {
		t.Error("first packet should be the probe")
	}
	if got := sink.LastFrame(4, 3); !got.Equal(f) {
		t.Error("LastFrame() does not match the written frame")
	}
}

func TestMockSinkKeepsRecentWrites(t *testing.T) {
	sink := NewMockSink()
	_ = sink.Open("mock", 0)
	for i := 0; i < mockHistory*2; i++ {
		if _, err := sink.Write(wire.ProbePacket()); err != nil {
			t.Fatalf("Write() #%d error = %v", i, err)
		}
	}
	if got := len(sink.Packets()); got != mockHistory {
		t.Errorf("Packets() returned %d packets, expected %d", got, mockHistory)
	}
	if got := sink.Writes(); got != mockHistory*2 {
		t.Errorf("Writes() = %d, expected %d", got, mockHistory*2)
	}
}
