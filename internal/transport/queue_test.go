package transport

import (
	"testing"
	"time"

	"github.com/Murat2283plus/maliao/internal/config"
)

func TestQueueBackpressureDropNewest(t *testing.T) {
	q := NewQueue(10, config.DropNewest)

	accepted := 0
	for i := 0; i < 11; i++ {
		if q.Push([]byte{byte(i)}) {
			accepted++
		}
	}

	if accepted != 10 {
		t.Errorf("accepted = %d, expected 10", accepted)
	}
	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", q.Dropped())
	}
	if q.Len() != 10 {
		t.Errorf("Len() = %d, expected 10", q.Len())
	}

	// FIFO order, the 11th packet is the one that was dropped
	for i := 0; i < 10; i++ {
		p, ok := q.Pop(0)
		if !ok {
			t.Fatalf("Pop() #%d returned nothing", i)
		}
		if p[0] != byte(i) {
			t.Errorf("Pop() #%d = %d, expected %d", i, p[0], i)
		}
	}
}

func TestQueueBackpressureDropOldest(t *testing.T) {
	q := NewQueue(10, config.DropOldest)
	for i := 0; i < 11; i++ {
		q.Push([]byte{byte(i)})
	}

	if q.Dropped() != 1 {
		t.Errorf("Dropped() = %d, expected 1", q.Dropped())
	}
	first, _ := q.Pop(0)
	if first[0] != 1 {
		t.Errorf("first packet after drop-oldest = %d, expected 1", first[0])
	}
	var last []byte
	for {
		p, ok := q.Pop(0)
		if !ok {
			break
		}
		last = p
	}
	if last[0] != 10 {
		t.Errorf("last packet = %d, expected 10", last[0])
	}
}

func TestQueuePopTimeout(t *testing.T) {
	q := NewQueue(2, config.DropNewest)

	start := time.Now()
	_, ok := q.Pop(20 * time.Millisecond)
	if ok {
		t.Fatal("Pop() on an empty queue should time out")
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("Pop() returned after %v, expected to wait about 20ms", elapsed)
	}

	go func() {
		time.Sleep(5 * time.Millisecond)
		q.Push([]byte("x"))
	}()
	p, ok := q.Pop(time.Second)
	if !ok || string(p) != "x" {
		t.Errorf("Pop() = %q, %v, expected \"x\", true", p, ok)
	}
}

func TestQueueDrainAndReset(t *testing.T) {
	q := NewQueue(3, config.DropNewest)
	for i := 0; i < 5; i++ {
		q.Push([]byte{byte(i)})
	}

	if n := q.Drain(); n != 3 {
		t.Errorf("Drain() = %d, expected 3", n)
	}
	if q.Len() != 0 {
		t.Errorf("Len() after Drain = %d, expected 0", q.Len())
	}
	if q.Cap() != 3 {
		t.Errorf("Cap() = %d, expected 3", q.Cap())
	}
	q.ResetDropped()
	if q.Dropped() != 0 {
		t.Errorf("Dropped() after reset = %d, expected 0", q.Dropped())
	}
}
