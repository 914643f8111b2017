package buzz

import (
	"context"
	"net"
	"testing"
	"time"

	"trivia/protocol"
)

func TestRunAcceptsDatagramsAndDropsGarbage(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}

	a := NewArbitrator(mapResolver{"10.0.0.1": 1})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = a.Run(ctx, pc) }()

	sender, err := net.Dial("udp", pc.LocalAddr().String())
	if err != nil {
		t.Fatalf("dial udp: %v", err)
	}
	defer sender.Close()

	// Garbage first: must be dropped without killing the loop.
	if _, err := sender.Write([]byte{0x01}); err != nil {
		t.Fatalf("write garbage: %v", err)
	}
	if _, err := sender.Write(protocol.EncodeBuzz(protocol.BuzzSignal{Timestamp: 42, Addr: "10.0.0.1"})); err != nil {
		t.Fatalf("write buzz: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if id, ok := a.First(); ok {
			if id != 1 {
				t.Fatalf("winner = %d, want 1", id)
			}
			return
		}
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for buzz to queue")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen udp: %v", err)
	}

	a := NewArbitrator(mapResolver{})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx, pc) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run after cancel = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for listener to stop")
	}
}
