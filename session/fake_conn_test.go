package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"trivia/protocol"
)

// fakeConn stands in for a websocket connection in tests. Sends land in
// sendCh; the test feeds Recv through recvCh.
type fakeConn struct {
	sendCh chan []byte
	recvCh chan []byte
	closed chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		sendCh: make(chan []byte, 256),
		recvCh: make(chan []byte, 8),
		closed: make(chan struct{}),
	}
}

func (f *fakeConn) Send(b []byte) error {
	select {
	case <-f.closed:
		return errors.New("conn closed")
	default:
	}
	cp := append([]byte(nil), b...)
	f.sendCh <- cp
	return nil
}

func (f *fakeConn) Recv() ([]byte, error) {
	select {
	case b := <-f.recvCh:
		return b, nil
	case <-f.closed:
		return nil, errors.New("conn closed")
	}
}

func (f *fakeConn) Close() error {
	f.once.Do(func() { close(f.closed) })
	return nil
}

// waitTag reads from the conn until an envelope with the wanted tag shows up,
// returning it plus the tags that were skipped on the way.
func waitTag(t *testing.T, fc *fakeConn, tag string) (protocol.Envelope, []string) {
	t.Helper()
	var skipped []string
	timeout := time.After(2 * time.Second)
	for {
		select {
		case b := <-fc.sendCh:
			env, err := protocol.DecodeEnvelope(b)
			if err != nil {
				t.Fatalf("decode envelope: %v", err)
			}
			if env.T == tag {
				return env, skipped
			}
			skipped = append(skipped, env.T)
		case <-timeout:
			t.Fatalf("timed out waiting for %q envelope (skipped %v)", tag, skipped)
		}
	}
}

func encodeAnswer(t *testing.T, ordinal int, option string) []byte {
	t.Helper()
	b, err := protocol.Encode(protocol.MsgAnswer, protocol.Answer{Ordinal: ordinal, Option: option})
	if err != nil {
		t.Fatalf("encode answer: %v", err)
	}
	return b
}
