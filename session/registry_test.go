package session

import (
	"testing"

	"trivia/protocol"
)

func TestRegistryAssignsMonotonicIDs(t *testing.T) {
	reg := NewRegistry()
	a := reg.Add(newFakeConn(), "10.0.0.1")
	b := reg.Add(newFakeConn(), "10.0.0.2")
	if a.ID() != 1 || b.ID() != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", a.ID(), b.ID())
	}

	// Ids are never reused within a run, even after a disconnect.
	reg.Remove(a.ID())
	c := reg.Add(newFakeConn(), "10.0.0.3")
	if c.ID() != 3 {
		t.Fatalf("id after remove = %d, want 3", c.ID())
	}
}

func TestPlayerByAddr(t *testing.T) {
	reg := NewRegistry()
	a := reg.Add(newFakeConn(), "10.0.0.1")
	reg.Add(newFakeConn(), "10.0.0.2")

	id, ok := reg.PlayerByAddr("10.0.0.1")
	if !ok || id != a.ID() {
		t.Fatalf("PlayerByAddr = (%d, %v), want (%d, true)", id, ok, a.ID())
	}
	if _, ok := reg.PlayerByAddr("192.168.1.50"); ok {
		t.Fatalf("unregistered address should not resolve")
	}
}

func TestGetAndSnapshot(t *testing.T) {
	reg := NewRegistry()
	a := reg.Add(newFakeConn(), "10.0.0.1")

	got, ok := reg.Get(a.ID())
	if !ok || got != a {
		t.Fatalf("Get(%d) = (%v, %v)", a.ID(), got, ok)
	}
	if _, ok := reg.Get(99); ok {
		t.Fatalf("Get(99) should miss")
	}
	if n := len(reg.Snapshot()); n != 1 {
		t.Fatalf("snapshot size = %d, want 1", n)
	}
}

func TestShutdownKillsAndClears(t *testing.T) {
	reg := NewRegistry()
	fc := newFakeConn()
	reg.Add(fc, "10.0.0.1")

	reg.Shutdown()

	if _, skipped := waitTag(t, fc, protocol.MsgKill); len(skipped) != 0 {
		t.Fatalf("kill should be the only envelope, skipped %v", skipped)
	}
	if reg.Len() != 0 {
		t.Fatalf("registry len after shutdown = %d, want 0", reg.Len())
	}
}
