package bot

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCollectorStore_ResolveVerdicts(t *testing.T) {
	s := newCollectorStore()
	s.Attach("m1", "owner", time.Minute, "not yours", nil, nil)

	if _, v := s.resolve("unknown", "owner"); v != verdictExpired {
		t.Errorf("unknown message verdict = %v, want expired", v)
	}
	c, v := s.resolve("m1", "stranger")
	if v != verdictRejected {
		t.Errorf("stranger verdict = %v, want rejected", v)
	}
	if c == nil || c.notice != "not yours" {
		t.Errorf("rejection collector = %+v", c)
	}
	if _, v := s.resolve("m1", "owner"); v != verdictAccepted {
		t.Errorf("owner verdict = %v, want accepted", v)
	}
}

func TestCollectorStore_RemoveStopsTimeout(t *testing.T) {
	s := newCollectorStore()
	var ended atomic.Bool
	s.Attach("m1", "owner", 20*time.Millisecond, "", nil, func(received bool) {
		ended.Store(true)
	})
	s.remove("m1")

	time.Sleep(60 * time.Millisecond)
	if ended.Load() {
		t.Error("onEnd fired after removal")
	}
	if _, v := s.resolve("m1", "owner"); v != verdictExpired {
		t.Error("collector survived removal")
	}
}

func TestCollectorStore_ExpireReportsReceived(t *testing.T) {
	s := newCollectorStore()

	type outcome struct {
		received bool
	}
	got := make(chan outcome, 1)

	s.Attach("m1", "owner", 20*time.Millisecond, "", nil, func(received bool) {
		got <- outcome{received}
	})
	// One accepted action before the window closes.
	if _, v := s.resolve("m1", "owner"); v != verdictAccepted {
		t.Fatal("resolve failed")
	}

	select {
	case o := <-got:
		if !o.received {
			t.Error("expiry should report the received action")
		}
	case <-time.After(time.Second):
		t.Fatal("onEnd never fired")
	}

	// Untouched collector reports received=false.
	s.Attach("m2", "owner", 20*time.Millisecond, "", nil, func(received bool) {
		got <- outcome{received}
	})
	select {
	case o := <-got:
		if o.received {
			t.Error("untouched expiry should report received=false")
		}
	case <-time.After(time.Second):
		t.Fatal("onEnd never fired for untouched collector")
	}
}

func TestCollectorStore_ReattachReplaces(t *testing.T) {
	s := newCollectorStore()
	var firstEnded atomic.Bool
	s.Attach("m1", "alice", 20*time.Millisecond, "", nil, func(bool) {
		firstEnded.Store(true)
	})
	s.Attach("m1", "bob", time.Minute, "", nil, nil)

	time.Sleep(60 * time.Millisecond)
	if firstEnded.Load() {
		t.Error("replaced collector's onEnd fired")
	}

	// The live collector is the second one.
	if _, v := s.resolve("m1", "alice"); v != verdictRejected {
		t.Error("old owner should be rejected after replacement")
	}
	if _, v := s.resolve("m1", "bob"); v != verdictAccepted {
		t.Error("new owner should be accepted")
	}
}
