package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemory_AppendOrder(t *testing.T) {
	m := NewMemory()
	m.Append("q1", "a1")
	m.Append("q2", "a2")
	m.Append("q3", "a3")

	turns := m.History()
	if len(turns) != 3 {
		t.Fatalf("History() len = %d, want 3", len(turns))
	}
	for i, want := range []string{"q1", "q2", "q3"} {
		if turns[i].Question != want {
			t.Errorf("turn %d question = %q, want %q", i, turns[i].Question, want)
		}
	}
}

func TestMemory_HistoryIsCopy(t *testing.T) {
	m := NewMemory()
	m.Append("q", "a")

	turns := m.History()
	turns[0].Answer = "mutated"

	if got := m.History()[0].Answer; got != "a" {
		t.Errorf("internal state mutated through History() copy: %q", got)
	}
}

func TestMemory_ConcurrentAppends(t *testing.T) {
	m := NewMemory()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Append(fmt.Sprintf("q%d", i), "a")
		}(i)
	}
	wg.Wait()

	if m.Len() != n {
		t.Errorf("Len() = %d, want %d", m.Len(), n)
	}
}

func TestStore_SessionIsolation(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	idA, memA := s.Get("session-a")
	idB, memB := s.Get("session-b")

	if idA != "session-a" || idB != "session-b" {
		t.Fatalf("Get() returned ids (%q, %q)", idA, idB)
	}
	if memA == memB {
		t.Fatal("distinct sessions share one memory instance")
	}

	memA.Append("q", "a")
	if memB.Len() != 0 {
		t.Error("appending to session-a leaked into session-b")
	}
}

func TestStore_SameIDSameMemory(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	_, first := s.Get("session-a")
	_, second := s.Get("session-a")
	if first != second {
		t.Error("same session ID returned different memory instances")
	}
}

func TestStore_GeneratesIDWhenEmpty(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	id, mem := s.Get("")
	if id == "" {
		t.Fatal("empty session ID was not replaced with a generated one")
	}
	if mem == nil {
		t.Fatal("nil memory for generated session")
	}

	_, again := s.Get(id)
	if again != mem {
		t.Error("generated ID does not resolve back to its memory")
	}
}

func TestStore_SweepExpiresIdleSessions(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	base := time.Now()
	s.now = func() time.Time { return base }
	s.Get("stale")

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	s.Get("fresh")
	s.sweep()

	if s.Len() != 1 {
		t.Errorf("Len() after sweep = %d, want 1", s.Len())
	}

	// The stale session comes back empty if the client reuses its ID.
	_, mem := s.Get("stale")
	if mem.Len() != 0 {
		t.Error("expired session retained old memory")
	}
}
