// Package session holds per-dialogue conversation state. Each dialogue
// session owns exactly one Memory; the Store maps externally supplied
// session IDs to their Memory and expires idle sessions.
package session

import "sync"

// Turn is one completed question/answer exchange.
type Turn struct {
	Question string
	Answer   string
}

// Memory is the ordered, append-only record of a session's turns.
// Appends are serialized so concurrent requests against the same session
// cannot interleave history. A turn is only appended after generation
// succeeded; failed requests leave the memory untouched.
type Memory struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewMemory creates an empty conversation memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Append records a completed turn at the end of the history.
func (m *Memory) Append(question, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, Turn{Question: question, Answer: answer})
}

// History returns a copy of all turns in chronological order.
func (m *Memory) History() []Turn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Turn, len(m.turns))
	copy(out, m.turns)
	return out
}

// Len returns the number of recorded turns.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.turns)
}
