package session

import (
	"slices"
	"sync"
)

// State is one seeker's progress through the trials.
type State struct {
	Chapter      int
	Unlocked     bool
	Fragments    []string
	LastStory    string
	LastQuestion string
}

// HasFragment reports whether frag was already recorded.
func (s State) HasFragment(frag string) bool {
	return slices.Contains(s.Fragments, frag)
}

func (s State) clone() State {
	s.Fragments = slices.Clone(s.Fragments)
	return s
}

type Store interface {
	Get(id string) (State, bool)
	Set(id string, st State)
}

// MemoryStore keeps sessions for the lifetime of the process.
// Nothing is ever evicted.
type MemoryStore struct {
	mu    sync.Mutex
	store map[string]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{store: make(map[string]State)}
}

func (m *MemoryStore) Get(id string) (State, bool) {
	m.mu.Lock()
	st, ok := m.store[id]
	m.mu.Unlock()
	if !ok {
		return State{}, false
	}
	return st.clone(), true
}

func (m *MemoryStore) Set(id string, st State) {
	st = st.clone()
	m.mu.Lock()
	m.store[id] = st
	m.mu.Unlock()
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.store)
}
