package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	st, ok := s.Get("nobody")
	assert.False(t, ok)
	assert.Equal(t, State{}, st)
}

func TestMemoryStore_SetThenGet(t *testing.T) {
	s := NewMemoryStore()
	s.Set("s1", State{Chapter: 2, Fragments: []string{"FRAG-1"}, LastQuestion: "q?"})

	st, ok := s.Get("s1")
	require.True(t, ok)
	assert.Equal(t, 2, st.Chapter)
	assert.Equal(t, []string{"FRAG-1"}, st.Fragments)
	assert.Equal(t, "q?", st.LastQuestion)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_ValuesAreNotAliased(t *testing.T) {
	s := NewMemoryStore()
	frags := []string{"FRAG-1"}
	s.Set("s1", State{Chapter: 2, Fragments: frags})
	frags[0] = "mutated"

	st, _ := s.Get("s1")
	require.Equal(t, []string{"FRAG-1"}, st.Fragments)

	st.Fragments = append(st.Fragments, "FRAG-2")
	again, _ := s.Get("s1")
	assert.Equal(t, []string{"FRAG-1"}, again.Fragments)
}

func TestMemoryStore_SessionsAreIndependent(t *testing.T) {
	s := NewMemoryStore()
	s.Set("a", State{Chapter: 1})
	s.Set("b", State{Chapter: 3, Unlocked: true})

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, 1, a.Chapter)
	assert.False(t, a.Unlocked)
	assert.True(t, b.Unlocked)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%8)
			for j := 0; j < 50; j++ {
				st, _ := s.Get(id)
				st.Chapter = (st.Chapter % 3) + 1
				s.Set(id, st)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 8, s.Len())
}

func TestState_HasFragment(t *testing.T) {
	st := State{Fragments: []string{"FRAG-1", "FRAG-2"}}
	assert.True(t, st.HasFragment("FRAG-2"))
	assert.False(t, st.HasFragment("FRAG-3"))
}
