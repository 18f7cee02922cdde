package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SetGet(t *testing.T) {
	r := New()

	_, ok := r.Get("c1")
	assert.False(t, ok)

	r.Set("c1", "alice", "lobby")

	s, ok := r.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "c1", s.ConnID)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, "lobby", s.Room)
}

func TestRegistry_SetOverwrites(t *testing.T) {
	r := New()
	r.Set("c1", "alice", "lobby")
	r.Set("c1", "alice", "den")

	s, ok := r.Get("c1")
	require.True(t, ok)
	assert.Equal(t, "den", s.Room)
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_Remove(t *testing.T) {
	r := New()
	r.Set("c1", "alice", "lobby")

	s, ok := r.Remove("c1")
	require.True(t, ok)
	assert.Equal(t, "alice", s.Username)
	assert.Equal(t, "lobby", s.Room)
	assert.Equal(t, 0, r.Len())

	// idempotent
	_, ok = r.Remove("c1")
	assert.False(t, ok)
}

func TestRegistry_CountInRoom(t *testing.T) {
	r := New()
	r.Set("c1", "alice", "lobby")
	r.Set("c2", "bob", "lobby")
	r.Set("c3", "carol", "den")

	assert.Equal(t, 2, r.CountInRoom("lobby"))
	assert.Equal(t, 1, r.CountInRoom("den"))
	assert.Equal(t, 0, r.CountInRoom("empty"))
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			r.Set(id, "user-"+id, "lobby")
			r.Get(id)
			r.CountInRoom("lobby")
			r.Remove(id)
		}(string(rune('a' + i%26)))
	}
	wg.Wait()
}
