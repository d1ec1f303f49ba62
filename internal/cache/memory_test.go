package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGetSetDelete(t *testing.T) {
	m := NewMemory()

	_, ok := m.Get("users")
	assert.False(t, ok)

	m.Set("users", []string{"a", "b"})
	v, ok := m.Get("users")
	assert.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, v)

	m.Delete("users")
	_, ok = m.Get("users")
	assert.False(t, ok)
}

func TestMemoryDistinguishesCachedNil(t *testing.T) {
	m := NewMemory()
	m.Set("empty", nil)

	v, ok := m.Get("empty")
	assert.True(t, ok, "a cached nil is still a hit")
	assert.Nil(t, v)
}

func TestMemoryDeleteMissingKey(t *testing.T) {
	m := NewMemory()
	m.Delete("never-set") // must not panic
}
