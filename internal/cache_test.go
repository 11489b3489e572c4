package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Parallel()
	cache := NewCache(0)
	source := []byte(mixedSource)
	report := &Report{Filename: "main.leo"}

	t.Run("Miss", func(t *testing.T) {
		_, ok := cache.Get("main.leo", source)
		assert.False(t, ok)
	})

	cache.Set("main.leo", source, report)

	t.Run("Hit", func(t *testing.T) {
		got, ok := cache.Get("main.leo", source)
		require.True(t, ok)
		assert.Same(t, report, got)
	})

	t.Run("ChangedContent", func(t *testing.T) {
		_, ok := cache.Get("main.leo", []byte("function main() {}"))
		assert.False(t, ok)
		assert.Equal(t, 0, cache.Len())
	})
}

func TestCacheExpiry(t *testing.T) {
	t.Parallel()
	cache := NewCache(time.Millisecond)
	source := []byte("function main() {}")
	cache.Set("a.leo", source, &Report{})

	time.Sleep(10 * time.Millisecond)
	_, ok := cache.Get("a.leo", source)
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	t.Parallel()
	cache := NewCache(0)
	source := []byte("function main() {}")
	cache.Set("a.leo", source, &Report{})
	cache.Set("b.leo", source, &Report{})

	cache.Invalidate("a.leo")
	_, ok := cache.Get("a.leo", source)
	assert.False(t, ok)
	assert.Equal(t, 1, cache.Len())

	cache.InvalidateAll()
	assert.Equal(t, 0, cache.Len())
}
