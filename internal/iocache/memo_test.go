package iocache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoCache(t *testing.T) {
	memo, err := NewMemoCache(DefaultMemoCapacity, DefaultMemoTTL)
	require.NoError(t, err)
	defer memo.Close()

	_, ok := memo.Get("missing")
	assert.False(t, ok)

	a := sampleAssessment("a1", "/repo", 70, time.Now())
	memo.Set("key", a)
	memo.Set("nil", nil)

	got, ok := memo.Get("key")
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 1, memo.Len())

	stats := memo.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.Ratio, 1e-9)
}

func TestNewMemoCacheInvalid(t *testing.T) {
	_, err := NewMemoCache(0, time.Minute)
	assert.Error(t, err)
	_, err = NewMemoCache(10, 0)
	assert.Error(t, err)
}
