package iocache

import (
	"fmt"
	"time"

	"github.com/huangsam/aiready/schema"
	"github.com/maypok86/otter"
)

// Defaults for the in-memory assessment memo.
const (
	DefaultMemoCapacity = 256
	DefaultMemoTTL      = 30 * time.Minute
)

// MemoStats is a snapshot of memo cache effectiveness.
type MemoStats struct {
	Hits   int64
	Misses int64
	Ratio  float64
}

// MemoCache keeps recent assessments in memory, keyed by analysis fingerprint.
// Cached assessments are shared and must not be mutated.
type MemoCache struct {
	cache otter.Cache[string, *schema.AIReadinessAssessment]
}

// NewMemoCache creates a memo holding up to capacity assessments for ttl each.
func NewMemoCache(capacity int, ttl time.Duration) (*MemoCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("memo capacity must be positive, got %d", capacity)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("memo TTL must be positive, got %s", ttl)
	}
	cache, err := otter.MustBuilder[string, *schema.AIReadinessAssessment](capacity).
		CollectStats().
		Cost(func(string, *schema.AIReadinessAssessment) uint32 { return 1 }).
		WithTTL(ttl).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build memo cache: %w", err)
	}
	return &MemoCache{cache: cache}, nil
}

// Get returns the memoised assessment for key.
func (m *MemoCache) Get(key string) (*schema.AIReadinessAssessment, bool) {
	return m.cache.Get(key)
}

// Set memoises an assessment. Nil assessments are ignored.
func (m *MemoCache) Set(key string, a *schema.AIReadinessAssessment) {
	if a == nil {
		return
	}
	m.cache.Set(key, a)
}

// Len returns the number of memoised assessments.
func (m *MemoCache) Len() int {
	return m.cache.Size()
}

// Stats returns hit and miss counters.
func (m *MemoCache) Stats() MemoStats {
	s := m.cache.Stats()
	return MemoStats{Hits: s.Hits(), Misses: s.Misses(), Ratio: s.Ratio()}
}

// Close stops the cache's background work.
func (m *MemoCache) Close() {
	m.cache.Close()
}
