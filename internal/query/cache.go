package query

import (
	"fmt"
	"sync"
)

// shardCount is the number of independent lock-protected buckets the memo
// cache splits its keys across; access is read-mostly, so sharding cuts
// contention between unrelated queries without needing a single global
// lock.
const shardCount = 16

type cacheKey struct {
	query    string
	input    any
	revision Revision
}

type cacheEntry struct {
	value any
	err   error
}

type shard struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

// memoCache is a sharded map from (query name, input key, revision) to a
// computed result. Duplicate concurrent computation for the same key is
// tolerated (both goroutines observe the same inputs and would compute
// identical results), so get-or-compute does not hold a shard's lock
// across the caller-supplied compute function: two goroutines racing on
// the same miss both compute and one result is simply discarded.
type memoCache struct {
	shards [shardCount]*shard
}

func newMemoCache() *memoCache {
	c := &memoCache{}
	for i := range c.shards {
		c.shards[i] = &shard{entries: make(map[cacheKey]cacheEntry)}
	}
	return c
}

func (c *memoCache) clear() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.entries = make(map[cacheKey]cacheEntry)
		s.mu.Unlock()
	}
}

func (c *memoCache) shardFor(key cacheKey) *shard {
	h := fnv32(fmt.Sprintf("%s|%v|%d", key.query, key.input, key.revision))
	return c.shards[h%shardCount]
}

func fnv32(s string) uint32 {
	const offset, prime = 2166136261, 16777619
	h := uint32(offset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= prime
	}
	return h
}

// getOrCompute returns the memoized result for key, computing and storing
// it via compute on a miss.
func getOrCompute[T any](c *memoCache, key cacheKey, compute func() (T, error)) (T, error) {
	s := c.shardFor(key)

	s.mu.Lock()
	if e, ok := s.entries[key]; ok {
		s.mu.Unlock()
		v, _ := e.value.(T)
		return v, e.err
	}
	s.mu.Unlock()

	v, err := compute()

	s.mu.Lock()
	s.entries[key] = cacheEntry{value: v, err: err}
	s.mu.Unlock()

	return v, err
}
