package domainresolver

import (
	"sync"

	"golang.org/x/crypto/blake2b"

	"emailguess/internal/metadata"
)

// Match is one resolved (domain, matched firm, score) record, score in
// [0, 100].
type Match struct {
	Domain      string
	MatchedFirm string
	Score       float64
}

const shardCount = 32

// cache is the fuzzy-match memoisation layer: a read-mostly map written
// only by the resolver's fuzzy-match fallback. It is sharded by a hash of
// the firm key so that concurrent writes for different firms do not
// contend on one global lock, matching the "writes are either serialised
// or structured so concurrent inserts converge on last-writer-wins"
// requirement on the underlying store's simpler single-mutex idiom.
type cache struct {
	shards [shardCount]cacheShard
}

type cacheShard struct {
	mu   sync.RWMutex
	data map[string]Match
}

func newCache(seed map[string]metadata.FuzzyCacheEntry) *cache {
	c := &cache{}
	for i := range c.shards {
		c.shards[i].data = make(map[string]Match)
	}
	for key, entry := range seed {
		c.put(key, Match{Domain: entry.Domain, MatchedFirm: entry.MatchedFirm, Score: entry.Score})
	}
	return c
}

func (c *cache) shardFor(key string) *cacheShard {
	sum := blake2b.Sum256([]byte(key))
	idx := int(sum[0]) % shardCount
	return &c.shards[idx]
}

func (c *cache) get(key string) (Match, bool) {
	shard := c.shardFor(key)
	shard.mu.RLock()
	defer shard.mu.RUnlock()
	m, ok := shard.data[key]
	return m, ok
}

// put is last-write-wins: a concurrent writer racing on the same key may
// overwrite another writer's result, but both results are valid per the
// resolver's idempotency contract (same input always computes the same
// record), so either survives.
func (c *cache) put(key string, m Match) {
	shard := c.shardFor(key)
	shard.mu.Lock()
	shard.data[key] = m
	shard.mu.Unlock()
}

func (c *cache) len() int {
	n := 0
	for i := range c.shards {
		c.shards[i].mu.RLock()
		n += len(c.shards[i].data)
		c.shards[i].mu.RUnlock()
	}
	return n
}
