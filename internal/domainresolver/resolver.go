// Package domainresolver implements firm-name -> domain resolution: exact
// lookup against the firm directory, memoised fuzzy-match cache lookup, and
// as a last resort a fuzzy string-similarity scan of the whole directory.
package domainresolver

import (
	"sync/atomic"

	"github.com/agext/levenshtein"
	"github.com/sirupsen/logrus"

	"emailguess/internal/metadata"
	"emailguess/internal/normalize"
)

// Resolver resolves a raw firm name to a domain. It is safe for concurrent
// use: the metadata store is read-only and the cache is sharded and
// mutex-protected.
type Resolver struct {
	store *metadata.Store
	cache *cache

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// New builds a Resolver over store, seeding its cache from the store's
// optional initial fuzzy-match cache blob.
func New(store *metadata.Store) *Resolver {
	return &Resolver{
		store: store,
		cache: newCache(store.InitialFuzzyCache()),
	}
}

// Resolve implements the firm -> domain algorithm of the engine's domain
// resolution design: exact directory hit, then cache hit, then fuzzy scan
// (which populates the cache for next time).
//
// Ties in the fuzzy scan are broken by iteration order using a >= (not >)
// comparison, matching the upstream "later iteration wins on ties"
// ordering contract — this makes the fuzzy result directory-order
// dependent by design, not by accident.
func (r *Resolver) Resolve(rawFirm string) Match {
	key := normalize.ToLower(rawFirm)

	if domain, ok := r.store.FirmDomain(key); ok {
		return Match{Domain: domain, MatchedFirm: key, Score: 100}
	}

	if m, ok := r.cache.get(key); ok {
		r.cacheHits.Add(1)
		return m
	}
	r.cacheMisses.Add(1)

	m := r.fuzzyMatch(key)
	r.cache.put(key, m)
	return m
}

// CacheSize returns the number of entries currently memoised, for
// observability.
func (r *Resolver) CacheSize() int {
	return r.cache.len()
}

// CacheHits and CacheMisses report fuzzy-match cache lookups since New,
// counting only the cache layer itself: an exact firm-directory hit never
// touches the cache and is not counted here.
func (r *Resolver) CacheHits() int64 {
	return r.cacheHits.Load()
}

func (r *Resolver) CacheMisses() int64 {
	return r.cacheMisses.Load()
}

func (r *Resolver) fuzzyMatch(key string) Match {
	var best Match
	var bestScore float64 = -1

	for _, candidate := range r.store.FirmDirectoryKeys() {
		score := levenshtein.Similarity(key, candidate, nil) * 100
		if score >= bestScore {
			bestScore = score
			domain, _ := r.store.FirmDomain(candidate)
			best = Match{Domain: domain, MatchedFirm: candidate, Score: score}
		}
	}

	if bestScore < 0 {
		logrus.WithField("firm", key).Debug("domain resolver: empty firm directory, no fuzzy match possible")
		return Match{}
	}

	logrus.WithFields(logrus.Fields{
		"firm":         key,
		"matched_firm": best.MatchedFirm,
		"score":        best.Score,
	}).Debug("domain resolver: fuzzy match computed")

	return best
}
