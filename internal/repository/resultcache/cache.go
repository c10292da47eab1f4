// Package resultcache stores curated result pages in Redis with a bounded
// lifetime. The curation engine runs only on a miss; whatever it produced
// is what gets cached.
package resultcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/artloci/nearby/internal/db"
	"github.com/artloci/nearby/internal/domain/hit"
)

const keyPrefix = "nearby:results:"

// DefaultTTL bounds how long a cached result page stays valid.
const DefaultTTL = 24 * time.Hour

// store is the consumer interface for the result cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// Cache is a time-bounded result store keyed by query parameters.
type Cache struct {
	store store
	ttl   time.Duration
}

// New creates a result cache. ttl <= 0 falls back to DefaultTTL.
func New(s store, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: s, ttl: ttl}
}

// Key derives the cache key from everything that influences the curated
// output: the query point and radius, the budget parameters, and the
// engine configuration.
func Key(lat, lng, radiusM float64, targetCount, maxPerGroup int, policy string, featuredFirst bool) string {
	payload := fmt.Sprintf("%.6f|%.6f|%.0f|%d|%d|%s|%t",
		lat, lng, radiusM, targetCount, maxPerGroup, policy, featuredFirst)
	sum := sha256.Sum256([]byte(payload))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns the cached hits for key. The second return reports whether
// the key was present; an absent key is not an error.
func (c *Cache) Get(ctx context.Context, key string) ([]hit.Hit, bool, error) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var dtos []cachedHit
	if err := json.Unmarshal(data, &dtos); err != nil {
		// drop the corrupt entry so the next read is a clean miss; the
		// caller recomputes and overwrites it either way
		_ = c.store.Del(ctx, key)
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}

	hits := make([]hit.Hit, len(dtos))
	for i, d := range dtos {
		hits[i] = d.toDomain()
	}
	return hits, true, nil
}

// Put stores the curated hits under key for the configured TTL.
func (c *Cache) Put(ctx context.Context, key string, hits []hit.Hit) error {
	dtos := make([]cachedHit, len(hits))
	for i, h := range hits {
		dtos[i] = fromDomain(h)
	}

	data, err := json.Marshal(dtos)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}

	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}
