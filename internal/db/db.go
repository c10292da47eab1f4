// Package db defines the storage contract backing the nearby API: a Redis
// instance holding the product geo index (FT.SEARCH) and the result cache.
package db

import (
	"context"
	"time"
)

// Store is the database facade combining all sub-interfaces. Consumers
// depend on the narrow sub-interfaces, not on Store itself.
type Store interface {
	Pinger
	KVStore
	GeoSearcher
	IndexChecker
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore provides simple key-value operations for the result cache.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// GeoQuery is the input for a geo KNN search against the product index.
type GeoQuery struct {
	IndexName string
	// Vector is the unit-sphere ECEF encoding of the query point.
	Vector []float32
	// K is the total number of nearest candidates the KNN clause considers.
	K int
	// Offset and Count paginate within the K nearest candidates.
	Offset int
	Count  int
	// ReturnFields limits which hash fields come back with each entry.
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search. Score carries the raw
// L2 distance between unit-sphere vectors (convert via geo.L2ToMeters).
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// GeoSearcher provides KNN search over the product geo index.
type GeoSearcher interface {
	SearchGeo(ctx context.Context, q *GeoQuery) (*SearchResult, error)
}

// IndexChecker probes product index existence (used by health checks).
type IndexChecker interface {
	IndexExists(ctx context.Context, name string) (bool, error)
}
