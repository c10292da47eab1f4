package nearby

import (
	"context"

	"github.com/artloci/nearby/internal/domain/hit"
)

// Searcher fetches raw candidates around a point, sorted by distance.
type Searcher interface {
	Nearby(ctx context.Context, lat, lng, radiusM float64, limit int) ([]hit.Hit, error)
}

// Cache stores curated result pages between requests.
type Cache interface {
	Get(ctx context.Context, key string) ([]hit.Hit, bool, error)
	Put(ctx context.Context, key string, hits []hit.Hit) error
}
