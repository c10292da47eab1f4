// Package products reads raw product candidates from the upstream geo
// search index.
package products

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/artloci/nearby/internal/db"
	"github.com/artloci/nearby/internal/domain"
	"github.com/artloci/nearby/internal/domain/geo"
	"github.com/artloci/nearby/internal/domain/hit"
)

const defaultPageSize = 50

// store is the consumer interface for geo search (ISP).
type store interface {
	SearchGeo(ctx context.Context, q *db.GeoQuery) (*db.SearchResult, error)
}

// Repo implements usecase/nearby.Searcher against the FT product index.
type Repo struct {
	store    store
	index    string
	prefix   string
	pageSize int
}

// New creates a products repository for the given index and key prefix.
func New(s store, indexName, keyPrefix string) *Repo {
	return &Repo{store: s, index: indexName, prefix: keyPrefix, pageSize: defaultPageSize}
}

// WithPageSize overrides the page size used for concurrent page fetches.
func (r *Repo) WithPageSize(n int) *Repo {
	if n > 0 {
		r.pageSize = n
	}
	return r
}

// Nearby returns up to limit candidates around (lat, lng), nearest first,
// dropping anything beyond radiusM. The KNN pages are fetched concurrently;
// page order is restored before the merge so the index's ranking survives.
func (r *Repo) Nearby(ctx context.Context, lat, lng, radiusM float64, limit int) ([]hit.Hit, error) {
	if limit <= 0 {
		return nil, nil
	}

	vector := geo.ToVector(lat, lng)
	pages := (limit + r.pageSize - 1) / r.pageSize

	pageHits := make([][]hit.Hit, pages)
	g, gctx := errgroup.WithContext(ctx)

	for p := 0; p < pages; p++ {
		offset := p * r.pageSize
		count := r.pageSize
		if offset+count > limit {
			count = limit - offset
		}
		g.Go(func() error {
			q := &db.GeoQuery{
				IndexName:    r.index,
				Vector:       vector,
				K:            limit,
				Offset:       offset,
				Count:        count,
				ReturnFields: returnFields,
			}
			sr, err := r.store.SearchGeo(gctx, q)
			if err != nil {
				return fmt.Errorf("%w: page at offset %d: %w", domain.ErrSearchUnavailable, offset, err)
			}
			pageHits[offset/r.pageSize] = r.parseEntries(sr, radiusM)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	hits := make([]hit.Hit, 0, limit)
	for _, page := range pageHits {
		hits = append(hits, page...)
	}
	return hits, nil
}

func (r *Repo) parseEntries(sr *db.SearchResult, radiusM float64) []hit.Hit {
	if sr == nil || len(sr.Entries) == 0 {
		return nil
	}

	hits := make([]hit.Hit, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		h := parseEntry(entry, r.prefix)
		if radiusM > 0 && h.DistanceM > radiusM {
			// KNN pages are distance-sorted, so everything after the first
			// out-of-radius entry is out too; parse stops here
			break
		}
		hits = append(hits, h)
	}
	return hits
}
