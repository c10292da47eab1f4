// Package nearby runs the search-then-curate pipeline behind the nearby
// products endpoints.
package nearby

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/artloci/nearby/internal/domain/curate"
	"github.com/artloci/nearby/internal/domain/hit"
	"github.com/artloci/nearby/internal/domain/query"
	"github.com/artloci/nearby/internal/logger"
	"github.com/artloci/nearby/internal/metrics"
	"github.com/artloci/nearby/internal/repository/resultcache"
)

// DefaultOverfetchFactor sets how many candidates to pull per requested
// result slot. Curation collapses and caps, so the raw pool must be
// larger than the final page.
const DefaultOverfetchFactor = 4

// Service coordinates candidate search, curation, and result caching.
type Service struct {
	search    Searcher
	cache     Cache
	opts      curate.Options
	overfetch int
}

// New creates a nearby service. cache can be nil to disable result caching.
func New(search Searcher, cache Cache, opts curate.Options, overfetchFactor int) *Service {
	if overfetchFactor <= 0 {
		overfetchFactor = DefaultOverfetchFactor
	}
	return &Service{search: search, cache: cache, opts: opts, overfetch: overfetchFactor}
}

// Nearby returns the curated product page for q. Cached pages are served
// as-is; on a miss the raw candidate pool is fetched, curated, and cached.
func (s *Service) Nearby(ctx context.Context, q query.Query) ([]hit.Hit, error) {
	// the query carries the operator defaults for anything the request
	// left unset, so its values always win here
	opts := s.opts
	opts.TargetCount = q.TargetCount()
	opts.MaxPerGroup = q.MaxPerGroup()

	key := resultcache.Key(
		q.Lat(), q.Lng(), q.RadiusM(),
		opts.TargetCount, opts.MaxPerGroup, string(opts.Policy), opts.FeaturedFirst,
	)

	if s.cache != nil {
		hits, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			// a broken cache degrades to a live search
			logger.FromContext(ctx).Warn("result cache read failed", zap.Error(err))
			metrics.ResultCacheTotal.WithLabelValues("error").Inc()
		case ok:
			metrics.ResultCacheTotal.WithLabelValues("hit").Inc()
			metrics.NearbySearchesTotal.WithLabelValues("ok").Inc()
			return hits, nil
		default:
			metrics.ResultCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	pool := opts.TargetCount * s.overfetch
	candidates, err := s.search.Nearby(ctx, q.Lat(), q.Lng(), q.RadiusM(), pool)
	if err != nil {
		metrics.NearbySearchesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("search nearby: %w", err)
	}

	start := time.Now()
	curated := curate.Curate(candidates, opts)
	metrics.CurationDuration.Observe(time.Since(start).Seconds())
	metrics.CurationCandidatesTotal.Add(float64(len(candidates)))
	metrics.CurationResultsTotal.Add(float64(len(curated)))

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, curated); err != nil {
			logger.FromContext(ctx).Warn("result cache write failed", zap.Error(err))
		}
	}

	metrics.NearbySearchesTotal.WithLabelValues("ok").Inc()
	return curated, nil
}
