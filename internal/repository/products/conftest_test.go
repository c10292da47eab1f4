package products

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/artloci/nearby/internal/db"
	"github.com/artloci/nearby/internal/domain/geo"
)

// mockStore implements the consumer interface for tests. Pages are fetched
// concurrently, so recording is guarded.
type mockStore struct {
	mu          sync.Mutex
	searchGeoFn func(ctx context.Context, q *db.GeoQuery) (*db.SearchResult, error)
	queries     []*db.GeoQuery
}

func (m *mockStore) SearchGeo(ctx context.Context, q *db.GeoQuery) (*db.SearchResult, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()
	if m.searchGeoFn != nil {
		return m.searchGeoFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, "test:idx", "test:products:")
	return repo, ms
}

// entryAt builds a search entry for a product at the given distance in
// meters, encoded back into the raw L2 score the index would report.
func entryAt(handle string, meters float64, fields map[string]string) db.SearchEntry {
	if fields == nil {
		fields = map[string]string{}
	}
	return db.SearchEntry{
		Key:    "test:products:" + handle,
		Score:  metersToL2(meters),
		Fields: fields,
	}
}

// metersToL2 inverts geo.L2ToMeters: angle = m/R, L2 = 2*sin(angle/2).
func metersToL2(meters float64) float64 {
	angle := meters / geo.EarthRadiusMeters
	return 2 * math.Sin(angle/2)
}
