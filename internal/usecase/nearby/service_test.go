package nearby

import (
	"context"
	"errors"
	"testing"

	"github.com/artloci/nearby/internal/domain"
	"github.com/artloci/nearby/internal/domain/curate"
	"github.com/artloci/nearby/internal/domain/hit"
	"github.com/artloci/nearby/internal/domain/query"
)

func testQuery(t *testing.T, targetCount int) query.Query {
	t.Helper()
	q, err := query.New(52.37, 4.89, 25000, targetCount, 2)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return q
}

func coordHits(n int) []hit.Hit {
	hits := make([]hit.Hit, n)
	for i := range hits {
		hits[i] = hit.Hit{
			Handle: "item-" + string(rune('a'+i)),
			Title:  "Item " + string(rune('A'+i)),
			Location: &hit.Location{
				Latitude:  52.0 + float64(i)*0.01,
				Longitude: 4.0,
				HasCoords: true,
			},
		}
	}
	return hits
}

func TestNearby_SearchesAndCurates(t *testing.T) {
	search := &mockSearcher{hits: coordHits(6)}
	cache := newMockCache()
	svc := New(search, cache, curate.Options{Policy: curate.PolicyCoordinate}, 4)

	got, err := svc.Nearby(context.Background(), testQuery(t, 4))
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 4 {
		t.Fatalf("expected 4 curated hits, got %d", len(got))
	}
	if search.limit != 16 {
		t.Errorf("expected overfetch pool of 16, got %d", search.limit)
	}
	if cache.puts != 1 {
		t.Errorf("expected curated page to be cached, puts=%d", cache.puts)
	}
}

func TestNearby_CacheHitSkipsSearch(t *testing.T) {
	search := &mockSearcher{hits: coordHits(6)}
	cache := newMockCache()
	svc := New(search, cache, curate.Options{Policy: curate.PolicyCoordinate}, 4)

	q := testQuery(t, 4)
	first, err := svc.Nearby(context.Background(), q)
	if err != nil {
		t.Fatalf("first Nearby: %v", err)
	}

	second, err := svc.Nearby(context.Background(), q)
	if err != nil {
		t.Fatalf("second Nearby: %v", err)
	}
	if search.calls != 1 {
		t.Errorf("expected a single backend search, got %d", search.calls)
	}
	if len(second) != len(first) {
		t.Errorf("cached page differs: %d vs %d", len(second), len(first))
	}
}

func TestNearby_CacheReadErrorDegradesToSearch(t *testing.T) {
	search := &mockSearcher{hits: coordHits(3)}
	cache := newMockCache()
	cache.getErr = errors.New("connection refused")
	svc := New(search, cache, curate.Options{Policy: curate.PolicyCoordinate}, 4)

	got, err := svc.Nearby(context.Background(), testQuery(t, 3))
	if err != nil {
		t.Fatalf("expected live search on cache failure, got %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 hits, got %d", len(got))
	}
	if search.calls != 1 {
		t.Errorf("expected backend search, got %d calls", search.calls)
	}
}

func TestNearby_CacheWriteErrorIsIgnored(t *testing.T) {
	search := &mockSearcher{hits: coordHits(3)}
	cache := newMockCache()
	cache.putErr = errors.New("readonly replica")
	svc := New(search, cache, curate.Options{Policy: curate.PolicyCoordinate}, 4)

	got, err := svc.Nearby(context.Background(), testQuery(t, 3))
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("expected 3 hits, got %d", len(got))
	}
}

func TestNearby_NilCache(t *testing.T) {
	search := &mockSearcher{hits: coordHits(2)}
	svc := New(search, nil, curate.Options{Policy: curate.PolicyCoordinate}, 0)

	got, err := svc.Nearby(context.Background(), testQuery(t, 2))
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 hits, got %d", len(got))
	}
	if search.limit != 2*DefaultOverfetchFactor {
		t.Errorf("expected default overfetch pool, got %d", search.limit)
	}
}

func TestNearby_SearchErrorPropagates(t *testing.T) {
	search := &mockSearcher{err: domain.ErrSearchUnavailable}
	svc := New(search, nil, curate.Options{Policy: curate.PolicyCoordinate}, 4)

	_, err := svc.Nearby(context.Background(), testQuery(t, 4))
	if !errors.Is(err, domain.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestNearby_QueryMaxPerGroupOverride(t *testing.T) {
	// two hits on the same cell; maxPerGroup=1 keeps only the first
	hits := []hit.Hit{
		{Handle: "a", Title: "A", Location: &hit.Location{Latitude: 52, Longitude: 4, HasCoords: true}},
		{Handle: "b", Title: "B", Location: &hit.Location{Latitude: 52, Longitude: 4, HasCoords: true}},
	}
	search := &mockSearcher{hits: hits}
	svc := New(search, nil, curate.Options{Policy: curate.PolicyCoordinate}, 4)

	q, err := query.New(52, 4, 25000, 10, 1)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	got, err := svc.Nearby(context.Background(), q)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 hit after per-group cap, got %d", len(got))
	}
	if got[0].Handle != "a" {
		t.Errorf("expected first hit kept, got %s", got[0].Handle)
	}
}

func TestNearby_OperatorGroupCapApplies(t *testing.T) {
	// eight hits sharing one location photo; the operator-configured cap of
	// 5 must survive a request that sets no sizing parameters
	hits := make([]hit.Hit, 8)
	for i := range hits {
		hits[i] = hit.Hit{
			Handle:   "photo-item-" + string(rune('a'+i)),
			Title:    "Photo Item " + string(rune('A'+i)),
			Location: &hit.Location{LocationPhotoID: "shared-photo"},
		}
	}
	search := &mockSearcher{hits: hits}
	svc := New(search, nil, curate.Options{Policy: curate.PolicyPhoto}, 4)

	q, err := query.NewWithLimits(52, 4, 0, 0, 0, query.Limits{
		DefaultCount:    30,
		DefaultPerGroup: 5,
	})
	if err != nil {
		t.Fatalf("query.NewWithLimits: %v", err)
	}

	got, err := svc.Nearby(context.Background(), q)
	if err != nil {
		t.Fatalf("Nearby: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected operator cap of 5 to apply, got %d hits", len(got))
	}
	if search.limit != 30*4 {
		t.Errorf("expected overfetch pool from operator target 30, got %d", search.limit)
	}
}
