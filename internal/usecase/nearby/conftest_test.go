package nearby

import (
	"context"

	"github.com/artloci/nearby/internal/domain/hit"
)

type mockSearcher struct {
	hits  []hit.Hit
	err   error
	calls int
	limit int
}

func (m *mockSearcher) Nearby(_ context.Context, _, _, _ float64, limit int) ([]hit.Hit, error) {
	m.calls++
	m.limit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

type mockCache struct {
	stored map[string][]hit.Hit
	getErr error
	putErr error
	gets   int
	puts   int
}

func newMockCache() *mockCache {
	return &mockCache{stored: make(map[string][]hit.Hit)}
}

func (m *mockCache) Get(_ context.Context, key string) ([]hit.Hit, bool, error) {
	m.gets++
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	hits, ok := m.stored[key]
	return hits, ok, nil
}

func (m *mockCache) Put(_ context.Context, key string, hits []hit.Hit) error {
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.stored[key] = hits
	return nil
}
