package resultcache

import (
	"context"
	"time"

	"github.com/artloci/nearby/internal/db"
)

type mockKV struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
	setErr error
	dels   int
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (m *mockKV) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrKeyNotFound}
	}
	return v, nil
}

func (m *mockKV) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockKV) Del(_ context.Context, key string) error {
	m.dels++
	delete(m.data, key)
	return nil
}
