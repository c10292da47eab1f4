package chi

import (
	"context"

	"go.uber.org/zap"

	"github.com/artloci/nearby/internal/domain/hit"
	"github.com/artloci/nearby/internal/domain/query"
	"github.com/artloci/nearby/internal/render"
	healthuc "github.com/artloci/nearby/internal/usecase/health"
)

type mockNearby struct {
	hits []hit.Hit
	err  error
	last query.Query
}

func (m *mockNearby) Nearby(_ context.Context, q query.Query) ([]hit.Hit, error) {
	m.last = q
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func newTestServer(nearby *mockNearby, health *mockHealth) *Server {
	if health == nil {
		health = &mockHealth{report: healthuc.Report{
			Status: healthuc.Healthy,
			Checks: map[string]healthuc.CheckResult{"database": healthuc.CheckOK},
		}}
	}
	renderer, err := render.New()
	if err != nil {
		panic(err)
	}
	return NewServer(nearby, health, renderer, zap.NewNop())
}
