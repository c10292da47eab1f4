package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockIndexChecker struct {
	exists bool
	err    error
}

func (m *mockIndexChecker) IndexExists(_ context.Context, _ string) (bool, error) {
	return m.exists, m.err
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockIndexChecker{exists: true}, "nearby:products:idx")
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks["database"] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks["database"])
	}
	if r.Checks["search_index"] != CheckOK {
		t.Errorf("expected search_index %q, got %q", CheckOK, r.Checks["search_index"])
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockDBPinger{err: errors.New("connection refused")}, &mockIndexChecker{exists: true}, "idx")
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["database"] != CheckError {
		t.Errorf("expected database %q, got %q", CheckError, r.Checks["database"])
	}
}

func TestCheck_MissingIndex(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockIndexChecker{exists: false}, "idx")
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["search_index"] != CheckError {
		t.Errorf("expected search_index %q, got %q", CheckError, r.Checks["search_index"])
	}
}

func TestCheck_IndexCheckError(t *testing.T) {
	svc := New(&mockDBPinger{}, &mockIndexChecker{err: errors.New("timeout")}, "idx")
	r := svc.Check(context.Background())

	if r.Checks["search_index"] != CheckError {
		t.Errorf("expected search_index %q, got %q", CheckError, r.Checks["search_index"])
	}
}

func TestCheck_NilIndexChecker(t *testing.T) {
	svc := New(&mockDBPinger{}, nil, "")
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks["search_index"]; ok {
		t.Error("expected no search_index check")
	}
}
