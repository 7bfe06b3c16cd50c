package audit

import (
	"context"
	"sync"
)

// MockLedger is a mock implementation of the Ledger interface for testing.
// It is safe for concurrent use.
type MockLedger struct {
	mu sync.Mutex

	RecordFunc                  func(ctx context.Context, entry Entry) error
	ListOrphanedAdjustmentsFunc func(ctx context.Context) ([]Entry, error)
	ListRecentFunc              func(ctx context.Context, limit int) ([]Entry, error)

	RecordCalls []Entry
}

// NewMock creates a new mock ledger.
func NewMock() *MockLedger {
	return &MockLedger{}
}

func (m *MockLedger) Record(ctx context.Context, entry Entry) error {
	m.mu.Lock()
	m.RecordCalls = append(m.RecordCalls, entry)
	fn := m.RecordFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, entry)
	}
	return nil
}

func (m *MockLedger) ListOrphanedAdjustments(ctx context.Context) ([]Entry, error) {
	if m.ListOrphanedAdjustmentsFunc != nil {
		return m.ListOrphanedAdjustmentsFunc(ctx)
	}
	return nil, nil
}

func (m *MockLedger) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if m.ListRecentFunc != nil {
		return m.ListRecentFunc(ctx, limit)
	}
	return nil, nil
}

// Entries returns a copy of every recorded entry.
func (m *MockLedger) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.RecordCalls...)
}

// Reset clears all call records.
func (m *MockLedger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls = nil
}
