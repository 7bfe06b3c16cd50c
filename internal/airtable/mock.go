package airtable

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	ListRecordsFunc  func(ctx context.Context, table, offset string, params *ListParams) (ListResponse, error)
	CreateRecordFunc func(ctx context.Context, table string, fields Fields, typecast bool) (RecordResponse, error)
	UpdateRecordFunc func(ctx context.Context, table, recordID string, fields Fields, typecast bool) (RecordResponse, error)

	ListRecordsCalls  []ListRecordsCall
	CreateRecordCalls []CreateRecordCall
	UpdateRecordCalls []UpdateRecordCall
}

type ListRecordsCall struct {
	Table  string
	Offset string
	Params *ListParams
}

type CreateRecordCall struct {
	Table    string
	Fields   Fields
	Typecast bool
}

type UpdateRecordCall struct {
	Table    string
	RecordID string
	Fields   Fields
	Typecast bool
}

// NewMockClient creates a new mock client. Unconfigured calls succeed with
// an empty result.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ListRecords(ctx context.Context, table, offset string, params *ListParams) (ListResponse, error) {
	m.mu.Lock()
	m.ListRecordsCalls = append(m.ListRecordsCalls, ListRecordsCall{Table: table, Offset: offset, Params: params})
	fn := m.ListRecordsFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, table, offset, params)
	}
	return ListResponse{Success: true}, nil
}

func (m *MockClient) CreateRecord(ctx context.Context, table string, fields Fields, typecast bool) (RecordResponse, error) {
	m.mu.Lock()
	m.CreateRecordCalls = append(m.CreateRecordCalls, CreateRecordCall{Table: table, Fields: fields, Typecast: typecast})
	fn := m.CreateRecordFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, table, fields, typecast)
	}
	return RecordResponse{Success: true, Record: Record{ID: "recMock", Fields: fields}}, nil
}

func (m *MockClient) UpdateRecord(ctx context.Context, table, recordID string, fields Fields, typecast bool) (RecordResponse, error) {
	m.mu.Lock()
	m.UpdateRecordCalls = append(m.UpdateRecordCalls, UpdateRecordCall{Table: table, RecordID: recordID, Fields: fields, Typecast: typecast})
	fn := m.UpdateRecordFunc
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, table, recordID, fields, typecast)
	}
	return RecordResponse{Success: true, Record: Record{ID: recordID, Fields: fields}}, nil
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListRecordsCalls = nil
	m.CreateRecordCalls = nil
	m.UpdateRecordCalls = nil
}
