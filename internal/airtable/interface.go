package airtable

import "context"

// Client is the subset of the Airtable REST API the league layer talks to.
// A returned error means the request never produced a store answer (transport
// failure, undecodable body). A store-reported failure comes back with
// Success set to false and Err populated.
type Client interface {
	ListRecords(ctx context.Context, table, offset string, params *ListParams) (ListResponse, error)
	CreateRecord(ctx context.Context, table string, fields Fields, typecast bool) (RecordResponse, error)
	UpdateRecord(ctx context.Context, table, recordID string, fields Fields, typecast bool) (RecordResponse, error)
}
