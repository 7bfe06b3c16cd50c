package audit

import "context"

// Ledger is an append-only log of store write outcomes. It never holds
// record contents.
type Ledger interface {
	Record(ctx context.Context, entry Entry) error
	ListOrphanedAdjustments(ctx context.Context) ([]Entry, error)
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}
