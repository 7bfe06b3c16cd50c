package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// store is a Ledger backed by the write_ledger table.
type store struct {
	db *sql.DB
}

// New creates a new Ledger.
func New(db *sql.DB) Ledger {
	return &store{db: db}
}

// Record appends entry, filling in ID and CreatedAt when they are unset.
func (s *store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO write_ledger (id, operation, table_name, record_id, related_record_id, success, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, string(entry.Operation), entry.Table, entry.RecordID, entry.RelatedRecordID,
		entry.Success, entry.Error, entry.CreatedAt.UnixMilli(),
	)
	if err != nil {
		log.Error("Failed to record write outcome", "error", err, "operation", entry.Operation, "record", entry.RecordID)
		return fmt.Errorf("failed to insert ledger entry: %w", err)
	}
	log.Debug("Recorded write outcome", "operation", entry.Operation, "record", entry.RecordID, "success", entry.Success)
	return nil
}

// ListOrphanedAdjustments returns failed adjustment links, newest first.
// Each one is an Adjustments record the player does not point back to.
func (s *store) ListOrphanedAdjustments(ctx context.Context) ([]Entry, error) {
	return s.query(ctx, `
		SELECT id, operation, table_name, record_id, related_record_id, success, error, created_at
		FROM write_ledger
		WHERE operation = ? AND success = 0
		ORDER BY created_at DESC`, string(OpLinkAdjustment))
}

// ListRecent returns up to limit entries, newest first.
func (s *store) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.query(ctx, `
		SELECT id, operation, table_name, record_id, related_record_id, success, error, created_at
		FROM write_ledger
		ORDER BY created_at DESC
		LIMIT ?`, limit)
}

func (s *store) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var (
			e         Entry
			operation string
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &operation, &e.Table, &e.RecordID, &e.RelatedRecordID, &e.Success, &e.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		e.Operation = Operation(operation)
		e.CreatedAt = time.UnixMilli(createdAt).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
