package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/draft-league/internal/audit"
	"github.com/mauv0809/draft-league/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLedger(t *testing.T) audit.Ledger {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)

	return audit.New(db)
}

func TestRecord_FillsDefaults(t *testing.T) {
	ledger := setupTestLedger(t)
	ctx := context.Background()

	require.NoError(t, ledger.Record(ctx, audit.Entry{
		Operation: audit.OpCreatePlayer,
		Table:     "Draft Standings",
		RecordID:  "recPlayer",
		Success:   true,
	}))

	entries, err := ledger.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].CreatedAt.IsZero())
	assert.Equal(t, audit.OpCreatePlayer, entries[0].Operation)
	assert.Equal(t, "recPlayer", entries[0].RecordID)
	assert.True(t, entries[0].Success)
}

func TestListOrphanedAdjustments(t *testing.T) {
	ledger := setupTestLedger(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []audit.Entry{
		{Operation: audit.OpCreateAdjustment, Table: "Adjustments", RecordID: "recAdj1", Success: true, CreatedAt: base},
		{Operation: audit.OpLinkAdjustment, Table: "Draft Standings", RecordID: "recP1", RelatedRecordID: "recAdj1", Success: false, Error: "INVALID_PERMISSIONS", CreatedAt: base.Add(time.Second)},
		{Operation: audit.OpLinkAdjustment, Table: "Draft Standings", RecordID: "recP2", RelatedRecordID: "recAdj2", Success: true, CreatedAt: base.Add(2 * time.Second)},
		{Operation: audit.OpLinkAdjustment, Table: "Draft Standings", RecordID: "recP3", RelatedRecordID: "recAdj3", Success: false, Error: "timeout", CreatedAt: base.Add(3 * time.Second)},
		{Operation: audit.OpUpdateRole, Table: "Draft Standings", RecordID: "recP1", Success: false, CreatedAt: base.Add(4 * time.Second)},
	}
	for _, e := range entries {
		require.NoError(t, ledger.Record(ctx, e))
	}

	orphans, err := ledger.ListOrphanedAdjustments(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 2)
	assert.Equal(t, "recAdj3", orphans[0].RelatedRecordID)
	assert.Equal(t, "recAdj1", orphans[1].RelatedRecordID)
	assert.Equal(t, "INVALID_PERMISSIONS", orphans[1].Error)
	assert.Equal(t, base.Add(time.Second), orphans[1].CreatedAt)
}

func TestListRecent_Limit(t *testing.T) {
	ledger := setupTestLedger(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, ledger.Record(ctx, audit.Entry{
			Operation: audit.OpCreateSetLog,
			Table:     "Draft Log",
			Success:   true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	entries, err := ledger.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, base.Add(4*time.Minute), entries[0].CreatedAt)
}
