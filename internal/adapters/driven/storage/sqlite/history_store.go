package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/datamoor/csvrelay/internal/core/domain"
	"github.com/datamoor/csvrelay/internal/core/ports/driven"
)

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// RecordOutcome saves one terminal outcome. An empty record ID is
// assigned here.
func (h *historyStore) RecordOutcome(ctx context.Context, record *domain.TransferRecord) error {
	if record == nil {
		return domain.ErrInvalidInput
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	_, err := h.store.db.ExecContext(ctx, `
		INSERT INTO transfer_records (id, file, table_name, status, reason, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.File,
		nullString(record.Table),
		string(record.Status),
		nullString(record.Reason),
		record.StartedAt.Format(time.RFC3339Nano),
		record.EndedAt.Format(time.RFC3339Nano))

	if err != nil {
		return fmt.Errorf("recording transfer outcome: %w", err)
	}
	return nil
}

// ListRecent returns the most recent records, newest first.
func (h *historyStore) ListRecent(ctx context.Context, limit int) ([]domain.TransferRecord, error) {
	rows, err := h.store.db.QueryContext(ctx, `
		SELECT id, file, table_name, status, reason, started_at, ended_at
		FROM transfer_records
		ORDER BY ended_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying transfer history: %w", err)
	}
	defer rows.Close()

	var records []domain.TransferRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanTransferRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transfer history: %w", err)
	}

	return records, nil
}

// Prune removes old records beyond the retention limit.
// Keeps the most recent 'keep' records.
func (h *historyStore) Prune(ctx context.Context, keep int) error {
	_, err := h.store.db.ExecContext(ctx, `
		DELETE FROM transfer_records
		WHERE id NOT IN (
			SELECT id FROM transfer_records ORDER BY ended_at DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning transfer history: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTransferRecord scans a transfer record from a row.
func scanTransferRecord(row rowScanner) (*domain.TransferRecord, error) {
	var record domain.TransferRecord
	var table, reason *string
	var status, startedAt, endedAt string

	if err := row.Scan(&record.ID, &record.File, &table, &status, &reason, &startedAt, &endedAt); err != nil {
		return nil, fmt.Errorf("scanning transfer record: %w", err)
	}

	if table != nil {
		record.Table = *table
	}
	if reason != nil {
		record.Reason = *reason
	}
	record.Status = domain.TransferStatus(status)
	if t, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		record.StartedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, endedAt); err == nil {
		record.EndedAt = t
	}

	return &record, nil
}

// nullString returns nil for empty strings, otherwise the string.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
