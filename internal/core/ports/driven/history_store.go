package driven

import (
	"context"

	"github.com/datamoor/csvrelay/internal/core/domain"
)

// HistoryStore persists terminal transfer outcomes for later inspection.
type HistoryStore interface {
	// RecordOutcome saves one terminal outcome. An empty record ID is
	// assigned by the store.
	RecordOutcome(ctx context.Context, record *domain.TransferRecord) error

	// ListRecent returns the most recent records, newest first.
	ListRecent(ctx context.Context, limit int) ([]domain.TransferRecord, error)

	// Prune removes old records beyond the retention limit.
	// Keeps the most recent 'keep' records.
	Prune(ctx context.Context, keep int) error
}
