package services

import (
	"context"
	"sync"

	"github.com/datamoor/csvrelay/internal/core/domain"
)

// auditEntry is one captured audit record.
type auditEntry struct {
	dir     string
	message string
}

// fakeAudit captures audit records in memory.
type fakeAudit struct {
	mu      sync.Mutex
	err     error
	entries []auditEntry
}

func (f *fakeAudit) Record(dir, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, auditEntry{dir: dir, message: message})
	return nil
}

func (f *fakeAudit) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.entries))
	for i, e := range f.entries {
		out[i] = e.message
	}
	return out
}

// transferCall is one captured transfer invocation.
type transferCall struct {
	path  string
	table string
}

// fakeTransferer succeeds or fails on demand.
type fakeTransferer struct {
	err   error
	block bool // wait for ctx cancellation instead of returning

	mu    sync.Mutex
	calls []transferCall
}

func (f *fakeTransferer) Transfer(ctx context.Context, localPath, table string) error {
	f.mu.Lock()
	f.calls = append(f.calls, transferCall{path: localPath, table: table})
	f.mu.Unlock()

	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func (f *fakeTransferer) Destination(table string) string {
	return "ingest@warehouse.internal:/srv/loads/" + table
}

// fakeHistory captures terminal outcomes.
type fakeHistory struct {
	mu      sync.Mutex
	err     error
	records []domain.TransferRecord
	pruned  []int
}

func (f *fakeHistory) RecordOutcome(_ context.Context, record *domain.TransferRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistory) ListRecent(_ context.Context, limit int) ([]domain.TransferRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.records) {
		limit = len(f.records)
	}
	return f.records[:limit], nil
}

func (f *fakeHistory) Prune(_ context.Context, keep int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pruned = append(f.pruned, keep)
	return nil
}

// fakeMonitor replays a scripted event stream.
type fakeMonitor struct {
	events   chan domain.CandidateFile
	errs     chan error
	watchErr error
	closed   bool
}

func newFakeMonitor() *fakeMonitor {
	return &fakeMonitor{
		events: make(chan domain.CandidateFile, 16),
		errs:   make(chan error, 16),
	}
}

func (f *fakeMonitor) Watch(_ context.Context) (<-chan domain.CandidateFile, <-chan error, error) {
	if f.watchErr != nil {
		return nil, nil, f.watchErr
	}
	return f.events, f.errs, nil
}

func (f *fakeMonitor) Close() error {
	f.closed = true
	return nil
}
