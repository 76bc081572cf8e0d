package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/datamoor/csvrelay/internal/core/ports/driven"
	"github.com/datamoor/csvrelay/internal/logger"
)

// Dispatcher moves a matched file to its destination and manages local
// cleanup. On success the local file is deleted; on any failure it is
// left in place for manual intervention. There is no retry transition:
// every dispatch reaches its terminal state in one pass.
type Dispatcher struct {
	transfer driven.Transferer
	audit    driven.AuditLogger
	timeout  time.Duration
}

// NewDispatcher creates a dispatcher. A timeout of zero leaves the
// transfer unbounded; otherwise a transfer exceeding it is treated as
// any other transfer failure.
func NewDispatcher(transfer driven.Transferer, audit driven.AuditLogger, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		transfer: transfer,
		audit:    audit,
		timeout:  timeout,
	}
}

// Dispatch transfers path into the destination directory for table and
// deletes the local copy on success. The audit record for either branch
// has already been written when Dispatch returns; the returned error is
// the raw transfer failure for the caller's own bookkeeping.
func (d *Dispatcher) Dispatch(ctx context.Context, path, table string) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	base := filepath.Base(path)
	dir := filepath.Dir(path)

	logger.Info("Transferring %s to %s", base, d.transfer.Destination(table))
	if err := d.transfer.Transfer(ctx, path, table); err != nil {
		log.Printf("dispatcher: transfer of %s failed: %v", base, err)
		d.record(dir, fmt.Sprintf("Upload failed! File: %s Reason: %s", base, err))
		return err
	}

	// Success is recorded before the deletion attempt: the transfer is
	// the log-worthy event, and a failed cleanup does not reverse it.
	d.record(dir, fmt.Sprintf("Upload succeeded! File: %s", base))
	d.deleteSource(path)
	return nil
}

// deleteSource removes the local file after a successful transfer.
// A deletion failure is logged but does not demote the outcome.
func (d *Dispatcher) deleteSource(path string) {
	logger.Info("Deleting source file: %s", path)
	if err := os.Remove(path); err != nil {
		log.Printf("dispatcher: failed to delete source file %s: %v", path, err)
	}
}

// record writes an audit record. Best effort.
func (d *Dispatcher) record(dir, msg string) {
	if err := d.audit.Record(dir, msg); err != nil {
		log.Printf("dispatcher: failed to write audit record: %v", err)
	}
}
