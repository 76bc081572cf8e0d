package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/datamoor/csvrelay/internal/core/domain"
	"github.com/datamoor/csvrelay/internal/core/ports/driven"
	"github.com/datamoor/csvrelay/internal/core/ports/driving"
	"github.com/datamoor/csvrelay/internal/logger"
)

// Ensure Forwarder implements the interface.
var _ driving.Forwarder = (*Forwarder)(nil)

// historyRetention is how many terminal outcomes the history store keeps.
const historyRetention = 1000

// Forwarder consumes candidate notifications from the change monitor
// and runs each through the route-dispatch-audit pipeline. Processing
// is sequential: one candidate reaches its terminal state before the
// next is consumed, so no two pipeline runs race on the same file.
type Forwarder struct {
	monitor    driven.ChangeMonitor
	router     *Router
	dispatcher *Dispatcher
	audit      driven.AuditLogger
	history    driven.HistoryStore

	// errLimit throttles watch-error logging; a flapping mount can
	// produce a sustained error stream.
	errLimit *rate.Limiter
}

// NewForwarder creates the pipeline. The history store is optional;
// nil disables outcome persistence.
func NewForwarder(
	monitor driven.ChangeMonitor,
	router *Router,
	dispatcher *Dispatcher,
	audit driven.AuditLogger,
	history driven.HistoryStore,
) *Forwarder {
	return &Forwarder{
		monitor:    monitor,
		router:     router,
		dispatcher: dispatcher,
		audit:      audit,
		history:    history,
		errLimit:   rate.NewLimiter(rate.Every(10*time.Second), 5),
	}
}

// Run starts the monitor and processes notifications until ctx is
// cancelled. Watch errors are logged and never terminate the loop.
func (f *Forwarder) Run(ctx context.Context) error {
	events, errs, err := f.monitor.Watch(ctx)
	if err != nil {
		return fmt.Errorf("starting change monitor: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			logger.Info("CSV file event detected: %s", ev.Path)
			f.ProcessFile(ctx, ev.Path)
		case werr, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if f.errLimit.Allow() {
				log.Printf("forwarder: watch error: %v", werr)
			}
		}
	}
}

// ProcessFile runs one candidate to its terminal state. Every failure
// is contained here; nothing propagates to crash the monitor loop.
func (f *Forwarder) ProcessFile(ctx context.Context, path string) {
	started := time.Now()

	// A second event for an already-dispatched file arrives after the
	// deletion; nothing to do and nothing to record.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Debug("Candidate %s vanished before processing", path)
		return
	}

	result, err := f.router.Route(path)
	switch {
	case err != nil:
		f.recordRoutingError(path, err)
		f.saveOutcome(ctx, domain.TransferRecord{
			File:      path,
			Status:    domain.StatusFailed,
			Reason:    err.Error(),
			StartedAt: started,
		})
	case !result.Matched():
		f.saveOutcome(ctx, domain.TransferRecord{
			File:      path,
			Status:    domain.StatusUnmatched,
			Reason:    "No matching table headers found.",
			StartedAt: started,
		})
	default:
		rec := domain.TransferRecord{
			File:      path,
			Table:     result.Table,
			StartedAt: started,
		}
		if err := f.dispatcher.Dispatch(ctx, path, result.Table); err != nil {
			rec.Status = domain.StatusFailed
			rec.Reason = err.Error()
		} else {
			rec.Status = domain.StatusSucceeded
		}
		f.saveOutcome(ctx, rec)
	}
}

// recordRoutingError writes the audit record for a header-read failure.
// The router owns the no-match record; its caller owns this one.
func (f *Forwarder) recordRoutingError(path string, err error) {
	log.Printf("forwarder: error matching column headers for %s: %v", path, err)
	msg := fmt.Sprintf("Upload failed! File: %s Reason: %s", filepath.Base(path), err)
	if aerr := f.audit.Record(filepath.Dir(path), msg); aerr != nil {
		log.Printf("forwarder: failed to write audit record: %v", aerr)
	}
}

// saveOutcome persists a terminal outcome and prunes old history.
// Best effort; the store is optional.
func (f *Forwarder) saveOutcome(ctx context.Context, rec domain.TransferRecord) {
	if f.history == nil {
		return
	}
	rec.EndedAt = time.Now()
	if err := f.history.RecordOutcome(ctx, &rec); err != nil {
		log.Printf("forwarder: failed to record outcome: %v", err)
		return
	}
	if err := f.history.Prune(ctx, historyRetention); err != nil {
		log.Printf("forwarder: failed to prune history: %v", err)
	}
}
