package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/datamoor/csvrelay/internal/core/domain"
	"github.com/datamoor/csvrelay/internal/core/ports/driven"
	"github.com/datamoor/csvrelay/internal/logger"
)

// DefaultRescanInterval matches the reference agent's 2-second poll.
const DefaultRescanInterval = 2 * time.Second

// Ensure Monitor implements the port.
var _ driven.ChangeMonitor = (*Monitor)(nil)

// Monitor watches a directory tree with fsnotify and emits a candidate
// for every data modification to a .csv file. fsnotify watches are per
// directory and not recursive, so the monitor registers every
// subdirectory up front, adds directories as they appear, and rescans
// the tree at a fixed interval to catch directories whose creation
// events were coalesced or lost.
type Monitor struct {
	root   string
	rescan time.Duration

	fsw *fsnotify.Watcher
}

// New creates a monitor for the given root directory. A non-positive
// rescan interval falls back to DefaultRescanInterval.
func New(root string, rescan time.Duration) *Monitor {
	if rescan <= 0 {
		rescan = DefaultRescanInterval
	}
	return &Monitor{
		root:   root,
		rescan: rescan,
	}
}

// Watch starts observing the tree. It fails only when the watch cannot
// be established at all; every later error is reported on the error
// channel and the monitor keeps running. Both channels close when ctx
// is cancelled.
func (m *Monitor) Watch(ctx context.Context) (<-chan domain.CandidateFile, <-chan error, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}
	m.fsw = fsw

	if err := m.addTree(m.root); err != nil {
		fsw.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", m.root, err)
	}

	events := make(chan domain.CandidateFile)
	errs := make(chan error)
	go m.loop(ctx, events, errs)

	return events, errs, nil
}

// Close releases the underlying watcher.
func (m *Monitor) Close() error {
	if m.fsw != nil {
		return m.fsw.Close()
	}
	return nil
}

// loop multiplexes native events, watch errors and the rescan tick.
func (m *Monitor) loop(ctx context.Context, events chan<- domain.CandidateFile, errs chan<- error) {
	defer close(events)
	defer close(errs)

	ticker := time.NewTicker(m.rescan)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-m.fsw.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				m.maybeWatchDir(ev.Name)
			}
			if cand := m.handleEvent(ev); cand != nil {
				select {
				case events <- *cand:
				case <-ctx.Done():
					return
				}
			}
		case err, ok := <-m.fsw.Errors:
			if !ok {
				return
			}
			select {
			case errs <- err:
			case <-ctx.Done():
				return
			}
		case <-ticker.C:
			if err := m.addTree(m.root); err != nil {
				select {
				case errs <- err:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// handleEvent filters one native event down to a candidate, or nil.
// Only data modifications to existing .csv files pass; creation without
// content, deletion, renames, metadata-only changes and directory
// events are dropped. The modification filter approximates "the writer
// has flushed new bytes"; a file still being written is tolerated
// downstream by the router's header-read failure handling.
func (m *Monitor) handleEvent(ev fsnotify.Event) *domain.CandidateFile {
	if !ev.Op.Has(fsnotify.Write) {
		return nil
	}
	if !isCSV(ev.Name) {
		logger.Debug("Ignoring non-CSV modification: %s", ev.Name)
		return nil
	}

	info, err := os.Stat(ev.Name)
	if err != nil || info.IsDir() {
		return nil
	}

	return &domain.CandidateFile{
		Path:       ev.Name,
		DetectedAt: time.Now(),
	}
}

// maybeWatchDir registers a newly created directory and its subtree.
func (m *Monitor) maybeWatchDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := m.addTree(path); err != nil {
		log.Printf("monitor: failed to watch new directory %s: %v", path, err)
	}
}

// addTree adds watches for root and every directory below it.
// Re-adding an already watched directory is a no-op.
func (m *Monitor) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return m.fsw.Add(path)
	})
}

// isCSV reports whether the path's extension is exactly "csv".
// The check is deliberately case-sensitive.
func isCSV(path string) bool {
	return strings.TrimPrefix(filepath.Ext(path), ".") == "csv"
}
