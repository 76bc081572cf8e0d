// Package audit appends upload outcomes to a per-directory log file.
// The log lives next to the files it describes so an operator looking
// at a drop directory sees its history in place.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/datamoor/csvrelay/internal/core/ports/driven"
	"github.com/datamoor/csvrelay/internal/logger"
)

// FileName is the audit log file created in each source directory.
const FileName = "upload.log"

// timeLayout is the timestamp format of an audit line.
const timeLayout = "2006-01-02 15:04:05"

// Ensure Logger implements the port.
var _ driven.AuditLogger = (*Logger)(nil)

// Logger writes audit records as plain UTF-8 text, one per line:
//
//	YYYY-MM-DD HH:MM:SS - <message>
//
// Appends to the same log file are serialised by a per-path mutex so
// parallel pipelines cannot interleave lines. Records are never
// rotated, truncated or rewritten.
type Logger struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex

	// now is swappable for tests.
	now func() time.Time
}

// New creates an audit logger.
func New() *Logger {
	return &Logger{
		locks: make(map[string]*sync.Mutex),
		now:   time.Now,
	}
}

// Record appends one timestamped message to the upload log in dir,
// creating the log if it does not exist.
func (l *Logger) Record(dir, message string) error {
	path := filepath.Join(dir, FileName)

	lock := l.lockFor(path)
	lock.Lock()
	defer lock.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening upload log %s: %w", path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s - %s\n", l.now().Local().Format(timeLayout), message); err != nil {
		return fmt.Errorf("writing upload log %s: %w", path, err)
	}

	logger.Debug("Upload log updated: %s", path)
	return nil
}

// lockFor returns the append lock for a log path, creating it on first use.
func (l *Logger) lockFor(path string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[path]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[path] = lock
	}
	return lock
}
