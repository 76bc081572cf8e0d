package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/datamoor/csvrelay/internal/core/domain"
	"github.com/datamoor/csvrelay/internal/core/ports/driven"
	"github.com/datamoor/csvrelay/internal/logger"
)

// Router resolves a candidate file to a table name using header-based
// exact matching. Headers must match a template byte-for-byte after
// normalisation; there is no fuzzy or partial matching, so a
// differently formatted header is a routing miss, not an error.
type Router struct {
	templates domain.TemplateMap
	audit     driven.AuditLogger
}

// NewRouter creates a router over an immutable template map.
func NewRouter(templates domain.TemplateMap, audit driven.AuditLogger) *Router {
	return &Router{
		templates: templates,
		audit:     audit,
	}
}

// Route reads the first line of the file at path and looks it up in the
// template map. A path that no longer exists yields Unmatched with no
// error and no audit record: the file was removed or renamed before
// processing and there is nothing to do. A genuine miss writes an audit
// record to the file's parent directory. I/O errors are returned to the
// caller, which owns that failure's audit record.
func (r *Router) Route(path string) (domain.RoutingResult, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Unmatched, nil
		}
		return domain.Unmatched, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return domain.Unmatched, fmt.Errorf("reading headers of %s: %w", filepath.Base(path), err)
	}

	header := domain.NormaliseHeader(line)
	logger.Debug("CSV headers: %q", header)

	if table, ok := r.templates.Lookup(header); ok {
		logger.Info("Matching table headers found, table name: %s", table)
		return domain.RoutedTo(table), nil
	}

	logger.Info("No matching table headers found, ignoring %s", filepath.Base(path))
	r.recordMiss(path)
	return domain.Unmatched, nil
}

// recordMiss writes the no-match audit record. Best effort.
func (r *Router) recordMiss(path string) {
	msg := fmt.Sprintf("Upload failed! File: %s Reason: No matching table headers found.", filepath.Base(path))
	if err := r.audit.Record(filepath.Dir(path), msg); err != nil {
		log.Printf("router: failed to write audit record: %v", err)
	}
}
