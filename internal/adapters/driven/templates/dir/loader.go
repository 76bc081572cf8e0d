// Package dir builds the template map from a directory of header
// template files. Each file is named <table>_template (an extension is
// allowed and ignored) and contains the exact header line to match.
package dir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/datamoor/csvrelay/internal/core/domain"
	"github.com/datamoor/csvrelay/internal/core/ports/driven"
	"github.com/datamoor/csvrelay/internal/logger"
)

// templateSuffix is the required suffix of a template file's stem.
const templateSuffix = "_template"

// Ensure Loader implements the port.
var _ driven.TemplateSource = (*Loader)(nil)

// Loader reads header templates from a directory.
type Loader struct {
	dir string
}

// NewLoader creates a loader for the given template directory.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// Load reads every template file and returns the finished map.
// An unreadable directory or file is an error and fatal at startup.
// A file whose name lacks the _template suffix is skipped with a
// warning. Entries are read in lexical order, so on duplicate headers
// the lexically last template wins.
func (l *Loader) Load(_ context.Context) (domain.TemplateMap, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}

	templates := make(domain.TemplateMap, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		table, ok := strings.CutSuffix(stem, templateSuffix)
		if !ok || table == "" {
			logger.Warn("Skipping non-template file in template directory: %s", name)
			continue
		}

		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", name, err)
		}

		header := strings.TrimSpace(string(data))
		if header == "" {
			logger.Warn("Skipping empty template file: %s", name)
			continue
		}

		templates[header] = table
		logger.Debug("Registered template %s -> %s", header, table)
	}

	logger.Info("Loaded %d table templates from %s", len(templates), l.dir)
	return templates, nil
}
