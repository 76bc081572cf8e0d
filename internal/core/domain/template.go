package domain

import "strings"

// TemplateMap maps an exact header line to the table it belongs to.
// It is built once at startup and read-only afterwards, so it is safe
// for concurrent lookups. When the same header is registered twice the
// last registration wins.
type TemplateMap map[string]string

// Lookup returns the table name registered for the given header line.
func (m TemplateMap) Lookup(header string) (string, bool) {
	table, ok := m[header]
	return table, ok
}

// NormaliseHeader prepares a raw first line for template lookup.
// The trailing line ending is trimmed and a single trailing comma is
// stripped; templates are stored without a trailing delimiter but some
// producers emit one.
func NormaliseHeader(line string) string {
	line = strings.TrimRight(line, "\r\n")
	return strings.TrimSuffix(line, ",")
}
