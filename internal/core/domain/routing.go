package domain

// RoutingResult is the outcome of matching a candidate file's header
// line against the template map. It carries no ownership of the file.
type RoutingResult struct {
	// Table is the matched table name. Empty when no template matched.
	Table string
}

// Matched reports whether a template matched the header line.
func (r RoutingResult) Matched() bool {
	return r.Table != ""
}

// RoutedTo returns a routing result for a resolved table.
func RoutedTo(table string) RoutingResult {
	return RoutingResult{Table: table}
}

// Unmatched is the routing result for a header with no registered template.
var Unmatched = RoutingResult{}
