package driven

import "context"

// Transferer copies a local file into the remote directory derived from
// a table name, creating the remote directory if it is missing. The
// copy preserves file attributes. A nil return means the remote side
// holds a complete copy; any error text is suitable for the audit log
// verbatim.
type Transferer interface {
	// Transfer copies localPath into the destination directory for table.
	Transfer(ctx context.Context, localPath, table string) error

	// Destination describes the remote target for a table, for logging.
	Destination(table string) string
}
