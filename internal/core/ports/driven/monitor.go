package driven

import (
	"context"

	"github.com/datamoor/csvrelay/internal/core/domain"
)

// ChangeMonitor watches a directory tree and emits a filtered stream of
// candidate-file notifications. Only data modifications to files whose
// extension marks them as CSV are forwarded; metadata-only changes,
// creations without content, deletions, and directory events are
// silently dropped.
type ChangeMonitor interface {
	// Watch starts observing the tree and returns the candidate and
	// watch-error channels. Watch-level errors are reported individually
	// on the error channel and do not terminate the monitor. Both
	// channels close when ctx is cancelled. The returned error is
	// non-nil only when the watch cannot be established at all.
	Watch(ctx context.Context) (<-chan domain.CandidateFile, <-chan error, error)

	// Close releases monitor resources.
	Close() error
}
