package driving

import "context"

// Forwarder runs the detection-classification-dispatch pipeline.
type Forwarder interface {
	// Run consumes candidate notifications until ctx is cancelled.
	// Each candidate is processed to completion (route, dispatch, audit)
	// before the next is consumed. Per-file errors are contained and
	// never returned; only a failure to establish the watch is.
	Run(ctx context.Context) error

	// ProcessFile runs one candidate through the pipeline. Exposed for
	// one-shot processing; Run calls it for every notification.
	ProcessFile(ctx context.Context, path string)
}
