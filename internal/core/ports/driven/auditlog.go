package driven

// AuditLogger appends human-readable, timestamped outcome records to a
// per-directory log file. Logging is best-effort: a failure to write is
// returned to the caller for diagnostics but must never be escalated to
// a process-level failure.
type AuditLogger interface {
	// Record appends one message to the upload log in dir.
	Record(dir, message string) error
}
