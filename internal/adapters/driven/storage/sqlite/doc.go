// Package sqlite persists the agent's transfer history in a SQLite
// database. The audit trail proper lives in the per-directory
// upload.log files; this store exists so the history command can show
// recent outcomes across all watched directories in one place.
package sqlite
