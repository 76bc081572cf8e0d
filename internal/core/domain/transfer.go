package domain

import "time"

// TransferStatus classifies the terminal outcome of processing one
// detected file. Every candidate reaches exactly one terminal status
// per detected event; there is no retry transition.
type TransferStatus string

const (
	// StatusSucceeded means the file was copied to the remote host and
	// the local copy was scheduled for deletion.
	StatusSucceeded TransferStatus = "succeeded"

	// StatusFailed means the transfer mechanism reported an error.
	// The local file is retained for manual intervention.
	StatusFailed TransferStatus = "failed"

	// StatusUnmatched means no template matched the file's header line.
	StatusUnmatched TransferStatus = "unmatched"
)

// TransferRecord is one terminal outcome, persisted to the history
// store. Records are append-only; they are never mutated or deleted
// except by retention pruning.
type TransferRecord struct {
	// ID is a unique identifier for the record.
	ID string

	// File is the absolute path of the candidate file.
	File string

	// Table is the matched table name. Empty for unmatched files.
	Table string

	// Status is the terminal outcome.
	Status TransferStatus

	// Reason holds the failure reason. Empty on success.
	Reason string

	// StartedAt is when processing of the candidate began.
	StartedAt time.Time

	// EndedAt is when the terminal outcome was known.
	EndedAt time.Time
}
