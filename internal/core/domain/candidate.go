package domain

import (
	"path/filepath"
	"time"
)

// CandidateFile is a change notification the monitor deemed worth routing:
// a data modification to a file whose extension marks it as CSV.
// Candidates are ephemeral; one is constructed per filesystem event and
// discarded once the event has been processed.
type CandidateFile struct {
	// Path is the absolute path of the modified file.
	Path string

	// DetectedAt is when the monitor observed the modification.
	DetectedAt time.Time
}

// Base returns the file name component of the candidate's path.
func (c CandidateFile) Base() string {
	return filepath.Base(c.Path)
}

// Dir returns the parent directory of the candidate's path.
func (c CandidateFile) Dir() string {
	return filepath.Dir(c.Path)
}
