// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ChangeMonitor: Emits candidate-file notifications from directory activity
//   - Transferer: Copies a matched file to its remote destination
//   - AuditLogger: Appends outcome records to the per-directory upload log
//   - TemplateSource: Builds the header template map at startup
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - HistoryStore: Persists terminal outcomes for the history command
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
