// Package connectors holds the change-source implementations behind the
// ChangeMonitor port. The filesystem connector is the only source today;
// a connector for a remote drop location would live alongside it.
package connectors
