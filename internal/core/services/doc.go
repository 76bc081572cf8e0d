// Package services implements the core pipeline: the Router resolves a
// candidate file to a table via header matching, the Dispatcher moves a
// matched file to its destination and manages local cleanup, and the
// Forwarder drives both from the change monitor's event stream.
package services
