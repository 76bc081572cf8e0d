// Package domain contains the core types of the csvrelay pipeline:
// candidate files emitted by the change monitor, routing and transfer
// outcomes, the header template map, and the errors shared across the
// core. It has no dependencies outside the standard library.
package domain
