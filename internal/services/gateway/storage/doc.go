// Package storage defines the insert contract the gateway needs from a store
// and the lazily opened, process-wide handle to it.
//
// Backends live in subpackages: postgrest talks to the hosted store's REST
// interface, postgres connects to the same database directly, and sqlite keeps
// rows in a local file for development.
package storage
