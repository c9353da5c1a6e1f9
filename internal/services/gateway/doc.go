// Package gateway turns CRM actions into single-row inserts against the
// remote store.
//
// Transports (HTTP handlers, MCP tools) decode payloads through the domain
// package and call Service; Service owns the one insert each action makes
// and classifies its failures.
package gateway
