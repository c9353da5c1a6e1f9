// Package domain defines the CRM action payloads accepted by the gateway and
// the mapping from each payload to the single store row it produces.
//
// Payloads are validated structurally against JSON Schemas before they are
// decoded; nothing here checks business rules such as cadence ranges or due
// dates.
package domain
