// Package timeouts defines the HTTP server timeouts shared by service
// processes. Outbound store calls deliberately have none here; they inherit the
// request context instead.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
