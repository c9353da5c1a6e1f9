package storage

import "errors"

var errNoOpener = errors.New("store opener is not configured")

// ErrUnknownTable is returned by backends asked to write outside the tables
// they know about.
var ErrUnknownTable = errors.New("unknown table")
