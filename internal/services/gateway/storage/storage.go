package storage

import (
	"context"
	"io"
	"sync"
)

// Row is one record keyed by column name.
type Row map[string]any

// Inserter writes one row into one table and returns the stored
// representation, which may be empty when the backend does not echo rows.
type Inserter interface {
	Insert(ctx context.Context, table string, row Row) ([]Row, error)
}

// Opener constructs an Inserter. It is called on first use, not at startup.
type Opener func(ctx context.Context) (Inserter, error)

// Handle opens its Inserter on first Get and reuses it afterwards.
//
// A failed open is not cached: the next Get tries again. With configuration
// fixed at process start, a misconfigured store fails the same way on every
// request until the process is restarted.
//
// Opens are serialized so a store is constructed at most once. Callers that
// arrive while an open is in flight wait for it, or give up when their
// context ends.
type Handle struct {
	open    Opener
	opening chan struct{}

	mu    sync.Mutex
	store Inserter
}

// NewHandle returns a handle that defers to open.
func NewHandle(open Opener) *Handle {
	return &Handle{open: open, opening: make(chan struct{}, 1)}
}

// NewStaticHandle wraps an already constructed store.
func NewStaticHandle(store Inserter) *Handle {
	return &Handle{store: store, opening: make(chan struct{}, 1)}
}

// Get returns the shared Inserter, opening it when needed.
func (h *Handle) Get(ctx context.Context) (Inserter, error) {
	if store := h.current(); store != nil {
		return store, nil
	}
	if h.open == nil || h.opening == nil {
		return nil, errNoOpener
	}

	select {
	case h.opening <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	defer func() { <-h.opening }()

	if store := h.current(); store != nil {
		return store, nil
	}
	store, err := h.open(ctx)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.store = store
	h.mu.Unlock()
	return store, nil
}

func (h *Handle) current() Inserter {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store
}

// Close releases the store if it was opened and holds resources.
func (h *Handle) Close() error {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	store := h.store
	h.store = nil
	h.mu.Unlock()

	if closer, ok := store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
