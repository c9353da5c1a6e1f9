package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/agenthub/internal/services/gateway/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "gateway.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.db")
	for i := 0; i < 2; i++ {
		store, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
}

func TestInsertMessageFillsDefaults(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	store.clock = func() time.Time { return fixed }
	store.newID = func() string { return "msg-1" }

	rows, err := store.Insert(context.Background(), "messages", storage.Row{
		"client_id": "c1",
		"direction": "out",
		"channel":   "email",
		"body":      "Follow-up",
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(rows) != 1 || rows[0]["id"] != "msg-1" || rows[0]["created_at"] != "2026-10-17T12:00:00Z" {
		t.Fatalf("rows = %#v", rows)
	}

	var id, clientID, direction, channel, body string
	err = store.DB().QueryRow(`SELECT id, client_id, direction, channel, body FROM messages`).
		Scan(&id, &clientID, &direction, &channel, &body)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if id != "msg-1" || clientID != "c1" || direction != "out" || channel != "email" || body != "Follow-up" {
		t.Fatalf("stored = %s %s %s %s %s", id, clientID, direction, channel, body)
	}
}

func TestInsertEventStoresMetaAsJSON(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Insert(context.Background(), "events", storage.Row{
		"client_id": nil,
		"type":      "task",
		"meta":      map[string]any{"client_id": nil, "title": "Call", "due_at": nil, "status": "open"},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	var clientID *string
	var kind, rawMeta string
	if err := store.DB().QueryRow(`SELECT client_id, type, meta FROM events`).Scan(&clientID, &kind, &rawMeta); err != nil {
		t.Fatalf("read back: %v", err)
	}
	if clientID != nil {
		t.Fatalf("client_id = %q, want NULL", *clientID)
	}
	var meta map[string]any
	if err := json.Unmarshal([]byte(rawMeta), &meta); err != nil {
		t.Fatalf("decode meta %q: %v", rawMeta, err)
	}
	if kind != "task" || meta["status"] != "open" || meta["title"] != "Call" {
		t.Fatalf("event = %s %#v", kind, meta)
	}
	if _, ok := meta["due_at"]; !ok {
		t.Fatal("expected due_at key to be kept as null")
	}
}

func TestInsertRejectsUnknownTableAndColumn(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Insert(context.Background(), "tasks", storage.Row{"title": "x"})
	if !errors.Is(err, storage.ErrUnknownTable) {
		t.Fatalf("err = %v, want ErrUnknownTable", err)
	}

	_, err = store.Insert(context.Background(), "documents", storage.Row{"client_id": "c1", "owner": "x"})
	if err == nil {
		t.Fatal("expected unknown column error")
	}

	var count int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("documents = %d, want 0", count)
	}
}

func TestInsertConstraintFailure(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Insert(context.Background(), "documents", storage.Row{"client_id": "c1"})
	if err == nil {
		t.Fatal("expected not-null constraint error")
	}
}
