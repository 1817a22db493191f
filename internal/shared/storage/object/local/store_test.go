package local

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"beverage-backend/internal/shared/storage/object"
)

func TestPutThenOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	n, err := store.Put(ctx, "catalog/beverages.json", "application/json", strings.NewReader(`[{"id":1}]`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != 10 {
		t.Fatalf("expected 10 bytes written, got %d", n)
	}

	rc, err := store.Open(ctx, "catalog/beverages.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != `[{"id":1}]` {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestPutOverwrites(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	if _, err := store.Put(ctx, "a.json", "application/json", strings.NewReader("first")); err != nil {
		t.Fatalf("Put first: %v", err)
	}
	if _, err := store.Put(ctx, "a.json", "application/json", strings.NewReader("2")); err != nil {
		t.Fatalf("Put second: %v", err)
	}
	rc, err := store.Open(ctx, "a.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "2" {
		t.Fatalf("expected overwritten body, got %q", body)
	}
}

func TestOpenMissingReturnsNotFound(t *testing.T) {
	store := New(t.TempDir())
	_, err := store.Open(context.Background(), "missing.json")
	if !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRejectsEscapingKeys(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()
	for _, key := range []string{"../outside.json", "/etc/passwd", ""} {
		if _, err := store.Put(ctx, key, "", strings.NewReader("x")); err == nil {
			t.Fatalf("expected Put(%q) to fail", key)
		}
		if _, err := store.Open(ctx, key); err == nil {
			t.Fatalf("expected Open(%q) to fail", key)
		}
	}
}
