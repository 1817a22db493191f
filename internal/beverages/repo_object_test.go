package beverages

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"beverage-backend/internal/shared/storage/object"
	"beverage-backend/internal/shared/storage/object/local"
)

func TestObjectRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := local.New(t.TempDir())

	if _, err := WriteSnapshot(ctx, store, "catalog/beverages.json", DefaultCatalog(), time.Now()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	repo := NewObjectRepo(store, "catalog/beverages.json")
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 20 {
		t.Fatalf("expected 20 beverages, got %d", len(list))
	}
	b, err := repo.GetByID(ctx, 5)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if b.Name != "Grande Americano" || b.Price.StringFixed(2) != "4.25" {
		t.Fatalf("unexpected beverage %+v", b)
	}
	if _, err := repo.GetByID(ctx, 500); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestObjectRepoCachesFirstLoad(t *testing.T) {
	ctx := context.Background()
	store := local.New(t.TempDir())
	if _, err := WriteSnapshot(ctx, store, "c.json", DefaultCatalog()[:2], time.Now()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	repo := NewObjectRepo(store, "c.json")
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}

	if _, err := WriteSnapshot(ctx, store, "c.json", DefaultCatalog(), time.Now()); err != nil {
		t.Fatalf("WriteSnapshot second: %v", err)
	}
	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List cached: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected cached catalog of 2, got %d", len(list))
	}
}

func TestObjectRepoMissingSnapshot(t *testing.T) {
	repo := NewObjectRepo(local.New(t.TempDir()), "missing.json")
	if _, err := repo.List(context.Background()); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected object.ErrNotFound, got %v", err)
	}
}

func TestObjectRepoRejectsInvalidSnapshot(t *testing.T) {
	ctx := context.Background()
	store := local.New(t.TempDir())

	cases := map[string]string{
		"version":   `{"version":2,"beverages":[]}`,
		"duplicate": `{"version":1,"beverages":[{"id":1,"name":"a","price":"1.00","suitableMoods":["Happy"]},{"id":1,"name":"b","price":"2.00","suitableMoods":["Happy"]}]}`,
		"price":     `{"version":1,"beverages":[{"id":1,"name":"a","price":"0","suitableMoods":["Happy"]}]}`,
		"mood":      `{"version":1,"beverages":[{"id":1,"name":"a","price":"1.00","suitableMoods":["Sleepy"]}]}`,
		"no-moods":  `{"version":1,"beverages":[{"id":1,"name":"a","price":"1.00","suitableMoods":[]}]}`,
		"nil-moods": `{"version":1,"beverages":[{"id":1,"name":"a","price":"1.00"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Put(ctx, name+".json", "application/json", strings.NewReader(body)); err != nil {
				t.Fatalf("Put: %v", err)
			}
			if _, err := NewObjectRepo(store, name+".json").List(ctx); err == nil {
				t.Fatalf("expected snapshot %s to be rejected", name)
			}
		})
	}
}
