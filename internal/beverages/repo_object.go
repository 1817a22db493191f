package beverages

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"beverage-backend/internal/shared/storage/object"
)

// Snapshot is the JSON document stored at CATALOG_OBJECT_KEY.
type Snapshot struct {
	Version     int        `json:"version"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Beverages   []Beverage `json:"beverages"`
}

const snapshotVersion = 1

// ObjectRepo serves the catalog from a JSON snapshot in the object store.
// The first successful load is cached for the life of the process.
type ObjectRepo struct {
	Store object.ObjectStore
	Key   string

	mu     sync.Mutex
	loaded []Beverage
}

func NewObjectRepo(store object.ObjectStore, key string) *ObjectRepo {
	return &ObjectRepo{Store: store, Key: key}
}

func (r *ObjectRepo) List(ctx context.Context) ([]Beverage, error) {
	list, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return cloneAll(list), nil
}

func (r *ObjectRepo) GetByID(ctx context.Context, id int64) (Beverage, error) {
	list, err := r.load(ctx)
	if err != nil {
		return Beverage{}, err
	}
	return findByID(list, id)
}

func (r *ObjectRepo) load(ctx context.Context) ([]Beverage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loaded != nil {
		return r.loaded, nil
	}
	if r.Store == nil {
		return nil, fmt.Errorf("catalog object store not configured")
	}

	rc, err := r.Store.Open(ctx, r.Key)
	if err != nil {
		return nil, fmt.Errorf("open catalog snapshot %s: %w", r.Key, err)
	}
	defer rc.Close()

	var snap Snapshot
	if err := json.NewDecoder(rc).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot %s: %w", r.Key, err)
	}
	list, err := validateSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("catalog snapshot %s: %w", r.Key, err)
	}
	r.loaded = list
	return list, nil
}

// WriteSnapshot stores catalog as a versioned JSON snapshot at key.
func WriteSnapshot(ctx context.Context, store object.ObjectStore, key string, catalog []Beverage, now time.Time) (int64, error) {
	snap := Snapshot{Version: snapshotVersion, GeneratedAt: now.UTC(), Beverages: catalog}
	if _, err := validateSnapshot(snap); err != nil {
		return 0, err
	}
	payload, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal catalog snapshot: %w", err)
	}
	return store.Put(ctx, key, "application/json", bytes.NewReader(payload))
}

func validateSnapshot(snap Snapshot) ([]Beverage, error) {
	if snap.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	seen := make(map[int64]struct{}, len(snap.Beverages))
	out := make([]Beverage, 0, len(snap.Beverages))
	for _, b := range snap.Beverages {
		if b.ID <= 0 {
			return nil, fmt.Errorf("beverage %q has invalid id %d", b.Name, b.ID)
		}
		if _, dup := seen[b.ID]; dup {
			return nil, fmt.Errorf("duplicate beverage id %d", b.ID)
		}
		seen[b.ID] = struct{}{}
		if !b.Price.IsPositive() {
			return nil, fmt.Errorf("beverage %d has non-positive price", b.ID)
		}
		if len(b.SuitableMoods) == 0 {
			return nil, fmt.Errorf("beverage %d has no suitable moods", b.ID)
		}
		for _, m := range b.SuitableMoods {
			if !m.Valid() {
				return nil, fmt.Errorf("beverage %d: %w: %q", b.ID, ErrInvalidMood, m)
			}
		}
		b.Category = NormalizeCategory(string(b.Category))
		out = append(out, clone(b))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
