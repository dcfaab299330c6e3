package localstore

import (
	"context"
	"path/filepath"
	"testing"
)

type kvStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func openStores(t *testing.T) map[string]kvStore {
	t.Helper()

	sqliteStore, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "favorites.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]kvStore{
		"memory": NewMemoryStore(),
		"sqlite": sqliteStore,
	}
}

func TestStores_GetSetDelete(t *testing.T) {
	t.Parallel()

	for name, store := range openStores(t) {
		store := store
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			if _, ok, err := store.Get(ctx, "favorites:v1:u-1"); err != nil || ok {
				t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
			}

			if err := store.Set(ctx, "favorites:v1:u-1", []byte(`{"favorites":[]}`)); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := store.Set(ctx, "favorites:v1:u-1", []byte(`{"favorites":[1]}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			got, ok, err := store.Get(ctx, "favorites:v1:u-1")
			if err != nil || !ok {
				t.Fatalf("expected stored value, ok=%v err=%v", ok, err)
			}
			if string(got) != `{"favorites":[1]}` {
				t.Fatalf("unexpected value: %s", got)
			}

			if err := store.Delete(ctx, "favorites:v1:u-1"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, ok, _ := store.Get(ctx, "favorites:v1:u-1"); ok {
				t.Fatalf("expected key deleted")
			}
		})
	}
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemoryStore()

	value := []byte("abc")
	if err := store.Set(ctx, "device:id", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'x'

	got, _, _ := store.Get(ctx, "device:id")
	if string(got) != "abc" {
		t.Fatalf("expected stored copy, got %s", got)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "favorites.db")

	store, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := store.Set(ctx, "device:id", []byte("dev-1")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Get(ctx, "device:id")
	if err != nil || !ok || string(got) != "dev-1" {
		t.Fatalf("expected persisted value, got %q ok=%v err=%v", got, ok, err)
	}
}

func TestOpenSQLite_RequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := OpenSQLite(context.Background(), " "); err == nil {
		t.Fatalf("expected empty path to fail")
	}
}
