package cache

import (
	"path/filepath"
	"testing"

	"molvec/internal/port"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("obabel/mmff94/steps=500", "CCO")
	b := Key("obabel/mmff94/steps=500", "CCO")
	if a != b {
		t.Errorf("same parts produced different keys: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestKeyBoundaryCollision(t *testing.T) {
	if Key("ab", "c") == Key("a", "bc") {
		t.Error("length prefixing failed: shifted parts collide")
	}
	if Key("a", "") == Key("", "a") {
		t.Error("empty part position should change the key")
	}
}

func TestBoltCacheRoundtrip(t *testing.T) {
	store, err := NewBoltCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	testStoreRoundtrip(t, store)
}

func TestMemoryCacheRoundtrip(t *testing.T) {
	testStoreRoundtrip(t, NewMemoryCache())
}

func testStoreRoundtrip(t *testing.T, store port.Store) {
	t.Helper()

	key := Key("test", "CCO")

	if _, ok, err := store.Get(port.NamespaceGeometry, key); err != nil || ok {
		t.Fatalf("expected miss on empty store, got ok=%v err=%v", ok, err)
	}

	if err := store.Put(port.NamespaceGeometry, key, []byte("payload")); err != nil {
		t.Fatal(err)
	}

	value, ok, err := store.Get(port.NamespaceGeometry, key)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || string(value) != "payload" {
		t.Errorf("expected hit with payload, got ok=%v value=%q", ok, value)
	}

	// namespaces are isolated
	if _, ok, _ := store.Get(port.NamespaceDescriptors, key); ok {
		t.Error("key leaked into another namespace")
	}

	n, err := store.Count(port.NamespaceGeometry)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("expected 1 entry, got %d", n)
	}

	if err := store.Clear(port.NamespaceGeometry); err != nil {
		t.Fatal(err)
	}
	if n, _ := store.Count(port.NamespaceGeometry); n != 0 {
		t.Errorf("expected 0 entries after clear, got %d", n)
	}
	if _, ok, _ := store.Get(port.NamespaceGeometry, key); ok {
		t.Error("entry survived clear")
	}
}

func TestBoltCachePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := NewBoltCache(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Put(port.NamespaceShingles, "k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := NewBoltCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get(port.NamespaceShingles, "k")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || string(value) != "v" {
		t.Errorf("entry did not survive reopen: ok=%v value=%q", ok, value)
	}
}

func TestUnknownNamespace(t *testing.T) {
	store, err := NewBoltCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, _, err := store.Get("bogus", "k"); err == nil {
		t.Error("expected error for unknown namespace")
	}
	if err := store.Put("bogus", "k", nil); err == nil {
		t.Error("expected error for unknown namespace")
	}
}
