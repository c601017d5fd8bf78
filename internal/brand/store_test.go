package brand

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "brand_test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProfileStoreRoundTrip(t *testing.T) {
	store, err := NewProfileStore(testDB(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	p := testProfile()
	id, err := store.Save(p)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("expected a profile id")
	}

	got, err := store.Get("acme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "acme" || len(got.Palette) != 3 || got.MinContrast != 4.5 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestProfileStoreSaveReplacesByName(t *testing.T) {
	store, err := NewProfileStore(testDB(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	p := testProfile()
	id1, err := store.Save(p)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	p.MinContrast = 7.0
	id2, err := store.Save(p)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if id1 != id2 {
		t.Fatal("saving the same name must keep the same id")
	}

	got, err := store.Get("acme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MinContrast != 7.0 {
		t.Fatalf("expected updated contrast 7.0, got %v", got.MinContrast)
	}

	names, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(names) != 1 {
		t.Fatalf("expected one stored profile, got %v", names)
	}
}

func TestProfileStoreGetMissing(t *testing.T) {
	store, err := NewProfileStore(testDB(t))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Get("nope"); err == nil {
		t.Fatal("expected error for missing profile")
	}
}
