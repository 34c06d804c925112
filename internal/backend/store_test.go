package backend

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openSeededStore(t *testing.T) *Store {
	t.Helper()
	seed, err := LoadSeed(filepath.Join("testdata", "seed.json"))
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	store, err := OpenStore(filepath.Join(t.TempDir(), "db", "fakeapi.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.Reset(seed); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	return store
}

func TestStoreCreateContinuesAfterSeededIDs(t *testing.T) {
	store := openSeededStore(t)

	rec, err := store.Create(ResourcePosts, Record{"id": 1, "userId": 2, "title": "new"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id, _ := intField(rec, "id"); id != 6 {
		t.Fatalf("expected id 6 after seeded max 5, got %v", rec["id"])
	}

	got, err := store.Get(ResourcePosts, 6)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got["title"] != "new" {
		t.Fatalf("unexpected stored record %v", got)
	}
	if _, err := store.Get(ResourcePosts, 1); err != nil {
		t.Fatalf("client-supplied id must not overwrite seeded post: %v", err)
	}
}

func TestStoreListFiltersByIntegerField(t *testing.T) {
	store := openSeededStore(t)

	posts, err := store.List(ResourcePosts, map[string]int{"userId": 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts for user 1, got %d", len(posts))
	}
	for _, p := range posts {
		if uid, _ := intField(p, "userId"); uid != 1 {
			t.Fatalf("filter leaked post %v", p)
		}
	}

	none, err := store.List(ResourceComments, map[string]int{"postId": 99})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", none)
	}
}

func TestStorePatchIsIdempotentAndKeepsID(t *testing.T) {
	store := openSeededStore(t)
	patch := Record{"id": 42, "title": "edited"}

	first, err := store.Patch(ResourcePosts, 2, patch)
	if err != nil {
		t.Fatalf("Patch: %v", err)
	}
	second, err := store.Patch(ResourcePosts, 2, patch)
	if err != nil {
		t.Fatalf("Patch again: %v", err)
	}
	if first["title"] != "edited" || first["body"] != "two" {
		t.Fatalf("unexpected merge result %v", first)
	}
	if id, _ := intField(second, "id"); id != 2 {
		t.Fatalf("id changed to %v", second["id"])
	}
	if len(first) != len(second) || first["title"] != second["title"] {
		t.Fatalf("patch not idempotent: %v vs %v", first, second)
	}
}

func TestStoreDeleteThenGetIsNotFound(t *testing.T) {
	store := openSeededStore(t)

	if err := store.Delete(ResourceComments, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ResourceComments, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(ResourceComments, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := store.Get(ResourceComments, -3); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for negative id, got %v", err)
	}
}

func TestStoreRejectsUnknownResource(t *testing.T) {
	store := openSeededStore(t)
	if _, err := store.List("albums", nil); !errors.Is(err, ErrUnknownResource) {
		t.Fatalf("expected ErrUnknownResource, got %v", err)
	}
}

func TestResetValidatesIDs(t *testing.T) {
	store, err := OpenStore(filepath.Join(t.TempDir(), "fakeapi.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	err = store.Reset(SeedData{Users: []Record{{"name": "no id"}}})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for missing id, got %v", err)
	}
	err = store.Reset(SeedData{Posts: []Record{{"id": 1}, {"id": 1}}})
	if !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord for duplicate id, got %v", err)
	}
}

func TestLoadSeedYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "seed.yaml")
	content := `
users:
  - id: 7
    name: Kurtis Weissnat
posts:
  - id: 3
    userId: 7
    title: hello
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	seed, err := LoadSeed(file)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(seed.Users) != 1 || len(seed.Posts) != 1 || len(seed.Comments) != 0 {
		t.Fatalf("unexpected seed %+v", seed)
	}
	if id, ok := intField(seed.Posts[0], "userId"); !ok || id != 7 {
		t.Fatalf("unexpected userId %v", seed.Posts[0]["userId"])
	}
}

func TestLoadSeedRejectsGarbage(t *testing.T) {
	if _, err := parseSeed([]byte("{not json"), ".json"); err == nil {
		t.Fatalf("expected decode error")
	}
	if _, err := LoadSeed(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestOpenStoreRejectsBlankPath(t *testing.T) {
	if _, err := OpenStore("  "); err == nil {
		t.Fatalf("expected error for blank store path")
	}
}
