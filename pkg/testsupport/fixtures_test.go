package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/meta"
)

func TestLoadDocumentFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	if err := os.WriteFile(path, []byte("groups:\n  - taxonomies: [category]\n    fields:\n      icon: {}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	doc := LoadDocument(t, path)
	if diff := CompareGolden([]string{"category"}, doc.Groups[0].Taxonomies); diff != "" {
		t.Fatalf("taxonomies mismatch (-want +got):\n%s", diff)
	}

	if _, err := LoadDocumentFromPath(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
	if _, err := LoadDocumentFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSeedMetaAndActorContext(t *testing.T) {
	store := meta.NewMemory()
	SeedMeta(t, store, 4, map[string]string{"color": "red"})

	value, ok, err := store.Get(ActorContext(), 4, "color")
	if err != nil || !ok || value != "red" {
		t.Fatalf("expected seeded value, got %q %v %v", value, ok, err)
	}

	actor, ok := access.ActorFrom(ActorContext("editor"))
	if !ok || actor.Roles[0] != "editor" {
		t.Fatalf("expected editor actor, got %+v", actor)
	}
}

func TestWriteMaybeGoldenIsNoopByDefault(t *testing.T) {
	t.Setenv("UPDATE_GOLDENS", "")
	path := filepath.Join(t.TempDir(), "out.golden")
	if WriteMaybeGolden(t, path, []byte("x")) {
		t.Fatalf("expected no write")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("golden should not exist: %v", err)
	}
}
