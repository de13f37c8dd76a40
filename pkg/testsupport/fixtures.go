package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/meta"
)

// ActorContext returns a background context carrying an actor with roles.
func ActorContext(roles ...string) context.Context {
	return access.WithActor(context.Background(), access.Actor{ID: "1", Roles: roles})
}

// LoadDocument reads a YAML field fixture. Testing helpers fail the test on
// error to keep fixtures concise.
func LoadDocument(t testing.TB, path string) field.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (field.Document, error) {
	if path == "" {
		return field.Document{}, errors.New("testsupport: document path is required")
	}
	doc, err := field.LoadFile(path)
	if err != nil {
		return field.Document{}, fmt.Errorf("testsupport: %s: %w", filepath.Base(path), err)
	}
	return doc, nil
}

// SeedMeta writes values for termID, failing the test on the first error.
func SeedMeta(t testing.TB, store meta.Store, termID int64, values map[string]string) {
	t.Helper()
	for key, value := range values {
		if err := store.Set(context.Background(), termID, key, value); err != nil {
			t.Fatalf("seed %s for term %d: %v", key, termID, err)
		}
	}
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t testing.TB, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}
