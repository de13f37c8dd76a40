package render_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-termmeta/pkg/render"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, render.Form) ([]byte, error) {
	return []byte(n), nil
}

func mustRegister(t *testing.T, registry *render.Registry, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := registry.Register(namedRenderer(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := render.NewRegistry()
	mustRegister(t, registry, "vanilla")

	if err := registry.Register(namedRenderer("vanilla")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer(" Vanilla ")); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(namedRenderer("")); err == nil {
		t.Fatalf("expected empty name error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
}

func TestRegistryGetAndList(t *testing.T) {
	registry := render.NewRegistry()
	mustRegister(t, registry, "tui", "vanilla")

	if diff := cmp.Diff([]string{"tui", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if _, err := registry.Get("vanilla"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := registry.Get("VANILLA"); err != nil {
		t.Fatalf("lookup should ignore case: %v", err)
	}
	if !registry.Has("tui") || registry.Has("pdf") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := registry.Get("pdf"); !errors.Is(err, render.ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}

func TestHiddenFieldsMergeAndSort(t *testing.T) {
	merged := render.MergeHiddenFields(
		map[string]string{" taxonomy ": "category", "": "dropped"},
		render.TermIDField(9),
		render.Hidden("taxonomy", "product_cat"),
		render.Hidden(" ", "ignored"),
	)

	want := []render.HiddenField{
		{Name: "tag_ID", Value: "9"},
		{Name: "taxonomy", Value: "product_cat"},
	}
	if diff := cmp.Diff(want, render.SortedHiddenFields(merged)); diff != "" {
		t.Fatalf("hidden mismatch (-want +got):\n%s", diff)
	}
	if render.MergeHiddenFields(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
