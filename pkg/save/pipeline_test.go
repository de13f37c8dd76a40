package save_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/meta"
	"github.com/goliatone/go-termmeta/pkg/save"
)

func newFixture(t *testing.T) (*field.Store, *meta.Memory, save.Pipeline, context.Context) {
	t.Helper()
	fields := field.NewStore()
	err := fields.Register("category", field.Fields{
		field.Define("featured", field.Raw{Type: "checkbox"}),
		field.Define("weight", field.Raw{Type: "number", Min: field.Float(0), Max: field.Float(100)}),
		field.Define("size", field.Raw{Type: "select", Default: "m", Options: field.Static{
			{Value: "s", Label: "Small"},
			{Value: "m", Label: "Medium"},
		}}),
		field.Define("color", field.Raw{}),
		field.Define("secret", field.Raw{Capability: "manage_options"}),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	store := meta.NewMemory()
	pipeline := save.Pipeline{
		Fields: fields,
		Meta:   store,
		Access: access.NewRoles(nil),
	}
	ctx := access.WithActor(context.Background(), access.Actor{ID: "2", Roles: []string{"editor"}})
	return fields, store, pipeline, ctx
}

func TestSaveSanitisesAndPersists(t *testing.T) {
	_, store, pipeline, ctx := newFixture(t)

	result := pipeline.Save(ctx, "category", 10, save.Values(url.Values{
		"weight": {"150"},
		"size":   {"xl"},
		"color":  {"<b>red</b>"},
		"secret": {"nope"},
	}))

	all, _ := store.All(ctx, 10)
	want := map[string]string{
		"featured": "0",
		"weight":   "100",
		"size":     "m",
		"color":    "red",
	}
	if diff := cmp.Diff(want, all); diff != "" {
		t.Fatalf("stored values mismatch (-want +got):\n%s", diff)
	}

	wantResult := save.Result{
		Updated: []string{"featured", "weight", "size", "color"},
		Skipped: []string{"secret"},
	}
	if diff := cmp.Diff(wantResult, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveCheckboxPresenceIsChecked(t *testing.T) {
	_, store, pipeline, ctx := newFixture(t)

	pipeline.Save(ctx, "category", 3, save.Map{"featured": ""})
	if got, _, _ := store.Get(ctx, 3, "featured"); got != "1" {
		t.Fatalf("expected checked checkbox to store 1, got %q", got)
	}

	pipeline.Save(ctx, "category", 3, save.Map{})
	if got, _, _ := store.Get(ctx, 3, "featured"); got != "0" {
		t.Fatalf("expected missing checkbox to store 0, got %q", got)
	}
}

func TestSaveMissingKeyLeavesValue(t *testing.T) {
	_, store, pipeline, ctx := newFixture(t)
	_ = store.Set(ctx, 4, "color", "blue")
	_ = store.Set(ctx, 4, "weight", "7")

	result := pipeline.Save(ctx, "category", 4, save.Map{"weight": "8"})

	if got, _, _ := store.Get(ctx, 4, "color"); got != "blue" {
		t.Fatalf("expected untouched color, got %q", got)
	}
	if got, _, _ := store.Get(ctx, 4, "weight"); got != "8" {
		t.Fatalf("expected weight updated, got %q", got)
	}
	if diff := cmp.Diff([]string{"size", "color", "secret"}, result.Skipped); diff != "" {
		t.Fatalf("skipped mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveEmptyValueDeletes(t *testing.T) {
	_, store, pipeline, ctx := newFixture(t)
	_ = store.Set(ctx, 5, "color", "blue")

	result := pipeline.Save(ctx, "category", 5, save.Map{"color": "<i></i>  "})

	if _, ok, _ := store.Get(ctx, 5, "color"); ok {
		t.Fatalf("expected color to be deleted")
	}
	if diff := cmp.Diff([]string{"color"}, result.Deleted); diff != "" {
		t.Fatalf("deleted mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveDeniedActorWritesNothing(t *testing.T) {
	_, store, pipeline, _ := newFixture(t)
	ctx := access.WithActor(context.Background(), access.Actor{Roles: []string{"author"}})

	result := pipeline.Save(ctx, "category", 6, save.Map{"color": "red", "featured": "1"})

	all, _ := store.All(ctx, 6)
	if len(all) != 0 {
		t.Fatalf("expected no writes, got %v", all)
	}
	if len(result.Skipped) != 5 {
		t.Fatalf("expected every field skipped, got %v", result.Skipped)
	}
}

type failingStore struct {
	*meta.Memory
	failKey string
}

func (f failingStore) Set(ctx context.Context, termID int64, key, value string) error {
	if key == f.failKey {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, termID, key, value)
}

func TestSaveCollectsStorageFailures(t *testing.T) {
	fields, _, _, ctx := newFixture(t)
	store := failingStore{Memory: meta.NewMemory(), failKey: "weight"}
	pipeline := save.Pipeline{Fields: fields, Meta: store, Access: access.AllowAll}

	result := pipeline.Save(ctx, "category", 7, save.Map{"weight": "5", "color": "red"})

	if _, ok := result.Failed["weight"]; !ok {
		t.Fatalf("expected weight failure, got %v", result.Failed)
	}
	if got, _, _ := store.Get(ctx, 7, "color"); got != "red" {
		t.Fatalf("expected remaining fields to be saved, got %q", got)
	}
}

func TestValuesLookup(t *testing.T) {
	values := save.Values(url.Values{"a": {"1", "2"}, "empty": {}})
	if got, ok := values.Lookup("a"); !ok || got != "1" {
		t.Fatalf("expected first value, got %q (%v)", got, ok)
	}
	if _, ok := values.Lookup("empty"); !ok {
		t.Fatalf("expected present key with no values")
	}
	if _, ok := values.Lookup("missing"); ok {
		t.Fatalf("expected missing key")
	}
}
