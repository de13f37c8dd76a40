package field_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-termmeta/pkg/field"
)

func TestRegisterAppliesDefaults(t *testing.T) {
	store := field.NewStore()
	err := store.Register("category", field.Fields{
		field.Define("color", field.Raw{}),
		field.Define("notes", field.Raw{Type: "textarea"}),
		field.Define("weight", field.Raw{Type: "number", Max: field.Float(10)}),
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	got, ok := store.Get("category", "color")
	if !ok {
		t.Fatalf("expected color to be registered")
	}
	want := field.Config{
		Key:        "color",
		Capability: field.DefaultCapability,
		Kind:       field.Text{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	notes, _ := store.Get("category", "notes")
	if diff := cmp.Diff(field.Textarea{Rows: field.DefaultRows}, notes.Kind); diff != "" {
		t.Fatalf("textarea kind mismatch (-want +got):\n%s", diff)
	}

	weight, _ := store.Get("category", "weight")
	if diff := cmp.Diff(field.Number{Max: field.Float(10)}, weight.Kind); diff != "" {
		t.Fatalf("number kind mismatch (-want +got):\n%s", diff)
	}
}

func TestRegisterRejectsUnknownTypeWithoutTouchingOthers(t *testing.T) {
	store := field.NewStore()
	if err := store.Register("category", field.Fields{field.Define("color", field.Raw{})}); err != nil {
		t.Fatalf("register category: %v", err)
	}
	if err := store.Register("post_tag", field.Fields{field.Define("icon", field.Raw{})}); err != nil {
		t.Fatalf("register post_tag: %v", err)
	}

	err := store.Register("post_tag", field.Fields{
		field.Define("rank", field.Raw{Type: "number"}),
		field.Define("mood", field.Raw{Type: "colour-wheel"}),
	})
	if !errors.Is(err, field.ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
	if !strings.Contains(err.Error(), "amount_type") {
		t.Fatalf("expected the registered types in %q", err)
	}
	var cfgErr *field.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T", err)
	}
	if cfgErr.Taxonomy != "post_tag" || cfgErr.Key != "mood" {
		t.Fatalf("unexpected error context: %+v", cfgErr)
	}

	if _, ok := store.Get("post_tag", "rank"); ok {
		t.Fatalf("failed registration must not store earlier fields of the same call")
	}
	if _, ok := store.Get("post_tag", "icon"); !ok {
		t.Fatalf("previous post_tag registration lost")
	}
	if _, ok := store.Get("category", "color"); !ok {
		t.Fatalf("category registration lost")
	}
}

func TestRegisterRejectsEmptyKey(t *testing.T) {
	store := field.NewStore()
	err := store.Register("category", field.Fields{field.Define("  ", field.Raw{})})
	if !errors.Is(err, field.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	if store.Has("category") {
		t.Fatalf("taxonomy should not be created by a failed registration")
	}
}

func TestRegisterOverwritesInPlace(t *testing.T) {
	store := field.NewStore()
	must(t, store.Register("category", field.Fields{
		field.Define("a", field.Raw{Label: "A"}),
		field.Define("b", field.Raw{Label: "B"}),
	}))
	must(t, store.Register("category", field.Fields{
		field.Define("c", field.Raw{Label: "C"}),
		field.Define("a", field.Raw{Label: "A2", Type: "checkbox"}),
	}))

	var keys, labels []string
	for _, cfg := range store.All("category") {
		keys = append(keys, cfg.Key)
		labels = append(labels, cfg.Label)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, keys); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"A2", "B", "C"}, labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	a, _ := store.Get("category", "a")
	if a.Type() != field.TypeCheckbox {
		t.Fatalf("expected overwrite to replace type, got %s", a.Type())
	}
}

func TestAllUnknownTaxonomyIsEmpty(t *testing.T) {
	store := field.NewStore()
	if got := store.All("missing"); len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if _, ok := store.Get("missing", "x"); ok {
		t.Fatalf("expected not found")
	}
}

func TestLoadYAMLKeepsOrder(t *testing.T) {
	doc, err := field.LoadYAML(strings.NewReader(`
groups:
  - taxonomies: [category, post_tag]
    fields:
      size:
        label: Size
        type: select
        default: "m"
        options:
          s: Small
          m: Medium
          l: Large
      featured:
        type: checkbox
      weight:
        type: number
        min: 0
        max: 100
        step: 0.5
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Groups) != 1 {
		t.Fatalf("expected one group, got %d", len(doc.Groups))
	}
	group := doc.Groups[0]
	if diff := cmp.Diff([]string{"category", "post_tag"}, group.Taxonomies); diff != "" {
		t.Fatalf("taxonomies mismatch (-want +got):\n%s", diff)
	}

	var keys []string
	for _, entry := range group.Fields {
		keys = append(keys, entry.Key)
	}
	if diff := cmp.Diff([]string{"size", "featured", "weight"}, keys); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	store := field.NewStore()
	must(t, store.Register("category", group.Fields))
	size, _ := store.Get("category", "size")
	wantOptions := []field.Option{
		{Value: "s", Label: "Small"},
		{Value: "m", Label: "Medium"},
		{Value: "l", Label: "Large"},
	}
	if diff := cmp.Diff(wantOptions, size.Options()); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	weight, _ := store.Get("category", "weight")
	number, ok := weight.Kind.(field.Number)
	if !ok {
		t.Fatalf("expected number kind, got %T", weight.Kind)
	}
	if !number.IsDecimal() {
		t.Fatalf("expected step 0.5 to be decimal")
	}
}

func TestResolveProviders(t *testing.T) {
	doc, err := field.LoadYAML(strings.NewReader(`
groups:
  - taxonomies: [location]
    fields:
      zone:
        type: select
        provider: zones
      size:
        type: select
        provider: zones
        options: [s, m]
      other:
        type: select
        provider: missing
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	zones := field.Static{{Value: "UTC", Label: "UTC"}}
	err = doc.ResolveProviders(func(name string) (field.OptionsSource, bool) {
		if name == "zones" {
			return zones, true
		}
		return nil, false
	})
	if err == nil || !strings.Contains(err.Error(), `unknown provider "missing"`) {
		t.Fatalf("expected unknown provider error, got %v", err)
	}

	store := field.NewStore()
	must(t, store.Register("location", doc.Groups[0].Fields))
	zone, _ := store.Get("location", "zone")
	if diff := cmp.Diff([]field.Option(zones), zone.Options()); diff != "" {
		t.Fatalf("zone options mismatch (-want +got):\n%s", diff)
	}
	size, _ := store.Get("location", "size")
	if len(size.Options()) != 2 {
		t.Fatalf("inline options should win over the provider, got %v", size.Options())
	}
}

func TestProviderResolvesLazily(t *testing.T) {
	calls := 0
	cfg, err := field.NewConfig("brand", field.Raw{
		Type: "select",
		Options: field.Provider(func() []field.Option {
			calls++
			return []field.Option{{Value: "acme", Label: "Acme"}}
		}),
	})
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if calls != 0 {
		t.Fatalf("provider must not run at registration")
	}
	cfg.Options()
	cfg.Options()
	if calls != 2 {
		t.Fatalf("expected provider invoked per resolution, got %d", calls)
	}
}

func TestAmountTypeDefaults(t *testing.T) {
	cfg, err := field.NewConfig("discount_kind", field.Raw{Type: "amount_type"})
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if diff := cmp.Diff([]string{"fixed", "percentage"}, field.Static(cfg.Options()).Values()); diff != "" {
		t.Fatalf("amount types mismatch (-want +got):\n%s", diff)
	}
	if cfg.Type().Component() != field.ComponentSelect {
		t.Fatalf("amount_type should render as a select")
	}
}

func TestTruthy(t *testing.T) {
	cases := map[string]bool{
		"":    false,
		"0":   false,
		" 0 ": false,
		"1":   true,
		"on":  true,
		"yes": true,
	}
	for input, want := range cases {
		if got := field.Truthy(input); got != want {
			t.Errorf("Truthy(%q) = %v, want %v", input, got, want)
		}
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
