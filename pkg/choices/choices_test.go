package choices

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-termmeta/pkg/field"
)

func TestLoadZonesDedupesSortsAndIgnoresComments(t *testing.T) {
	zones, err := LoadZones(strings.NewReader(`
# Comment
America/New_York
Europe/Paris
America/New_York

UTC
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"America/New_York", "Europe/Paris", "UTC"}, zones); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultZonesContainsCommonEntries(t *testing.T) {
	zones, err := DefaultZones()
	if err != nil {
		t.Fatalf("default zones: %v", err)
	}
	if len(zones) < 200 {
		t.Fatalf("expected a reasonably sized list, got %d", len(zones))
	}
	for _, expected := range []string{"America/New_York", "Europe/Paris", "UTC"} {
		if !field.Contains(zoneOptions(zones), expected) {
			t.Fatalf("expected zone %q", expected)
		}
	}
}

func TestTimezonesProviderLabels(t *testing.T) {
	options := Timezones().Resolve()
	for _, opt := range options {
		if opt.Value == "America/New_York" {
			if opt.Label != "America/New York" {
				t.Fatalf("unexpected label %q", opt.Label)
			}
			return
		}
	}
	t.Fatalf("America/New_York not offered")
}

func TestSearchPrefixBeforeContains(t *testing.T) {
	options := []field.Option{
		{Value: "x/a/b", Label: "x/a/b"},
		{Value: "a/b/c", Label: "a/b/c"},
		{Value: "a/b", Label: "a/b"},
		{Value: "c/d", Label: "c/d"},
	}
	got := Search(options, "A/B", 10, NewConfig())

	want := []string{"a/b", "a/b/c", "x/a/b"}
	values := make([]string, 0, len(got))
	for _, opt := range got {
		values = append(values, opt.Value)
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("search mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchMatchesLabels(t *testing.T) {
	got := Search(field.DefaultAmountTypes, "amount", 0, NewConfig())
	if len(got) != 1 || got[0].Value != "fixed" {
		t.Fatalf("unexpected results %#v", got)
	}
}

func TestSearchEmptyQueryModes(t *testing.T) {
	options := field.Static{{Value: "a"}, {Value: "b"}, {Value: "c"}}
	if got := Search(options, "  ", 10, NewConfig()); got != nil {
		t.Fatalf("expected no results, got %#v", got)
	}
	got := Search(options, "", 2, NewConfig(WithEmptySearchMode(EmptySearchTop)))
	if len(got) != 2 {
		t.Fatalf("expected two results, got %#v", got)
	}
	if got := Search(options, "a", -1, NewConfig()); got != nil {
		t.Fatalf("expected negative limit to disable search")
	}
}

func TestClampLimit(t *testing.T) {
	cfg := NewConfig(WithDefaultLimit(5), WithMaxLimit(10))
	cases := map[int]int{0: 5, 3: 3, 50: 10, -2: 0}
	for in, want := range cases {
		if got := clampLimit(in, cfg); got != want {
			t.Fatalf("clamp(%d): want %d, got %d", in, want, got)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	if diff := cmp.Diff([]string{SourceAmountTypes, SourceTimezones}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if err := r.Register("", field.Static{}); err == nil {
		t.Fatalf("expected empty name to be rejected")
	}
	if err := r.Register("sizes", field.Static{{Value: "s", Label: "Small"}}); err != nil {
		t.Fatalf("register: %v", err)
	}
	source, ok := r.Get("sizes")
	if !ok || len(source.Resolve()) != 1 {
		t.Fatalf("expected sizes source")
	}
}
