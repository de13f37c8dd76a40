package sanitize

import (
	"github.com/goliatone/go-termmeta/pkg/field"
)

// Value sanitises a submitted value for cfg. A configured Sanitizer replaces
// the type-based rules entirely and its result is used verbatim.
func Value(cfg field.Config, raw string) string {
	if cfg.Sanitizer != nil {
		return cfg.Sanitizer.Sanitize(raw)
	}

	switch kind := cfg.Kind.(type) {
	case field.Checkbox:
		return Checkbox(raw)
	case field.Number:
		return Number(raw, kind)
	case field.Select, field.AmountType:
		return Choice(raw, field.ResolveOptions(kind), cfg.Default)
	case field.URL:
		return URL(raw)
	case field.Email:
		return Email(raw)
	case field.Textarea:
		return Textarea(raw)
	case field.Text:
		return Text(raw)
	default:
		return Text(raw)
	}
}

// Checkbox coerces raw to "1" or "0".
func Checkbox(raw string) string {
	if field.Truthy(raw) {
		return "1"
	}
	return "0"
}

// Choice returns raw when it exactly matches one of the option values and
// fallback otherwise.
func Choice(raw string, options []field.Option, fallback string) string {
	if field.Contains(options, raw) {
		return raw
	}
	return fallback
}
