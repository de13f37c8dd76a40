// Package sanitize implements the per-type rules applied to submitted term
// metadata before it is written. Value is the entry point; the exported
// helpers (Text, Textarea, Number, URL, Email, Checkbox, Choice) can be reused
// by custom sanitizers that want to build on a default rule.
package sanitize
