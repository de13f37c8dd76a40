package field

import "strings"

const (
	// DefaultRows is the textarea height applied when none is declared.
	DefaultRows = 5
	// DefaultCapability gates visibility and saving when none is declared.
	DefaultCapability = "manage_categories"
)

// Sanitizer replaces the type-based sanitisation of a field.
type Sanitizer interface {
	Sanitize(raw string) string
}

// SanitizerFunc adapts a plain function to Sanitizer.
type SanitizerFunc func(raw string) string

func (f SanitizerFunc) Sanitize(raw string) string {
	return f(raw)
}

// Raw is the caller-declared configuration of a field. Zero values mean
// "not declared" and are replaced by defaults on registration.
type Raw struct {
	Label       string
	Type        string
	Description string
	Default     string
	Placeholder string
	Options     OptionsSource
	Min         *float64
	Max         *float64
	Step        *float64
	Rows        int
	Sanitizer   Sanitizer
	Capability  string
}

// Entry pairs a field key with its raw configuration. Provider names an
// option source to resolve before registration, see
// Document.ResolveProviders.
type Entry struct {
	Key      string
	Raw      Raw
	Provider string
}

// Fields is an ordered set of field declarations. Order is preserved through
// registration, rendering and saving.
type Fields []Entry

// Define is shorthand for building an Entry.
func Define(key string, raw Raw) Entry {
	return Entry{Key: key, Raw: raw}
}

// Config is the merged configuration for one field of one taxonomy.
type Config struct {
	Key         string
	Label       string
	Description string
	Default     string
	Placeholder string
	Capability  string
	Sanitizer   Sanitizer
	Kind        Kind
}

// Type returns the tag of the field's kind.
func (c Config) Type() Type {
	if c.Kind == nil {
		return TypeText
	}
	return c.Kind.Type()
}

// Options resolves the dropdown options for select-like fields.
func (c Config) Options() []Option {
	return ResolveOptions(c.Kind)
}

// Rows returns the textarea height, or DefaultRows for other kinds.
func (c Config) Rows() int {
	if ta, ok := c.Kind.(Textarea); ok && ta.Rows > 0 {
		return ta.Rows
	}
	return DefaultRows
}

// NewConfig merges raw with the defaults and validates key and type.
func NewConfig(key string, raw Raw) (Config, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return Config{}, ErrInvalidKey
	}
	typ, err := ParseType(raw.Type)
	if err != nil {
		return Config{}, err
	}
	capability := strings.TrimSpace(raw.Capability)
	if capability == "" {
		capability = DefaultCapability
	}
	return Config{
		Key:         key,
		Label:       raw.Label,
		Description: raw.Description,
		Default:     raw.Default,
		Placeholder: raw.Placeholder,
		Capability:  capability,
		Sanitizer:   raw.Sanitizer,
		Kind:        newKind(typ, raw),
	}, nil
}

// Truthy mirrors the loose boolean reading of stored metadata: the empty
// string and "0" are false.
func Truthy(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && v != "0"
}
