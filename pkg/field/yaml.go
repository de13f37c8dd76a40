package field

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a declarative field file: groups of taxonomies sharing one field
// mapping.
type Document struct {
	Groups []Group `yaml:"groups"`
}

// Group registers the same fields on every listed taxonomy.
type Group struct {
	Taxonomies []string `yaml:"taxonomies"`
	Fields     Fields   `yaml:"fields"`
}

type rawYAML struct {
	Label       string   `yaml:"label"`
	Type        string   `yaml:"type"`
	Description string   `yaml:"description"`
	Default     string   `yaml:"default"`
	Placeholder string   `yaml:"placeholder"`
	Options     Static   `yaml:"options"`
	Min         *float64 `yaml:"min"`
	Max         *float64 `yaml:"max"`
	Step        *float64 `yaml:"step"`
	Rows        int      `yaml:"rows"`
	Capability  string   `yaml:"capability"`
	Provider    string   `yaml:"provider"`
}

// UnmarshalYAML decodes a key→options mapping in declaration order.
func (f *Fields) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("field: fields must be a mapping (line %d)", node.Line)
	}
	out := make(Fields, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		var decoded rawYAML
		if err := valueNode.Decode(&decoded); err != nil {
			return fmt.Errorf("field: decode %q: %w", keyNode.Value, err)
		}
		raw := Raw{
			Label:       decoded.Label,
			Type:        decoded.Type,
			Description: decoded.Description,
			Default:     decoded.Default,
			Placeholder: decoded.Placeholder,
			Min:         decoded.Min,
			Max:         decoded.Max,
			Step:        decoded.Step,
			Rows:        decoded.Rows,
			Capability:  decoded.Capability,
		}
		if len(decoded.Options) > 0 {
			raw.Options = decoded.Options
		}
		out = append(out, Entry{Key: keyNode.Value, Raw: raw, Provider: decoded.Provider})
	}
	*f = out
	return nil
}

// ResolveProviders sets the options of every entry naming a provider from
// lookup. Entries with inline options keep them. Unknown names are reported
// together.
func (d *Document) ResolveProviders(lookup func(name string) (OptionsSource, bool)) error {
	var errs []error
	for gi := range d.Groups {
		for fi := range d.Groups[gi].Fields {
			entry := &d.Groups[gi].Fields[fi]
			if entry.Provider == "" || entry.Raw.Options != nil {
				continue
			}
			source, ok := lookup(entry.Provider)
			if !ok {
				errs = append(errs, fmt.Errorf("field: %q: unknown provider %q", entry.Key, entry.Provider))
				continue
			}
			entry.Raw.Options = source
		}
	}
	return errors.Join(errs...)
}

// LoadYAML parses a field document.
func LoadYAML(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, nil
		}
		return Document{}, fmt.Errorf("field: parse document: %w", err)
	}
	return doc, nil
}

// LoadFile parses the field document at path.
func LoadFile(path string) (Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("field: open %s: %w", path, err)
	}
	defer file.Close()
	return LoadYAML(file)
}
