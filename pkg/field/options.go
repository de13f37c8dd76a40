package field

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Option is one value/label pair offered by a dropdown.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsSource supplies dropdown options on demand.
type OptionsSource interface {
	Resolve() []Option
}

// Static is a fixed, ordered option list.
type Static []Option

// Resolve returns a copy of the list.
func (s Static) Resolve() []Option {
	if len(s) == 0 {
		return nil
	}
	return append([]Option(nil), s...)
}

// Values returns the option values in order.
func (s Static) Values() []string {
	out := make([]string, 0, len(s))
	for _, opt := range s {
		out = append(out, opt.Value)
	}
	return out
}

// UnmarshalYAML decodes a value→label mapping while keeping declaration
// order. A sequence of scalars is accepted too, using each entry as both value
// and label.
func (s *Static) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		out := make(Static, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			out = append(out, Option{
				Value: node.Content[i].Value,
				Label: node.Content[i+1].Value,
			})
		}
		*s = out
		return nil
	case yaml.SequenceNode:
		out := make(Static, 0, len(node.Content))
		for _, item := range node.Content {
			out = append(out, Option{Value: item.Value, Label: item.Value})
		}
		*s = out
		return nil
	default:
		return fmt.Errorf("field: options must be a mapping or a list (line %d)", node.Line)
	}
}

// Provider defers option resolution until render or sanitize time.
type Provider func() []Option

// Resolve invokes the provider. A nil provider yields no options.
func (p Provider) Resolve() []Option {
	if p == nil {
		return nil
	}
	return p()
}

// Contains reports whether value exactly matches one of the option values.
func Contains(options []Option, value string) bool {
	for _, opt := range options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
