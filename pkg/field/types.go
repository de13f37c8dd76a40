package field

import (
	"fmt"
	"strings"
)

// Type is the closed set of field type tags accepted at registration time.
type Type string

const (
	TypeText       Type = "text"
	TypeTextarea   Type = "textarea"
	TypeNumber     Type = "number"
	TypeSelect     Type = "select"
	TypeCheckbox   Type = "checkbox"
	TypeURL        Type = "url"
	TypeEmail      Type = "email"
	TypeAmountType Type = "amount_type"
)

// Rendering strategies. Several types share one strategy (text, url and email
// are all single-line inputs).
const (
	ComponentInput    = "input"
	ComponentTextarea = "textarea"
	ComponentNumber   = "number"
	ComponentSelect   = "select"
	ComponentCheckbox = "checkbox"
)

var registeredTypes = []Type{
	TypeText,
	TypeTextarea,
	TypeNumber,
	TypeSelect,
	TypeCheckbox,
	TypeURL,
	TypeEmail,
	TypeAmountType,
}

// Types returns the registered type tags in declaration order.
func Types() []Type {
	return append([]Type(nil), registeredTypes...)
}

func typeList() string {
	tags := make([]string, 0, len(registeredTypes))
	for _, t := range Types() {
		tags = append(tags, string(t))
	}
	return strings.Join(tags, ", ")
}

// ParseType resolves a tag into a registered Type. An empty tag resolves to
// TypeText.
func ParseType(tag string) (Type, error) {
	trimmed := strings.ToLower(strings.TrimSpace(tag))
	if trimmed == "" {
		return TypeText, nil
	}
	candidate := Type(trimmed)
	if !candidate.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownType, tag, typeList())
	}
	return candidate, nil
}

// Valid reports whether t is one of the registered tags.
func (t Type) Valid() bool {
	for _, known := range registeredTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Component names the rendering strategy used for the type.
func (t Type) Component() string {
	switch t {
	case TypeTextarea:
		return ComponentTextarea
	case TypeNumber:
		return ComponentNumber
	case TypeSelect, TypeAmountType:
		return ComponentSelect
	case TypeCheckbox:
		return ComponentCheckbox
	default:
		return ComponentInput
	}
}

// InputType is the HTML input type attribute, empty for types not rendered
// as an input element.
func (t Type) InputType() string {
	switch t {
	case TypeTextarea, TypeSelect, TypeAmountType:
		return ""
	case TypeURL:
		return "url"
	case TypeEmail:
		return "email"
	case TypeNumber:
		return "number"
	case TypeCheckbox:
		return "checkbox"
	default:
		return "text"
	}
}

func (t Type) String() string {
	return string(t)
}
