package components

import "github.com/goliatone/go-termmeta/pkg/field"

// Canonical component names used by the vanilla renderer and default registry.
const (
	NameInput    = field.ComponentInput
	NameTextarea = field.ComponentTextarea
	NameNumber   = field.ComponentNumber
	NameSelect   = field.ComponentSelect
	NameCheckbox = field.ComponentCheckbox
)
