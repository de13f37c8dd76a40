package components

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goliatone/go-termmeta/pkg/render"
)

const templatePrefix = "templates/components/"

// Partial keys a theme can override.
const (
	PartialInput    = "forms.input"
	PartialTextarea = "forms.textarea"
	PartialNumber   = "forms.number"
	PartialSelect   = "forms.select"
	PartialCheckbox = "forms.checkbox"
)

// NewDefaultRegistry constructs a registry pre-populated with one template
// backed component per rendering strategy.
func NewDefaultRegistry() *Registry {
	registry := New()

	registry.MustRegister(NameInput, Descriptor{
		Renderer: templateComponentRenderer(PartialInput, templatePrefix+"input.tmpl"),
	})
	registry.MustRegister(NameTextarea, Descriptor{
		Renderer: templateComponentRenderer(PartialTextarea, templatePrefix+"textarea.tmpl"),
	})
	registry.MustRegister(NameNumber, Descriptor{
		Renderer: templateComponentRenderer(PartialNumber, templatePrefix+"number.tmpl"),
	})
	registry.MustRegister(NameSelect, Descriptor{
		Renderer: templateComponentRenderer(PartialSelect, templatePrefix+"select.tmpl"),
	})
	registry.MustRegister(NameCheckbox, Descriptor{
		Renderer: templateComponentRenderer(PartialCheckbox, templatePrefix+"checkbox.tmpl"),
	})

	return registry
}

func templateComponentRenderer(partialKey, templateName string) Renderer {
	return func(buf *bytes.Buffer, field render.FieldView, data ComponentData) error {
		if data.Template == nil {
			return fmt.Errorf("components: template renderer not configured for %q", templateName)
		}

		resolved := templateName
		if candidate := strings.TrimSpace(data.Partials[partialKey]); candidate != "" {
			resolved = candidate
		}

		rendered, err := data.Template.RenderTemplate(resolved, map[string]any{
			"field": field,
			"mode":  string(data.Mode),
		})
		if err != nil {
			return fmt.Errorf("components: render template %q: %w", resolved, err)
		}
		buf.WriteString(rendered)
		return nil
	}
}
