package vanilla

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/render"
	"github.com/goliatone/go-termmeta/pkg/render/template"
	"github.com/goliatone/go-termmeta/pkg/renderers/vanilla/components"
)

type componentRenderer struct {
	templates template.TemplateRenderer
	registry  *components.Registry
	partials  map[string]string
	mode      render.Mode

	usedComponents map[string]struct{}
}

func newComponentRenderer(templates template.TemplateRenderer, registry *components.Registry, partials map[string]string, mode render.Mode) *componentRenderer {
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}
	return &componentRenderer{
		templates:      templates,
		registry:       registry,
		partials:       partials,
		mode:           mode,
		usedComponents: make(map[string]struct{}),
	}
}

func (r *componentRenderer) render(view render.FieldView) (string, error) {
	name := view.Component
	if name == "" {
		name = field.ComponentInput
	}

	descriptor, ok := r.registry.Descriptor(name)
	if !ok {
		return "", fmt.Errorf("component %q not registered for field %q", name, view.Key)
	}

	var control bytes.Buffer
	err := descriptor.Renderer(&control, view, components.ComponentData{
		Template: r.templates,
		Partials: r.partials,
		Mode:     r.mode,
	})
	if err != nil {
		return "", fmt.Errorf("render component %q for field %q: %w", name, view.Key, err)
	}

	r.usedComponents[name] = struct{}{}
	return control.String(), nil
}

func (r *componentRenderer) used() []string {
	names := make([]string, 0, len(r.usedComponents))
	for name := range r.usedComponents {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
