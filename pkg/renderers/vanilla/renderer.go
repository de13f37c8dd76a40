package vanilla

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-termmeta/pkg/render"
	rendertemplate "github.com/goliatone/go-termmeta/pkg/render/template"
	gotemplate "github.com/goliatone/go-termmeta/pkg/render/template/gotemplate"
	"github.com/goliatone/go-termmeta/pkg/renderers/vanilla/components"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	registry         *components.Registry
	theme            *theme.RendererConfig
	classes          ChromeClasses
}

// WithTemplatesFS layers a template bundle over the embedded one. Files with
// the same path shadow the built-in templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir layers templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithComponentRegistry replaces the default component registry.
func WithComponentRegistry(registry *components.Registry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.registry = registry
		}
	}
}

// WithTheme applies partial overrides, CSS variables and asset URLs from a
// resolved theme. See ThemeConfig.
func WithTheme(themeCfg *theme.RendererConfig) Option {
	return func(cfg *config) {
		cfg.theme = themeCfg
	}
}

// WithChromeClasses overrides the row and description classes.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.classes = classes
	}
}

// Renderer writes term meta fields as HTML for the add and edit term screens.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	registry  *components.Registry
	theme     *theme.RendererConfig
	classes   map[string]string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engineOpts := []gotemplate.Option{
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".tmpl"),
		}
		if cfg.templateFS != nil {
			engineOpts = append(engineOpts, gotemplate.WithFS(cfg.templateFS))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	registry := cfg.registry
	if registry == nil {
		registry = components.NewDefaultRegistry()
	}

	return &Renderer{
		templates: templates,
		registry:  registry,
		theme:     cfg.theme,
		classes:   cfg.classes.resolve(),
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes one row per visible field. Add mode emits div.form-field rows
// for the new-term form; edit mode emits tr.form-field rows for the edit
// table.
func (r *Renderer) Render(_ context.Context, form render.Form) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	var rowTemplate string
	switch form.Mode {
	case render.ModeAdd:
		rowTemplate = r.partial(PartialAddRow, AddRowTemplate)
	case render.ModeEdit:
		rowTemplate = r.partial(PartialEditRow, EditRowTemplate)
	default:
		return nil, fmt.Errorf("vanilla renderer: unknown mode %q", form.Mode)
	}

	fields := newComponentRenderer(r.templates, r.registry, r.partials(), form.Mode)
	rows := make([]string, 0, len(form.Fields))
	for _, view := range form.Fields {
		control, err := fields.render(view)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: %w", err)
		}
		row, err := r.templates.RenderTemplate(rowTemplate, map[string]any{
			"field":   view,
			"control": control,
			"classes": r.classes,
		})
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: render row %q: %w", view.Key, err)
		}
		rows = append(rows, row)
	}

	var out bytes.Buffer
	_, err := r.templates.RenderTemplate(r.partial(PartialForm, FormTemplate), map[string]any{
		"form":        form,
		"rows":        rows,
		"classes":     r.classes,
		"stylesheets": r.stylesheets(fields.used()),
		"css_vars":    r.cssVars(),
	}, &out)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return out.Bytes(), nil
}

func (r *Renderer) partials() map[string]string {
	if r.theme == nil {
		return nil
	}
	return r.theme.Partials
}

func (r *Renderer) partial(key, fallback string) string {
	if candidate := strings.TrimSpace(r.partials()[key]); candidate != "" {
		return candidate
	}
	return fallback
}

func (r *Renderer) cssVars() string {
	if r.theme == nil {
		return ""
	}
	return cssVarsStyle(r.theme.CSSVars)
}

func (r *Renderer) stylesheets(used []string) []string {
	hrefs := r.registry.Stylesheets(used)
	if r.theme == nil || r.theme.AssetURL == nil {
		return hrefs
	}
	out := make([]string, 0, len(hrefs))
	for _, href := range hrefs {
		if resolved := r.theme.AssetURL(href); resolved != "" {
			href = resolved
		}
		out = append(out, href)
	}
	return out
}
