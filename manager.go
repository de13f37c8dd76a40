package termmeta

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/meta"
	"github.com/goliatone/go-termmeta/pkg/render"
	"github.com/goliatone/go-termmeta/pkg/renderers/vanilla"
	"github.com/goliatone/go-termmeta/pkg/save"
)

const defaultRendererName = "vanilla"

// Option customises the manager configuration.
type Option func(*Manager)

// WithFieldStore shares an existing field store.
func WithFieldStore(store *field.Store) Option {
	return func(m *Manager) {
		m.fields = store
	}
}

// WithMetaStore sets where term meta is read and written.
func WithMetaStore(store meta.Store) Option {
	return func(m *Manager) {
		m.meta = store
	}
}

// WithAuthorizer sets the capability check applied to every field.
func WithAuthorizer(authorizer access.Authorizer) Option {
	return func(m *Manager) {
		m.access = authorizer
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(m *Manager) {
		m.registry = registry
	}
}

// WithRenderer registers renderer and makes it the default.
func WithRenderer(renderer render.Renderer) Option {
	return func(m *Manager) {
		if renderer == nil {
			return
		}
		m.extraRenderers = append(m.extraRenderers, renderer)
		m.defaultRenderer = renderer.Name()
	}
}

// WithDefaultRenderer names the renderer used when a call omits one.
func WithDefaultRenderer(name string) Option {
	return func(m *Manager) {
		m.defaultRenderer = name
	}
}

// WithLogger sets the logger used for registration and storage failures.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// Manager is the explicit context shared by every term meta operation: the
// field configurations, the meta store, the capability check and the
// renderers. Missing dependencies get in-memory defaults (memory store,
// WordPress-like roles, vanilla renderer).
type Manager struct {
	fields          *field.Store
	meta            meta.Store
	access          access.Authorizer
	registry        *render.Registry
	extraRenderers  []render.Renderer
	defaultRenderer string
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs a Manager applying any provided options.
func New(options ...Option) *Manager {
	m := &Manager{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	m.applyDefaults()
	return m
}

func (m *Manager) applyDefaults() {
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.fields == nil {
		m.fields = field.NewStore()
	}
	if m.meta == nil {
		m.meta = meta.NewMemory()
	}
	if m.access == nil {
		m.access = access.NewRoles(nil)
	}
	if m.registry == nil {
		m.registry = render.NewRegistry()
	}
	for _, renderer := range m.extraRenderers {
		if err := m.registry.Register(renderer); err != nil {
			m.initialiseErr = errors.Join(m.initialiseErr, err)
		}
	}
	if !m.registry.Has(defaultRendererName) {
		renderer, err := vanilla.New()
		if err != nil {
			m.initialiseErr = errors.Join(m.initialiseErr, fmt.Errorf("termmeta: default renderer: %w", err))
			return
		}
		if err := m.registry.Register(renderer); err != nil {
			m.initialiseErr = errors.Join(m.initialiseErr, err)
		}
	}
}

// Fields exposes the field store.
func (m *Manager) Fields() *field.Store { return m.fields }

// Meta exposes the meta store.
func (m *Manager) Meta() meta.Store { return m.meta }

// Registry exposes the renderer registry.
func (m *Manager) Registry() *render.Registry { return m.registry }

// Can reports whether the context actor holds capability.
func (m *Manager) Can(ctx context.Context, capability string) bool {
	return m.access.Can(ctx, capability)
}

// Logger exposes the configured logger.
func (m *Manager) Logger() *zap.Logger { return m.logger }

// RegisterFields registers fields for every taxonomy independently. A
// taxonomy whose declarations fail validation is logged and left out of the
// returned handles; the others are still registered.
func (m *Manager) RegisterFields(taxonomies []string, fields field.Fields) map[string]*Taxonomy {
	handles := make(map[string]*Taxonomy, len(taxonomies))
	for _, name := range taxonomies {
		name = strings.TrimSpace(name)
		if err := m.fields.Register(name, fields); err != nil {
			m.logger.Error("term meta registration failed",
				zap.String("taxonomy", name),
				zap.Error(err),
			)
			continue
		}
		m.logger.Debug("term meta registered",
			zap.String("taxonomy", name),
			zap.Int("fields", len(fields)),
		)
		handles[name] = &Taxonomy{name: name, manager: m}
	}
	return handles
}

// LoadDocument registers every group of a YAML field document.
func (m *Manager) LoadDocument(doc field.Document) map[string]*Taxonomy {
	handles := make(map[string]*Taxonomy)
	for _, group := range doc.Groups {
		for name, handle := range m.RegisterFields(group.Taxonomies, group.Fields) {
			handles[name] = handle
		}
	}
	return handles
}

// Taxonomy returns the handle of a registered taxonomy.
func (m *Manager) Taxonomy(name string) (*Taxonomy, bool) {
	name = strings.TrimSpace(name)
	if !m.fields.Has(name) {
		return nil, false
	}
	return &Taxonomy{name: name, manager: m}, true
}

// GetFields returns the configurations of taxonomy in registration order.
func (m *Manager) GetFields(taxonomy string) []field.Config {
	return m.fields.All(taxonomy)
}

// GetField returns a single configuration.
func (m *Manager) GetField(taxonomy, key string) (field.Config, bool) {
	return m.fields.Get(taxonomy, key)
}

// GetFieldValue reads the stored value of key for termID. When taxonomy is
// given and the stored value is empty or absent, the registered default is
// returned instead. Without a taxonomy the raw stored value is returned.
func (m *Manager) GetFieldValue(ctx context.Context, termID int64, key, taxonomy string) (string, error) {
	value, _, err := m.meta.Get(ctx, termID, key)
	if err != nil {
		return "", fmt.Errorf("termmeta: read %q for term %d: %w", key, termID, err)
	}
	if value != "" || taxonomy == "" {
		return value, nil
	}
	if cfg, ok := m.fields.Get(taxonomy, key); ok {
		return cfg.Default, nil
	}
	return value, nil
}

// Build resolves the form view of a term screen without rendering it.
func (m *Manager) Build(ctx context.Context, req render.Request) (render.Form, error) {
	builder := render.Builder{Fields: m.fields, Values: m.meta, Access: m.access}
	return builder.Build(ctx, req)
}

// Render builds and renders a term screen with the named renderer, or the
// default one when rendererName is empty.
func (m *Manager) Render(ctx context.Context, rendererName string, req render.Request) ([]byte, error) {
	if m.initialiseErr != nil {
		return nil, m.initialiseErr
	}
	if rendererName == "" {
		rendererName = m.defaultRenderer
	}
	renderer, err := m.registry.Get(rendererName)
	if err != nil {
		return nil, fmt.Errorf("termmeta: %w", err)
	}
	form, err := m.Build(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("termmeta: %w", err)
	}
	out, err := renderer.Render(ctx, form)
	if err != nil {
		return nil, fmt.Errorf("termmeta: render %s: %w", req.Taxonomy, err)
	}
	return out, nil
}

// Save runs the save pipeline for one term.
func (m *Manager) Save(ctx context.Context, taxonomy string, termID int64, sub save.Submission) save.Result {
	pipeline := save.Pipeline{
		Fields: m.fields,
		Meta:   m.meta,
		Access: m.access,
		Logger: m.logger,
	}
	return pipeline.Save(ctx, taxonomy, termID, sub)
}
