// Package app assembles a termmeta Manager from the command configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	termmeta "github.com/goliatone/go-termmeta"
	"github.com/goliatone/go-termmeta/internal/config"
	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/choices"
	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/meta"
	"github.com/goliatone/go-termmeta/pkg/renderers/vanilla"
)

// App bundles the manager with the resources that must be released.
type App struct {
	Manager *termmeta.Manager
	Roles   *access.Roles
	Choices *choices.Registry
	closers []func() error
}

// Close releases the meta store.
func (a *App) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		errs = append(errs, closeFn())
	}
	return errors.Join(errs...)
}

// New opens the configured store, loads the field file and builds the
// manager.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &App{Choices: choices.NewRegistry()}

	store, closeFn, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if closeFn != nil {
		a.closers = append(a.closers, closeFn)
	}

	a.Roles = access.NewRoles(nil)
	for role, capabilities := range cfg.Access.Roles {
		a.Roles.Grant(role, capabilities...)
	}

	htmlOpts := []vanilla.Option{vanilla.WithTemplatesDir(cfg.Theme.TemplatesDir)}
	if manifest := cfg.Theme.Manifest(); manifest != nil {
		htmlOpts = append(htmlOpts, vanilla.WithTheme(vanilla.ThemeConfig(manifest, cfg.Theme.Variant)))
	}
	html, err := vanilla.New(htmlOpts...)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("app: html renderer: %w", err)
	}

	a.Manager = termmeta.New(
		termmeta.WithMetaStore(store),
		termmeta.WithAuthorizer(a.Roles),
		termmeta.WithRenderer(html),
		termmeta.WithLogger(logger),
	)

	if err := LoadFields(a.Manager, cfg.Fields.Path, a.Choices, logger); err != nil {
		a.Close()
		return nil, err
	}
	logger.Info("term meta ready",
		zap.String("storage", cfg.Storage.Driver),
		zap.Strings("taxonomies", a.Manager.Fields().Taxonomies()),
	)
	return a, nil
}

// OpenStore opens the meta store selected by cfg. The returned close
// function is nil for the memory store.
func OpenStore(ctx context.Context, cfg *config.Config) (meta.Store, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory, "":
		return meta.NewMemory(), nil, nil
	case config.DriverSQLite, config.DriverPostgres:
		dialect, err := meta.DialectByName(cfg.Storage.Driver)
		if err != nil {
			return nil, nil, err
		}
		store, err := meta.OpenSQL(ctx, dialect, cfg.Storage.DSN, meta.WithTable(cfg.Storage.Table))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case config.DriverRedis:
		store, err := meta.OpenRedis(ctx, meta.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("app: unknown storage driver %q", cfg.Storage.Driver)
	}
}

// LoadFields registers the field file at path, resolving provider names
// against sources. A missing file leaves the manager without fields.
func LoadFields(m *termmeta.Manager, path string, sources *choices.Registry, logger *zap.Logger) error {
	if path == "" {
		return nil
	}
	doc, err := field.LoadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("field file not found", zap.String("path", path))
			return nil
		}
		return fmt.Errorf("app: %w", err)
	}
	if sources != nil {
		if err := doc.ResolveProviders(sources.Get); err != nil {
			return fmt.Errorf("app: %w", err)
		}
	}
	m.LoadDocument(doc)
	return nil
}
