package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-termmeta/internal/config"
	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/save"
)

const fieldsYAML = `
groups:
  - taxonomies: [category]
    fields:
      color:
        label: Color
        default: "#000000"
      featured:
        type: checkbox
      zone:
        type: select
        provider: timezones
`

func writeFields(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fieldsYAML), 0o644))
	return path
}

func baseConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Addr: ":0"},
		Storage: config.StorageConfig{Driver: config.DriverMemory},
		Fields:  config.FieldsConfig{Path: writeFields(t)},
	}
}

func TestNewLoadsFields(t *testing.T) {
	a, err := New(context.Background(), baseConfig(t), nil)
	require.NoError(t, err)
	defer a.Close()

	fields := a.Manager.GetFields("category")
	require.Len(t, fields, 3)
	assert.Equal(t, "color", fields[0].Key)
	assert.Contains(t, optionValues(fields[2].Options()), "Europe/Paris")
}

func TestNewToleratesMissingFieldFile(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Fields.Path = filepath.Join(t.TempDir(), "none.yaml")

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Empty(t, a.Manager.Fields().Taxonomies())
}

func TestNewGrantsConfiguredRoles(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Access.Roles = map[string][]string{"author": {"manage_categories"}}

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	ctx := access.WithActor(context.Background(), access.Actor{Roles: []string{"author"}})
	assert.True(t, a.Roles.Can(ctx, "manage_categories"))
}

func TestNewWithSQLite(t *testing.T) {
	cfg := baseConfig(t)
	cfg.Storage = config.StorageConfig{
		Driver: config.DriverSQLite,
		DSN:    "file:" + filepath.Join(t.TempDir(), "meta.db"),
		Table:  "termmeta",
	}

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	ctx := access.WithActor(context.Background(), access.Actor{Roles: []string{"editor"}})
	tax, ok := a.Manager.Taxonomy("category")
	require.True(t, ok)
	result := tax.Save(ctx, 5, save.Map{"color": "teal"})
	assert.Empty(t, result.Failed)

	value, err := a.Manager.GetFieldValue(ctx, 5, "color", "category")
	require.NoError(t, err)
	assert.Equal(t, "teal", value)
}

func TestNewWithRedis(t *testing.T) {
	server := miniredis.RunT(t)
	cfg := baseConfig(t)
	cfg.Storage.Driver = config.DriverRedis
	cfg.Redis = config.RedisConfig{Addr: server.Addr(), Prefix: "tm:"}

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	ctx := access.WithActor(context.Background(), access.Actor{Roles: []string{"administrator"}})
	tax, _ := a.Manager.Taxonomy("category")
	tax.Save(ctx, 8, save.Map{"featured": "yes"})

	assert.Equal(t, "1", server.HGet("tm:term:8", "featured"))
}

func TestNewLayersTemplatesDir(t *testing.T) {
	dir := t.TempDir()
	components := filepath.Join(dir, "templates", "components")
	require.NoError(t, os.MkdirAll(components, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(components, "input.tmpl"),
		[]byte(`<input data-site-theme name="{{ field.key }}">`), 0o644))
	cfg := baseConfig(t)
	cfg.Theme.TemplatesDir = dir

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	tax, ok := a.Manager.Taxonomy("category")
	require.True(t, ok)

	ctx := access.WithActor(context.Background(), access.Actor{Roles: []string{"editor"}})
	out, err := tax.RenderAdd(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(out), `<input data-site-theme name="color">`)
	assert.Contains(t, string(out), `type="checkbox"`)
}

func TestLoadFieldsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups:\n  - taxonomies: [category]\n    fields:\n      zone:\n        type: select\n        provider: planets\n"), 0o644))
	cfg := baseConfig(t)
	cfg.Fields.Path = path

	_, err := New(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "planets")
}

func TestOpenStoreUnknownDriver(t *testing.T) {
	_, _, err := OpenStore(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "mongo"}})
	assert.Error(t, err)
}

func optionValues(options []field.Option) []string {
	values := make([]string, 0, len(options))
	for _, opt := range options {
		values = append(values, opt.Value)
	}
	return values
}
