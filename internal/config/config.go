package config

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. TERMMETA_SERVER_ADDR.
const EnvPrefix = "TERMMETA"

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config is the termmeta command configuration.
type Config struct {
	Log     LogConfig     `mapstructure:"log"`
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Fields  FieldsConfig  `mapstructure:"fields"`
	Access  AccessConfig  `mapstructure:"access"`
	Theme   ThemeConfig   `mapstructure:"theme"`
}

// LogConfig selects the log level. Empty means silent.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr        string `mapstructure:"addr"`
	ActorHeader string `mapstructure:"actor_header"`
	RolesHeader string `mapstructure:"roles_header"`
}

// StorageConfig selects the term meta store.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Table  string `mapstructure:"table"`
}

// RedisConfig configures the redis driver.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// FieldsConfig points at the YAML field declarations.
type FieldsConfig struct {
	Path string `mapstructure:"path"`
}

// AccessConfig grants extra capabilities per role on top of the stock roles.
type AccessConfig struct {
	Roles map[string][]string `mapstructure:"roles"`
}

// ThemeConfig describes an optional theme for the HTML screens. TemplatesDir
// layers template files from disk over the built-in set.
type ThemeConfig struct {
	Name         string            `mapstructure:"name"`
	Variant      string            `mapstructure:"variant"`
	Prefix       string            `mapstructure:"prefix"`
	Tokens       map[string]string `mapstructure:"tokens"`
	Templates    map[string]string `mapstructure:"templates"`
	Files        map[string]string `mapstructure:"files"`
	TemplatesDir string            `mapstructure:"templates_dir"`
}

// Manifest converts the theme settings into a manifest. It returns nil when
// no theme is named.
func (t ThemeConfig) Manifest() *theme.Manifest {
	if strings.TrimSpace(t.Name) == "" {
		return nil
	}
	return &theme.Manifest{
		Name:      t.Name,
		Tokens:    t.Tokens,
		Templates: t.Templates,
		Assets: theme.Assets{
			Prefix: t.Prefix,
			Files:  t.Files,
		},
	}
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.actor_header", "X-Termmeta-Actor")
	v.SetDefault("server.roles_header", "X-Termmeta-Roles")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.table", "termmeta")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "termmeta:")
	v.SetDefault("fields.path", "fields.yaml")
}

// New returns a viper instance with defaults, environment overrides and the
// termmeta.yaml search path configured. An explicit path replaces the search.
func New(path string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("termmeta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. A missing termmeta.yaml is not an error when
// no explicit path was given.
func Load(path string) (*Config, error) {
	return Read(New(path))
}

// Read reads and validates the configuration of an already prepared viper.
func Read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the storage selection.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory, DriverRedis:
	case DriverSQLite, DriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("config: storage.dsn is required for the %s driver", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Addr == "" {
		return errors.New("config: server.addr must not be empty")
	}
	return nil
}
