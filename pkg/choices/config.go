package choices

import "net/http"

// EmptySearchMode decides what an empty query returns.
type EmptySearchMode string

const (
	EmptySearchNone EmptySearchMode = "none"
	EmptySearchTop  EmptySearchMode = "top"
)

// GuardFunc rejects a search request by returning an error. Errors
// implementing HTTPError choose the status code.
type GuardFunc func(r *http.Request) error

// Config tunes search and the HTTP handler.
type Config struct {
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc
}

// ConfigFn mutates a Config.
type ConfigFn func(*Config)

// DefaultConfig returns the search defaults.
func DefaultConfig() Config {
	return Config{
		SearchParam:     "q",
		LimitParam:      "limit",
		DefaultLimit:    50,
		MaxLimit:        200,
		EmptySearchMode: EmptySearchNone,
	}
}

// NewConfig applies fns over the defaults and repairs invalid values.
func NewConfig(fns ...ConfigFn) Config {
	cfg := DefaultConfig()
	for _, fn := range fns {
		if fn != nil {
			fn(&cfg)
		}
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 50
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 200
	}
	if cfg.EmptySearchMode == "" {
		cfg.EmptySearchMode = EmptySearchNone
	}
	if cfg.SearchParam == "" {
		cfg.SearchParam = "q"
	}
	if cfg.LimitParam == "" {
		cfg.LimitParam = "limit"
	}
	return cfg
}

func WithSearchParam(name string) ConfigFn {
	return func(c *Config) { c.SearchParam = name }
}

func WithLimitParam(name string) ConfigFn {
	return func(c *Config) { c.LimitParam = name }
}

func WithDefaultLimit(limit int) ConfigFn {
	return func(c *Config) { c.DefaultLimit = limit }
}

func WithMaxLimit(limit int) ConfigFn {
	return func(c *Config) { c.MaxLimit = limit }
}

func WithEmptySearchMode(mode EmptySearchMode) ConfigFn {
	return func(c *Config) { c.EmptySearchMode = mode }
}

func WithGuard(guard GuardFunc) ConfigFn {
	return func(c *Config) { c.Guard = guard }
}

func clampLimit(limit int, cfg Config) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = cfg.DefaultLimit
	}
	if cfg.MaxLimit > 0 && limit > cfg.MaxLimit {
		return cfg.MaxLimit
	}
	return limit
}
