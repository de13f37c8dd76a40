package field

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned for empty field keys.
	ErrInvalidKey = errors.New("field: key is required")
	// ErrUnknownType is returned when a type tag is not registered.
	ErrUnknownType = errors.New("field: unknown field type")
	// ErrInvalidTaxonomy is returned for empty taxonomy names.
	ErrInvalidTaxonomy = errors.New("field: taxonomy is required")
)

// ConfigError reports a registration failure for one field of a taxonomy.
type ConfigError struct {
	Taxonomy string
	Key      string
	Err      error
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("field: register %q: %v", e.Taxonomy, e.Err)
	}
	return fmt.Sprintf("field: register %q field %q: %v", e.Taxonomy, e.Key, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
