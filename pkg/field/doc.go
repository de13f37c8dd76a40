// Package field declares term metadata fields. It owns the closed set of type
// tags (each mapped to a rendering strategy), the per-type Kind variants that
// carry type-specific parameters (numeric bounds, option sources, textarea
// rows), and the Store that merges caller declarations with defaults and
// keeps them per taxonomy in declaration order. Declarations can be written
// in Go with Define or loaded from YAML with LoadYAML.
package field
