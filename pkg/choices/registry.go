package choices

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-termmeta/pkg/field"
)

// Built-in source names.
const (
	SourceTimezones   = "timezones"
	SourceAmountTypes = "amount_types"
)

// Registry maps names to option sources.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]field.OptionsSource
}

// NewRegistry returns a registry holding the built-in sources.
func NewRegistry() *Registry {
	r := &Registry{sources: make(map[string]field.OptionsSource)}
	r.sources[SourceTimezones] = Timezones()
	r.sources[SourceAmountTypes] = field.DefaultAmountTypes
	return r
}

// Register adds or replaces a named source.
func (r *Registry) Register(name string, source field.OptionsSource) error {
	name = strings.TrimSpace(name)
	if name == "" || source == nil {
		return fmt.Errorf("choices: name and source are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = source
	return nil
}

// Get returns the source registered under name.
func (r *Registry) Get(name string) (field.OptionsSource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	source, ok := r.sources[strings.TrimSpace(name)]
	return source, ok
}

// Names lists the registered sources, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
