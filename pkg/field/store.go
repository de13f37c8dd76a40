package field

import (
	"sort"
	"strings"
	"sync"
)

type fieldSet struct {
	order []string
	byKey map[string]Config
}

// Store holds merged field configurations keyed by taxonomy then field key.
// It is the configuration context handed to renderers and the save pipeline.
type Store struct {
	mu         sync.RWMutex
	taxonomies map[string]*fieldSet
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		taxonomies: make(map[string]*fieldSet),
	}
}

// Register merges every declaration with the defaults and stores the result
// under taxonomy. All declarations are validated before anything is written,
// so a failed call leaves the taxonomy untouched. Re-registering a key
// replaces its configuration in place.
func (s *Store) Register(taxonomy string, fields Fields) error {
	taxonomy = strings.TrimSpace(taxonomy)
	if taxonomy == "" {
		return &ConfigError{Err: ErrInvalidTaxonomy}
	}

	merged := make([]Config, 0, len(fields))
	for _, entry := range fields {
		cfg, err := NewConfig(entry.Key, entry.Raw)
		if err != nil {
			return &ConfigError{Taxonomy: taxonomy, Key: entry.Key, Err: err}
		}
		merged = append(merged, cfg)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.taxonomies[taxonomy]
	if !ok {
		set = &fieldSet{byKey: make(map[string]Config, len(merged))}
		s.taxonomies[taxonomy] = set
	}
	for _, cfg := range merged {
		if _, exists := set.byKey[cfg.Key]; !exists {
			set.order = append(set.order, cfg.Key)
		}
		set.byKey[cfg.Key] = cfg
	}
	return nil
}

// All returns the configurations of taxonomy in registration order. Unknown
// taxonomies yield an empty slice.
func (s *Store) All(taxonomy string) []Config {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.taxonomies[strings.TrimSpace(taxonomy)]
	if !ok {
		return []Config{}
	}
	out := make([]Config, 0, len(set.order))
	for _, key := range set.order {
		out = append(out, set.byKey[key])
	}
	return out
}

// Get returns a single configuration.
func (s *Store) Get(taxonomy, key string) (Config, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.taxonomies[strings.TrimSpace(taxonomy)]
	if !ok {
		return Config{}, false
	}
	cfg, ok := set.byKey[strings.TrimSpace(key)]
	return cfg, ok
}

// Has reports whether any field has been registered for taxonomy.
func (s *Store) Has(taxonomy string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.taxonomies[strings.TrimSpace(taxonomy)]
	return ok
}

// Taxonomies returns the registered taxonomy names, sorted.
func (s *Store) Taxonomies() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.taxonomies))
	for name := range s.taxonomies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
