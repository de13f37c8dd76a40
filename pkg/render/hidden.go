package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Hidden input names the host screens post alongside the visible fields.
const (
	HiddenTaxonomy = "taxonomy"
	HiddenTermID   = "tag_ID"
	HiddenNonce    = "_termmeta_nonce"
)

// HiddenField is a hidden input emitted before the visible fields.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// TaxonomyField carries the taxonomy slug back to the save handler.
func TaxonomyField(taxonomy string) HiddenField {
	return Hidden(HiddenTaxonomy, taxonomy)
}

// TermIDField carries the edited term id back to the save handler.
func TermIDField(termID int64) HiddenField {
	return Hidden(HiddenTermID, strconv.FormatInt(termID, 10))
}

// NonceField carries a request token, typically a CSRF nonce.
func NonceField(token string) HiddenField {
	return Hidden(HiddenNonce, token)
}

// MergeHiddenFields returns a copy of base with the provided fields applied.
// Empty names are ignored; later fields win on name collisions.
func MergeHiddenFields(base map[string]string, fields ...HiddenField) map[string]string {
	if len(base) == 0 && len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(fields))
	for key, value := range base {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	for _, hidden := range fields {
		name := strings.TrimSpace(hidden.Name)
		if name == "" {
			continue
		}
		out[name] = hidden.Value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// SortedHiddenFields returns fields ordered by name for deterministic
// rendering.
func SortedHiddenFields(fields map[string]string) []HiddenField {
	if len(fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]HiddenField, 0, len(names))
	for _, name := range names {
		result = append(result, HiddenField{Name: name, Value: fields[name]})
	}
	return result
}
