package vanilla

import (
	"maps"
	"path"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Partial keys for the chrome templates. Component partial keys live in the
// components package.
const (
	PartialForm    = "forms.form"
	PartialAddRow  = "chrome.add-row"
	PartialEditRow = "chrome.edit-row"
)

// ThemeConfig flattens a manifest and one of its variants into renderer
// configuration. Variant templates, tokens and asset files win over the
// manifest's own. An unknown variant uses the manifest alone.
func ThemeConfig(manifest *theme.Manifest, variant string) *theme.RendererConfig {
	if manifest == nil {
		return nil
	}
	partials := maps.Clone(manifest.Templates)
	tokens := maps.Clone(manifest.Tokens)
	prefix := manifest.Assets.Prefix
	files := maps.Clone(manifest.Assets.Files)

	if v, ok := manifest.Variants[variant]; ok {
		partials = mergeStrings(partials, v.Templates)
		tokens = mergeStrings(tokens, v.Tokens)
		files = mergeStrings(files, v.Assets.Files)
		if v.Assets.Prefix != "" {
			prefix = v.Assets.Prefix
		}
	} else {
		variant = ""
	}

	cssVars := make(map[string]string, len(tokens))
	for name, value := range tokens {
		cssVars["--"+name] = value
	}

	return &theme.RendererConfig{
		Theme:    manifest.Name,
		Variant:  variant,
		Partials: partials,
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file := files[key]
			if file == "" {
				file = key
			}
			if file == "" || isAbsoluteURL(file) || prefix == "" {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + path.Clean(strings.TrimLeft(file, "/"))
		},
	}
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	maps.Copy(dst, src)
	return dst
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "/") || strings.Contains(s, "://")
}

// cssVarsStyle renders custom properties as a declaration list. Values that
// could escape the declaration block are dropped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		value := strings.TrimSpace(vars[name])
		if !strings.HasPrefix(name, "--") || value == "" || strings.ContainsAny(name+value, "<>{};\\\"'") {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteByte(';')
	}
	return b.String()
}
