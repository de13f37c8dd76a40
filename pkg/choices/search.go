package choices

import (
	"sort"
	"strings"

	"github.com/goliatone/go-termmeta/pkg/field"
)

// Search returns the options whose value or label contains query, case
// insensitively. Prefix matches sort first, then by value.
func Search(options []field.Option, query string, limit int, cfg Config) []field.Option {
	limit = clampLimit(limit, cfg)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if cfg.EmptySearchMode != EmptySearchTop {
			return nil
		}
		if len(options) <= limit {
			return append([]field.Option{}, options...)
		}
		return append([]field.Option{}, options[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]match, 0, 32)
	for _, opt := range options {
		value := strings.ToLower(opt.Value)
		label := strings.ToLower(opt.Label)
		if !strings.Contains(value, q) && !strings.Contains(label, q) {
			continue
		}
		matches = append(matches, match{
			option:   opt,
			isPrefix: strings.HasPrefix(value, q) || strings.HasPrefix(label, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].option.Value < matches[j].option.Value
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]field.Option, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.option)
	}
	return out
}

type match struct {
	option   field.Option
	isPrefix bool
}
