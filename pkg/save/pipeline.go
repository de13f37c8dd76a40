package save

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/meta"
	"github.com/goliatone/go-termmeta/pkg/sanitize"
)

// FieldSource provides the ordered configurations of a taxonomy.
type FieldSource interface {
	All(taxonomy string) []field.Config
}

// Result reports what a save pass did per field key.
type Result struct {
	Updated []string
	Deleted []string
	// Skipped lists fields left untouched: missing from the submission or
	// not permitted for the actor.
	Skipped []string
	Failed  map[string]error
}

// Pipeline sanitises submitted values and writes them to term metadata.
type Pipeline struct {
	Fields FieldSource
	Meta   meta.Store
	Access access.Authorizer
	Logger *zap.Logger
}

// Save processes every field configured for taxonomy in registration order.
// Checkboxes absent from the submission are saved as unchecked; any other
// absent field is skipped so its stored value stays as it is. Empty sanitised
// values delete the entry. Storage failures are logged and collected in the
// result, never retried.
func (p Pipeline) Save(ctx context.Context, taxonomy string, termID int64, sub Submission) Result {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	result := Result{}
	if p.Fields == nil || p.Meta == nil {
		return result
	}
	if sub == nil {
		sub = Map(nil)
	}

	for _, cfg := range p.Fields.All(taxonomy) {
		if p.Access != nil && !p.Access.Can(ctx, cfg.Capability) {
			result.Skipped = append(result.Skipped, cfg.Key)
			continue
		}

		raw, present := sub.Lookup(cfg.Key)
		if cfg.Type() == field.TypeCheckbox {
			if present {
				raw = "1"
			} else {
				raw = "0"
			}
		} else if !present {
			result.Skipped = append(result.Skipped, cfg.Key)
			continue
		}

		value := sanitize.Value(cfg, raw)
		var err error
		if value == "" {
			err = p.Meta.Delete(ctx, termID, cfg.Key)
		} else {
			err = p.Meta.Set(ctx, termID, cfg.Key, value)
		}
		if err != nil {
			logger.Warn("term meta write failed",
				zap.String("taxonomy", taxonomy),
				zap.Int64("term_id", termID),
				zap.String("key", cfg.Key),
				zap.Error(err),
			)
			if result.Failed == nil {
				result.Failed = make(map[string]error)
			}
			result.Failed[cfg.Key] = fmt.Errorf("save: %s: %w", cfg.Key, err)
			continue
		}
		if value == "" {
			result.Deleted = append(result.Deleted, cfg.Key)
		} else {
			result.Updated = append(result.Updated, cfg.Key)
		}
	}

	logger.Debug("term meta saved",
		zap.String("taxonomy", taxonomy),
		zap.Int64("term_id", termID),
		zap.Strings("updated", result.Updated),
		zap.Strings("deleted", result.Deleted),
		zap.Strings("skipped", result.Skipped),
	)
	return result
}
