package termmeta

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/hooks"
	"github.com/goliatone/go-termmeta/pkg/render"
	"github.com/goliatone/go-termmeta/pkg/save"
)

// Taxonomy is the handle returned for a registered taxonomy.
type Taxonomy struct {
	name    string
	manager *Manager
}

// Name returns the taxonomy slug.
func (t *Taxonomy) Name() string { return t.name }

// Fields returns the taxonomy's configurations in registration order.
func (t *Taxonomy) Fields() []field.Config {
	return t.manager.GetFields(t.name)
}

// RenderAdd renders the fields of the new-term screen with their defaults.
func (t *Taxonomy) RenderAdd(ctx context.Context, hidden ...render.HiddenField) ([]byte, error) {
	return t.manager.Render(ctx, "", render.Request{
		Taxonomy: t.name,
		Mode:     render.ModeAdd,
		Hidden:   hidden,
	})
}

// RenderEdit renders the fields of an existing term with its stored values.
func (t *Taxonomy) RenderEdit(ctx context.Context, termID int64, hidden ...render.HiddenField) ([]byte, error) {
	return t.manager.Render(ctx, "", render.Request{
		Taxonomy: t.name,
		Mode:     render.ModeEdit,
		TermID:   termID,
		Hidden:   hidden,
	})
}

// Save sanitises the submission and writes the taxonomy's fields for termID.
func (t *Taxonomy) Save(ctx context.Context, termID int64, sub save.Submission) save.Result {
	return t.manager.Save(ctx, t.name, termID, sub)
}

// Attach wires the taxonomy to the host's screen and lifecycle events: the
// add and edit screens render the fields, creating and editing a term saves
// them.
func (t *Taxonomy) Attach(registrar hooks.Registrar) error {
	if registrar == nil {
		return errors.New("termmeta: registrar is required")
	}
	render := func(ctx context.Context, w io.Writer, termID int64) error {
		var (
			out []byte
			err error
		)
		if termID == 0 {
			out, err = t.RenderAdd(ctx)
		} else {
			out, err = t.RenderEdit(ctx, termID)
		}
		if err != nil {
			return err
		}
		_, err = w.Write(out)
		return err
	}
	persist := func(ctx context.Context, termID int64, sub save.Submission) error {
		return resultError(t.Save(ctx, termID, sub))
	}

	return errors.Join(
		registrar.AddFormHook(hooks.AddFormEvent(t.name), render),
		registrar.AddFormHook(hooks.EditFormEvent(t.name), render),
		registrar.AddSaveHook(hooks.CreatedEvent(t.name), persist),
		registrar.AddSaveHook(hooks.EditedEvent(t.name), persist),
	)
}

// resultError joins the per-field storage failures of a save, ordered by key.
func resultError(result save.Result) error {
	if len(result.Failed) == 0 {
		return nil
	}
	keys := make([]string, 0, len(result.Failed))
	for key := range result.Failed {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	errs := make([]error, 0, len(keys))
	for _, key := range keys {
		errs = append(errs, result.Failed[key])
	}
	return fmt.Errorf("termmeta: save: %w", errors.Join(errs...))
}
