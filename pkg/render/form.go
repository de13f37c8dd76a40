package render

import (
	"context"
	"fmt"
	"strconv"

	"github.com/goliatone/go-termmeta/pkg/access"
	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/meta"
)

// Mode selects between the new-term and existing-term screens.
type Mode string

const (
	ModeAdd  Mode = "add"
	ModeEdit Mode = "edit"
)

// Request identifies the screen being built.
type Request struct {
	Taxonomy string
	Mode     Mode
	// TermID is only read in ModeEdit.
	TermID int64
	Hidden []HiddenField
}

// Form is the renderer-facing view of a term screen.
type Form struct {
	Taxonomy string        `json:"taxonomy"`
	Mode     Mode          `json:"mode"`
	TermID   int64         `json:"term_id,omitempty"`
	Fields   []FieldView   `json:"fields"`
	Hidden   []HiddenField `json:"hidden,omitempty"`
}

// FieldView is one visible field with its current value resolved.
type FieldView struct {
	Key         string       `json:"key"`
	ID          string       `json:"id"`
	Label       string       `json:"label"`
	Description string       `json:"description,omitempty"`
	Placeholder string       `json:"placeholder,omitempty"`
	Type        field.Type   `json:"type"`
	Component   string       `json:"component"`
	InputType   string       `json:"input_type,omitempty"`
	Value       string       `json:"value"`
	Checked     bool         `json:"checked,omitempty"`
	Rows        int          `json:"rows,omitempty"`
	Min         string       `json:"min,omitempty"`
	Max         string       `json:"max,omitempty"`
	Step        string       `json:"step,omitempty"`
	Options     []OptionView `json:"options,omitempty"`
}

// OptionView is one dropdown entry.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// FieldSource provides the ordered configurations of a taxonomy.
type FieldSource interface {
	All(taxonomy string) []field.Config
}

// Builder resolves configurations, permissions and stored values into a
// Form. It never mutates state.
type Builder struct {
	Fields FieldSource
	Values meta.Reader
	Access access.Authorizer
}

// Build produces the Form for req. Fields the actor may not manage are
// omitted. In ModeAdd every field shows its default; in ModeEdit the stored
// value is used, falling back to the default when empty or absent.
func (b Builder) Build(ctx context.Context, req Request) (Form, error) {
	form := Form{
		Taxonomy: req.Taxonomy,
		Mode:     req.Mode,
		TermID:   req.TermID,
		Hidden:   SortedHiddenFields(MergeHiddenFields(nil, req.Hidden...)),
	}
	if b.Fields == nil {
		return form, nil
	}
	if req.Mode != ModeAdd && req.Mode != ModeEdit {
		return form, fmt.Errorf("render: unknown mode %q", req.Mode)
	}

	for _, cfg := range b.Fields.All(req.Taxonomy) {
		if b.Access != nil && !b.Access.Can(ctx, cfg.Capability) {
			continue
		}

		value := cfg.Default
		if req.Mode == ModeEdit && b.Values != nil {
			stored, ok, err := b.Values.Get(ctx, req.TermID, cfg.Key)
			if err != nil {
				return Form{}, fmt.Errorf("render: read %q for term %d: %w", cfg.Key, req.TermID, err)
			}
			if ok && stored != "" {
				value = stored
			}
		}
		form.Fields = append(form.Fields, NewFieldView(cfg, value))
	}
	return form, nil
}

// NewFieldView projects cfg and its current value into a FieldView,
// resolving dropdown options (invoking providers) and the checked state.
func NewFieldView(cfg field.Config, value string) FieldView {
	typ := cfg.Type()
	view := FieldView{
		Key:         cfg.Key,
		ID:          ControlID(cfg.Key),
		Label:       cfg.Label,
		Description: cfg.Description,
		Placeholder: cfg.Placeholder,
		Type:        typ,
		Component:   typ.Component(),
		InputType:   typ.InputType(),
		Value:       value,
	}

	switch kind := cfg.Kind.(type) {
	case field.Textarea:
		view.Rows = cfg.Rows()
	case field.Number:
		view.Min = formatBound(kind.Min)
		view.Max = formatBound(kind.Max)
		view.Step = formatBound(kind.Step)
	case field.Select, field.AmountType:
		for _, opt := range field.ResolveOptions(kind) {
			view.Options = append(view.Options, OptionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == value,
			})
		}
	case field.Checkbox:
		view.Checked = field.Truthy(value)
	}
	return view
}

// ControlID derives the DOM id of a field's control.
func ControlID(key string) string {
	return "term-meta-" + key
}

func formatBound(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
