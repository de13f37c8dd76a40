package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/render"
)

// Renderer implements render.Renderer for terminal sessions. It prompts for
// every field of the form and serialises the answers the way a browser
// would post them: unchecked checkboxes are omitted.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	theme        Theme
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, form output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       &SurveyDriver{},
		outputFormat: OutputFormatFormURLEncoded,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatJSON {
		return "application/json"
	}
	return "application/x-www-form-urlencoded"
}

// Render prompts for each field in order, pre-filled with its current value,
// and returns the encoded submission. Hidden fields are carried through
// unchanged.
func (r *Renderer) Render(ctx context.Context, form render.Form) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, ErrNoDriver
	}

	values := url.Values{}
	for _, hidden := range form.Hidden {
		values.Set(hidden.Name, hidden.Value)
	}

	if form.Mode == render.ModeEdit {
		if err := r.info(ctx, fmt.Sprintf("Editing %s term %d", form.Taxonomy, form.TermID)); err != nil {
			return nil, err
		}
	}

	for _, view := range form.Fields {
		value, submit, err := r.promptField(ctx, view)
		if err != nil {
			return nil, fmt.Errorf("tui: field %q: %w", view.Key, err)
		}
		if submit {
			values.Set(view.Key, value)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) promptField(ctx context.Context, view render.FieldView) (string, bool, error) {
	message := r.message(view)
	switch view.Component {
	case field.ComponentCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: view.Checked,
			Help:    view.Description,
		})
		if err != nil {
			return "", false, err
		}
		return "1", checked, nil

	case field.ComponentSelect:
		labels := make([]string, 0, len(view.Options))
		current := -1
		for i, opt := range view.Options {
			labels = append(labels, optionLabel(opt))
			if opt.Selected {
				current = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: current,
			Help:         view.Description,
		})
		if err != nil {
			return "", false, err
		}
		if idx < 0 || idx >= len(view.Options) {
			return view.Value, true, nil
		}
		return view.Options[idx].Value, true, nil

	case field.ComponentTextarea:
		value, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: view.Value,
			Help:    view.Description,
		})
		return value, err == nil, err

	case field.ComponentNumber:
		return r.promptNumber(ctx, view, message)

	default:
		value, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: view.Value,
			Help:    helpText(view),
		})
		return value, err == nil, err
	}
}

// promptNumber re-prompts until the answer is blank or a number within the
// field's bounds.
func (r *Renderer) promptNumber(ctx context.Context, view render.FieldView, message string) (string, bool, error) {
	for {
		value, err := r.driver.Input(ctx, InputConfig{
			Message: message,
			Default: view.Value,
			Help:    helpText(view),
		})
		if err != nil {
			return "", false, err
		}
		problem := checkNumber(strings.TrimSpace(value), view)
		if problem == "" {
			return value, true, nil
		}
		if err := r.info(ctx, r.theme.ErrorPrefix+problem); err != nil {
			return "", false, err
		}
	}
}

func checkNumber(value string, view render.FieldView) string {
	if value == "" {
		return ""
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Sprintf("%q is not a number", value)
	}
	if lo, err := strconv.ParseFloat(view.Min, 64); err == nil && n < lo {
		return fmt.Sprintf("value must be at least %s", view.Min)
	}
	if hi, err := strconv.ParseFloat(view.Max, 64); err == nil && n > hi {
		return fmt.Sprintf("value must be at most %s", view.Max)
	}
	return ""
}

func (r *Renderer) message(view render.FieldView) string {
	label := strings.TrimSpace(view.Label)
	if label == "" {
		label = view.Key
	}
	return r.theme.PromptPrefix + label
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func helpText(view render.FieldView) string {
	if view.Description != "" {
		return view.Description
	}
	return view.Placeholder
}

func optionLabel(opt render.OptionView) string {
	if opt.Label == "" || opt.Label == opt.Value {
		return opt.Value
	}
	return fmt.Sprintf("%s (%s)", opt.Label, opt.Value)
}

func (r *Renderer) serialize(values url.Values) ([]byte, error) {
	if r.outputFormat != OutputFormatJSON {
		return []byte(values.Encode()), nil
	}
	flat := make(map[string]string, len(values))
	for key := range values {
		flat[key] = values.Get(key)
	}
	out, err := json.Marshal(flat)
	if err != nil {
		return nil, fmt.Errorf("tui: encode json: %w", err)
	}
	return out, nil
}
