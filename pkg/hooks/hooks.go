package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-termmeta/pkg/save"
)

// FormHook writes extra markup into a term screen. termID is zero on the
// add screen.
type FormHook func(ctx context.Context, w io.Writer, termID int64) error

// SaveHook runs after a term has been created or updated.
type SaveHook func(ctx context.Context, termID int64, sub save.Submission) error

// Registrar attaches hooks to named host events.
type Registrar interface {
	AddFormHook(event string, hook FormHook) error
	AddSaveHook(event string, hook SaveHook) error
}

// Event names for a taxonomy's screens and lifecycle.
func AddFormEvent(taxonomy string) string  { return taxonomy + "_add_form_fields" }
func EditFormEvent(taxonomy string) string { return taxonomy + "_edit_form_fields" }
func CreatedEvent(taxonomy string) string  { return "created_" + taxonomy }
func EditedEvent(taxonomy string) string   { return "edited_" + taxonomy }

// Bus is an in-process Registrar. Hooks fire in registration order.
type Bus struct {
	mu    sync.RWMutex
	forms map[string][]FormHook
	saves map[string][]SaveHook
}

var _ Registrar = (*Bus)(nil)

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		forms: make(map[string][]FormHook),
		saves: make(map[string][]SaveHook),
	}
}

func (b *Bus) AddFormHook(event string, hook FormHook) error {
	event = strings.TrimSpace(event)
	if event == "" || hook == nil {
		return errors.New("hooks: event name and hook required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forms[event] = append(b.forms[event], hook)
	return nil
}

func (b *Bus) AddSaveHook(event string, hook SaveHook) error {
	event = strings.TrimSpace(event)
	if event == "" || hook == nil {
		return errors.New("hooks: event name and hook required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.saves[event] = append(b.saves[event], hook)
	return nil
}

// RunForm fires the form hooks of event, stopping at the first error.
func (b *Bus) RunForm(ctx context.Context, event string, w io.Writer, termID int64) error {
	b.mu.RLock()
	hooks := slices.Clone(b.forms[event])
	b.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, w, termID); err != nil {
			return fmt.Errorf("hooks: %s: %w", event, err)
		}
	}
	return nil
}

// RunSave fires every save hook of event. A failing hook does not stop the
// others; all failures are returned joined.
func (b *Bus) RunSave(ctx context.Context, event string, termID int64, sub save.Submission) error {
	b.mu.RLock()
	hooks := slices.Clone(b.saves[event])
	b.mu.RUnlock()

	var errs []error
	for _, hook := range hooks {
		if err := hook(ctx, termID, sub); err != nil {
			errs = append(errs, fmt.Errorf("hooks: %s: %w", event, err))
		}
	}
	return errors.Join(errs...)
}

// Events lists the events with at least one hook, sorted.
func (b *Bus) Events() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	seen := make(map[string]struct{}, len(b.forms)+len(b.saves))
	for event := range b.forms {
		seen[event] = struct{}{}
	}
	for event := range b.saves {
		seen[event] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for event := range seen {
		out = append(out, event)
	}
	slices.Sort(out)
	return out
}
