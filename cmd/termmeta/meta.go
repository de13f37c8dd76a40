package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	termmeta "github.com/goliatone/go-termmeta"
	"github.com/goliatone/go-termmeta/pkg/meta"
	"github.com/goliatone/go-termmeta/pkg/render"
	"github.com/goliatone/go-termmeta/pkg/renderers/tui"
	"github.com/goliatone/go-termmeta/pkg/save"
)

func (c *cli) taxonomy(name string) (*termmeta.Taxonomy, error) {
	tax, ok := c.app.Manager.Taxonomy(name)
	if !ok {
		return nil, fmt.Errorf("taxonomy %q has no registered fields", name)
	}
	return tax, nil
}

func newGetCmd(c *cli) *cobra.Command {
	var asJSON, stored bool
	cmd := &cobra.Command{
		Use:   "get <taxonomy> <term-id> [key]",
		Short: "Print stored term meta, falling back to field defaults",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := c.taxonomy(args[0])
			if err != nil {
				return err
			}
			id, err := parseTermID(args[1])
			if err != nil {
				return err
			}
			ctx := c.actorContext(cmd.Context())

			if stored {
				return c.writeStored(cmd, id, asJSON)
			}
			if len(args) == 3 {
				value, err := c.app.Manager.GetFieldValue(ctx, id, args[2], tax.Name())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}

			values := make(map[string]string)
			keys := make([]string, 0)
			for _, cfg := range tax.Fields() {
				if !c.app.Manager.Can(ctx, cfg.Capability) {
					continue
				}
				value, err := c.app.Manager.GetFieldValue(ctx, id, cfg.Key, tax.Name())
				if err != nil {
					return err
				}
				values[cfg.Key] = value
				keys = append(keys, cfg.Key)
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(values)
			}
			cyan := color.New(color.FgCyan)
			for _, key := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", cyan.Sprint(key), values[key])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print a JSON object")
	cmd.Flags().BoolVar(&stored, "stored", false, "print every stored entry as is, declared or not (manage_options)")
	return cmd
}

// writeStored dumps the raw entries of a term, including keys no field
// declares any more.
func (c *cli) writeStored(cmd *cobra.Command, id int64, asJSON bool) error {
	ctx := c.actorContext(cmd.Context())
	if !c.app.Manager.Can(ctx, "manage_options") {
		return fmt.Errorf("roles %s cannot read raw term meta", strings.Join(c.roles, ","))
	}
	values, err := c.app.Manager.Meta().All(ctx, id)
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}
	gray := color.New(color.FgHiBlack)
	for _, key := range meta.Keys(values) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", gray.Sprint(key), values[key])
	}
	return nil
}

func newSetCmd(c *cli) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "set <taxonomy> <term-id> [key=value...]",
		Short: "Save term meta through the sanitising save pipeline",
		Long: `Set saves values the way a submitted term form would: every field is
sanitised, empty values delete the entry, and checkboxes missing from the
arguments are saved as unchecked.

With --interactive, each field is prompted for, prefilled with its current
value.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := c.taxonomy(args[0])
			if err != nil {
				return err
			}
			id, err := parseTermID(args[1])
			if err != nil {
				return err
			}
			ctx := c.actorContext(cmd.Context())

			var sub save.Submission
			if interactive {
				sub, err = c.prompt(cmd, tax, id)
				if err != nil {
					return err
				}
			} else {
				values := make(save.Map, len(args)-2)
				for _, pair := range args[2:] {
					key, value, ok := strings.Cut(pair, "=")
					if !ok || strings.TrimSpace(key) == "" {
						return fmt.Errorf("expected key=value, got %q", pair)
					}
					values[strings.TrimSpace(key)] = value
				}
				sub = values
			}

			result := tax.Save(ctx, id, sub)
			writeResult(cmd, result)
			if len(result.Failed) > 0 {
				return fmt.Errorf("%d field(s) could not be saved", len(result.Failed))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for every field")
	return cmd
}

func (c *cli) prompt(cmd *cobra.Command, tax *termmeta.Taxonomy, id int64) (save.Submission, error) {
	registry := c.app.Manager.Registry()
	if !registry.Has("tui") {
		if err := registry.Register(tui.New(tui.WithPromptDriver(&tui.SurveyDriver{Out: cmd.ErrOrStderr()}))); err != nil {
			return nil, err
		}
	}
	out, err := c.app.Manager.Render(c.actorContext(cmd.Context()), "tui", render.Request{
		Taxonomy: tax.Name(),
		Mode:     render.ModeEdit,
		TermID:   id,
	})
	if err != nil {
		return nil, err
	}
	values, err := url.ParseQuery(string(out))
	if err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}
	return save.Values(values), nil
}

func writeResult(cmd *cobra.Command, result save.Result) {
	w := cmd.OutOrStdout()
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)
	red := color.New(color.FgRed)

	for _, key := range result.Updated {
		green.Fprintf(w, "updated %s\n", key)
	}
	for _, key := range result.Deleted {
		yellow.Fprintf(w, "deleted %s\n", key)
	}
	for _, key := range result.Skipped {
		gray.Fprintf(w, "skipped %s\n", key)
	}
	for key, err := range result.Failed {
		red.Fprintf(w, "failed  %s: %v\n", key, err)
	}
}

func newRenderCmd(c *cli) *cobra.Command {
	var termID int64
	cmd := &cobra.Command{
		Use:   "render <taxonomy>",
		Short: "Print the HTML of the add screen, or the edit screen with --term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, err := c.taxonomy(args[0])
			if err != nil {
				return err
			}
			ctx := c.actorContext(cmd.Context())
			var out []byte
			if termID > 0 {
				out, err = tax.RenderEdit(ctx, termID, render.TaxonomyField(tax.Name()), render.TermIDField(termID))
			} else {
				out, err = tax.RenderAdd(ctx, render.TaxonomyField(tax.Name()))
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().Int64Var(&termID, "term", 0, "term id to render the edit screen for")
	return cmd
}
