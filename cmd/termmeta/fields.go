package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-termmeta/pkg/field"
	"github.com/goliatone/go-termmeta/pkg/schema"
)

func newFieldsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Inspect the declared fields",
	}
	cmd.AddCommand(newFieldsListCmd(c), newFieldsSchemaCmd(c))
	return cmd
}

func newFieldsListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list [taxonomy...]",
		Short: "List fields per taxonomy",
		RunE: func(cmd *cobra.Command, args []string) error {
			taxonomies := args
			if len(taxonomies) == 0 {
				taxonomies = c.app.Manager.Fields().Taxonomies()
			}
			if len(taxonomies) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no fields registered")
				return nil
			}
			for _, name := range taxonomies {
				writeFieldList(cmd.OutOrStdout(), name, c.app.Manager.GetFields(name))
			}
			return nil
		},
	}
}

func writeFieldList(w io.Writer, taxonomy string, fields []field.Config) {
	bold := color.New(color.Bold, color.FgCyan)
	cyan := color.New(color.FgCyan)
	gray := color.New(color.FgHiBlack)

	bold.Fprintf(w, "%s\n", taxonomy)
	if len(fields) == 0 {
		gray.Fprintln(w, "  (no fields)")
		return
	}
	for _, cfg := range fields {
		fmt.Fprintf(w, "  %s ", cyan.Sprint(cfg.Key))
		fmt.Fprintf(w, "%-12s", cfg.Type())
		if cfg.Label != "" {
			fmt.Fprintf(w, " %s", cfg.Label)
		}
		var extras []string
		if cfg.Default != "" {
			extras = append(extras, "default="+cfg.Default)
		}
		if cfg.Capability != field.DefaultCapability {
			extras = append(extras, "capability="+cfg.Capability)
		}
		if len(extras) > 0 {
			gray.Fprintf(w, " (%s)", strings.Join(extras, ", "))
		}
		fmt.Fprintln(w)
	}
}

func newFieldsSchemaCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI document of the term meta API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc := schema.Document(c.app.Manager.Fields(), "Term meta", version)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		},
	}
}
