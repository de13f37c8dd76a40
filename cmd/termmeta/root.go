package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-termmeta/internal/app"
	"github.com/goliatone/go-termmeta/internal/config"
	"github.com/goliatone/go-termmeta/internal/logging"
	"github.com/goliatone/go-termmeta/pkg/access"
)

// cli carries the state shared by every subcommand.
type cli struct {
	configFile string
	fieldsFile string
	roles      []string
	actorID    string

	cfg    *config.Config
	logger *zap.Logger
	app    *app.App
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "termmeta",
		Short:         "Custom metadata fields for taxonomy terms",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd.Context())
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.teardown()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: ./termmeta.yaml)")
	flags.StringVar(&c.fieldsFile, "fields", "", "field declaration file (overrides fields.path)")
	flags.StringSliceVar(&c.roles, "role", []string{"administrator"}, "roles of the acting user")
	flags.StringVar(&c.actorID, "actor", "cli", "id of the acting user")

	root.AddCommand(
		newServeCmd(c),
		newFieldsCmd(c),
		newGetCmd(c),
		newSetCmd(c),
		newRenderCmd(c),
	)
	return root
}

func (c *cli) setup(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	if c.fieldsFile != "" {
		cfg.Fields.Path = c.fieldsFile
	}
	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	c.cfg, c.logger, c.app = cfg, logger, a
	return nil
}

func (c *cli) teardown() error {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if c.app != nil {
		return c.app.Close()
	}
	return nil
}

// actorContext attaches the --actor and --role identity to ctx.
func (c *cli) actorContext(ctx context.Context) context.Context {
	roles := make([]string, 0, len(c.roles))
	for _, role := range c.roles {
		if role = strings.TrimSpace(role); role != "" {
			roles = append(roles, role)
		}
	}
	return access.WithActor(ctx, access.Actor{ID: c.actorID, Roles: roles})
}

func parseTermID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid term id %q", raw)
	}
	return id, nil
}
