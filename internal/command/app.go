// Package command builds cartctl's command tree. Each subcommand has a
// Builder that wires flags and metadata and an Action that drives the
// cart client.
package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/bthinkxdev/sulthan-perfume/internal/config"
	"github.com/bthinkxdev/sulthan-perfume/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg immediately following the binary is the subcommand and also
	// the namespace key for config lookups. It could be -h/--help, so
	// ignore it if it appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	cfg, err := config.Load(ns)
	if err != nil && !errors.Is(err, config.ErrNoConfigFile) {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	m := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:  "cartctl",
		Usage: "storefront cart from the command line",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "cartctl version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		AddCommandBuilder(app, m),
		CountCommandBuilder(app, m),
		MergeCommandBuilder(app, m),
		RemoveCommandBuilder(app, m),
		ShowCommandBuilder(app, m),
		StatusCommandBuilder(app, m),
		UpdateCommandBuilder(app, m),
		WatchCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
