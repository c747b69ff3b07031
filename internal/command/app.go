// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/staranto/h1bctl/internal/cacheutil"
	"github.com/staranto/h1bctl/internal/config"
	"github.com/staranto/h1bctl/internal/meta"
)

// InitApp builds the root command. A config or data directory problem is
// returned as a ConfigurationError.
func InitApp(ctx context.Context, args []string, cfg config.Type) (*cli.Command, error) {
	paths, err := cacheutil.NewPaths(cfg)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	m := meta.Meta{
		Args:    args,
		Config:  cfg,
		Context: ctx,
		Paths:   paths,
	}

	return NewRootCommand(m), nil
}

// NewRootCommand constructs the h1bctl command around m.
func NewRootCommand(m meta.Meta) *cli.Command {
	app := &cli.Command{
		Name:      "h1bctl",
		Usage:     "scrape, cache and filter H-1B salary filings",
		UsageText: "h1bctl [@set] --cities CITY... [--titles TITLE...] [--year YEAR] [--cutoff SALARY] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags:           NewRootFlags(m.Config),
		Action:          RootCommandAction,
		OnUsageError:    usageError,
		HideHelpCommand: true,
	}

	app.Commands = append(app.Commands, CompletionCommandBuilder(app, m))

	// Make sure flags are sorted for the --help text.
	sort.Slice(app.Flags, func(i, j int) bool {
		return app.Flags[i].Names()[0] < app.Flags[j].Names()[0]
	})

	return app
}

// usageError reports flag parsing problems as configuration errors.
func usageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &ConfigurationError{Err: fmt.Errorf("invalid arguments: %w", err)}
}
