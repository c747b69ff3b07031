// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/h1bctl/internal/aggregator"
	"github.com/staranto/h1bctl/internal/cache"
	"github.com/staranto/h1bctl/internal/fetcher"
	"github.com/staranto/h1bctl/internal/meta"
	"github.com/staranto/h1bctl/internal/output"
	"github.com/staranto/h1bctl/internal/pipeline"
	"github.com/staranto/h1bctl/internal/publish"
)

// RootCommandAction validates the parameters, runs the pipeline and then
// handles the optional preview and S3 mirror. pipeline.ErrAborted is passed
// through untouched so the caller can treat it as a clean exit.
func RootCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd) {
		return nil
	}

	params := ParamsFromCommand(cmd)
	if err := ValidateParams(params); err != nil {
		return err
	}
	log.Debugf("params: %+v", params)

	al, err := BuildAttrs(cmd)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	driver := NewDriver(m)
	res, err := driver.Run(ctx, params)
	if err != nil {
		return err
	}

	if cmd.Bool("show") {
		opts := output.Options{
			Format: cmd.String("output"),
			Color:  cmd.Bool("color"),
			Titles: cmd.Bool("headings"),
			Limit:  int(cmd.Int("limit")),
			Colors: output.ColorsFromConfig(m.Config),
			Attrs:  al,
		}
		if err := output.Spit(driver.Out, res.Filtered, opts); err != nil {
			return err
		}
	}

	if target := cmd.String("publish"); target != "" {
		pub, err := publish.New(ctx, m.Config, target)
		if err != nil {
			return err
		}
		if err := pub.Publish(ctx, res.RawPath, res.FilteredPath); err != nil {
			return err
		}
		fmt.Fprintf(driver.Out, "Published to %s\n", target)
	}

	return nil
}

// NewDriver wires the production collaborators of a pipeline run from m.
func NewDriver(m meta.Meta) *pipeline.Driver {
	out := consoleOut(m)
	raw := cache.NewStore(m.Paths.Raw)
	purge, _ := m.Config.GetInt("cache.clean", 0)

	return &pipeline.Driver{
		Paths: m.Paths,
		Cache: raw,
		Aggregator: &aggregator.Aggregator{
			Fetcher: fetcher.NewFromConfig(m.Config, fetcher.WithOutput(out)),
			Saver:   raw,
		},
		Filtered:   cache.NewStore(m.Paths.Filtered),
		Confirmer:  pipeline.ConsoleConfirmer{In: consoleIn(m), Out: out},
		Out:        out,
		PurgeHours: purge,
	}
}
