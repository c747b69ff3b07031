// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/h1bctl/internal/attrs"
	"github.com/staranto/h1bctl/internal/meta"
	"github.com/staranto/h1bctl/internal/output"
	"github.com/staranto/h1bctl/internal/pipeline"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr h1bctl` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "h1bctl")
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// BuildAttrs constructs an AttrList from the preview defaults and optional
// extras from --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command) (attrs.AttrList, error) {
	al := attrs.Defaults(output.PreviewColumns...)
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, &ConfigurationError{Err: err}
		}
	}
	al.SetGlobalTransformSpec()
	return al, nil
}

// ParamsFromCommand collects the query parameters from the parsed flags.
// Comma lists and repeated flags are flattened; blanks are dropped from
// titles.
func ParamsFromCommand(cmd *cli.Command) pipeline.Params {
	p := pipeline.Params{
		Cities:   trimAll(cmd.StringSlice("cities")),
		Cutoff:   int(cmd.Int("cutoff")),
		UseCache: cmd.Bool("use-cache"),
	}

	for _, t := range trimAll(cmd.StringSlice("titles")) {
		if t != "" {
			p.Titles = append(p.Titles, t)
		}
	}

	if cmd.IsSet("year") {
		y := int(cmd.Int("year"))
		p.Year = &y
	}

	return p
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func consoleIn(m meta.Meta) io.Reader {
	if m.In != nil {
		return m.In
	}
	return os.Stdin
}

func consoleOut(m meta.Meta) io.Writer {
	if m.Out != nil {
		return m.Out
	}
	return os.Stdout
}
