// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/h1bctl/internal/command"
	"github.com/staranto/h1bctl/internal/config"
	mylog "github.com/staranto/h1bctl/internal/log"
	"github.com/staranto/h1bctl/internal/pipeline"
	"github.com/staranto/h1bctl/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNoConfig) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log.Debugf("config: %s", cfg.Source)

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No arguments specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(cfg, args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	return exitCode(app.Run(ctx, args))
}

// exitCode maps the result of a run to the process exit status.
func exitCode(err error) int {
	var cerr *command.ConfigurationError
	switch {
	case err == nil, errors.Is(err, pipeline.ErrAborted):
		return 0
	case errors.As(err, &cerr):
		fmt.Fprintln(os.Stderr, err)
		return 1
	default:
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
}

// mangleArguments expands an @set, or @defaults when none is given, from the
// sets section of the config and rewrites space separated multi-value flags
// (--titles a b) into repeated flags (--titles a --titles b). Set arguments
// are inserted ahead of the command line ones so the latter win.
func mangleArguments(cfg config.Type, args []string) []string {
	// Short-circuit for --help/-h and subcommands.
	for _, a := range args[1:] {
		if a == "--help" || a == "-h" {
			return []string{args[0], "--help"}
		}
	}
	if args[1] == "completion" {
		return args
	}

	set := "defaults"
	explicit := false
	rest := make([]string, 0, len(args))
	for _, a := range args[1:] {
		if !explicit && strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			explicit = true
			continue
		}
		rest = append(rest, a)
	}

	var setArgs []string
	entries, err := cfg.GetStringSlice("sets." + set)
	if err != nil && explicit {
		log.Warnf("argument set %q not found in config", set)
	}
	for _, e := range entries {
		setArgs = append(setArgs, strings.Fields(e)...)
	}

	mangled := []string{args[0]}
	mangled = append(mangled, expandMultiValue(setArgs)...)
	mangled = append(mangled, expandMultiValue(rest)...)

	log.Debugf("set=%s, args=%v", set, mangled)
	return mangled
}

// expandMultiValue repeats the current multi-value flag in front of each bare
// value that follows it.
func expandMultiValue(args []string) []string {
	out := make([]string, 0, len(args))
	current := ""
	pending := false

	flush := func() {
		if pending {
			out = append(out, current)
		}
		current, pending = "", false
	}

	for _, a := range args {
		switch {
		case command.MultiValueFlags[a]:
			flush()
			current, pending = a, true
		case strings.HasPrefix(a, "-"):
			flush()
			out = append(out, a)
		case current != "":
			out = append(out, current, a)
			pending = false
		default:
			out = append(out, a)
		}
	}
	flush()

	return out
}
