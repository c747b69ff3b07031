// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/h1bctl/internal/config"
)

// MultiValueFlags accept several space separated values after one flag.
var MultiValueFlags = map[string]bool{
	"--titles": true,
	"-t":       true,
	"--cities": true,
	"-c":       true,
}

// NewRootFlags returns the flags of the root command. Values not given on the
// command line fall back to the config file at cfg.Source, then to env.
func NewRootFlags(cfg config.Type) (flags []cli.Flag) {
	src := altsrc.StringSourcer(cfg.Source)

	flags = []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "job title patterns, matched case-insensitively anywhere in JOB TITLE",
			Validator: func(values []string) error {
				return FlagValidators(values, JammedFlagValidator)
			},
		},
		&cli.StringSliceFlag{
			Name:    "cities",
			Aliases: []string{"c"},
			Usage:   "cities to search, in order",
			Validator: func(values []string) error {
				return FlagValidators(values, JammedFlagValidator)
			},
		},
		&cli.IntFlag{
			Name:    "year",
			Aliases: []string{"y"},
			Usage:   "filing year. All years when omitted",
		},
		&cli.IntFlag{
			Name:  "cutoff",
			Usage: "minimum BASE SALARY to keep",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("cutoff", src),
			),
			Value: 0,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolFlag{
			Name:        "use-cache",
			Aliases:     []string{"u"},
			Usage:       "reuse the raw data from a previous run when present",
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "show",
			Usage:       "print the filtered data after writing it",
			HideDefault: true,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format for --show",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("output", src),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated column[:heading[:transform]] specs shown by --show",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("attrs", src),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:  "color",
			Usage: "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("color", src),
			),
			Value: false,
		},
		&cli.BoolWithInverseFlag{
			Name:  "headings",
			Usage: "show column headings with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("headings", src),
			),
			Value: true,
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "maximum rows shown by --show. 0 shows all",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("limit", src),
			),
			Value: 0,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:  "publish",
			Usage: "mirror both artifacts to s3://bucket/prefix",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("H1BCTL_PUBLISH"),
				yaml.YAML("publish.s3", src),
			),
		},
		&cli.BoolFlag{
			Name:        "tldr",
			Usage:       "show tldr page",
			Hidden:      !pathHas("tldr"),
			HideDefault: true,
		},
		&cli.BoolFlag{
			Name:        "version",
			Aliases:     []string{"v"},
			Usage:       "h1bctl version info",
			HideDefault: true,
		},
	}

	return
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
