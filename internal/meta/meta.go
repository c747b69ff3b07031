// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"io"

	"github.com/staranto/h1bctl/internal/cacheutil"
	"github.com/staranto/h1bctl/internal/config"
)

// Meta are the meta-options that are available to the command actions.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	Paths   cacheutil.Paths

	// In and Out are the operator's console. Nil means os.Stdin/os.Stdout.
	In  io.Reader
	Out io.Writer
}
