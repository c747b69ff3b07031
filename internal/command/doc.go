// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package command defines the CLI for h1bctl. It wires flags, validators, the
// root action and shell completion.
package command
