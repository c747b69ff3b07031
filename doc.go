// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// h1bctl is the main package for the h1bctl command line tool. It scrapes
// H-1B salary filings per city, caches the raw table and writes a filtered,
// sorted copy. It wires the CLI, delegates to internal packages, and serves as
// the entry point.
package main
