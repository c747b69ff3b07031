// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package pipeline drives a single run: check the cache, fetch or load the
// raw filings, filter, sort and persist the result.
package pipeline
