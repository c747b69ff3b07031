// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache provides the file-based store for the raw filing dataset so a
// later run can skip the network entirely.
package cache
