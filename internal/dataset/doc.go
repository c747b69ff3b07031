// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package dataset holds the H-1B filing record model and its flat CSV
// encoding. A Dataset is an ordered header plus ordered records; nothing in
// this package mutates a Dataset in place.
package dataset
