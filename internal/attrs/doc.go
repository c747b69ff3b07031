// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package attrs parses the --attrs flag, which picks, renames and transforms
// the dataset columns shown by the preview.
package attrs
