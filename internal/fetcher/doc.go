// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fetcher retrieves one city's worth of filings from the remote
// site and turns the first HTML table in the response into a dataset.
package fetcher
