// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"

	"github.com/staranto/h1bctl/internal/attrs"
	"github.com/staranto/h1bctl/internal/config"
	"github.com/staranto/h1bctl/internal/dataset"
)

// Formats accepted by Spit.
var Formats = []string{"text", "json", "yaml", "csv"}

// PreviewColumns are shown when no attrs are given, when present.
var PreviewColumns = []string{
	dataset.ColEmployer,
	dataset.ColJobTitle,
	dataset.ColBaseSalary,
	dataset.ColLocation,
}

// Colors for the text table.
type Colors struct {
	Title string
	Even  string
	Odd   string
}

// Options control Spit.
type Options struct {
	Format string
	Color  bool
	Titles bool
	Limit  int
	Colors Colors
	// Attrs selects the columns shown. Empty means PreviewColumns for text
	// and every column for json and yaml.
	Attrs attrs.AttrList
}

// ColorsFromConfig reads colors.title, colors.even and colors.odd.
func ColorsFromConfig(cfg config.Type) Colors {
	title, _ := cfg.GetString("colors.title", "#f6be00")
	even, _ := cfg.GetString("colors.even", "#ffffff")
	odd, _ := cfg.GetString("colors.odd", "#00c8f0")
	return Colors{Title: title, Even: even, Odd: odd}
}

// Spit renders ds to w in the requested format. Limit > 0 caps the number of
// records shown.
func Spit(w io.Writer, ds dataset.Dataset, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	if opts.Limit > 0 && ds.Len() > opts.Limit {
		ds = ds.WithRecords(ds.Records[:opts.Limit])
	}

	switch opts.Format {
	case "json":
		out, err := json.Marshal(toMaps(ds, opts.Attrs))
		if err != nil {
			return fmt.Errorf("failed to marshal json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "yaml":
		out, err := yaml.Marshal(toMaps(ds, opts.Attrs))
		if err != nil {
			return fmt.Errorf("failed to marshal yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "csv":
		return dataset.WriteCSV(w, ds)
	case "", "text":
		TableWriter(w, ds, opts)
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

// TableWriter renders the preview columns of ds as an aligned table.
func TableWriter(w io.Writer, ds dataset.Dataset, opts Options) {
	if ds.Len() == 0 {
		return
	}

	al := opts.Attrs
	if len(al) == 0 {
		al = attrs.Defaults(PreviewColumns...)
	}
	cols := present(ds, al)
	if len(cols) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerStyle = headerStyle.Foreground(lipgloss.Color(opts.Colors.Title))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(opts.Colors.Even))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(opts.Colors.Odd))
	}

	rows := make([][]string, 0, ds.Len())
	for _, r := range ds.Records {
		row := make([]string, 0, len(cols))
		for _, c := range cols {
			row = append(row, c.Transform(cellString(r, c.Key)))
		}
		rows = append(rows, row)
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}
			if col > 0 {
				style = style.PaddingLeft(1)
			}
			return style
		}).
		Headers().
		Rows(rows...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		headers := make([]string, 0, len(cols))
		for _, c := range cols {
			headers = append(headers, c.OutputKey)
		}
		t = t.Headers(headers...).BorderHeader(false)
	}

	fmt.Fprintln(w, t)
}

// Report tells the operator where the artifacts are.
func Report(w io.Writer, rawPath, filteredPath string, rawCount, keptCount int) {
	fmt.Fprintf(w, "The raw data is present at %s\n", rawPath)
	fmt.Fprintf(w, "The filtered data is present at %s\n", filteredPath)
	log.Infof("kept %s of %s records (%s on disk)",
		humanize.Comma(int64(keptCount)), humanize.Comma(int64(rawCount)), fileSize(filteredPath))
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "?"
	}
	return humanize.Bytes(uint64(info.Size())) //nolint:gosec
}

// cellString formats salaries with thousands separators for display.
func cellString(r dataset.Record, column string) string {
	v := r.Get(column)
	if v == "" {
		return "-"
	}
	if column == dataset.ColBaseSalary {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return humanize.Comma(n)
		}
	}
	return v
}

// present returns the included attrs naming a column of ds.
func present(ds dataset.Dataset, al attrs.AttrList) []attrs.Attr {
	var out []attrs.Attr
	for _, a := range al.Included() {
		if slices.Contains(ds.Columns, a.Key) {
			out = append(out, a)
		}
	}
	return out
}

func toMaps(ds dataset.Dataset, al attrs.AttrList) []map[string]string {
	cols := attrs.Defaults(ds.Columns...).Included()
	if len(al) > 0 {
		cols = present(ds, al)
	}

	out := make([]map[string]string, 0, ds.Len())
	for _, r := range ds.Records {
		m := make(map[string]string, len(cols))
		for _, c := range cols {
			m[c.OutputKey] = c.Transform(r.Get(c.Key))
		}
		out = append(out, m)
	}
	return out
}
