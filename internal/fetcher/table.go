// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/staranto/h1bctl/internal/dataset"
)

// TableParser turns an HTML document into the header and rows of its first
// table.
type TableParser interface {
	ParseFirstTable(body []byte) ([]string, []dataset.Row, error)
}

// HTMLTableParser is the goquery backed TableParser.
type HTMLTableParser struct{}

// ParseFirstTable implements TableParser. The header comes from the first
// row of <thead>, or the first row of the table when there is no <thead>.
// Rows without any cells are skipped; short rows leave trailing columns
// unset.
func (HTMLTableParser) ParseFirstTable(body []byte) ([]string, []dataset.Row, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse html: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, nil, ErrNoTable
	}

	var headerRow *goquery.Selection
	if thead := table.Find("thead tr").First(); thead.Length() > 0 {
		headerRow = thead
	} else {
		headerRow = table.Find("tr").First()
	}

	header := headerNames(cellTexts(headerRow))
	if len(header) == 0 {
		return nil, nil, ErrNoHeader
	}

	var rows []dataset.Row
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.IsSelection(headerRow) || tr.ParentsFiltered("thead").Length() > 0 {
			return
		}
		// Rows of a table nested in a cell belong to that table.
		if !tr.ParentsFiltered("table").First().IsSelection(table) {
			return
		}

		cells := cellTexts(tr)
		if len(cells) == 0 {
			return
		}

		row := make(dataset.Row, len(header))
		for i, v := range cells {
			if i >= len(header) {
				break
			}
			row[header[i]] = v
		}
		rows = append(rows, row)
	})

	return header, rows, nil
}

func cellTexts(tr *goquery.Selection) []string {
	cells := tr.ChildrenFiltered("th,td")
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, s *goquery.Selection) {
		texts = append(texts, strings.Join(strings.Fields(s.Text()), " "))
	})
	return texts
}

// headerNames fills in blank names and disambiguates repeats so every column
// has a distinct key.
func headerNames(raw []string) []string {
	names := make([]string, len(raw))
	seen := make(map[string]int)
	for i, n := range raw {
		if n == "" {
			n = "Unnamed: " + strconv.Itoa(i)
		}
		if c, ok := seen[n]; ok {
			seen[n] = c + 1
			n = n + "." + strconv.Itoa(c+1)
		} else {
			seen[n] = 0
		}
		names[i] = n
	}
	return names
}
