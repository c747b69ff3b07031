// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Column names as published by the source site.
const (
	ColEmployer   = "EMPLOYER"
	ColJobTitle   = "JOB TITLE"
	ColBaseSalary = "BASE SALARY"
	ColLocation   = "LOCATION"
)

// RequiredColumns must be present in any dataset handed to the filters.
var RequiredColumns = []string{ColEmployer, ColJobTitle, ColBaseSalary}

// Row is one key-value row as produced by a table parser.
type Row map[string]string

// Record is a single filing. Treat it as immutable; use Clone to derive.
type Record struct {
	values Row
}

// NewRecord builds a Record from a parsed row. The salary cell is normalized
// so that "$120,000" and "120000" persist identically.
func NewRecord(row Row) Record {
	values := make(Row, len(row))
	for k, v := range row {
		values[k] = v
	}
	if s, ok := values[ColBaseSalary]; ok {
		values[ColBaseSalary] = NormalizeSalary(s)
	}
	return Record{values: values}
}

// Get returns the cell for column, or "" if the record has no such column.
func (r Record) Get(column string) string {
	return r.values[column]
}

// Has reports whether the record carries a value for column.
func (r Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

func (r Record) Employer() string { return r.values[ColEmployer] }
func (r Record) JobTitle() string { return r.values[ColJobTitle] }
func (r Record) City() string     { return r.values[ColLocation] }

// BaseSalary parses the salary cell as an integer.
func (r Record) BaseSalary() (int, error) {
	s, ok := r.values[ColBaseSalary]
	if !ok {
		return 0, fmt.Errorf("record has no %s column", ColBaseSalary)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", ColBaseSalary, s, err)
	}
	return n, nil
}

// Clone returns a deep copy.
func (r Record) Clone() Record {
	return Record{values: maps.Clone(r.values)}
}

// NormalizeSalary strips the currency symbol, thousands separators and
// whitespace the site uses when rendering salaries.
func NormalizeSalary(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}

// Dataset is an ordered header plus ordered records.
type Dataset struct {
	Columns []string
	Records []Record
}

// New builds a Dataset from parsed rows using columns as the header.
func New(columns []string, rows []Row) Dataset {
	ds := Dataset{
		Columns: slices.Clone(columns),
		Records: make([]Record, 0, len(rows)),
	}
	for _, row := range rows {
		ds.Records = append(ds.Records, NewRecord(row))
	}
	return ds
}

// Len returns the number of records.
func (d Dataset) Len() int {
	return len(d.Records)
}

// Concat appends the datasets in order. Columns are the union of all headers
// in first-seen order; records keep their relative order.
func Concat(sets ...Dataset) Dataset {
	var out Dataset
	seen := make(map[string]bool)
	for _, ds := range sets {
		for _, c := range ds.Columns {
			if !seen[c] {
				seen[c] = true
				out.Columns = append(out.Columns, c)
			}
		}
		out.Records = append(out.Records, ds.Records...)
	}
	return out
}

// WithRecords returns a new Dataset sharing the header of d.
func (d Dataset) WithRecords(records []Record) Dataset {
	return Dataset{
		Columns: slices.Clone(d.Columns),
		Records: records,
	}
}

// Validate checks that the header carries every required column.
func (d Dataset) Validate() error {
	var missing []string
	for _, c := range RequiredColumns {
		if !slices.Contains(d.Columns, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("dataset is missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
