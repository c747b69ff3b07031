// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ErrNoHeader is returned when decoding an empty CSV document.
var ErrNoHeader = errors.New("csv has no header row")

// WriteCSV writes the header followed by one line per record. There is no
// index column. Missing cells are written empty.
func WriteCSV(w io.Writer, d Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(d.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	line := make([]string, len(d.Columns))
	for i, r := range d.Records {
		for j, c := range d.Columns {
			line[j] = r.Get(c)
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV decodes a document written by WriteCSV.
func ReadCSV(r io.Reader) (Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Dataset{}, ErrNoHeader
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to read header: %w", err)
	}

	var rows []Row
	for {
		line, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Dataset{}, fmt.Errorf("failed to read record: %w", err)
		}

		row := make(Row, len(header))
		for i, c := range header {
			if i < len(line) {
				row[c] = line[i]
			}
		}
		rows = append(rows, row)
	}

	return New(header, rows), nil
}
