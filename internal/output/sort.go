// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"math"
	"slices"
	"strings"

	"github.com/staranto/h1bctl/internal/dataset"
)

// SortDataset returns ds ordered by employer ascending, then base salary
// descending. Records that tie on both keep their relative order. An
// unparseable salary sorts after every real one for the same employer.
func SortDataset(ds dataset.Dataset) dataset.Dataset {
	records := slices.Clone(ds.Records)

	slices.SortStableFunc(records, func(a, b dataset.Record) int {
		if c := strings.Compare(a.Employer(), b.Employer()); c != 0 {
			return c
		}
		sa, sb := salaryOrMin(a), salaryOrMin(b)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		default:
			return 0
		}
	})

	return ds.WithRecords(records)
}

func salaryOrMin(r dataset.Record) int {
	s, err := r.BaseSalary()
	if err != nil {
		return math.MinInt
	}
	return s
}
