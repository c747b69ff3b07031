// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/h1bctl/internal/dataset"
)

// Predicate decides whether a record stays in the result set.
type Predicate interface {
	Match(r dataset.Record) bool
}

// TitleFilter matches the job title against a case-insensitive alternation
// of the requested titles. A TitleFilter with no titles matches everything.
type TitleFilter struct {
	re *regexp.Regexp
}

// TitlePattern joins titles into the alternation used by TitleFilter. Each
// title is a regular expression in its own right, so "engineer|developer"
// and two separate titles behave the same.
func TitlePattern(titles []string) string {
	return strings.Join(titles, "|")
}

// NewTitleFilter compiles titles. An invalid expression is an error here
// rather than a silent non-match later.
func NewTitleFilter(titles []string) (TitleFilter, error) {
	// No titles means no title filtering. This is decided here and not left
	// to whatever the regexp engine does with an empty pattern.
	if len(titles) == 0 {
		return TitleFilter{}, nil
	}

	pattern := TitlePattern(titles)
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return TitleFilter{}, fmt.Errorf("invalid title pattern %q: %w", pattern, err)
	}
	return TitleFilter{re: re}, nil
}

// Match implements Predicate.
func (f TitleFilter) Match(r dataset.Record) bool {
	if f.re == nil {
		return true
	}
	return f.re.MatchString(r.JobTitle())
}

// SalaryFilter keeps records whose base salary is at least Cutoff.
type SalaryFilter struct {
	Cutoff int
}

// Match implements Predicate. A salary that does not parse never matches.
func (f SalaryFilter) Match(r dataset.Record) bool {
	salary, err := r.BaseSalary()
	if err != nil {
		log.Debugf("dropping record for %q: %v", r.Employer(), err)
		return false
	}
	return salary >= f.Cutoff
}

// FilterDataset returns a new dataset holding the records of ds that satisfy
// every predicate, in their original order.
func FilterDataset(ds dataset.Dataset, preds ...Predicate) dataset.Dataset {
	//nolint:prealloc // Don't prealloc because we don't know what len will be.
	var kept []dataset.Record

candidates:
	for _, r := range ds.Records {
		for _, p := range preds {
			if !p.Match(r) {
				continue candidates
			}
		}
		kept = append(kept, r)
	}

	return ds.WithRecords(kept)
}

// Apply is the title AND salary filter over ds.
func Apply(ds dataset.Dataset, titles []string, cutoff int) (dataset.Dataset, error) {
	if ds.Len() > 0 {
		if err := ds.Validate(); err != nil {
			return dataset.Dataset{}, err
		}
	}

	title, err := NewTitleFilter(titles)
	if err != nil {
		return dataset.Dataset{}, err
	}

	out := FilterDataset(ds, title, SalaryFilter{Cutoff: cutoff})
	log.Debugf("filter %q >= %d kept %d of %d", TitlePattern(titles), cutoff, out.Len(), ds.Len())
	return out, nil
}
