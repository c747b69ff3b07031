// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/h1bctl/internal/dataset"
)

var columns = []string{dataset.ColEmployer, dataset.ColJobTitle, dataset.ColBaseSalary, dataset.ColLocation}

func row(employer, title, salary string) dataset.Row {
	return dataset.Row{
		dataset.ColEmployer:   employer,
		dataset.ColJobTitle:   title,
		dataset.ColBaseSalary: salary,
		dataset.ColLocation:   "SEATTLE, WA",
	}
}

func rawDataset() dataset.Dataset {
	return dataset.New(columns, []dataset.Row{
		row("Acme", "Software Engineer", "90000"),
		row("Acme", "Manager", "150000"),
		row("Beta", "Software Engineer", "80000"),
		row("Gamma", "SENIOR DATA ENGINEER", "130,000"),
		row("Delta", "Data Scientist", "85000"),
		row("Omega", "Engineer", "not disclosed"),
	})
}

func titles(ds dataset.Dataset) []string {
	var out []string
	for _, r := range ds.Records {
		out = append(out, r.Employer()+"/"+r.JobTitle())
	}
	return out
}

func TestApplyScenario(t *testing.T) {
	raw := dataset.New(columns[:3], []dataset.Row{
		row("Acme", "Software Engineer", "90000"),
		row("Acme", "Manager", "150000"),
		row("Beta", "Software Engineer", "80000"),
	})

	got, err := Apply(raw, []string{"Engineer"}, 85000)
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme/Software Engineer"}, titles(got))
	assert.Equal(t, raw.Columns, got.Columns)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		titles []string
		cutoff int
		want   []string
	}{
		{
			name: "no titles no cutoff keeps parseable salaries",
			want: []string{
				"Acme/Software Engineer", "Acme/Manager", "Beta/Software Engineer",
				"Gamma/SENIOR DATA ENGINEER", "Delta/Data Scientist",
			},
		},
		{
			name:   "case insensitive",
			titles: []string{"engineer"},
			want:   []string{"Acme/Software Engineer", "Beta/Software Engineer", "Gamma/SENIOR DATA ENGINEER"},
		},
		{
			name:   "alternation across titles",
			titles: []string{"manager", "scientist"},
			want:   []string{"Acme/Manager", "Delta/Data Scientist"},
		},
		{
			name:   "titles are regular expressions",
			titles: []string{"^data"},
			want:   []string{"Delta/Data Scientist"},
		},
		{
			name:   "cutoff is inclusive",
			cutoff: 130000,
			want:   []string{"Acme/Manager", "Gamma/SENIOR DATA ENGINEER"},
		},
		{
			name:   "both predicates",
			titles: []string{"engineer"},
			cutoff: 100000,
			want:   []string{"Gamma/SENIOR DATA ENGINEER"},
		},
		{
			name:   "nothing matches",
			titles: []string{"astronaut"},
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Apply(rawDataset(), tt.titles, tt.cutoff)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestApplyProperties(t *testing.T) {
	raw := rawDataset()
	for _, ts := range [][]string{{"engineer"}, {"MANAGER", "data"}, {"sci"}} {
		for _, cutoff := range []int{0, 85000, 140000} {
			got, err := Apply(raw, ts, cutoff)
			require.NoError(t, err)

			re := regexp.MustCompile("(?i)" + TitlePattern(ts))
			for _, r := range got.Records {
				assert.True(t, re.MatchString(r.JobTitle()), "title %q vs %v", r.JobTitle(), ts)
				salary, err := r.BaseSalary()
				require.NoError(t, err)
				assert.GreaterOrEqual(t, salary, cutoff)
			}
		}
	}
}

func TestApplyEmptyTitlesKeepsEveryRow(t *testing.T) {
	raw := rawDataset()
	title, err := NewTitleFilter(nil)
	require.NoError(t, err)

	got := FilterDataset(raw, title)
	assert.Equal(t, raw.Len(), got.Len())

	// Also holds for rows whose title is empty.
	blank := dataset.New(columns, []dataset.Row{row("X", "", "1")})
	assert.Equal(t, 1, FilterDataset(blank, title).Len())
}

func TestApplyIdempotent(t *testing.T) {
	raw := rawDataset()

	first, err := Apply(raw, []string{"engineer", "scientist"}, 85000)
	require.NoError(t, err)
	second, err := Apply(raw, []string{"engineer", "scientist"}, 85000)
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, dataset.WriteCSV(&a, first))
	require.NoError(t, dataset.WriteCSV(&b, second))
	assert.Equal(t, a.String(), b.String())

	// The input is untouched.
	assert.Equal(t, 6, raw.Len())
}

func TestApplyInvalidPattern(t *testing.T) {
	_, err := Apply(rawDataset(), []string{"engineer("}, 0)
	assert.ErrorContains(t, err, "invalid title pattern")
}

func TestApplyMissingColumns(t *testing.T) {
	ds := dataset.New([]string{dataset.ColEmployer}, []dataset.Row{{dataset.ColEmployer: "X"}})
	_, err := Apply(ds, nil, 0)
	assert.ErrorContains(t, err, "missing columns")

	// An empty dataset with no header is simply empty.
	got, err := Apply(dataset.Dataset{}, []string{"x"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
}

func TestSalaryFilter(t *testing.T) {
	f := SalaryFilter{Cutoff: 100}
	assert.True(t, f.Match(dataset.NewRecord(row("a", "b", "100"))))
	assert.True(t, f.Match(dataset.NewRecord(row("a", "b", "1,000"))))
	assert.False(t, f.Match(dataset.NewRecord(row("a", "b", "99"))))
	assert.False(t, f.Match(dataset.NewRecord(row("a", "b", ""))))
	assert.False(t, SalaryFilter{}.Match(dataset.NewRecord(dataset.Row{})))
}
