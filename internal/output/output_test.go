// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/staranto/h1bctl/internal/attrs"
	"github.com/staranto/h1bctl/internal/config"
	"github.com/staranto/h1bctl/internal/dataset"
)

var columns = []string{dataset.ColEmployer, dataset.ColJobTitle, dataset.ColBaseSalary, "CASE STATUS"}

func build(rows ...[3]string) dataset.Dataset {
	var rs []dataset.Row
	for _, r := range rows {
		rs = append(rs, dataset.Row{
			dataset.ColEmployer:   r[0],
			dataset.ColJobTitle:   r[1],
			dataset.ColBaseSalary: r[2],
			"CASE STATUS":         "CERTIFIED",
		})
	}
	return dataset.New(columns, rs)
}

func keys(ds dataset.Dataset) []string {
	var out []string
	for _, r := range ds.Records {
		out = append(out, r.Employer()+":"+r.JobTitle()+":"+r.Get(dataset.ColBaseSalary))
	}
	return out
}

func TestSortDataset(t *testing.T) {
	ds := build(
		[3]string{"Zeta", "a", "100"},
		[3]string{"Acme", "first", "90000"},
		[3]string{"Acme", "b", "150000"},
		[3]string{"Beta", "c", "80000"},
		[3]string{"Acme", "second", "90000"},
		[3]string{"Acme", "d", "unknown"},
		[3]string{"acme", "e", "1"},
	)

	got := SortDataset(ds)

	assert.Equal(t, []string{
		"Acme:b:150000",
		"Acme:first:90000",
		"Acme:second:90000",
		"Acme:d:unknown",
		"Beta:c:80000",
		"Zeta:a:100",
		"acme:e:1",
	}, keys(got))

	// The input order is left alone.
	assert.Equal(t, "Zeta", ds.Records[0].Employer())
}

func TestSortDatasetProperty(t *testing.T) {
	ds := build(
		[3]string{"C", "x", "5"},
		[3]string{"A", "x", "1"},
		[3]string{"B", "x", "9"},
		[3]string{"A", "x", "3"},
		[3]string{"C", "x", "7"},
		[3]string{"A", "x", "2"},
	)
	got := SortDataset(ds)

	for i := 0; i+1 < got.Len(); i++ {
		a, b := got.Records[i], got.Records[i+1]
		require.LessOrEqual(t, a.Employer(), b.Employer())
		if a.Employer() == b.Employer() {
			sa, _ := a.BaseSalary()
			sb, _ := b.BaseSalary()
			assert.GreaterOrEqual(t, sa, sb)
		}
	}
}

func TestSpitFormats(t *testing.T) {
	ds := build(
		[3]string{"Acme", "Engineer", "120000"},
		[3]string{"Beta", "Analyst", "95000"},
	)

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Spit(&buf, ds, Options{Format: "json"}))
		var got []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Acme", got[0][dataset.ColEmployer])
		assert.Equal(t, "CERTIFIED", got[1]["CASE STATUS"])
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Spit(&buf, ds, Options{Format: "yaml", Limit: 1}))
		var got []map[string]string
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "120000", got[0][dataset.ColBaseSalary])
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Spit(&buf, ds, Options{Format: "csv"}))
		assert.True(t, strings.HasPrefix(buf.String(), "EMPLOYER,JOB TITLE,BASE SALARY,CASE STATUS\n"))
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Spit(&buf, ds, Options{Format: "text", Titles: true}))
		out := buf.String()
		assert.Contains(t, out, "EMPLOYER")
		assert.Contains(t, out, "Acme")
		assert.Contains(t, out, "120,000")
		// CASE STATUS is not a preview column.
		assert.NotContains(t, out, "CERTIFIED")
	})

	t.Run("text with attrs", func(t *testing.T) {
		al := attrs.Defaults(PreviewColumns...)
		require.NoError(t, al.Set("!job title,employer:COMPANY:u,case status"))

		var buf bytes.Buffer
		require.NoError(t, Spit(&buf, ds, Options{Format: "text", Titles: true, Attrs: al}))
		out := buf.String()
		assert.Contains(t, out, "COMPANY")
		assert.Contains(t, out, "ACME")
		assert.Contains(t, out, "CERTIFIED")
		assert.NotContains(t, out, "Engineer")
	})

	t.Run("json with attrs", func(t *testing.T) {
		al := attrs.AttrList{}
		require.NoError(t, al.Set("employer:company:l"))

		var buf bytes.Buffer
		require.NoError(t, Spit(&buf, ds, Options{Format: "json", Attrs: al}))
		var got []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		assert.Equal(t, []map[string]string{{"company": "acme"}, {"company": "beta"}}, got)
	})

	t.Run("text empty", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Spit(&buf, ds.WithRecords(nil), Options{}))
		assert.Empty(t, buf.String())
	})

	t.Run("unknown", func(t *testing.T) {
		assert.Error(t, Spit(&bytes.Buffer{}, ds, Options{Format: "xml"}))
	})
}

func TestColorsFromConfig(t *testing.T) {
	got := ColorsFromConfig(config.Type{})
	assert.Equal(t, Colors{Title: "#f6be00", Even: "#ffffff", Odd: "#00c8f0"}, got)

	cfg := config.Type{Data: map[string]interface{}{
		"colors": map[string]interface{}{"title": "#ff0000"},
	}}
	assert.Equal(t, "#ff0000", ColorsFromConfig(cfg).Title)
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	filtered := filepath.Join(dir, "f.csv")
	require.NoError(t, os.WriteFile(filtered, []byte("x"), 0o600))

	var buf bytes.Buffer
	Report(&buf, "/data/raw.csv", filtered, 10, 3)
	assert.Equal(t,
		"The raw data is present at /data/raw.csv\nThe filtered data is present at "+filtered+"\n",
		buf.String())
}

func TestCellString(t *testing.T) {
	r := dataset.NewRecord(dataset.Row{dataset.ColBaseSalary: "1250000", dataset.ColEmployer: ""})
	assert.Equal(t, "1,250,000", cellString(r, dataset.ColBaseSalary))
	assert.Equal(t, "-", cellString(r, dataset.ColEmployer))
}
