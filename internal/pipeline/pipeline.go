// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/apex/log"

	"github.com/staranto/h1bctl/internal/cacheutil"
	"github.com/staranto/h1bctl/internal/dataset"
	"github.com/staranto/h1bctl/internal/filters"
	"github.com/staranto/h1bctl/internal/output"
)

// ErrAborted is returned when the operator declines the download.
var ErrAborted = errors.New("aborted by operator")

// Prompt is shown when a cached dataset was requested but is missing.
const Prompt = "Cache file does not exist. Proceed to download? ([y]/n)? \t"

// State is a step of a run.
type State int

const (
	StateInit State = iota
	StateCacheCheck
	StateLoadCache
	StateConfirmDownload
	StateAggregate
	StateAborted
	StateFilter
	StateSort
	StatePersist
	StateDone
)

var stateNames = [...]string{
	"INIT", "CACHE_CHECK", "LOAD_CACHE", "CONFIRM_DOWNLOAD", "AGGREGATE",
	"ABORTED", "FILTER", "SORT", "PERSIST", "DONE",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

// Params are the query parameters for one run.
type Params struct {
	Titles   []string
	Cities   []string
	Year     *int
	Cutoff   int
	UseCache bool
}

// YearString is the year as sent to the site, empty when unset.
func (p Params) YearString() string {
	if p.Year == nil {
		return ""
	}
	return strconv.Itoa(*p.Year)
}

// RawCache is the cached raw dataset.
type RawCache interface {
	Exists() bool
	Load() (dataset.Dataset, error)
	Path() string
}

// Aggregator fetches, merges and persists the raw dataset.
type Aggregator interface {
	Aggregate(ctx context.Context, cities []string, year string) (dataset.Dataset, error)
}

// Sink receives the filtered dataset.
type Sink interface {
	Save(dataset.Dataset) error
	Path() string
}

// Driver runs the state machine. Every collaborator is injected.
type Driver struct {
	Paths      cacheutil.Paths
	Cache      RawCache
	Aggregator Aggregator
	Filtered   Sink
	Confirmer  Confirmer
	Out        io.Writer
	PurgeHours int
}

// Result is what a completed run produced.
type Result struct {
	Raw          dataset.Dataset
	Filtered     dataset.Dataset
	RawPath      string
	FilteredPath string
	Visited      []State
}

// Run executes one pass. It returns ErrAborted, with nothing written, when
// the operator declines the download.
func (d *Driver) Run(ctx context.Context, p Params) (Result, error) {
	var (
		res      Result
		raw      dataset.Dataset
		filtered dataset.Dataset
		err      error
	)

	state := StateInit
	for {
		res.Visited = append(res.Visited, state)
		log.Debugf("state: %s", state)

		switch state {
		case StateInit:
			if err = cacheutil.EnsureDir(d.Paths.Dir); err != nil {
				return res, err
			}
			if err = cacheutil.Purge(d.Paths, d.PurgeHours); err != nil {
				log.WithError(err).Warn("cache purge failed")
			}
			state = StateCacheCheck

		case StateCacheCheck:
			switch {
			case !p.UseCache:
				state = StateAggregate
			case d.Cache.Exists():
				state = StateLoadCache
			default:
				state = StateConfirmDownload
			}

		case StateLoadCache:
			fmt.Fprintf(d.Out, "Using the cached raw data from %s\n", d.Cache.Path())
			if raw, err = d.Cache.Load(); err != nil {
				return res, err
			}
			state = StateFilter

		case StateConfirmDownload:
			ok, cerr := d.Confirmer.Confirm(Prompt)
			if cerr != nil {
				return res, cerr
			}
			if ok {
				state = StateAggregate
			} else {
				state = StateAborted
			}

		case StateAborted:
			fmt.Fprintln(d.Out, "\n Exiting...")
			return res, ErrAborted

		case StateAggregate:
			if raw, err = d.Aggregator.Aggregate(ctx, p.Cities, p.YearString()); err != nil {
				return res, err
			}
			state = StateFilter

		case StateFilter:
			if filtered, err = filters.Apply(raw, p.Titles, p.Cutoff); err != nil {
				return res, err
			}
			state = StateSort

		case StateSort:
			filtered = output.SortDataset(filtered)
			state = StatePersist

		case StatePersist:
			if err = d.Filtered.Save(filtered); err != nil {
				return res, err
			}
			state = StateDone

		case StateDone:
			res.Raw = raw
			res.Filtered = filtered
			res.RawPath = d.Cache.Path()
			res.FilteredPath = d.Filtered.Path()
			output.Report(d.Out, res.RawPath, res.FilteredPath, raw.Len(), filtered.Len())
			return res, nil
		}
	}
}
