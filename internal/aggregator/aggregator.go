// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package aggregator merges per-city fetches into the raw dataset and
// persists it.
package aggregator

import (
	"context"
	"fmt"

	"github.com/apex/log"

	"github.com/staranto/h1bctl/internal/dataset"
)

// Fetcher retrieves one city's records.
type Fetcher interface {
	Fetch(ctx context.Context, city, year string) (dataset.Dataset, error)
}

// Saver persists the merged dataset.
type Saver interface {
	Save(dataset.Dataset) error
}

// Aggregator fetches cities one at a time and saves the concatenation.
type Aggregator struct {
	Fetcher Fetcher
	Saver   Saver
}

// Aggregate fetches every city in order and concatenates the results, city
// order first, then each city's own row order. Duplicates are kept. Nothing
// is saved unless every fetch succeeded.
func (a *Aggregator) Aggregate(ctx context.Context, cities []string, year string) (dataset.Dataset, error) {
	sets := make([]dataset.Dataset, 0, len(cities))
	for _, city := range cities {
		ds, err := a.Fetcher.Fetch(ctx, city, year)
		if err != nil {
			return dataset.Dataset{}, fmt.Errorf("city %s: %w", city, err)
		}
		log.WithField("city", city).Debugf("fetched %d records", ds.Len())
		sets = append(sets, ds)
	}

	raw := dataset.Concat(sets...)
	if err := a.Saver.Save(raw); err != nil {
		return dataset.Dataset{}, err
	}
	return raw, nil
}
