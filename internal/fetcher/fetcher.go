// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"github.com/apex/log"
	"github.com/go-resty/resty/v2"

	"github.com/staranto/h1bctl/internal/config"
	"github.com/staranto/h1bctl/internal/dataset"
)

const (
	DefaultBaseURL = "https://h1bdata.info/index.php"
	DefaultTimeout = 60 * time.Second
)

// Fetcher issues one GET per city against the filings endpoint.
type Fetcher struct {
	client  *resty.Client
	baseURL string
	parser  TableParser
	out     io.Writer
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithBaseURL overrides the endpoint, e.g. for a test server.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = u }
}

// WithParser swaps the table parser.
func WithParser(p TableParser) Option {
	return func(f *Fetcher) { f.parser = p }
}

// WithOutput sets where the search URL is echoed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(f *Fetcher) { f.out = w }
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.client.SetHeader("User-Agent", ua) }
}

// WithTimeout bounds each request. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.SetTimeout(d) }
}

// New returns a Fetcher with defaults applied before opts.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:  resty.New().SetTimeout(DefaultTimeout),
		baseURL: DefaultBaseURL,
		parser:  HTMLTableParser{},
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewFromConfig builds a Fetcher from the fetch.* keys of cfg. Explicit opts
// win over config.
func NewFromConfig(cfg config.Type, opts ...Option) *Fetcher {
	var base []Option
	if u, _ := cfg.GetString("fetch.base_url", ""); u != "" {
		base = append(base, WithBaseURL(u))
	}
	if ua, _ := cfg.GetString("fetch.user_agent", ""); ua != "" {
		base = append(base, WithUserAgent(ua))
	}
	if secs, err := cfg.GetInt("fetch.timeout"); err == nil {
		base = append(base, WithTimeout(time.Duration(secs)*time.Second))
	}
	return New(append(base, opts...)...)
}

// SearchURL builds the query for city and year. The title is always left
// empty; narrowing by title is done locally because the site's own matching
// is unreliable.
func (f *Fetcher) SearchURL(city, year string) string {
	return fmt.Sprintf("%s?em=&job=&city=%s&year=%s",
		f.baseURL, url.QueryEscape(city), url.QueryEscape(year))
}

// Fetch retrieves and parses the filings for one city. year may be empty.
func (f *Fetcher) Fetch(ctx context.Context, city, year string) (dataset.Dataset, error) {
	u := f.SearchURL(city, year)
	fmt.Fprintf(f.out, "Search URL: %s\n", u)

	resp, err := f.client.R().SetContext(ctx).Get(u)
	if err != nil {
		return dataset.Dataset{}, &TransportError{URL: u, Err: err}
	}
	log.Debugf("GET %s: %s (%d bytes)", u, resp.Status(), len(resp.Body()))

	if !resp.IsSuccess() {
		return dataset.Dataset{}, &TransportError{URL: u, StatusCode: resp.StatusCode()}
	}

	header, rows, err := f.parser.ParseFirstTable(resp.Body())
	if err != nil {
		return dataset.Dataset{}, &ParseError{URL: u, Err: err}
	}
	log.Debugf("parsed %d rows for %s", len(rows), city)

	return dataset.New(header, rows), nil
}
