// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/staranto/h1bctl/internal/filters"
	"github.com/staranto/h1bctl/internal/output"
	"github.com/staranto/h1bctl/internal/pipeline"
)

// ConfigurationError is a problem with the arguments or the config file. It
// is reported before anything is fetched or written.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Err.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(v, "--") {
			return errors.New("must not begin with '--'")
		}
	case []string:
		for _, s := range v {
			if strings.HasPrefix(s, "--") {
				return fmt.Errorf("%q must not begin with '--'", s)
			}
		}
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if v, ok := value.(int); ok && v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

func OutputValidator(value any) error {
	if !slices.Contains(output.Formats, value.(string)) {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	return nil
}

// ValidateParams checks what flag validators cannot: at least one non-blank
// city, a sane year and compilable title patterns.
func ValidateParams(p pipeline.Params) error {
	if len(p.Cities) == 0 {
		return &ConfigurationError{Err: errors.New("at least one city is required (--cities)")}
	}
	for _, c := range p.Cities {
		if strings.TrimSpace(c) == "" {
			return &ConfigurationError{Err: errors.New("city must not be blank")}
		}
	}
	if p.Year != nil && *p.Year <= 0 {
		return &ConfigurationError{Err: fmt.Errorf("invalid year %d", *p.Year)}
	}
	if p.Cutoff < 0 {
		return &ConfigurationError{Err: fmt.Errorf("invalid cutoff %d", p.Cutoff)}
	}
	if _, err := filters.NewTitleFilter(p.Titles); err != nil {
		return &ConfigurationError{Err: err}
	}
	return nil
}
