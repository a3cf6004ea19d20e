package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/leapstack-labs/leapmigrate/internal/cli/output"
	"github.com/leapstack-labs/leapmigrate/pkg/dialect"
)

// Validate checks if the configuration is valid. Dialect names under
// dialects are checked against the registry by Dialect, since only the
// selected dialect needs to exist.
func (c *Config) Validate() error {
	var errs []error
	if _, err := output.ParseMode(c.OutputFormat); err != nil {
		errs = append(errs, err)
	}
	if c.Batch.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("batch.concurrency must not be negative, got %d", c.Batch.Concurrency))
	}
	return errors.Join(errs...)
}

// Dialect returns the registered dialect called name with the configured
// overrides applied.
func (c *Config) Dialect(name string) (*dialect.Dialect, error) {
	d, err := dialect.Lookup(name)
	if err != nil {
		return nil, err
	}
	if o, ok := c.Dialects[d.Name]; ok {
		d = d.With(dialect.Overrides{TempDB: o.TempDB, Extension: o.Extension})
	}
	return d, nil
}

// UnknownDialects returns the configured dialect names that are not
// registered, sorted.
func (c *Config) UnknownDialects() []string {
	var unknown []string
	for name := range c.Dialects {
		if _, ok := dialect.Get(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}
