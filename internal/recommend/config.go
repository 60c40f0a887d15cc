// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "fmt"

// Config contains the recommendation engine settings.
type Config struct {
	// PerReferenceN is how many candidates each reference movie contributes
	// during aggregation.
	PerReferenceN int `json:"per_reference_n"`

	// MaxN caps the n accepted by SimilarTo.
	MaxN int `json:"max_n"`

	// Workers is the number of goroutines ranking reference movies.
	// 1 ranks sequentially.
	Workers int `json:"workers"`

	// LargeCatalogWarning is the catalog size above which a request logs a
	// warning about quadratic cost. Zero disables the warning.
	LargeCatalogWarning int `json:"large_catalog_warning"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		PerReferenceN:       DefaultN,
		MaxN:                100,
		Workers:             1,
		LargeCatalogWarning: 5000,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.PerReferenceN < 1 {
		return fmt.Errorf("per_reference_n must be positive, got %d", c.PerReferenceN)
	}
	if c.MaxN < c.PerReferenceN {
		return fmt.Errorf("max_n must be >= per_reference_n, got %d < %d", c.MaxN, c.PerReferenceN)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.LargeCatalogWarning < 0 {
		return fmt.Errorf("large_catalog_warning must be non-negative, got %d", c.LargeCatalogWarning)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
