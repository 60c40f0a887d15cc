// Cinematch - Genre-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "testing"

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.PerReferenceN != DefaultN {
		t.Errorf("PerReferenceN = %d, want %d", cfg.PerReferenceN, DefaultN)
	}
	if cfg.Workers != 1 {
		t.Errorf("Workers = %d, want 1", cfg.Workers)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "defaults", modify: func(*Config) {}},
		{name: "max n equals per reference n", modify: func(c *Config) { c.MaxN = c.PerReferenceN }},
		{name: "warning disabled", modify: func(c *Config) { c.LargeCatalogWarning = 0 }},
		{name: "many workers", modify: func(c *Config) { c.Workers = 64 }},
		{name: "zero per reference n", modify: func(c *Config) { c.PerReferenceN = 0 }, wantErr: true},
		{name: "negative per reference n", modify: func(c *Config) { c.PerReferenceN = -1 }, wantErr: true},
		{name: "max n too small", modify: func(c *Config) { c.MaxN = c.PerReferenceN - 1 }, wantErr: true},
		{name: "zero workers", modify: func(c *Config) { c.Workers = 0 }, wantErr: true},
		{name: "negative warning", modify: func(c *Config) { c.LargeCatalogWarning = -5 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	t.Parallel()

	orig := DefaultConfig()
	clone := orig.Clone()
	clone.Workers = 8

	if orig.Workers != 1 {
		t.Errorf("original Workers = %d after modifying clone, want 1", orig.Workers)
	}
}
