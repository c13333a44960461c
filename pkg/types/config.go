// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// DefaultOutputName is used when no output filename is configured.
const DefaultOutputName = "merged.pdf"

// OfficeConfig holds settings for the external presentation converter.
type OfficeConfig struct {
	// Path overrides converter discovery with an explicit soffice binary.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Timeout bounds one external conversion call (default 120s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// TimeoutRetries is the number of extra attempts after a timeout
	// (default 1). Other failures are never retried.
	TimeoutRetries int `json:"timeout_retries" yaml:"timeout_retries"`
}

// MergeConfig holds settings for one merge run.
type MergeConfig struct {
	// InputDir is the directory scanned for supported files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputDir receives the merged PDF. Created if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// OutputName is the merged PDF filename (default "merged.pdf").
	OutputName string `json:"output_name" yaml:"output_name"`

	// Office configures the external presentation converter.
	Office OfficeConfig `json:"office" yaml:"office"`
}

// HistoryConfig holds settings for the optional run ledger.
type HistoryConfig struct {
	// Dir is the directory holding the ledger database
	// (default "~/.local/share/slidemerge").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults caps how many runs `history` lists (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
