// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for a merge run: classified
// input entries, per-file conversion results, and the final merge report.
package types

import "time"

// FileKind identifies the converter an input file is dispatched to.
// It is derived from the file extension at scan time and never changes
// afterwards within one run.
type FileKind string

const (
	KindPresentation FileKind = "presentation"
	KindImage        FileKind = "image"
	KindPDF          FileKind = "pdf"
	KindUnsupported  FileKind = "unsupported"
)

// InputEntry is one classified file from the input directory.
type InputEntry struct {
	// Path is the absolute or caller-relative path to the source file.
	Path string `json:"path" yaml:"path"`

	// Name is the base filename, used for ordering and progress output.
	Name string `json:"name" yaml:"name"`

	// Kind selects the converter for this entry.
	Kind FileKind `json:"kind" yaml:"kind"`
}

// Outcome is the terminal state of one entry's conversion.
type Outcome string

const (
	OutcomeConverted Outcome = "converted"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// ConversionResult records what happened to a single input entry. It is
// created once by a converter and owned by the orchestrator from then on.
type ConversionResult struct {
	// Source is the entry this result belongs to.
	Source InputEntry `json:"source" yaml:"source"`

	// Outcome is the terminal state for the entry.
	Outcome Outcome `json:"outcome" yaml:"outcome"`

	// PDFPath is the scratch-file location of the converted PDF.
	// Empty unless Outcome is OutcomeConverted.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// Reason is the failure or skip cause, human-readable.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Err carries the underlying error for errors.Is matching. Not
	// serialized; Reason holds the rendered form.
	Err error `json:"-" yaml:"-"`
}

// MergeReport is the outcome of one merge run. Every entry returned by the
// classifier appears in exactly one of Succeeded or Failed.
type MergeReport struct {
	// InputDir is the scanned directory.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// Attempted lists every classified entry, in classifier order.
	Attempted []InputEntry `json:"attempted" yaml:"attempted"`

	// Succeeded lists results that contributed pages to the output,
	// in classifier order.
	Succeeded []ConversionResult `json:"succeeded" yaml:"succeeded"`

	// Failed lists results that were excluded from the output,
	// in classifier order.
	Failed []ConversionResult `json:"failed" yaml:"failed"`

	// OutputPath is the merged PDF location. Empty if the run failed
	// before writing.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// StartedAt and Duration cover the whole run including the merge write.
	StartedAt time.Time     `json:"started_at" yaml:"started_at"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Total returns the number of entries processed.
func (r *MergeReport) Total() int {
	return len(r.Succeeded) + len(r.Failed)
}

// HasFailures reports whether any entry failed conversion.
func (r *MergeReport) HasFailures() bool {
	return len(r.Failed) > 0
}
