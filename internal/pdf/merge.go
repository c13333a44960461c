// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf concatenates fully materialized PDF files. Page content is
// never altered; output page order is the concatenation of each input's
// pages in the sequence order of the inputs.
package pdf

import (
	"fmt"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/slidemerge/pkg/types"
)

// Merge concatenates orderedPaths into a single PDF at outPath. Every source
// is validated first; a source that fails validation yields
// types.ErrMalformedPDF and no output is written. An empty sequence yields
// types.ErrEmptyMergeSet.
func Merge(orderedPaths []string, outPath string) error {
	if len(orderedPaths) == 0 {
		return types.ErrEmptyMergeSet
	}

	for _, p := range orderedPaths {
		if err := api.ValidateFile(p, nil); err != nil {
			return fmt.Errorf("%w: %s: %v", types.ErrMalformedPDF, filepath.Base(p), err)
		}
	}

	if err := api.MergeCreateFile(orderedPaths, outPath, nil); err != nil {
		return fmt.Errorf("merging %d files: %w", len(orderedPaths), err)
	}
	return nil
}

// Validate checks that the PDF at path parses cleanly.
func Validate(path string) error {
	if err := api.ValidateFile(path, nil); err != nil {
		return fmt.Errorf("%w: %s: %v", types.ErrMalformedPDF, filepath.Base(path), err)
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", types.ErrMalformedPDF, filepath.Base(path), err)
	}
	return n, nil
}
