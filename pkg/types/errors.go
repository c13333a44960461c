// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Sentinel errors for the merge pipeline. Per-file errors
// (ErrConverterUnavailable through ErrMalformedPDF) are recorded in
// MergeReport.Failed and never abort a run; run-level errors
// (ErrDirectoryNotFound, ErrNothingToMerge, ErrOutputWrite) terminate it.
var (
	// ErrDirectoryNotFound marks an input path that does not exist or is
	// not a directory.
	ErrDirectoryNotFound = errors.New("input directory not found")

	// ErrConverterUnavailable marks a presentation input when no office
	// converter binary could be located.
	ErrConverterUnavailable = errors.New("office converter not available")

	// ErrConversionTimeout marks an external conversion that exceeded its
	// bounded wait.
	ErrConversionTimeout = errors.New("conversion timed out")

	// ErrConversionFailed marks a non-zero converter exit or missing
	// converter output.
	ErrConversionFailed = errors.New("conversion failed")

	// ErrUnsupportedImageFormat marks an image whose encoding no
	// registered decoder recognizes.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")

	// ErrImageDecode marks an image with unreadable or corrupt bytes.
	ErrImageDecode = errors.New("image decode failed")

	// ErrMalformedPDF marks a PDF source that fails validation.
	ErrMalformedPDF = errors.New("malformed PDF input")

	// ErrEmptyMergeSet marks a concatenation request with no inputs.
	ErrEmptyMergeSet = errors.New("empty merge set")

	// ErrNothingToMerge marks a run in which no input survived conversion.
	ErrNothingToMerge = errors.New("nothing to merge")

	// ErrOutputWrite marks a failure to materialize the merged output file.
	ErrOutputWrite = errors.New("output write failed")
)
