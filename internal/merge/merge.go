// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge orchestrates one merge run: classify the input directory,
// convert each entry to a scratch PDF, concatenate the survivors in
// classifier order, and move the result into place atomically. One file's
// conversion failure never aborts the run; run-level failures do.
package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/slidemerge/internal/classify"
	"github.com/pdiddy/slidemerge/internal/imaging"
	"github.com/pdiddy/slidemerge/internal/office"
	"github.com/pdiddy/slidemerge/internal/pdf"
	"github.com/pdiddy/slidemerge/pkg/types"
)

// Converter turns one input file into a PDF inside outDir and returns the
// produced PDF path.
type Converter interface {
	Convert(ctx context.Context, inputPath, outDir string) (string, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(ctx context.Context, inputPath, outDir string) (string, error)

// Convert calls f.
func (f ConverterFunc) Convert(ctx context.Context, inputPath, outDir string) (string, error) {
	return f(ctx, inputPath, outDir)
}

// Runner holds the per-kind converters for a merge run. Converters are
// injected so tests can substitute fakes for the external office engine.
type Runner struct {
	// Presentation converts slide decks. A nil Presentation means the
	// external engine is unavailable; presentation inputs are then
	// recorded as failed without invoking anything.
	Presentation Converter

	// Image wraps raster images as single-page PDFs.
	Image Converter

	// PDF is the pass-through for existing PDFs.
	PDF Converter

	// Log receives per-file progress lines.
	Log io.Writer
}

// NewRunner builds a Runner with the production converters. Office converter
// discovery happens here, once per run; an unavailable engine degrades the
// runner instead of failing construction.
func NewRunner(officeCfg types.OfficeConfig, log io.Writer) *Runner {
	r := &Runner{
		Image: ConverterFunc(func(_ context.Context, in, outDir string) (string, error) {
			return imaging.WrapPDF(in, outDir)
		}),
		PDF: ConverterFunc(passThrough),
		Log: log,
	}
	if conv, err := office.New(officeCfg); err == nil {
		r.Presentation = conv
	}
	return r
}

// passThrough validates an existing PDF and copies it into the scratch
// directory, so every merge input lives in run-scoped scratch space.
func passThrough(_ context.Context, inputPath, outDir string) (string, error) {
	if err := pdf.Validate(inputPath); err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, filepath.Base(inputPath))
	src, err := os.Open(inputPath)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", inputPath, err)
	}
	defer src.Close()

	dst, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("creating scratch copy %s: %w", outPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		_ = os.Remove(outPath)
		return "", fmt.Errorf("copying %s: %w", inputPath, err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("copying %s: %w", inputPath, err)
	}
	return outPath, nil
}

// Run executes one merge over cfg.InputDir and writes the merged PDF to
// cfg.OutputDir/cfg.OutputName (default "merged.pdf"). The returned report
// is non-nil whenever classification succeeded, including on run-level
// failure, so callers can still record what happened.
func (r *Runner) Run(ctx context.Context, cfg types.MergeConfig) (*types.MergeReport, error) {
	started := time.Now()

	entries, err := classify.Scan(cfg.InputDir)
	if err != nil {
		return nil, err
	}

	report := &types.MergeReport{
		InputDir:  cfg.InputDir,
		Attempted: entries,
		StartedAt: started,
	}

	if len(entries) == 0 {
		fmt.Fprintf(r.Log, "no supported files in %s (presentations, images, PDFs)\n", cfg.InputDir)
		report.Duration = time.Since(started)
		return report, fmt.Errorf("%w: %s", types.ErrNothingToMerge, cfg.InputDir)
	}

	if r.Presentation == nil && hasKind(entries, types.KindPresentation) {
		fmt.Fprintf(r.Log, "warning: LibreOffice not found, presentation files will be skipped\n")
		fmt.Fprintf(r.Log, "warning: to install it, run: %s\n", office.InstallHint())
	}

	scratch, err := os.MkdirTemp("", "slidemerge-")
	if err != nil {
		return report, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	// Conversion. Results keep classifier order; a failure records the
	// entry and moves on.
	ordered := make([]string, 0, len(entries))
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(started)
			return report, err
		}

		res := r.convertEntry(ctx, entry, filepath.Join(scratch, fmt.Sprintf("%03d", i)))

		// Cancellation during an external conversion surfaces as the
		// context error; abort instead of recording a per-file failure.
		if ctx.Err() != nil {
			report.Duration = time.Since(started)
			return report, ctx.Err()
		}

		switch res.Outcome {
		case types.OutcomeConverted:
			report.Succeeded = append(report.Succeeded, res)
			ordered = append(ordered, res.PDFPath)
			fmt.Fprintf(r.Log, "converted: %s\n", entry.Name)
		case types.OutcomeSkipped:
			report.Failed = append(report.Failed, res)
			fmt.Fprintf(r.Log, "skipped: %s (%s)\n", entry.Name, res.Reason)
		default:
			report.Failed = append(report.Failed, res)
			fmt.Fprintf(r.Log, "failed:  %s (%s)\n", entry.Name, res.Reason)
		}
	}

	if len(ordered) == 0 {
		report.Duration = time.Since(started)
		return report, fmt.Errorf("%w: all %d file(s) failed conversion", types.ErrNothingToMerge, len(entries))
	}

	outPath, err := r.writeMerged(ordered, cfg)
	if err != nil {
		report.Duration = time.Since(started)
		return report, err
	}
	report.OutputPath = outPath
	report.Duration = time.Since(started)

	pages, err := pdf.PageCount(outPath)
	if err == nil {
		fmt.Fprintf(r.Log, "\ncreated %s (%d pages from %d of %d files)\n",
			outPath, pages, len(report.Succeeded), report.Total())
	}
	return report, nil
}

// convertEntry dispatches one entry to its converter. entryDir is a private
// scratch subdirectory, so same-stem inputs cannot clobber each other.
func (r *Runner) convertEntry(ctx context.Context, entry types.InputEntry, entryDir string) types.ConversionResult {
	res := types.ConversionResult{Source: entry}

	if entry.Kind == types.KindPresentation && r.Presentation == nil {
		res.Outcome = types.OutcomeSkipped
		res.Err = types.ErrConverterUnavailable
		res.Reason = types.ErrConverterUnavailable.Error()
		return res
	}

	if err := os.MkdirAll(entryDir, 0o755); err != nil {
		res.Outcome = types.OutcomeFailed
		res.Err = err
		res.Reason = err.Error()
		return res
	}

	var conv Converter
	switch entry.Kind {
	case types.KindPresentation:
		conv = r.Presentation
	case types.KindImage:
		conv = r.Image
	case types.KindPDF:
		conv = r.PDF
	}

	pdfPath, err := conv.Convert(ctx, entry.Path, entryDir)
	if err != nil {
		res.Outcome = types.OutcomeFailed
		res.Err = err
		res.Reason = err.Error()
		return res
	}

	res.Outcome = types.OutcomeConverted
	res.PDFPath = pdfPath
	return res
}

// writeMerged concatenates ordered into a hidden temp file next to the final
// output and renames it into place, so a failed write never leaves a partial
// output file.
func (r *Runner) writeMerged(ordered []string, cfg types.MergeConfig) (string, error) {
	outName := cfg.OutputName
	if outName == "" {
		outName = types.DefaultOutputName
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", types.ErrOutputWrite, cfg.OutputDir, err)
	}

	finalPath := filepath.Join(cfg.OutputDir, outName)
	tempPath := filepath.Join(cfg.OutputDir, "."+outName+".partial")

	if err := pdf.Merge(ordered, tempPath); err != nil {
		_ = os.Remove(tempPath)
		if errors.Is(err, types.ErrMalformedPDF) || errors.Is(err, types.ErrEmptyMergeSet) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", types.ErrOutputWrite, err)
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("%w: %v", types.ErrOutputWrite, err)
	}
	return finalPath, nil
}

func hasKind(entries []types.InputEntry, kind types.FileKind) bool {
	for _, e := range entries {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
