// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package office locates and invokes the external office suite (LibreOffice
// soffice) that rasterizes presentation files to PDF. One external process
// is spawned per conversion; the binary is resolved once at construction.
package office

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/slidemerge/pkg/types"
)

// DefaultTimeout bounds one soffice invocation when the config leaves it unset.
const DefaultTimeout = 120 * time.Second

// executor abstracts binary lookup and process execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	FileExists(path string) bool
	Run(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// searchNames are tried on PATH before the per-OS install locations.
var searchNames = []string{"soffice", "libreoffice"}

// knownPaths returns the well-known install locations for goos.
func knownPaths(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/LibreOffice.app/Contents/MacOS/soffice",
			"/usr/local/bin/soffice",
		}
	case "windows":
		return []string{
			`C:\Program Files\LibreOffice\program\soffice.exe`,
			`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
		}
	default:
		return []string{
			"/usr/bin/soffice",
			"/usr/local/bin/soffice",
		}
	}
}

// Locate resolves the soffice binary: PATH lookup first, then the per-OS
// install locations. It returns types.ErrConverterUnavailable when nothing
// is found.
func Locate() (string, error) {
	return locate(defaultExec, runtime.GOOS)
}

func locate(exec executor, goos string) (string, error) {
	for _, name := range searchNames {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	for _, path := range knownPaths(goos) {
		if exec.FileExists(path) {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: soffice not on PATH or in known locations", types.ErrConverterUnavailable)
}

// InstallHint returns the LibreOffice install command for the current OS,
// shown when presentation files have to be skipped.
func InstallHint() string {
	return installHint(runtime.GOOS)
}

func installHint(goos string) string {
	switch goos {
	case "darwin":
		return "brew install --cask libreoffice"
	case "windows":
		return "winget install TheDocumentFoundation.LibreOffice"
	default:
		return "sudo apt-get install libreoffice (or your distribution's package manager)"
	}
}

// sofficeMu serializes soffice invocations. The engine shares one user
// profile across processes and rejects concurrent headless conversions.
var sofficeMu sync.Mutex

// Converter invokes soffice to turn one presentation file into a PDF.
type Converter struct {
	bin     string
	timeout time.Duration
	retries int
	exec    executor
}

// New resolves the converter binary and returns a Converter. An explicit
// cfg.Path skips discovery. New fails with types.ErrConverterUnavailable
// when no binary can be resolved.
func New(cfg types.OfficeConfig) (*Converter, error) {
	return newConverter(cfg, defaultExec, runtime.GOOS)
}

func newConverter(cfg types.OfficeConfig, ex executor, goos string) (*Converter, error) {
	bin := cfg.Path
	if bin == "" {
		located, err := locate(ex, goos)
		if err != nil {
			return nil, err
		}
		bin = located
	} else if !ex.FileExists(bin) {
		if _, err := ex.LookPath(bin); err != nil {
			return nil, fmt.Errorf("%w: configured path %s", types.ErrConverterUnavailable, bin)
		}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	retries := cfg.TimeoutRetries
	if retries < 0 {
		retries = 0
	}

	return &Converter{bin: bin, timeout: timeout, retries: retries, exec: ex}, nil
}

// Path returns the resolved soffice binary.
func (c *Converter) Path() string { return c.bin }

// Convert renders the presentation at inputPath into outDir and returns the
// path of the produced PDF (same stem, .pdf extension). The external process
// is bounded by the configured timeout; a timed-out attempt is retried at
// most c.retries times. Partial output from a failed attempt is removed.
func (c *Converter) Convert(ctx context.Context, inputPath, outDir string) (string, error) {
	sofficeMu.Lock()
	defer sofficeMu.Unlock()

	stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	outPath := filepath.Join(outDir, stem+".pdf")

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		err := c.convertOnce(ctx, inputPath, outDir, outPath)
		if err == nil {
			return outPath, nil
		}
		lastErr = err

		// Only transient external-process slowness is worth retrying.
		if !errors.Is(err, types.ErrConversionTimeout) || ctx.Err() != nil {
			break
		}
	}
	return "", lastErr
}

func (c *Converter) convertOnce(ctx context.Context, inputPath, outDir, outPath string) error {
	runCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"--headless", "--convert-to", "pdf", "--outdir", outDir, inputPath}

	var stderr bytes.Buffer
	err := c.exec.Run(runCtx, c.bin, args, &stderr)
	if err != nil {
		_ = os.Remove(outPath)
		if runCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return fmt.Errorf("%w: %s after %s", types.ErrConversionTimeout, filepath.Base(inputPath), c.timeout)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s: %s", types.ErrConversionFailed, filepath.Base(inputPath), msg)
	}

	// soffice exits zero even when it silently declines a document, so the
	// expected output file is the real success signal.
	if !c.exec.FileExists(outPath) {
		return fmt.Errorf("%w: %s produced no PDF", types.ErrConversionFailed, filepath.Base(inputPath))
	}
	return nil
}
