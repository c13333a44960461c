// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package office

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pdiddy/slidemerge/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	pathBins      map[string]bool // binary name -> whether LookPath succeeds
	existingFiles map[string]bool // absolute path -> whether FileExists is true
	runFunc       func(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error
	runCalls      int
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.pathBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) FileExists(path string) bool {
	return m.existingFiles[path]
}

func (m *mockExecutor) Run(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error {
	m.runCalls++
	if m.runFunc != nil {
		return m.runFunc(ctx, name, args, stderr)
	}
	return nil
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		goos     string
		wantPath string
		wantErr  bool
	}{
		{
			name:     "soffice on PATH",
			exec:     &mockExecutor{pathBins: map[string]bool{"soffice": true}},
			goos:     "linux",
			wantPath: "/usr/bin/soffice",
		},
		{
			name:     "libreoffice fallback on PATH",
			exec:     &mockExecutor{pathBins: map[string]bool{"libreoffice": true}},
			goos:     "linux",
			wantPath: "/usr/bin/libreoffice",
		},
		{
			name: "darwin app bundle location",
			exec: &mockExecutor{
				existingFiles: map[string]bool{
					"/Applications/LibreOffice.app/Contents/MacOS/soffice": true,
				},
			},
			goos:     "darwin",
			wantPath: "/Applications/LibreOffice.app/Contents/MacOS/soffice",
		},
		{
			name: "windows program files location",
			exec: &mockExecutor{
				existingFiles: map[string]bool{
					`C:\Program Files\LibreOffice\program\soffice.exe`: true,
				},
			},
			goos:     "windows",
			wantPath: `C:\Program Files\LibreOffice\program\soffice.exe`,
		},
		{
			name:    "nothing installed",
			exec:    &mockExecutor{},
			goos:    "linux",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, err := locate(tt.exec, tt.goos)
			if tt.wantErr {
				if !errors.Is(err, types.ErrConverterUnavailable) {
					t.Fatalf("err = %v, want ErrConverterUnavailable", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if path != tt.wantPath {
				t.Errorf("got path %q, want %q", path, tt.wantPath)
			}
		})
	}
}

func TestNewConverter(t *testing.T) {
	t.Run("explicit path that exists", func(t *testing.T) {
		exec := &mockExecutor{existingFiles: map[string]bool{"/opt/soffice": true}}
		c, err := newConverter(types.OfficeConfig{Path: "/opt/soffice"}, exec, "linux")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.Path() != "/opt/soffice" {
			t.Errorf("Path() = %q, want /opt/soffice", c.Path())
		}
		if c.timeout != DefaultTimeout {
			t.Errorf("timeout = %v, want default %v", c.timeout, DefaultTimeout)
		}
	})

	t.Run("explicit path that is missing", func(t *testing.T) {
		_, err := newConverter(types.OfficeConfig{Path: "/opt/soffice"}, &mockExecutor{}, "linux")
		if !errors.Is(err, types.ErrConverterUnavailable) {
			t.Errorf("err = %v, want ErrConverterUnavailable", err)
		}
	})

	t.Run("discovery failure", func(t *testing.T) {
		_, err := newConverter(types.OfficeConfig{}, &mockExecutor{}, "linux")
		if !errors.Is(err, types.ErrConverterUnavailable) {
			t.Errorf("err = %v, want ErrConverterUnavailable", err)
		}
	})
}

func TestConvertSuccess(t *testing.T) {
	exec := &mockExecutor{
		pathBins:      map[string]bool{"soffice": true},
		existingFiles: map[string]bool{},
	}
	exec.runFunc = func(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error {
		// soffice writes <stem>.pdf into the --outdir argument.
		exec.existingFiles["/scratch/deck.pdf"] = true
		return nil
	}

	c, err := newConverter(types.OfficeConfig{}, exec, "linux")
	if err != nil {
		t.Fatal(err)
	}

	out, err := c.Convert(context.Background(), "/input/deck.pptx", "/scratch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "/scratch/deck.pdf" {
		t.Errorf("got output %q, want /scratch/deck.pdf", out)
	}
	if exec.runCalls != 1 {
		t.Errorf("runCalls = %d, want 1", exec.runCalls)
	}
}

func TestConvertFailures(t *testing.T) {
	t.Run("non-zero exit", func(t *testing.T) {
		exec := &mockExecutor{pathBins: map[string]bool{"soffice": true}}
		exec.runFunc = func(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error {
			stderr.WriteString("Error: source file could not be loaded")
			return errors.New("exit status 1")
		}
		c, err := newConverter(types.OfficeConfig{TimeoutRetries: 1}, exec, "linux")
		if err != nil {
			t.Fatal(err)
		}
		_, err = c.Convert(context.Background(), "/input/deck.pptx", "/scratch")
		if !errors.Is(err, types.ErrConversionFailed) {
			t.Fatalf("err = %v, want ErrConversionFailed", err)
		}
		if exec.runCalls != 1 {
			t.Errorf("runCalls = %d, want 1 (no retry on hard failure)", exec.runCalls)
		}
	})

	t.Run("zero exit but no output file", func(t *testing.T) {
		exec := &mockExecutor{pathBins: map[string]bool{"soffice": true}}
		c, err := newConverter(types.OfficeConfig{}, exec, "linux")
		if err != nil {
			t.Fatal(err)
		}
		_, err = c.Convert(context.Background(), "/input/deck.pptx", "/scratch")
		if !errors.Is(err, types.ErrConversionFailed) {
			t.Errorf("err = %v, want ErrConversionFailed", err)
		}
	})

	t.Run("timeout retried once then surfaces", func(t *testing.T) {
		exec := &mockExecutor{pathBins: map[string]bool{"soffice": true}}
		exec.runFunc = func(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error {
			<-ctx.Done()
			return ctx.Err()
		}
		cfg := types.OfficeConfig{Timeout: 5 * time.Millisecond, TimeoutRetries: 1}
		c, err := newConverter(cfg, exec, "linux")
		if err != nil {
			t.Fatal(err)
		}
		_, err = c.Convert(context.Background(), "/input/deck.pptx", "/scratch")
		if !errors.Is(err, types.ErrConversionTimeout) {
			t.Fatalf("err = %v, want ErrConversionTimeout", err)
		}
		if exec.runCalls != 2 {
			t.Errorf("runCalls = %d, want 2 (one retry)", exec.runCalls)
		}
	})

	t.Run("parent cancellation aborts without retry", func(t *testing.T) {
		exec := &mockExecutor{pathBins: map[string]bool{"soffice": true}}
		exec.runFunc = func(ctx context.Context, name string, args []string, stderr *bytes.Buffer) error {
			<-ctx.Done()
			return ctx.Err()
		}
		c, err := newConverter(types.OfficeConfig{TimeoutRetries: 1}, exec, "linux")
		if err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = c.Convert(ctx, "/input/deck.pptx", "/scratch")
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("err = %v, want context.Canceled", err)
		}
		if exec.runCalls != 1 {
			t.Errorf("runCalls = %d, want 1", exec.runCalls)
		}
	})
}

func TestInstallHint(t *testing.T) {
	for _, goos := range []string{"darwin", "windows", "linux"} {
		if installHint(goos) == "" {
			t.Errorf("installHint(%q) is empty", goos)
		}
	}
}
