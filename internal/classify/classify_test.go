// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdiddy/slidemerge/pkg/types"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		want types.FileKind
	}{
		{"deck.pptx", types.KindPresentation},
		{"legacy.PPT", types.KindPresentation},
		{"photo.png", types.KindImage},
		{"photo.JPG", types.KindImage},
		{"photo.jpeg", types.KindImage},
		{"anim.gif", types.KindImage},
		{"bitmap.bmp", types.KindImage},
		{"scan.tiff", types.KindImage},
		{"scan.tif", types.KindImage},
		{"doc.pdf", types.KindPDF},
		{"doc.PDF", types.KindPDF},
		{"notes.txt", types.KindUnsupported},
		{"archive.zip", types.KindUnsupported},
		{"noextension", types.KindUnsupported},
		{"deck.pptx.bak", types.KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.name); got != tt.want {
				t.Errorf("Kind(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestScanOrderingAndFiltering(t *testing.T) {
	dir := t.TempDir()

	// Deliberately created out of order; Scan must return filename order.
	for _, name := range []string{
		"zebra.pdf", "alpha.pptx", "middle.png", "ignored.txt", "Beta.jpg",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := Scan(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Byte-wise ordering puts uppercase before lowercase.
	wantNames := []string{"Beta.jpg", "alpha.pptx", "middle.png", "zebra.pdf"}
	if len(entries) != len(wantNames) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(wantNames), entries)
	}
	for i, want := range wantNames {
		if entries[i].Name != want {
			t.Errorf("entries[%d].Name = %q, want %q", i, entries[i].Name, want)
		}
	}

	wantKinds := []types.FileKind{
		types.KindImage, types.KindPresentation, types.KindImage, types.KindPDF,
	}
	for i, want := range wantKinds {
		if entries[i].Kind != want {
			t.Errorf("entries[%d].Kind = %q, want %q", i, entries[i].Kind, want)
		}
	}
}

func TestScanEmptyAndUnsupportedOnly(t *testing.T) {
	t.Run("empty directory", func(t *testing.T) {
		entries, err := Scan(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})

	t.Run("only unsupported extensions", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.txt", "b.docx", "c.mov"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
		entries, err := Scan(dir)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})
}

func TestScanMissingDirectory(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	if !errors.Is(err, types.ErrDirectoryNotFound) {
		t.Errorf("err = %v, want ErrDirectoryNotFound", err)
	}
}

func TestScanPathIsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Scan(path)
	if !errors.Is(err, types.ErrDirectoryNotFound) {
		t.Errorf("err = %v, want ErrDirectoryNotFound", err)
	}
}
