// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify scans an input directory and groups files by the
// converter that can handle them.
package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/slidemerge/pkg/types"
)

// Extension sets are fixed; anything else is unsupported and silently
// excluded from the scan result.
var kindByExt = map[string]types.FileKind{
	".pptx": types.KindPresentation,
	".ppt":  types.KindPresentation,
	".png":  types.KindImage,
	".jpg":  types.KindImage,
	".jpeg": types.KindImage,
	".gif":  types.KindImage,
	".bmp":  types.KindImage,
	".tiff": types.KindImage,
	".tif":  types.KindImage,
	".pdf":  types.KindPDF,
}

// Kind classifies a single filename by its extension, case-insensitively.
func Kind(name string) types.FileKind {
	ext := strings.ToLower(filepath.Ext(name))
	if k, ok := kindByExt[ext]; ok {
		return k
	}
	return types.KindUnsupported
}

// Scan lists the supported files in dir, ordered by filename. The ordering
// is byte-wise on the raw filename string, so it is stable for a given
// directory regardless of platform collation. Subdirectories and files with
// unrecognized extensions are excluded. Scan fails with
// types.ErrDirectoryNotFound when dir does not exist or is not a directory.
func Scan(dir string) ([]types.InputEntry, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", types.ErrDirectoryNotFound, dir)
		}
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", types.ErrDirectoryNotFound, dir)
	}

	// os.ReadDir returns entries sorted by filename (byte-wise), which is
	// exactly the merge order contract.
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	entries := make([]types.InputEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		kind := Kind(de.Name())
		if kind == types.KindUnsupported {
			continue
		}
		entries = append(entries, types.InputEntry{
			Path: filepath.Join(dir, de.Name()),
			Name: de.Name(),
			Kind: kind,
		})
	}

	return entries, nil
}
