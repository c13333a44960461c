// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imaging wraps raster images as single-page PDFs. The page size
// equals the image's pixel dimensions; palette, alpha, and CMYK inputs are
// flattened to RGB over a white background before embedding, since the
// concatenation layer expects a uniform color space per page.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	// Stdlib and x/image decoders for every supported input extension.
	// image/png registers its decoder via the named import above.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/pdiddy/slidemerge/pkg/types"
)

// WrapPDF converts the image at srcPath into a one-page PDF inside outDir
// and returns the PDF path (same stem, .pdf extension). It fails with
// types.ErrUnsupportedImageFormat when no decoder recognizes the bytes and
// types.ErrImageDecode when the bytes are corrupt.
func WrapPDF(srcPath, outDir string) (string, error) {
	img, err := decode(srcPath)
	if err != nil {
		return "", err
	}

	flat := flatten(img)

	stem := strings.TrimSuffix(filepath.Base(srcPath), filepath.Ext(srcPath))
	pngPath := filepath.Join(outDir, stem+".norm.png")
	outPath := filepath.Join(outDir, stem+".pdf")

	if err := writePNG(flat, pngPath); err != nil {
		return "", err
	}
	defer os.Remove(pngPath)

	if err := api.ImportImagesFile([]string{pngPath}, outPath, nil, nil); err != nil {
		_ = os.Remove(outPath)
		return "", fmt.Errorf("%w: embedding %s: %v", types.ErrConversionFailed, filepath.Base(srcPath), err)
	}
	return outPath, nil
}

func decode(srcPath string) (image.Image, error) {
	f, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrImageDecode, filepath.Base(srcPath), err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedImageFormat, filepath.Base(srcPath))
		}
		return nil, fmt.Errorf("%w: %s: %v", types.ErrImageDecode, filepath.Base(srcPath), err)
	}
	return img, nil
}

// flatten composites img over a white background, normalizing palette,
// alpha, and CMYK sources to RGB.
func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

func writePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating scratch image %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("encoding scratch image %s: %w", path, err)
	}
	return f.Close()
}
