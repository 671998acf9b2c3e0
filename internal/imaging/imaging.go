// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imaging loads, crops, and writes raster diagrams.
package imaging

import (
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// jpegQuality is fixed so repeated runs produce identical bytes.
const jpegQuality = 95

// Load decodes the PNG or JPEG image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

// Crop copies the rectangle r, given relative to img's top-left corner,
// into a new image whose bounds start at the origin. r must be non-empty
// and lie inside img.
func Crop(img image.Image, r image.Rectangle) (*image.RGBA, error) {
	b := img.Bounds()
	abs := r.Add(b.Min)
	if r.Empty() {
		return nil, fmt.Errorf("crop rectangle %v is empty", r)
	}
	if !abs.In(b) {
		return nil, fmt.Errorf("crop rectangle %v outside image bounds %v", r, b.Sub(b.Min))
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, abs.Min, draw.Src)
	return dst, nil
}

// Save encodes img to path as PNG or JPEG, chosen by the file extension.
func Save(path string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(path))
	var encode func(*os.File) error
	switch ext {
	case ".png":
		encode = func(f *os.File) error { return png.Encode(f, img) }
	case ".jpg", ".jpeg":
		encode = func(f *os.File) error { return jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}) }
	default:
		return fmt.Errorf("unsupported image extension %q", ext)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
