// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imaging

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/peptide-report/internal/testutil"
)

func TestCrop(t *testing.T) {
	src := testutil.Blank(20, 10)
	src.SetRGBA(5, 3, color.RGBA{R: 255, A: 255})

	tests := []struct {
		name    string
		rect    image.Rectangle
		wantErr bool
	}{
		{name: "inside", rect: image.Rect(4, 2, 10, 8)},
		{name: "whole image", rect: image.Rect(0, 0, 20, 10)},
		{name: "past right edge", rect: image.Rect(10, 0, 21, 10), wantErr: true},
		{name: "negative top", rect: image.Rect(0, -1, 10, 5), wantErr: true},
		{name: "empty", rect: image.Rect(3, 3, 3, 8), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Crop(src, tt.rect)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, tt.rect.Dx(), tt.rect.Dy()), got.Bounds())
			assert.Equal(t, src.RGBAAt(5, 3), got.RGBAAt(5-tt.rect.Min.X, 3-tt.rect.Min.Y))
		})
	}
}

func TestCropOffsetBounds(t *testing.T) {
	// Sub-images keep their parent's coordinates; crops are relative to Min.
	parent := testutil.Blank(30, 30)
	parent.SetRGBA(12, 12, color.RGBA{G: 255, A: 255})
	sub := parent.SubImage(image.Rect(10, 10, 30, 30))

	got, err := Crop(sub, image.Rect(2, 2, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, got.RGBAAt(0, 0))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := testutil.FDRImage(50, 10)

	for _, name := range []string{"a.png", "b.jpg"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, img))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, img.Bounds(), got.Bounds())
		})
	}
}

func TestSaveDeterministic(t *testing.T) {
	dir := t.TempDir()
	img := testutil.FDRImage(40, 5, 6)
	a, b := filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.jpg")
	require.NoError(t, Save(a, img))
	require.NoError(t, Save(b, img))

	da, err := os.ReadFile(a)
	require.NoError(t, err)
	db, err := os.ReadFile(b)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(da, db))
}

func TestSaveUnsupportedExtension(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "x.gif"), testutil.Blank(2, 2))
	assert.ErrorContains(t, err, "unsupported image extension")
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.True(t, os.IsNotExist(err))
}
