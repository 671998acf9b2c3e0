// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scratch owns the directory that receives derived images for one
// extraction run. The orchestrator creates it; the caller tears it down
// after the consuming template has been rendered.
package scratch

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/pdiddy/peptide-report/internal/imaging"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// Context is an explicit scratch directory with a chain-qualified naming
// scheme. It remembers every file it wrote so a failed run can discard
// them. A Context is not safe for concurrent use.
type Context struct {
	Dir     string
	written []string
}

// New creates dir if needed and returns a Context for it.
func New(dir string) (*Context, error) {
	if dir == "" {
		return nil, errors.New("scratch directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Context{Dir: dir}, nil
}

// CoverageName is the file name of a chain's cropped coverage image.
func CoverageName(c types.Chain) string {
	return string(c) + "_confidence.jpg"
}

// FDRName is the file name of segment i of a chain's FDR diagram. The
// index is zero-padded so lexical order matches index order.
func FDRName(c types.Chain, i int) string {
	return fmt.Sprintf("%sfdr%03d.png", c.Prefix(), i)
}

// Save writes img under name inside the scratch directory and returns
// its path.
func (c *Context) Save(name string, img image.Image) (string, error) {
	path := filepath.Join(c.Dir, name)
	if err := imaging.Save(path, img); err != nil {
		return "", err
	}
	c.written = append(c.written, path)
	return path, nil
}

// Written returns the paths saved through c, in write order.
func (c *Context) Written() []string {
	return append([]string(nil), c.written...)
}

// Discard removes every file written through c. It is used when a run
// fails so no partial output remains.
func (c *Context) Discard() error {
	var errs []error
	for _, p := range c.written {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	c.written = nil
	return errors.Join(errs...)
}

// Clear removes every regular file in dir, leaving subdirectories alone.
// A missing directory is not an error. It returns the number of files
// removed.
func Clear(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading scratch directory %s: %w", dir, err)
	}
	removed := 0
	var errs []error
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}
