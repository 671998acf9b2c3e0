// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"path/filepath"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/internal/imaging"
	"github.com/pdiddy/peptide-report/internal/reportdoc"
	"github.com/pdiddy/peptide-report/internal/scratch"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// ResolveImage maps an img src such as "img/diagram.png" to a path under
// the report's image directory.
func ResolveImage(reportDir, imageDir, src string) string {
	rel := strings.TrimPrefix(filepath.ToSlash(src), imageDir+"/")
	return filepath.Join(reportDir, imageDir, filepath.FromSlash(rel))
}

// Coverage crops the image referenced by the section's div.coverage to
// cfg.CoverageCrop and saves it into sc under a chain-qualified name.
func Coverage(s *reportdoc.Section, reportDir string, cfg types.ExtractionConfig, sc *scratch.Context) (string, error) {
	var src string
	if div := s.Find(reportdoc.TagClass(atom.Div, "coverage")); div != nil {
		if img := reportdoc.FindFirst(div, reportdoc.Tag(atom.Img)); img != nil {
			src = reportdoc.Attr(img, "src")
		}
	}
	if src == "" {
		return "", types.ImageLoad(s.Chain, nil, "no coverage image reference")
	}

	path := ResolveImage(reportDir, cfg.ImageDir, src)
	img, err := imaging.Load(path)
	if err != nil {
		return "", types.ImageLoad(s.Chain, err, "loading coverage image %s", path)
	}
	cropped, err := imaging.Crop(img, cfg.CoverageCrop.Image())
	if err != nil {
		return "", types.ImageLoad(s.Chain, err, "cropping coverage image %s", path)
	}
	out, err := sc.Save(scratch.CoverageName(s.Chain), cropped)
	if err != nil {
		return "", types.ImageLoad(s.Chain, err, "saving coverage image")
	}
	return out, nil
}
