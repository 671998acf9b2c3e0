// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fdr segments a chain's tall composite FDR diagram into one image
// per row group. Row groups are marked by runs of pure-colour pixels placed
// by the vendor tool; the geometry helpers in anchors.go are pure so they
// can be tested without image I/O.
package fdr

import (
	"image"
	"path/filepath"

	"github.com/pdiddy/peptide-report/internal/imaging"
	"github.com/pdiddy/peptide-report/internal/scratch"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// clusterGap is the largest row gap that still belongs to one marker run.
const clusterGap = 1

// DiagramName is the fixed file name of a chain's composite diagram in the
// report root ("hcoverage.png" or "lcoverage.png").
func DiagramName(c types.Chain) string {
	return c.Prefix() + "coverage.png"
}

// Segment crops the chain's composite diagram to the configured strip,
// detects anchors, and saves one image per anchor into sc. Segments are
// returned in anchor order. Crops are clipped to the diagram's bottom edge.
func Segment(reportDir string, chain types.Chain, cfg types.FDRConfig, sc *scratch.Context) ([]types.FDRSegment, error) {
	path := filepath.Join(reportDir, DiagramName(chain))
	img, err := imaging.Load(path)
	if err != nil {
		return nil, types.ImageLoad(chain, err, "loading FDR diagram %s", path)
	}

	height := img.Bounds().Dy()
	strip, err := imaging.Crop(img, image.Rect(cfg.CropLeft, 0, cfg.CropRight, height))
	if err != nil {
		return nil, types.ImageLoad(chain, err, "cropping FDR strip")
	}

	anchors := ClusterByGap(RowsWithColor(strip, cfg.Marker.RGBA()), clusterGap)
	if len(anchors) == 0 {
		return nil, types.AnchorDetection(chain, "no marker pixels in %s", path)
	}

	ends := EndAnchors(anchors, height, cfg.HeaderOffset)
	rects := SegmentRects(anchors, ends, strip.Bounds().Dx(), cfg.RowHeight, cfg.HeaderOffset)

	segments := make([]types.FDRSegment, 0, len(rects))
	for i, r := range rects {
		seg, err := imaging.Crop(strip, r.Intersect(strip.Bounds()))
		if err != nil {
			return nil, types.ImageLoad(chain, err, "cropping FDR segment %d at anchor %d", i, anchors[i])
		}
		out, err := sc.Save(scratch.FDRName(chain, i), seg)
		if err != nil {
			return nil, types.ImageLoad(chain, err, "saving FDR segment %d", i)
		}
		segments = append(segments, types.FDRSegment{Image: out})
	}
	return segments, nil
}
