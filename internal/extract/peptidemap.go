// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/internal/reportdoc"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// TypicalPeptideMap pairs support-spectra captions with their diagrams.
//
// Captions are consecutive span pairs; the second token of the first span
// is the peptide's "start-end" position. The last caption whose start is
// within cfg.PositionThreshold sets the cutoff, and every entry up to and
// including it is emitted in document order. Entries are never filtered
// individually: a caption past the threshold before the cutoff is kept.
func TypicalPeptideMap(s *reportdoc.Section, reportDir string, cfg types.ExtractionConfig) ([]types.TypicalPeptideMapEntry, error) {
	block := s.Find(reportdoc.TagClass(atom.Div, "support-spectra"))
	if block == nil {
		return nil, types.SectionNotFound(s.Chain, "no support-spectra block")
	}

	spans := reportdoc.FindAll(block, reportdoc.Tag(atom.Span))
	var srcs []string
	for _, img := range reportdoc.FindAll(block, reportdoc.Tag(atom.Img)) {
		srcs = append(srcs, reportdoc.Attr(img, "src"))
	}

	starts := make([]int, len(spans)/2)
	titles := make([]string, len(spans)/2)
	for i := range starts {
		first := reportdoc.TrimmedText(spans[2*i])
		tokens := strings.Fields(first)
		if len(tokens) < 2 {
			return nil, types.TableParse(s.Chain, nil, "caption %d %q has no position token", i, first)
		}
		start, err := leadingPosition(tokens[1])
		if err != nil {
			return nil, types.TableParse(s.Chain, err, "caption %d", i)
		}
		starts[i] = start
		titles[i] = first + " " + reportdoc.TrimmedText(spans[2*i+1])
	}

	n := PrefixCutoff(starts, cfg.PositionThreshold)
	if n > len(srcs) {
		return nil, types.TableParse(s.Chain, nil, "support spectra has %d images for %d captions", len(srcs), n)
	}

	out := make([]types.TypicalPeptideMapEntry, n)
	for i := range out {
		out[i] = types.TypicalPeptideMapEntry{
			Title: titles[i],
			Image: ResolveImage(reportDir, cfg.ImageDir, srcs[i]),
		}
	}
	return out, nil
}

// PrefixCutoff returns how many leading entries to keep: one past the last
// index whose start is within threshold, or zero when none is.
func PrefixCutoff(starts []int, threshold int) int {
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] <= threshold {
			return i + 1
		}
	}
	return 0
}
