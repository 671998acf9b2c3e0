// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strings"

	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/internal/reportdoc"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// Isotope statistics column headers.
const (
	colRegion     = "Region"
	colPosition   = "Position"
	colConfidence = "Confidence"
)

// positionSeparator splits the compound "<letter>@<position>" column.
const positionSeparator = "@"

// IsotopeLabels parses the table inside the section's il-stats block.
// Columns are located by header name; each row's Position is split on "@"
// into the differentiating residue letter and the position number. A value
// without a separator keeps the whole text as the letter and an empty
// position. Row order is preserved.
func IsotopeLabels(s *reportdoc.Section) ([]types.IsotopeLabelRecord, error) {
	block := s.Find(reportdoc.TagClass(atom.Div, "il-stats", "subsection", "unbreakable"))
	if block == nil {
		return nil, types.TableParse(s.Chain, nil, "no isotope statistics block")
	}
	table := reportdoc.FindFirst(block, reportdoc.Tag(atom.Table))
	if table == nil {
		return nil, types.TableParse(s.Chain, nil, "isotope statistics block has no table")
	}
	rows := reportdoc.FindAll(table, reportdoc.Tag(atom.Tr))
	if len(rows) == 0 {
		return nil, types.TableParse(s.Chain, nil, "isotope table has no rows")
	}

	idx, err := columnIndex(cellTexts(rows[0]), colRegion, colPosition, colConfidence)
	if err != nil {
		return nil, types.TableParse(s.Chain, err, "isotope table header")
	}
	width := 0
	for _, i := range idx {
		width = max(width, i+1)
	}

	var out []types.IsotopeLabelRecord
	for i, tr := range rows[1:] {
		cells := dataCellTexts(tr)
		if len(cells) == 0 {
			continue
		}
		if len(cells) < width {
			return nil, types.TableParse(s.Chain, nil, "isotope row %d has %d columns, want %d", i+1, len(cells), width)
		}
		letter, pos, _ := strings.Cut(cells[idx[colPosition]], positionSeparator)
		out = append(out, types.IsotopeLabelRecord{
			Region:          cells[idx[colRegion]],
			Position:        pos,
			Differentiation: letter,
			Confidence:      cells[idx[colConfidence]],
		})
	}
	return out, nil
}

// columnIndex maps each wanted header to its position in header.
func columnIndex(header []string, want ...string) (map[string]int, error) {
	idx := make(map[string]int, len(want))
	for i, h := range header {
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	out := make(map[string]int, len(want))
	var missing []string
	for _, w := range want {
		i, ok := idx[w]
		if !ok {
			missing = append(missing, w)
			continue
		}
		out[w] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %s in %v", strings.Join(missing, ", "), header)
	}
	return out, nil
}
