// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/internal/reportdoc"
	"github.com/pdiddy/peptide-report/pkg/types"
)

const (
	blockSize    = 10
	blocksPerRow = 5
	rowResidues  = blockSize * blocksPerRow
)

// Sequence reassembles the chain's residue string from the cells of the
// section's first table, skipping purely numeric position cells, and lays
// it out with FormatSequence.
func Sequence(s *reportdoc.Section) ([]types.SequenceRow, error) {
	table := s.Find(reportdoc.Tag(atom.Table))
	if table == nil {
		return nil, types.TableParse(s.Chain, nil, "no sequence table")
	}

	var seq strings.Builder
	for _, td := range reportdoc.FindAll(table, reportdoc.Tag(atom.Td)) {
		text := reportdoc.Text(td)
		if isDecimal(strings.TrimSpace(text)) {
			continue
		}
		for _, f := range strings.Fields(text) {
			seq.WriteString(f)
		}
	}
	return FormatSequence(seq.String()), nil
}

// FormatSequence splits seq into blocks of ten residues, five blocks per
// row. Labels are zero-padded 1-based positions; the final row's right
// label is the unpadded sequence length.
func FormatSequence(seq string) []types.SequenceRow {
	residues := []rune(seq)
	if len(residues) == 0 {
		return nil
	}

	var rows []types.SequenceRow
	for start := 0; start < len(residues); start += rowResidues {
		end := min(start+rowResidues, len(residues))
		var blocks []string
		for b := start; b < end; b += blockSize {
			blocks = append(blocks, string(residues[b:min(b+blockSize, end)]))
		}
		rows = append(rows, types.SequenceRow{
			LeftLabel:  fmt.Sprintf("%03d", start+1),
			RightLabel: fmt.Sprintf("%03d", start+rowResidues),
			Columns:    strings.Join(blocks, " "),
		})
	}
	rows[len(rows)-1].RightLabel = strconv.Itoa(len(residues))
	return rows
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
