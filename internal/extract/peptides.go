// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/peptide-report/internal/reportdoc"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// peptideSchema is the positional layout of table.peptides.
var peptideSchema = schema{
	{name: "position"},
	{name: "enzyme", normalize: NormalizeEnzyme},
	{name: "psm"},
	{name: "mass"},
	{name: "ppm"},
	{name: "abundance", normalize: NormalizeAbundance},
	{name: "sequence"},
}

// Peptides walks the section's peptide table in row order. Rows whose
// leading position exceeds threshold are skipped; scanning continues with
// the next row. Rows with no data cells are skipped, and rows missing any
// field are dropped with a warning. The header row must carry every column.
func Peptides(s *reportdoc.Section, threshold int, log zerolog.Logger) ([]types.PeptideRecord, error) {
	table := s.Find(reportdoc.TagClass(atom.Table, "peptides"))
	if table == nil {
		return nil, types.TableParse(s.Chain, nil, "no peptide table")
	}
	rows := reportdoc.FindAll(table, reportdoc.Tag(atom.Tr))
	if len(rows) == 0 {
		return nil, types.TableParse(s.Chain, nil, "peptide table has no rows")
	}
	if err := peptideSchema.checkWidth(cellTexts(rows[0])); err != nil {
		return nil, types.TableParse(s.Chain, err, "peptide table header")
	}

	var out []types.PeptideRecord
	for i, tr := range rows[1:] {
		cells := dataCellTexts(tr)
		if len(cells) == 0 {
			continue
		}
		start, err := leadingPosition(cells[0])
		if err != nil {
			return nil, types.TableParse(s.Chain, err, "peptide row %d", i+1)
		}
		if start > threshold {
			continue
		}
		if err := peptideSchema.checkWidth(cells); err != nil {
			log.Warn().Str("chain", string(s.Chain)).Int("row", i+1).Err(err).Msg("dropping incomplete peptide row")
			continue
		}
		v := peptideSchema.apply(cells)
		out = append(out, types.PeptideRecord{
			Position:  v[0],
			Enzyme:    v[1],
			PSM:       v[2],
			Mass:      v[3],
			PPM:       v[4],
			Abundance: v[5],
			Sequence:  v[6],
		})
	}
	return out, nil
}

// NormalizeEnzyme maps vendor enzyme labels to full names. Any label
// containing "Pepsin" becomes "Pepsin"; exactly "Chymo" becomes
// "Chymotrypsin"; everything else passes through.
func NormalizeEnzyme(s string) string {
	switch {
	case strings.Contains(s, "Pepsin"):
		return "Pepsin"
	case s == "Chymo":
		return "Chymotrypsin"
	}
	return s
}

var unsignedExponent = regexp.MustCompile(`E(\d)`)

// NormalizeAbundance makes the sign of an "E" exponent explicit:
// "1.2E5" becomes "1.2E+5". Signed exponents are left alone, so the
// function is idempotent.
func NormalizeAbundance(s string) string {
	return unsignedExponent.ReplaceAllString(s, "E+$1")
}
