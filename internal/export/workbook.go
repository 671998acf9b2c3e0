// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/peptide-report/pkg/types"
)

// Column headers for each workbook sheet kind.
var (
	sequenceHeader = []string{"Start", "Residues", "End"}
	peptideHeader  = []string{"Position", "Enzyme", "PSM", "Mass", "PPM", "Abundance", "Sequence"}
	isotopeHeader  = []string{"Region", "Position", "Differentiation", "Confidence"}
)

// sheet is one worksheet: a name, a header row, and string rows.
type sheet struct {
	name   string
	header []string
	rows   [][]string
}

// SheetNames returns the worksheet names in workbook order.
func SheetNames() []string {
	var names []string
	for _, s := range sheets(&types.ReportContext{}) {
		names = append(names, s.name)
	}
	return names
}

func sheets(rc *types.ReportContext) []sheet {
	var out []sheet
	for _, c := range types.Chains {
		cr := rc.Chain(c)
		seq := make([][]string, len(cr.Sequence))
		for i, r := range cr.Sequence {
			seq[i] = []string{r.LeftLabel, r.Columns, r.RightLabel}
		}
		out = append(out, sheet{string(c) + " Sequence", sequenceHeader, seq})
	}
	for _, c := range types.Chains {
		cr := rc.Chain(c)
		peps := make([][]string, len(cr.Peptides))
		for i, p := range cr.Peptides {
			peps[i] = []string{p.Position, p.Enzyme, p.PSM, p.Mass, p.PPM, p.Abundance, p.Sequence}
		}
		out = append(out, sheet{string(c) + " Peptides", peptideHeader, peps})
	}
	for _, c := range types.Chains {
		cr := rc.Chain(c)
		labels := make([][]string, len(cr.IsotopeLabels))
		for i, l := range cr.IsotopeLabels {
			labels[i] = []string{l.Region, l.Position, l.Differentiation, l.Confidence}
		}
		out = append(out, sheet{string(c) + " IL", isotopeHeader, labels})
	}
	return out
}

// WriteWorkbook writes the chain tables of rc to an XLSX file at path.
// Cells are written as text so values such as "1.2E+5" keep their form.
func WriteWorkbook(path string, rc *types.ReportContext) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets(rc) {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				return fmt.Errorf("naming sheet %q: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", s.name, err)
		}
		if err := writeRow(f, s.name, 1, s.header); err != nil {
			return err
		}
		for j, row := range s.rows {
			if err := writeRow(f, s.name, j+2, row); err != nil {
				return err
			}
		}
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheetName string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(sheetName, cell, &vals); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheetName, row, err)
	}
	return nil
}
