// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SequenceRow is one fixed-width line of the reassembled amino-acid
// sequence: five space-separated blocks of ten residues between two
// position labels.
type SequenceRow struct {
	// LeftLabel is the 1-based position of the first residue, zero-padded
	// to three digits.
	LeftLabel string `json:"llabel" yaml:"llabel"`

	// RightLabel is the position of the row's last block boundary, zero-padded
	// to three digits. On the final row it is the unpadded sequence length.
	RightLabel string `json:"rlabel" yaml:"rlabel"`

	// Columns holds the row's residue blocks joined by single spaces.
	Columns string `json:"col" yaml:"col"`
}

// PeptideRecord is one retained row of a chain's peptide table.
type PeptideRecord struct {
	Position  string `json:"position" yaml:"position"`
	Enzyme    string `json:"enzyme" yaml:"enzyme"`
	PSM       string `json:"psm" yaml:"psm"`
	Mass      string `json:"mass" yaml:"mass"`
	PPM       string `json:"ppm" yaml:"ppm"`
	Abundance string `json:"abundance" yaml:"abundance"`
	Sequence  string `json:"sequence" yaml:"sequence"`
}

// IsotopeLabelRecord is one row of the isoleucine/leucine differentiation
// table. Position and Differentiation come from splitting the compound
// "<letter>@<position>" source column.
type IsotopeLabelRecord struct {
	Region          string `json:"region" yaml:"region"`
	Position        string `json:"position" yaml:"position"`
	Differentiation string `json:"differentiation" yaml:"differentiation"`
	Confidence      string `json:"confidence" yaml:"confidence"`
}

// TypicalPeptideMapEntry pairs a support-spectra caption with its diagram.
type TypicalPeptideMapEntry struct {
	// Title is the two caption texts joined by a space.
	Title string `json:"title" yaml:"title"`

	// Image is the resolved path of the referenced diagram under the
	// report's image directory.
	Image string `json:"img" yaml:"img"`
}

// FDRSegment is one cropped sub-image of a chain's composite FDR diagram.
type FDRSegment struct {
	Image string `json:"img" yaml:"img"`
}

// ChainReport holds everything extracted for one chain.
type ChainReport struct {
	Chain             Chain                    `json:"chain" yaml:"chain"`
	Sequence          []SequenceRow            `json:"sequence" yaml:"sequence"`
	CalculatedMass    string                   `json:"calculated_mass" yaml:"calculated_mass"`
	MeasuredMass      string                   `json:"measured_mass" yaml:"measured_mass"`
	Peptides          []PeptideRecord          `json:"peptides" yaml:"peptides"`
	IsotopeLabels     []IsotopeLabelRecord     `json:"isotope_labels" yaml:"isotope_labels"`
	CoverageImage     string                   `json:"coverage_image" yaml:"coverage_image"`
	TypicalPeptideMap []TypicalPeptideMapEntry `json:"typical_peptide_map" yaml:"typical_peptide_map"`
	FDR               []FDRSegment             `json:"fdr" yaml:"fdr"`
}

// ReportContext is the aggregate handed to the document-templating step.
type ReportContext struct {
	OrderNumber string      `json:"order_number" yaml:"order_number"`
	Date        string      `json:"date" yaml:"date"`
	SampleName  string      `json:"sample_name" yaml:"sample_name"`
	Heavy       ChainReport `json:"heavy" yaml:"heavy"`
	Light       ChainReport `json:"light" yaml:"light"`
}

// Chain returns the report for c.
func (rc *ReportContext) Chain(c Chain) *ChainReport {
	if c == ChainLight {
		return &rc.Light
	}
	return &rc.Heavy
}

// Fields flattens the context into the fixed key schema the template
// consumes. Slices are never nil so templates can range over them.
func (rc *ReportContext) Fields() map[string]any {
	f := map[string]any{
		"Order_Number": rc.OrderNumber,
		"Date":         rc.Date,
		"Sample_Name":  rc.SampleName,
	}
	for _, c := range Chains {
		cr := rc.Chain(c)
		p := c.Prefix()
		name := "heavy"
		if c == ChainLight {
			name = "light"
		}
		f[p+"sequence"] = nonNil(cr.Sequence)
		f[name+"_chain_cmass"] = cr.CalculatedMass
		f[name+"_chain_rmass"] = cr.MeasuredMass
		f[p+"peptides"] = nonNil(cr.Peptides)
		f[p+"tIL"] = nonNil(cr.IsotopeLabels)
		f["typical_"+p+"peptide_image"] = cr.CoverageImage
		f["typical_peptide_"+p+"map"] = nonNil(cr.TypicalPeptideMap)
		f["FDR_"+p+"map"] = nonNil(cr.FDR)
	}
	return f
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
