// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testutil builds synthetic vendor reports (HTML plus images) for
// tests across packages.
package testutil

import (
	"fmt"
	"html"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// TestingT is the subset of testing.T the fixture writers need.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
}

// residues is a 20-letter alphabet used to build deterministic sequences.
const residues = "ACDEFGHIKLMNPQRSTVWY"

// Sequence returns a deterministic residue string of length n.
func Sequence(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte(residues[i%len(residues)])
	}
	return b.String()
}

// Chain describes the markup of one chain section.
type Chain struct {
	// Heading is the h2 text, e.g. "mAb_Heavy".
	Heading string

	// Sequence is laid out in the section's first table, 20 residues per
	// cell split into two whitespace-separated groups, each preceded by a
	// numeric position cell.
	Sequence string

	// Paragraph is the section's first paragraph.
	Paragraph string

	// PeptideHeader and Peptides fill table.peptides.
	PeptideHeader []string
	Peptides      [][]string

	// IsotopeHeader and Isotopes fill the il-stats table.
	IsotopeHeader []string
	Isotopes      [][]string

	// CoverageSrc is the src of the coverage image, e.g. "img/h_cov.png".
	CoverageSrc string

	// Captions are span pairs in the support-spectra block; SpectraSrcs are
	// the block's image sources.
	Captions    [][2]string
	SpectraSrcs []string
}

// DefaultPeptideHeader is the seven-column peptide table header.
var DefaultPeptideHeader = []string{"Position", "Enzyme", "#PSM", "Mass", "ppm", "Area", "Sequence"}

// DefaultIsotopeHeader is the isotope statistics table header.
var DefaultIsotopeHeader = []string{"Region", "Position", "Confidence"}

// HeavyChain returns the default heavy chain fixture: a 120-residue
// sequence, four peptide rows (one past the threshold), two isotope rows,
// and three captions whose last qualifying index is 1.
func HeavyChain() Chain {
	return Chain{
		Heading:       "mAb-01_Heavy",
		Sequence:      Sequence(120),
		Paragraph:     "Calculated mass: 50123.45 Da (average)",
		PeptideHeader: DefaultPeptideHeader,
		Peptides: [][]string{
			{"1-15", "Pepsin A", "12", "1520.77", "1.2", "1.5E6", "ACDEFGHIKLMNPQR"},
			{"16-30", "Chymo", "8", "1600.80", "-0.8", "3.2E-1", "STVWYACDEFGHIKL"},
			{"151-170", "Trypsin", "3", "2011.02", "0.1", "9.9E3", "MNPQRSTVWYACDEF"},
			{"140-160", "Trypsin", "5", "2100.10", "0.3", "7.7E+4", "GHIKLMNPQRSTVWY"},
		},
		IsotopeHeader: DefaultIsotopeHeader,
		Isotopes: [][]string{
			{"CDR1", "L@45", "99.1"},
			{"FR2", "I@52", "97.0"},
		},
		CoverageSrc: "img/heavy_coverage.png",
		Captions: [][2]string{
			{"Peptide 1-15", "Pepsin"},
			{"Peptide 60-75", "Chymotrypsin"},
			{"Peptide 200-210", "Trypsin"},
		},
		SpectraSrcs: []string{"img/h_spec1.png", "img/h_spec2.png", "img/h_spec3.png"},
	}
}

// LightChain returns the default light chain fixture with a 107-residue
// sequence.
func LightChain() Chain {
	return Chain{
		Heading:       "mAb-01_Light",
		Sequence:      Sequence(107),
		Paragraph:     "Calculated mass: 23456.78 Da (average)",
		PeptideHeader: DefaultPeptideHeader,
		Peptides: [][]string{
			{"1-12", "Trypsin", "4", "1301.60", "0.5", "2.0E5", "ACDEFGHIKLMN"},
		},
		IsotopeHeader: DefaultIsotopeHeader,
		Isotopes: [][]string{
			{"CDR3", "I@96", "88.4"},
		},
		CoverageSrc: "img/light_coverage.png",
		Captions: [][2]string{
			{"Peptide 1-12", "Trypsin"},
			{"Peptide 20-31", "Pepsin"},
		},
		SpectraSrcs: []string{"img/l_spec1.png", "img/l_spec2.png"},
	}
}

// HTML renders a report with a preamble section followed by the given
// chain sections.
func HTML(chains ...Chain) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><title>Peptide Mapping Report</title></head><body>\n")
	b.WriteString(`<div class="section"><h2>Summary</h2><p>Project overview</p></div>` + "\n")
	for _, c := range chains {
		writeChain(&b, c)
	}
	b.WriteString("</body></html>\n")
	return b.String()
}

func writeChain(b *strings.Builder, c Chain) {
	e := html.EscapeString
	fmt.Fprintf(b, "<div class=\"section\">\n<h2>%s</h2>\n", e(c.Heading))
	if c.Paragraph != "" {
		fmt.Fprintf(b, "<p>%s</p>\n", e(c.Paragraph))
	}

	b.WriteString("<table>\n")
	for i := 0; i < len(c.Sequence); i += 20 {
		end := min(i+20, len(c.Sequence))
		chunk := c.Sequence[i:end]
		if len(chunk) > 10 {
			chunk = chunk[:10] + " " + chunk[10:]
		}
		fmt.Fprintf(b, "<tr><td>%d</td><td>%s</td></tr>\n", i+1, chunk)
	}
	b.WriteString("</table>\n")

	if c.CoverageSrc != "" {
		fmt.Fprintf(b, "<div class=\"coverage\"><img src=\"%s\"></div>\n", e(c.CoverageSrc))
	}

	if c.PeptideHeader != nil {
		b.WriteString("<table class=\"peptides\">\n<tr>")
		for _, h := range c.PeptideHeader {
			fmt.Fprintf(b, "<th>%s</th>", e(h))
		}
		b.WriteString("</tr>\n")
		writeRows(b, c.Peptides)
		b.WriteString("</table>\n")
	}

	if c.IsotopeHeader != nil {
		b.WriteString("<div class=\"il-stats subsection unbreakable\">\n<table>\n<thead><tr>")
		for _, h := range c.IsotopeHeader {
			fmt.Fprintf(b, "<th>%s</th>", e(h))
		}
		b.WriteString("</tr></thead>\n<tbody>\n")
		writeRows(b, c.Isotopes)
		b.WriteString("</tbody>\n</table>\n</div>\n")
	}

	if c.Captions != nil || c.SpectraSrcs != nil {
		b.WriteString("<div class=\"support-spectra\">\n")
		for i, cap := range c.Captions {
			fmt.Fprintf(b, "<div class=\"spectrum\"><span>%s</span> <span>%s</span>", e(cap[0]), e(cap[1]))
			if i < len(c.SpectraSrcs) {
				fmt.Fprintf(b, "<img src=\"%s\">", e(c.SpectraSrcs[i]))
			}
			b.WriteString("</div>\n")
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("</div>\n")
}

func writeRows(b *strings.Builder, rows [][]string) {
	for _, row := range rows {
		b.WriteString("<tr>")
		for _, cell := range row {
			fmt.Fprintf(b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
}

// Red is the FDR marker colour.
var Red = color.RGBA{R: 255, A: 255}

// FDRWidth is wide enough for the default FDR strip crop.
const FDRWidth = 1200

// FDRImage returns a white diagram of the given height with a short run of
// marker pixels on each listed row.
func FDRImage(height int, markerRows ...int) *image.RGBA {
	img := Blank(FDRWidth, height)
	for _, y := range markerRows {
		for x := 100; x < 110; x++ {
			img.SetRGBA(x, y, Red)
		}
	}
	return img
}

// Blank returns a white image of the given size.
func Blank(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

// CoverageWidth and CoverageHeight fit the default coverage crop.
const (
	CoverageWidth  = 1600
	CoverageHeight = 740
)

// WritePNG encodes img to path, creating parent directories.
func WritePNG(t TestingT, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
}

// HeavyMarkers and LightMarkers are the default FDR marker rows. Heavy
// yields anchors {100, 800}; light yields {100, 500}.
var (
	HeavyMarkers = []int{100, 101, 102, 800, 801}
	LightMarkers = []int{100, 500, 501}
)

// FDRHeight is the default FDR diagram height.
const FDRHeight = 1400

// WriteReport writes a complete report into dir: report.html, both
// coverage images under img/, and hcoverage.png / lcoverage.png.
func WriteReport(t TestingT, dir string, heavy, light Chain) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, "report.html"), []byte(HTML(heavy, light)), 0o644); err != nil {
		t.Fatalf("writing report.html: %v", err)
	}
	for _, c := range []Chain{heavy, light} {
		if c.CoverageSrc != "" {
			WritePNG(t, filepath.Join(dir, filepath.FromSlash(c.CoverageSrc)), Blank(CoverageWidth, CoverageHeight))
		}
	}
	WritePNG(t, filepath.Join(dir, "hcoverage.png"), FDRImage(FDRHeight, HeavyMarkers...))
	WritePNG(t, filepath.Join(dir, "lcoverage.png"), FDRImage(FDRHeight, LightMarkers...))
}
