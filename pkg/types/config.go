// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// Defaults tuned for the two-chain report layout. They carry no derivation
// beyond the diagram geometry of that report format.
const (
	DefaultHTMLFile          = "report.html"
	DefaultImageDir          = "img"
	DefaultPositionThreshold = 150
	DefaultFDRCropLeft       = 60
	DefaultFDRCropRight      = 1170
	DefaultFDRRowHeight      = 603
	DefaultFDRHeaderOffset   = 26
	DefaultDateLayout        = "Jan 02 2006"
	DefaultScratchDir        = "temp"
	DefaultLedgerDir         = "ledger"
)

// DefaultCoverageCrop is the rectangle kept from each coverage-confidence image.
var DefaultCoverageCrop = Rect{MinX: 25, MinY: 0, MaxX: 1570, MaxY: 730}

// Rect is a serializable pixel rectangle, half-open on the max edges.
type Rect struct {
	MinX int `json:"min_x" yaml:"min_x" mapstructure:"min_x"`
	MinY int `json:"min_y" yaml:"min_y" mapstructure:"min_y"`
	MaxX int `json:"max_x" yaml:"max_x" mapstructure:"max_x"`
	MaxY int `json:"max_y" yaml:"max_y" mapstructure:"max_y"`
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// RGB is a serializable opaque colour.
type RGB struct {
	R uint8 `json:"r" yaml:"r" mapstructure:"r"`
	G uint8 `json:"g" yaml:"g" mapstructure:"g"`
	B uint8 `json:"b" yaml:"b" mapstructure:"b"`
}

// RGBA returns the opaque colour.RGBA for c.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// FDRConfig holds the geometry used to segment a composite FDR diagram.
type FDRConfig struct {
	// CropLeft and CropRight bound the horizontal strip kept from the diagram.
	CropLeft  int `json:"crop_left" yaml:"crop_left" mapstructure:"crop_left"`
	CropRight int `json:"crop_right" yaml:"crop_right" mapstructure:"crop_right"`

	// RowHeight is the fixed height of one diagram row group below its marker.
	RowHeight int `json:"row_height" yaml:"row_height" mapstructure:"row_height"`

	// HeaderOffset is how far above a marker row a segment starts.
	HeaderOffset int `json:"header_offset" yaml:"header_offset" mapstructure:"header_offset"`

	// Marker is the exact colour of the row-separator pixels.
	Marker RGB `json:"marker" yaml:"marker" mapstructure:"marker"`
}

// ExtractionConfig holds settings for one extraction run.
type ExtractionConfig struct {
	// HTMLFile is the report file name inside the report root. When it does
	// not exist the single *.html file in the root is used instead.
	HTMLFile string `json:"html_file" yaml:"html_file" mapstructure:"html_file"`

	// ImageDir is the report subdirectory holding referenced diagrams.
	ImageDir string `json:"image_dir" yaml:"image_dir" mapstructure:"image_dir"`

	// PositionThreshold is the largest peptide start position kept (default 150).
	PositionThreshold int `json:"position_threshold" yaml:"position_threshold" mapstructure:"position_threshold"`

	// CoverageCrop is the rectangle kept from the coverage-confidence image.
	CoverageCrop Rect `json:"coverage_crop" yaml:"coverage_crop" mapstructure:"coverage_crop"`

	FDR FDRConfig `json:"fdr" yaml:"fdr" mapstructure:"fdr"`

	// DateLayout formats the run date in the template context.
	DateLayout string `json:"date_layout" yaml:"date_layout" mapstructure:"date_layout"`
}

// DefaultExtractionConfig returns the configuration the report format was
// tuned for.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		HTMLFile:          DefaultHTMLFile,
		ImageDir:          DefaultImageDir,
		PositionThreshold: DefaultPositionThreshold,
		CoverageCrop:      DefaultCoverageCrop,
		FDR: FDRConfig{
			CropLeft:     DefaultFDRCropLeft,
			CropRight:    DefaultFDRCropRight,
			RowHeight:    DefaultFDRRowHeight,
			HeaderOffset: DefaultFDRHeaderOffset,
			Marker:       RGB{R: 255},
		},
		DateLayout: DefaultDateLayout,
	}
}

// Validate rejects configurations whose geometry cannot produce a crop.
func (c ExtractionConfig) Validate() error {
	var errs []error
	if c.HTMLFile == "" {
		errs = append(errs, errors.New("html_file is required"))
	}
	if c.PositionThreshold <= 0 {
		errs = append(errs, fmt.Errorf("position_threshold must be positive, got %d", c.PositionThreshold))
	}
	if c.CoverageCrop.Image().Empty() {
		errs = append(errs, fmt.Errorf("coverage_crop %v is empty", c.CoverageCrop))
	}
	if c.FDR.CropRight <= c.FDR.CropLeft {
		errs = append(errs, fmt.Errorf("fdr crop_right (%d) must exceed crop_left (%d)", c.FDR.CropRight, c.FDR.CropLeft))
	}
	if c.FDR.RowHeight <= 0 {
		errs = append(errs, fmt.Errorf("fdr row_height must be positive, got %d", c.FDR.RowHeight))
	}
	if c.FDR.HeaderOffset < 0 {
		errs = append(errs, fmt.Errorf("fdr header_offset must not be negative, got %d", c.FDR.HeaderOffset))
	}
	if c.DateLayout == "" {
		errs = append(errs, errors.New("date_layout is required"))
	}
	return errors.Join(errs...)
}

// LedgerConfig holds settings for the run ledger.
type LedgerConfig struct {
	// Dir holds the ledger database (runs.db).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Disabled skips recording runs.
	Disabled bool `json:"disabled" yaml:"disabled" mapstructure:"disabled"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format" mapstructure:"format"`
}

// Config groups every setting read from the config file and environment.
type Config struct {
	Extraction ExtractionConfig `json:"extraction" yaml:"extraction" mapstructure:"extraction"`
	Ledger     LedgerConfig     `json:"ledger" yaml:"ledger" mapstructure:"ledger"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
	ScratchDir string           `json:"scratch_dir" yaml:"scratch_dir" mapstructure:"scratch_dir"`
}

// DefaultConfig returns a Config populated with defaults.
func DefaultConfig() Config {
	return Config{
		Extraction: DefaultExtractionConfig(),
		Ledger:     LedgerConfig{Dir: DefaultLedgerDir},
		Log:        LogConfig{Level: "info", Format: "console"},
		ScratchDir: DefaultScratchDir,
	}
}

// ReportInput carries the user-supplied metadata for one report.
type ReportInput struct {
	ReportDir   string `json:"report_dir" yaml:"report_dir"`
	OrderNumber string `json:"order_number" yaml:"order_number"`
	SampleName  string `json:"sample_name" yaml:"sample_name"`
	HeavyMass   string `json:"heavy_mass" yaml:"heavy_mass"`
	LightMass   string `json:"light_mass" yaml:"light_mass"`
}

// Validate checks that every field is non-empty. No format is imposed.
func (in ReportInput) Validate() error {
	var errs []error
	for _, f := range []struct{ name, val string }{
		{"report_dir", in.ReportDir},
		{"order_number", in.OrderNumber},
		{"sample_name", in.SampleName},
		{"heavy_mass", in.HeavyMass},
		{"light_mass", in.LightMass},
	} {
		if f.val == "" {
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		}
	}
	return errors.Join(errs...)
}
