// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/peptide-report/pkg/types"
)

const envPrefix = "PEPTIDE_REPORT"

// flagKeys maps persistent flags to their configuration keys.
var flagKeys = map[string]string{
	"scratch-dir": "scratch_dir",
	"ledger-dir":  "ledger.dir",
	"no-ledger":   "ledger.disabled",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	for flag, key := range flagKeys {
		if f := fs.Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// setupEnv makes every configuration key readable from the environment,
// e.g. extraction.fdr.row_height from PEPTIDE_REPORT_EXTRACTION_FDR_ROW_HEIGHT.
func setupEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, types.DefaultConfig())
}

// setDefaults registers every key so AutomaticEnv applies on Unmarshal.
func setDefaults(v *viper.Viper, d types.Config) {
	e := d.Extraction
	defaults := map[string]any{
		"scratch_dir":                    d.ScratchDir,
		"ledger.dir":                     d.Ledger.Dir,
		"ledger.disabled":                d.Ledger.Disabled,
		"log.level":                      d.Log.Level,
		"log.format":                     d.Log.Format,
		"extraction.html_file":           e.HTMLFile,
		"extraction.image_dir":           e.ImageDir,
		"extraction.position_threshold":  e.PositionThreshold,
		"extraction.date_layout":         e.DateLayout,
		"extraction.coverage_crop.min_x": e.CoverageCrop.MinX,
		"extraction.coverage_crop.min_y": e.CoverageCrop.MinY,
		"extraction.coverage_crop.max_x": e.CoverageCrop.MaxX,
		"extraction.coverage_crop.max_y": e.CoverageCrop.MaxY,
		"extraction.fdr.crop_left":       e.FDR.CropLeft,
		"extraction.fdr.crop_right":      e.FDR.CropRight,
		"extraction.fdr.row_height":      e.FDR.RowHeight,
		"extraction.fdr.header_offset":   e.FDR.HeaderOffset,
		"extraction.fdr.marker.r":        e.FDR.Marker.R,
		"extraction.fdr.marker.g":        e.FDR.Marker.G,
		"extraction.fdr.marker.b":        e.FDR.Marker.B,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// loadConfig decodes the merged file, environment, and flag settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.ScratchDir == "" {
		cfg.ScratchDir = types.DefaultScratchDir
	}
	if cfg.Ledger.Dir == "" {
		cfg.Ledger.Dir = types.DefaultLedgerDir
	}
	if err := cfg.Extraction.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid extraction configuration: %w", err)
	}
	return cfg, nil
}
