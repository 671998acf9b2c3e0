// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/peptide-report/internal/logging"
	"github.com/pdiddy/peptide-report/internal/manifest"
)

var batchCmd = &cobra.Command{
	Use:   "batch MANIFEST",
	Short: "Extract every report listed in a YAML manifest",
	Long: `Batch reads a manifest of jobs (report_dir, order_number, sample_name,
heavy_mass, light_mass, and optional output and xlsx paths) and extracts
them one after another. Each job writes its images to
<scratch-dir>/<order_number>. A failing job is reported and the batch
continues with the next one.

Example manifest:

  jobs:
    - report_dir: reports/ORD-1042
      order_number: ORD-1042
      sample_name: mAb-01 lot 7
      heavy_mass: "50125.1"
      light_mass: "23457.0"
      output: out/ORD-1042.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log, os.Stderr)

	m, err := manifest.Read(args[0])
	if err != nil {
		return err
	}
	if err := manifest.Validate(m); err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	store := openLedger(cfg, log)
	if store != nil {
		defer store.Close()
	}
	runner := newRunner(cfg, log, format, store)

	result := runner.Run(cmd.Context(), m, cfg.ScratchDir)
	if result.HasFailures() {
		return fmt.Errorf("%d of %d job(s) failed", result.Failed, result.Total())
	}
	return nil
}

func init() {
	batchCmd.Flags().String("format", "yaml", "context format: yaml or json")
	rootCmd.AddCommand(batchCmd)
}
