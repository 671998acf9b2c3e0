// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/peptide-report/internal/ledger"
	"github.com/pdiddy/peptide-report/internal/logging"
	"github.com/pdiddy/peptide-report/internal/manifest"
	"github.com/pdiddy/peptide-report/internal/report"
	"github.com/pdiddy/peptide-report/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the template context from one report",
	Long: `Extract locates the heavy and light chain sections of the report in
--report-dir, extracts every record and derived image, and writes the flat
template context to --output (YAML by default). Any failure aborts the run
and removes the images it wrote; the run is recorded in the ledger either
way unless --no-ledger is set.`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	log := logging.New(cfg.Log, os.Stderr)

	f := cmd.Flags()
	j := manifest.Job{}
	j.ReportDir, _ = f.GetString("report-dir")
	j.OrderNumber, _ = f.GetString("order")
	j.SampleName, _ = f.GetString("sample")
	j.HeavyMass, _ = f.GetString("heavy-mass")
	j.LightMass, _ = f.GetString("light-mass")
	j.Output, _ = f.GetString("output")
	j.Workbook, _ = f.GetString("xlsx")
	format, _ := f.GetString("format")

	if err := j.Input().Validate(); err != nil {
		return err
	}

	store := openLedger(cfg, log)
	if store != nil {
		defer store.Close()
	}
	runner := newRunner(cfg, log, format, store)

	rc, out, err := runner.RunJob(cmd.Context(), j, cfg.ScratchDir)
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "failed %s: %v\n", j.OrderNumber, err)
		return err
	}
	color.New(color.FgGreen).Fprintf(os.Stdout, "extracted %s -> %s\n", j.OrderNumber, out)
	for _, c := range types.Chains {
		cr := rc.Chain(c)
		fmt.Fprintf(os.Stdout, "  %-5s  %3d sequence rows  %3d peptides  %3d IL rows  %3d map entries  %3d FDR segments\n",
			c, len(cr.Sequence), len(cr.Peptides), len(cr.IsotopeLabels), len(cr.TypicalPeptideMap), len(cr.FDR))
	}
	if j.Workbook != "" {
		fmt.Fprintf(os.Stdout, "  tables -> %s\n", j.Workbook)
	}
	return nil
}

// openLedger opens the run ledger unless it is disabled. An unusable
// ledger is logged and skipped; it never blocks extraction.
func openLedger(cfg types.Config, log zerolog.Logger) *ledger.Store {
	if cfg.Ledger.Disabled {
		return nil
	}
	store, err := ledger.Open(cfg.Ledger.Dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", cfg.Ledger.Dir).Msg("run ledger unavailable")
		return nil
	}
	return store
}

func newRunner(cfg types.Config, log zerolog.Logger, format string, store *ledger.Store) *manifest.Runner {
	r := &manifest.Runner{
		Options: report.Options{Config: cfg.Extraction, Log: log},
		Format:  format,
		Out:     os.Stdout,
	}
	if store != nil {
		r.Ledger = store
	}
	return r
}

func init() {
	f := extractCmd.Flags()
	f.String("report-dir", "", "report root directory (HTML file, img/, hcoverage.png, lcoverage.png)")
	f.String("order", "", "order number")
	f.String("sample", "", "sample name")
	f.String("heavy-mass", "", "measured heavy chain mass")
	f.String("light-mass", "", "measured light chain mass")
	f.String("output", "", "context file path (default: <scratch-dir>/context.<format>)")
	f.String("format", "yaml", "context format: yaml or json")
	f.String("xlsx", "", "also write the chain tables to this XLSX workbook")
	for _, name := range []string{"report-dir", "order", "sample", "heavy-mass", "light-mass"} {
		_ = extractCmd.MarkFlagRequired(name)
	}

	rootCmd.AddCommand(extractCmd)
}
