// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the peptide-report CLI. It extracts
// the structured template context and derived images from a vendor
// peptide-mapping report.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the peptide-report CLI.
var rootCmd = &cobra.Command{
	Use:   "peptide-report",
	Short: "Extract template context from peptide-mapping reports",
	Long: `peptide-report reads a vendor peptide-mapping report (an HTML file plus
its img/ folder and the hcoverage.png / lcoverage.png diagrams) and extracts
the heavy and light chain records a document template consumes: sequences,
masses, peptide and isotope tables, the coverage image, the typical peptide
map, and one cropped image per FDR row group.

Derived images are written to a scratch directory that the caller clears
with "peptide-report clean" once the document has been rendered.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading .env: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./peptide-report.yaml or ~/.config/peptide-report/config.yaml)")
	pf.String("scratch-dir", "", "directory for derived images (default: temp)")
	pf.String("ledger-dir", "", "directory holding the run ledger (default: ledger)")
	pf.Bool("no-ledger", false, "do not record runs in the ledger")
	pf.String("log-level", "", "log level: debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")

	bindFlags(viper.GetViper(), pf)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("peptide-report")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "peptide-report"))
		}
	}

	setupEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
