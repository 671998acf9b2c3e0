// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/peptide-report/internal/scratch"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove derived images from the scratch directory",
	Long: `Clean removes every file in the scratch directory and in the per-order
subdirectories written by batch runs. Run it after the consuming document
has been rendered and saved.`,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	dirs := []string{cfg.ScratchDir}
	entries, err := os.ReadDir(cfg.ScratchDir)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading scratch directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, filepath.Join(cfg.ScratchDir, e.Name()))
		}
	}

	total := 0
	for _, dir := range dirs {
		n, err := scratch.Clear(dir)
		total += n
		if err != nil {
			return err
		}
	}
	fmt.Printf("Removed %d file(s) from %s\n", total, cfg.ScratchDir)
	return nil
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
