// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/peptide-report/internal/ledger"
	"github.com/pdiddy/peptide-report/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Review recorded extraction runs (list, show, export)",
	Long: `History reads the run ledger, a local SQLite database that records every
extraction run with its inputs, outcome, and template context.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := historyStore()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-16s  %-9s  %s\n", "ID", "Created", "Order", "Status", "Sample")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, r := range runs {
		status := color.GreenString("%-9s", r.Status)
		if r.Status == types.RunFailed {
			status = color.RedString("%-9s", r.Status)
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-16s  %s  %s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime), truncate(r.OrderNumber, 16), status, r.SampleName)
	}
	fmt.Fprintf(os.Stdout, "\n%d runs\n", len(runs))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Print one run, including its template context, as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := historyStore()
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling run: %w", err)
	}
	_, err = os.Stdout.Write(data)
	return err
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every recorded run to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := historyStore()
	if err != nil {
		return err
	}
	defer store.Close()

	switch format {
	case "yaml", "":
		if out == "" {
			out = filepath.Join(store.Dir(), "export.yaml")
		}
		err = store.ExportYAML(cmd.Context(), out)
	case "json":
		if out == "" {
			out = filepath.Join(store.Dir(), "export.json")
		}
		err = store.ExportJSON(cmd.Context(), out)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Println("Exported to", out)
	return nil
}

// --- shared helpers ---

func historyStore() (*ledger.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return ledger.Open(cfg.Ledger.Dir)
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum runs to list")
	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "output path (default: <ledger-dir>/export.<format>)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
