// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/pdiddy/peptide-report/internal/export"
	"github.com/pdiddy/peptide-report/internal/ledger"
	"github.com/pdiddy/peptide-report/internal/report"
	"github.com/pdiddy/peptide-report/internal/scratch"
	"github.com/pdiddy/peptide-report/pkg/types"
)

// Recorder stores run records. *ledger.Store implements it.
type Recorder interface {
	Record(ctx context.Context, r types.RunRecord) (types.RunRecord, error)
}

// BatchResult holds the outcome of a batch run.
type BatchResult struct {
	Extracted int
	Failed    int
}

// Total returns the number of jobs processed.
func (r BatchResult) Total() int {
	return r.Extracted + r.Failed
}

// HasFailures reports whether any job failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Runner extracts reports and writes their exports.
type Runner struct {
	Options report.Options

	// Format is the context file format (yaml or json).
	Format string

	// Ledger records every run when set. Ledger failures are reported
	// but never change a job's outcome.
	Ledger Recorder

	// Out receives one progress line per job.
	Out io.Writer
}

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
)

// RunJob extracts one report into scratchDir and writes its context file
// and optional workbook. It returns the context and the path of the
// context file.
func (r *Runner) RunJob(ctx context.Context, j Job, scratchDir string) (*types.ReportContext, string, error) {
	in := j.Input()
	rc, out, err := r.runJob(j, scratchDir)
	r.record(ctx, ledger.NewRecord(in, scratchDir, rc, err))
	if err != nil {
		return nil, "", err
	}
	return rc, out, nil
}

func (r *Runner) runJob(j Job, scratchDir string) (*types.ReportContext, string, error) {
	format, err := export.ParseFormat(r.Format)
	if err != nil {
		return nil, "", err
	}
	sc, err := scratch.New(scratchDir)
	if err != nil {
		return nil, "", err
	}
	rc, err := report.Build(j.Input(), sc, r.Options)
	if err != nil {
		return nil, "", err
	}

	out := j.Output
	if out == "" {
		out = filepath.Join(scratchDir, "context."+format)
	}
	if err := export.WriteContext(out, format, rc); err != nil {
		return nil, "", err
	}
	if j.Workbook != "" {
		if err := export.WriteWorkbook(j.Workbook, rc); err != nil {
			return nil, "", err
		}
	}
	return rc, out, nil
}

func (r *Runner) record(ctx context.Context, rec types.RunRecord) {
	if r.Ledger == nil {
		return
	}
	if _, err := r.Ledger.Record(ctx, rec); err != nil {
		r.Options.Log.Warn().Err(err).Str("order", rec.OrderNumber).Msg("recording run in ledger")
		if r.Out != nil {
			warnColor.Fprintf(r.Out, "warning: ledger: %v\n", err)
		}
	}
}

// Run processes every job in m strictly in order, each in its own
// scratch subdirectory named by order number. A failing job does not stop
// later jobs. Cancelling ctx stops before the next job starts.
func (r *Runner) Run(ctx context.Context, m *Manifest, scratchRoot string) BatchResult {
	w := r.Out
	if w == nil {
		w = io.Discard
	}

	var result BatchResult
	for _, j := range m.Jobs {
		if ctx.Err() != nil {
			failColor.Fprintf(w, "failed    %s: %v\n", j.OrderNumber, ctx.Err())
			result.Failed++
			continue
		}
		_, out, err := r.RunJob(ctx, j, filepath.Join(scratchRoot, j.OrderNumber))
		if err != nil {
			failColor.Fprintf(w, "failed    %s: %v\n", j.OrderNumber, err)
			result.Failed++
			continue
		}
		okColor.Fprintf(w, "extracted %s -> %s\n", j.OrderNumber, out)
		result.Extracted++
	}
	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed (total: %d)\n",
		result.Extracted, result.Failed, result.Total())
	return result
}
