// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/peptide-report/internal/ledger"
	"github.com/pdiddy/peptide-report/internal/report"
	"github.com/pdiddy/peptide-report/internal/testutil"
	"github.com/pdiddy/peptide-report/pkg/types"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type memoryRecorder struct {
	records []types.RunRecord
	err     error
}

func (m *memoryRecorder) Record(_ context.Context, r types.RunRecord) (types.RunRecord, error) {
	if m.err != nil {
		return r, m.err
	}
	m.records = append(m.records, r)
	return r, nil
}

func testRunner(rec Recorder, out io.Writer) *Runner {
	return &Runner{
		Options: report.Options{
			Config: types.DefaultExtractionConfig(),
			Log:    zerolog.Nop(),
			Now:    func() time.Time { return time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC) },
		},
		Ledger: rec,
		Out:    out,
	}
}

func job(dir, order string) Job {
	return Job{ReportDir: dir, OrderNumber: order, SampleName: "mAb-01", HeavyMass: "50125.1", LightMass: "23457.0"}
}

func TestRunJob(t *testing.T) {
	root := t.TempDir()
	reportDir := filepath.Join(root, "report")
	testutil.WriteReport(t, reportDir, testutil.HeavyChain(), testutil.LightChain())

	rec := &memoryRecorder{}
	r := testRunner(rec, io.Discard)
	j := job(reportDir, "ORD-1")
	j.Workbook = filepath.Join(root, "tables.xlsx")

	scratchDir := filepath.Join(root, "temp")
	rc, out, err := r.RunJob(context.Background(), j, scratchDir)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", rc.OrderNumber)
	assert.Equal(t, filepath.Join(scratchDir, "context.yaml"), out)
	assert.FileExists(t, out)
	assert.FileExists(t, j.Workbook)

	require.Len(t, rec.records, 1)
	assert.Equal(t, types.RunSucceeded, rec.records[0].Status)
	assert.Equal(t, scratchDir, rec.records[0].ScratchDir)
	assert.Equal(t, "Mar 05 2026", rec.records[0].Context["Date"])
}

func TestRunJobJSONOutput(t *testing.T) {
	root := t.TempDir()
	reportDir := filepath.Join(root, "report")
	testutil.WriteReport(t, reportDir, testutil.HeavyChain(), testutil.LightChain())

	r := testRunner(nil, nil)
	r.Format = "json"
	j := job(reportDir, "ORD-1")
	j.Output = filepath.Join(root, "out", "ctx.json")

	_, out, err := r.RunJob(context.Background(), j, filepath.Join(root, "temp"))
	require.NoError(t, err)
	assert.Equal(t, j.Output, out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Order_Number": "ORD-1"`)
}

func TestRunJobFailureIsRecorded(t *testing.T) {
	rec := &memoryRecorder{}
	r := testRunner(rec, &bytes.Buffer{})

	_, _, err := r.RunJob(context.Background(), job(t.TempDir(), "ORD-9"), filepath.Join(t.TempDir(), "temp"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSectionNotFound)
	require.Len(t, rec.records, 1)
	assert.Equal(t, types.RunFailed, rec.records[0].Status)
	assert.NotEmpty(t, rec.records[0].Error)
}

func TestRunJobLedgerFailureDoesNotFailJob(t *testing.T) {
	root := t.TempDir()
	reportDir := filepath.Join(root, "report")
	testutil.WriteReport(t, reportDir, testutil.HeavyChain(), testutil.LightChain())

	var out bytes.Buffer
	r := testRunner(&memoryRecorder{err: errors.New("database is locked")}, &out)
	rc, _, err := r.RunJob(context.Background(), job(reportDir, "ORD-1"), filepath.Join(root, "temp"))
	require.NoError(t, err)
	assert.NotNil(t, rc)
	assert.Contains(t, out.String(), "warning: ledger: database is locked")
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	good := filepath.Join(root, "good")
	testutil.WriteReport(t, good, testutil.HeavyChain(), testutil.LightChain())
	missing := filepath.Join(root, "missing")

	store, err := ledger.Open(filepath.Join(root, "ledger"))
	require.NoError(t, err)
	defer store.Close()

	var out bytes.Buffer
	r := testRunner(store, &out)
	m := &Manifest{Jobs: []Job{job(good, "ORD-1"), job(missing, "ORD-2"), job(good, "ORD-3")}}
	scratchRoot := filepath.Join(root, "temp")

	result := r.Run(context.Background(), m, scratchRoot)
	assert.Equal(t, BatchResult{Extracted: 2, Failed: 1}, result)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())

	assert.FileExists(t, filepath.Join(scratchRoot, "ORD-1", "hfdr000.png"))
	assert.FileExists(t, filepath.Join(scratchRoot, "ORD-3", "context.yaml"))
	entries, err := os.ReadDir(filepath.Join(scratchRoot, "ORD-2"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	s := out.String()
	assert.Contains(t, s, "extracted ORD-1 -> ")
	assert.Contains(t, s, "failed    ORD-2: ")
	assert.Contains(t, s, "Batch summary: 2 extracted, 1 failed (total: 3)")

	runs, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, types.RunFailed, runs[1].Status)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	r := testRunner(nil, &out)
	result := r.Run(ctx, &Manifest{Jobs: []Job{job(t.TempDir(), "ORD-1")}}, t.TempDir())
	assert.Equal(t, BatchResult{Failed: 1}, result)
	assert.Contains(t, out.String(), "context canceled")
}
