// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/peptide-report/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "ledger"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testInput(order string) types.ReportInput {
	return types.ReportInput{
		ReportDir:   "/reports/" + order,
		OrderNumber: order,
		SampleName:  "mAb-01",
		HeavyMass:   "50125.1",
		LightMass:   "23457.0",
	}
}

func testContext(order string) *types.ReportContext {
	return &types.ReportContext{
		OrderNumber: order,
		Date:        "Mar 05 2026",
		SampleName:  "mAb-01",
		Heavy: types.ChainReport{
			Chain:          types.ChainHeavy,
			CalculatedMass: "50123.45",
			Peptides:       []types.PeptideRecord{{Position: "1-15", Enzyme: "Pepsin"}},
		},
		Light: types.ChainReport{Chain: types.ChainLight},
	}
}

var base = time.Date(2026, time.March, 5, 9, 0, 0, 0, time.UTC)

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "ledger")
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()
	assert.FileExists(t, filepath.Join(dir, dbFile))
	assert.Equal(t, dir, s.Dir())

	_, err = Open("")
	assert.Error(t, err)
}

func TestNewRecord(t *testing.T) {
	ok := NewRecord(testInput("ORD-1"), "temp", testContext("ORD-1"), nil)
	assert.Equal(t, types.RunSucceeded, ok.Status)
	assert.Empty(t, ok.Error)
	assert.Equal(t, "ORD-1", ok.Context["Order_Number"])
	assert.Equal(t, "/reports/ORD-1", ok.ReportDir)
	assert.Equal(t, "temp", ok.ScratchDir)

	failed := NewRecord(testInput("ORD-2"), "temp", nil, errors.New("section_not_found: no Light section"))
	assert.Equal(t, types.RunFailed, failed.Status)
	assert.Equal(t, "section_not_found: no Light section", failed.Error)
	assert.Nil(t, failed.Context)
}

func TestRecordAssignsIDAndTime(t *testing.T) {
	s := testStore(t)
	s.now = func() time.Time { return base }

	r, err := s.Record(context.Background(), NewRecord(testInput("ORD-1"), "temp", testContext("ORD-1"), nil))
	require.NoError(t, err)
	_, err = uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.Equal(t, base, r.CreatedAt)

	got, err := s.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, types.RunSucceeded, got.Status)
	assert.True(t, base.Equal(got.CreatedAt))
	assert.Equal(t, "50123.45", got.Context["heavy_chain_cmass"])
	peps := got.Context["hpeptides"].([]any)
	require.Len(t, peps, 1)
	assert.Equal(t, "Pepsin", peps[0].(map[string]any)["enzyme"])
}

func TestRecordFailedRun(t *testing.T) {
	s := testStore(t)
	r, err := s.Record(context.Background(), NewRecord(testInput("ORD-9"), "temp", nil, errors.New("image_load (Heavy): missing")))
	require.NoError(t, err)

	got, err := s.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, types.RunFailed, got.Status)
	assert.Equal(t, "image_load (Heavy): missing", got.Error)
	assert.Nil(t, got.Context)
}

func TestRecordDuplicateID(t *testing.T) {
	s := testStore(t)
	r := NewRecord(testInput("ORD-1"), "temp", nil, nil)
	r.ID = "fixed"
	_, err := s.Record(context.Background(), r)
	require.NoError(t, err)
	_, err = s.Record(context.Background(), r)
	assert.Error(t, err)
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	for i, order := range []string{"ORD-1", "ORD-2", "ORD-3"} {
		r := NewRecord(testInput(order), "temp", nil, nil)
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := s.Record(ctx, r)
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, "ORD-3", runs[0].OrderNumber)
	assert.Equal(t, "ORD-1", runs[2].OrderNumber)

	runs, err = s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "ORD-2", runs[1].OrderNumber)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", all[0].OrderNumber)
}

func TestListEmpty(t *testing.T) {
	runs, err := testStore(t).List(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Record(ctx, NewRecord(testInput("ORD-1"), "temp", testContext("ORD-1"), nil))
	require.NoError(t, err)
	_, err = s.Record(ctx, NewRecord(testInput("ORD-2"), "temp", nil, errors.New("boom")))
	require.NoError(t, err)

	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "out", "runs.yaml")
	require.NoError(t, s.ExportYAML(ctx, yamlPath))
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	var fromYAML []types.RunRecord
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.Equal(t, "ORD-1", fromYAML[0].OrderNumber)
	assert.Equal(t, types.RunFailed, fromYAML[1].Status)
	assert.Equal(t, "boom", fromYAML[1].Error)

	jsonPath := filepath.Join(dir, "runs.json")
	require.NoError(t, s.ExportJSON(ctx, jsonPath))
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)
	var fromJSON []types.RunRecord
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	require.Len(t, fromJSON, 2)
	assert.Equal(t, "Mar 05 2026", fromJSON[0].Context["Date"])
}
