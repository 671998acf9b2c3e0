// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleManifest = `jobs:
  - report_dir: reports/ORD-1
    order_number: ORD-1
    sample_name: mAb-01
    heavy_mass: "50125.1"
    light_mass: "23457.0"
    output: out/ORD-1.yaml
  - report_dir: reports/ORD-2
    order_number: ORD-2
    sample_name: mAb-02
    heavy_mass: "50200.0"
    light_mass: "23500.0"
    xlsx: out/ORD-2.xlsx
`

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleManifest), 0o644))

	m, err := Read(path)
	require.NoError(t, err)
	require.Len(t, m.Jobs, 2)
	assert.Equal(t, Job{
		ReportDir:   "reports/ORD-1",
		OrderNumber: "ORD-1",
		SampleName:  "mAb-01",
		HeavyMass:   "50125.1",
		LightMass:   "23457.0",
		Output:      "out/ORD-1.yaml",
	}, m.Jobs[0])
	assert.Equal(t, "out/ORD-2.xlsx", m.Jobs[1].Workbook)
	assert.Equal(t, "50200.0", m.Jobs[1].Input().HeavyMass)
	assert.NoError(t, Validate(m))
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading manifest")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: [\n"), 0o644))
	_, err = Read(path)
	assert.ErrorContains(t, err, "parsing manifest")
}

func TestValidate(t *testing.T) {
	good := Job{ReportDir: "r", OrderNumber: "A", SampleName: "s", HeavyMass: "1", LightMass: "2"}
	noSample := good
	noSample.OrderNumber = "B"
	noSample.SampleName = ""

	tests := []struct {
		name    string
		m       *Manifest
		wantErr string
	}{
		{"nil", nil, "no jobs"},
		{"empty", &Manifest{}, "no jobs"},
		{"ok", &Manifest{Jobs: []Job{good}}, ""},
		{"missing field", &Manifest{Jobs: []Job{good, noSample}}, "job 2: sample_name is required"},
		{"repeated order", &Manifest{Jobs: []Job{good, good}}, `job 2: order_number "A" repeats job 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.m)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
