// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest reads batch manifests and runs their jobs one after
// another through the extraction pipeline.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/peptide-report/pkg/types"
)

// Manifest is the on-disk list of reports to extract in one invocation.
type Manifest struct {
	Jobs []Job `yaml:"jobs"`
}

// Job is one report with its user-supplied metadata and output paths.
type Job struct {
	ReportDir   string `yaml:"report_dir"`
	OrderNumber string `yaml:"order_number"`
	SampleName  string `yaml:"sample_name"`
	HeavyMass   string `yaml:"heavy_mass"`
	LightMass   string `yaml:"light_mass"`

	// Output is the context file path. Empty means context.<format> in
	// the job's scratch directory.
	Output string `yaml:"output,omitempty"`

	// Workbook is an optional XLSX path for the chain tables.
	Workbook string `yaml:"xlsx,omitempty"`
}

// Input returns the job's report input.
func (j Job) Input() types.ReportInput {
	return types.ReportInput{
		ReportDir:   j.ReportDir,
		OrderNumber: j.OrderNumber,
		SampleName:  j.SampleName,
		HeavyMass:   j.HeavyMass,
		LightMass:   j.LightMass,
	}
}

// Read loads a manifest from disk.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// Validate rejects manifests without jobs, jobs with empty fields, and
// repeated order numbers, which would share a scratch directory.
func Validate(m *Manifest) error {
	if m == nil || len(m.Jobs) == 0 {
		return errors.New("manifest has no jobs")
	}
	var errs []error
	seen := make(map[string]int, len(m.Jobs))
	for i, j := range m.Jobs {
		if err := j.Input().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("job %d: %w", i+1, err))
		}
		if j.OrderNumber == "" {
			continue
		}
		if prev, ok := seen[j.OrderNumber]; ok {
			errs = append(errs, fmt.Errorf("job %d: order_number %q repeats job %d", i+1, j.OrderNumber, prev))
			continue
		}
		seen[j.OrderNumber] = i + 1
	}
	return errors.Join(errs...)
}
