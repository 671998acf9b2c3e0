// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus is the outcome of one extraction run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// RunRecord is one ledger entry describing an extraction run.
type RunRecord struct {
	ID          string    `json:"id" yaml:"id"`
	OrderNumber string    `json:"order_number" yaml:"order_number"`
	SampleName  string    `json:"sample_name" yaml:"sample_name"`
	ReportDir   string    `json:"report_dir" yaml:"report_dir"`
	ScratchDir  string    `json:"scratch_dir" yaml:"scratch_dir"`
	Status      RunStatus `json:"status" yaml:"status"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`

	// Context is the flat template context of a successful run.
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`
}
