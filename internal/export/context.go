// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes an extracted ReportContext for consumers outside
// the pipeline: the flat template context as YAML or JSON, and the chain
// tables as a spreadsheet.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/peptide-report/pkg/types"
)

// Supported context formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ParseFormat normalizes a format name. An empty name means YAML.
func ParseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatYAML, "yml":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want yaml or json)", s)
	}
}

// MarshalContext encodes rc.Fields() in the given format. Map keys are
// sorted by both encoders, so output is stable for identical input.
func MarshalContext(format string, rc *types.ReportContext) ([]byte, error) {
	format, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	fields := rc.Fields()
	if format == FormatJSON {
		data, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling JSON: %w", err)
		}
		return append(data, '\n'), nil
	}
	data, err := yaml.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return data, nil
}

// WriteContext writes rc.Fields() to path, creating parent directories.
func WriteContext(path, format string, rc *types.ReportContext) error {
	data, err := MarshalContext(format, rc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing context %s: %w", path, err)
	}
	return nil
}
