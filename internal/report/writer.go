// Package report records what a single operation read and wrote.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// New creates a report for op with defaults.
func New(op string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Operation:   op,
		Params:      make(map[string]string),
	}
}

// Ratio returns output size as a fraction of input size, or 0 when the
// input size is unknown.
func (r *Report) Ratio() float64 {
	if r.Input.Size <= 0 {
		return 0
	}
	return float64(r.Output.Size) / float64(r.Input.Size)
}

// WriteJSON serializes the report to path.
func WriteJSON(r *Report, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// Read parses a report written by WriteJSON.
func Read(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	if r.Version != SupportedVersion {
		return nil, fmt.Errorf("unsupported report version: %d", r.Version)
	}
	return &r, nil
}
