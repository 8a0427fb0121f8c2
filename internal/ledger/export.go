// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/depositor/internal/output"
)

// ExportEntry holds a deposit with its articles for export.
type ExportEntry struct {
	Deposit  `json:",inline" yaml:",inline"`
	Articles []Article `json:"articles" yaml:"articles"`
}

// ExportYAML writes the ledger to dir/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, output.WriteBytes(path, data)
}

// ExportJSON writes the ledger to dir/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, output.WriteBytes(path, data)
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	deposits, err := s.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(deposits))
	for i, d := range deposits {
		articles, err := s.Articles(ctx, d.BatchID)
		if err != nil {
			return nil, fmt.Errorf("querying for export: %w", err)
		}
		entries[i] = ExportEntry{Deposit: d, Articles: articles}
	}
	return entries, nil
}
