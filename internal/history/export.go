// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/elot743/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes matching conversions to path as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions, path string) (int, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return 0, err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return 0, fmt.Errorf("marshaling YAML: %w", err)
	}
	return len(entries), writeExport(path, data)
}

// ExportJSON writes matching conversions to path as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions, path string) (int, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return 0, err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshaling JSON: %w", err)
	}
	return len(entries), writeExport(path, data)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]types.Conversion, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	entries, err := s.Query(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []types.Conversion{}
	}
	return entries, nil
}

func writeExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
