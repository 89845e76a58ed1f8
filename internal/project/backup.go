package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/voxedit/internal/catalog"
	"github.com/piwi3910/voxedit/internal/model"
)

const bundleVersion = "1.0.0"

// Bundle is the top-level structure for moving editor settings and custom
// catalog entries between machines.
type Bundle struct {
	Version   string               `json:"version"`
	CreatedAt string               `json:"created_at"`
	Config    model.EditorConfig   `json:"config"`
	Parts     []model.CatalogEntry `json:"parts,omitempty"`
}

// ExportBundle writes config and the given catalog entries to a single JSON
// file at the specified path.
func ExportBundle(exportPath string, config model.EditorConfig, parts []model.CatalogEntry) error {
	bundle := Bundle{
		Version:   bundleVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Parts:     parts,
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write bundle file: %w", err)
	}
	return nil
}

// ImportBundle reads a bundle file. Every catalog entry must pass
// catalog.Validate; the caller decides whether to merge them.
func ImportBundle(importPath string) (Bundle, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return Bundle{}, fmt.Errorf("failed to read bundle file: %w", err)
	}
	var bundle Bundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return Bundle{}, fmt.Errorf("failed to parse bundle file: %w", err)
	}
	if bundle.Version == "" {
		return Bundle{}, fmt.Errorf("invalid bundle file: missing version field")
	}
	for _, e := range bundle.Parts {
		if err := catalog.Validate(e); err != nil {
			return Bundle{}, fmt.Errorf("invalid part %d in bundle: %w", e.ID, err)
		}
	}
	return bundle, nil
}
