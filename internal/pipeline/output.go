// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/thesis-analyzer/internal/tei"
	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

const structuredDir = "structured_xml"

// WriteBatchJSON writes the batch result as indented JSON to path, creating
// parent directories as needed. Field names are stable; the file is the
// contract consumed by the store stage.
func WriteBatchJSON(batch types.BatchResult, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling batch result: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadBatchJSON loads a batch result previously written by WriteBatchJSON.
func ReadBatchJSON(path string) (types.BatchResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.BatchResult{}, fmt.Errorf("reading %s: %w", path, err)
	}

	var batch types.BatchResult
	if err := json.Unmarshal(data, &batch); err != nil {
		return types.BatchResult{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return batch, nil
}

// WriteStructuredXML generates a categorized XML tree for every successful
// result in the batch and writes each as <stem>_structured.xml under
// outDir/structured_xml/. Failed results have nothing to serialize and are
// skipped.
func WriteStructuredXML(batch types.BatchResult, outDir string) error {
	dir := filepath.Join(outDir, structuredDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating structured XML directory: %w", err)
	}

	for _, result := range batch.Results {
		if result.Failed() {
			continue
		}

		stem := strings.TrimSuffix(result.File, filepath.Ext(result.File))
		path := filepath.Join(dir, stem+"_structured.xml")

		doc := tei.Generate(result)
		if err := doc.WriteToFile(path); err != nil {
			return fmt.Errorf("writing structured XML for %s: %w", result.File, err)
		}
	}
	return nil
}
