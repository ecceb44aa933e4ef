// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives batch runs: it discovers input files, feeds PDFs
// through the GROBID client to produce TEI/XML, and writes analysis outputs
// (batch JSON and per-file categorized XML) to disk.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// thesisPattern is the primary filename pattern for thesis PDFs. When no
// file matches, discovery falls back to any PDF in the directory.
const thesisPattern = "Tesis_*.pdf"

// FindThesisPDFs returns the thesis PDFs under dir in sorted order. Files
// matching the Tesis_ prefix convention are preferred; if none match, every
// PDF in the directory is returned instead.
func FindThesisPDFs(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("PDF directory %s: %w", dir, err)
	}

	files, err := filepath.Glob(filepath.Join(dir, thesisPattern))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", dir, err)
	}
	if len(files) == 0 {
		files, err = filepath.Glob(filepath.Join(dir, "*.pdf"))
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", dir, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

// FindXMLFiles returns every XML file under dir in sorted order.
func FindXMLFiles(dir string) ([]string, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("XML directory %s: %w", dir, err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return nil, fmt.Errorf("globbing %s: %w", dir, err)
	}

	sort.Strings(files)
	return files, nil
}
