// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Extractor turns a PDF file into TEI/XML text. The grobid client is the
// production implementation; tests supply a fake.
type Extractor interface {
	// ProcessFulltext extracts the full document structure.
	ProcessFulltext(ctx context.Context, pdfPath string) (string, error)

	// ProcessHeader extracts only the bibliographic header.
	ProcessHeader(ctx context.Context, pdfPath string) (string, error)
}

// ProcessSummary holds counts from a batch PDF-to-TEI run.
type ProcessSummary struct {
	Processed int
	Failed    int
}

// Total returns the number of PDFs handled.
func (s ProcessSummary) Total() int {
	return s.Processed + s.Failed
}

// HasFailures reports whether any PDF failed processing.
func (s ProcessSummary) HasFailures() bool {
	return s.Failed > 0
}

// ProcessAll discovers thesis PDFs under pdfDir and runs each through the
// extractor, writing <stem>_fulltext.xml and <stem>_header.xml under
// outDir. A failure on one file is reported and counted but never aborts
// the batch; a header-only failure is a warning, since the full-text TEI
// already contains the header.
func ProcessAll(ctx context.Context, ex Extractor, pdfDir, outDir string, w io.Writer) (ProcessSummary, error) {
	pdfs, err := FindThesisPDFs(pdfDir)
	if err != nil {
		return ProcessSummary{}, err
	}
	if len(pdfs) == 0 {
		return ProcessSummary{}, fmt.Errorf("no PDF files found in %s", pdfDir)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return ProcessSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	var summary ProcessSummary

	for _, pdfPath := range pdfs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		stem := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
		fmt.Fprintf(w, "processing %s\n", filepath.Base(pdfPath))

		xml, err := ex.ProcessFulltext(ctx, pdfPath)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", filepath.Base(pdfPath), err)
			summary.Failed++
			continue
		}

		fulltextPath := filepath.Join(outDir, stem+"_fulltext.xml")
		if err := os.WriteFile(fulltextPath, []byte(xml), 0o644); err != nil {
			fmt.Fprintf(w, "failed  %s: writing TEI: %v\n", filepath.Base(pdfPath), err)
			summary.Failed++
			continue
		}

		if header, err := ex.ProcessHeader(ctx, pdfPath); err != nil {
			fmt.Fprintf(w, "warning %s: header extraction: %v\n", filepath.Base(pdfPath), err)
		} else {
			headerPath := filepath.Join(outDir, stem+"_header.xml")
			if err := os.WriteFile(headerPath, []byte(header), 0o644); err != nil {
				fmt.Fprintf(w, "warning %s: writing header TEI: %v\n", filepath.Base(pdfPath), err)
			}
		}

		fmt.Fprintf(w, "processed %s\n", stem+"_fulltext.xml")
		summary.Processed++
	}

	fmt.Fprintf(w, "\nprocessed: %d, failed: %d (total: %d)\n",
		summary.Processed, summary.Failed, summary.Total())

	return summary, nil
}
