// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

func sampleBatch() types.BatchResult {
	var batch types.BatchResult
	batch.Add(types.AnalysisResult{
		File: "Tesis_A_fulltext.xml",
		Metadata: types.Metadata{
			Title:   "La lectura digital",
			Authors: []string{"Carla Mendoza"},
		},
		Sections: []types.Section{
			{Heading: "Resumen", Body: "Texto.", Category: types.CatResumenAbstract, Language: types.LangSpanish},
		},
		Language: types.LangSpanish,
	})
	batch.Add(types.AnalysisResult{
		File:     "Tesis_B_fulltext.xml",
		Language: types.LangUnknown,
		Error:    "parsing XML: unexpected EOF",
	})
	return batch
}

func TestBatchJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "thesis_analysis.json")
	batch := sampleBatch()

	if err := WriteBatchJSON(batch, path); err != nil {
		t.Fatalf("WriteBatchJSON: %v", err)
	}

	got, err := ReadBatchJSON(path)
	if err != nil {
		t.Fatalf("ReadBatchJSON: %v", err)
	}

	if got.Total() != 2 || got.Succeeded != 1 || got.Failed != 1 {
		t.Errorf("counts = %d/%d/%d", got.Total(), got.Succeeded, got.Failed)
	}
	if got.Results[0].Metadata.Title != "La lectura digital" {
		t.Errorf("title = %q", got.Results[0].Metadata.Title)
	}
	if !got.Results[1].Failed() {
		t.Error("failed result lost its error flag")
	}
}

func TestReadBatchJSON_Errors(t *testing.T) {
	if _, err := ReadBatchJSON(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("want error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("writing file: %v", err)
	}
	if _, err := ReadBatchJSON(bad); err == nil {
		t.Error("want error for malformed JSON")
	}
}

func TestWriteStructuredXML(t *testing.T) {
	outDir := t.TempDir()

	if err := WriteStructuredXML(sampleBatch(), outDir); err != nil {
		t.Fatalf("WriteStructuredXML: %v", err)
	}

	path := filepath.Join(outDir, "structured_xml", "Tesis_A_fulltext_structured.xml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading structured XML: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "<tesis") || !strings.Contains(content, "resumen_abstract") {
		t.Errorf("unexpected structured XML:\n%s", content)
	}

	// Failed results are skipped.
	entries, err := os.ReadDir(filepath.Join(outDir, "structured_xml"))
	if err != nil {
		t.Fatalf("listing structured XML dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d structured files, want 1 (failed result skipped)", len(entries))
	}
}
