// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

// Analyzer orchestrates the analysis of TEI documents: tag normalization,
// metadata extraction, section categorization with per-section language
// detection, and reference extraction, assembled into one AnalysisResult
// per input. Safe for concurrent use; it holds only immutable tables.
type Analyzer struct {
	categorizer *Categorizer
	detector    Detector
}

// NewAnalyzer builds an analyzer from config.
func NewAnalyzer(cfg types.AnalyzerConfig) (*Analyzer, error) {
	cat, err := NewCategorizer(cfg)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		categorizer: cat,
		detector: Detector{
			SampleWords: cfg.LanguageSampleWords,
			MinHits:     cfg.LanguageMinHits,
		},
	}, nil
}

// AnalyzeString parses raw XML and analyzes it. A parse failure yields a
// result with the error flag set and every other field at its empty
// default; it never escapes as an error to the caller.
func (a *Analyzer) AnalyzeString(xml, name string) types.AnalysisResult {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return types.AnalysisResult{
			File:     name,
			Language: types.LangUnknown,
			Error:    fmt.Sprintf("parsing XML: %v", err),
		}
	}
	return a.Analyze(doc, name)
}

// AnalyzeFile reads and analyzes one TEI XML file. Unreadable or malformed
// files degrade to a flagged result, mirroring AnalyzeString.
func (a *Analyzer) AnalyzeFile(path string) types.AnalysisResult {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return types.AnalysisResult{
			File:     name,
			Language: types.LangUnknown,
			Error:    fmt.Sprintf("reading file: %v", err),
		}
	}
	return a.AnalyzeString(string(data), name)
}

// Analyze runs the full analysis over a parsed document. The document is
// normalized in place and should be discarded afterwards.
func (a *Analyzer) Analyze(doc *etree.Document, name string) types.AnalysisResult {
	result := types.AnalysisResult{
		File:     name,
		Language: types.LangUnknown,
	}

	root := doc.Root()
	if root == nil {
		result.Error = "document has no root element"
		return result
	}

	NormalizeTags(doc)

	result.Metadata = ExtractMetadata(root)
	result.Sections = a.extractSections(root)
	result.References = ExtractReferences(root)
	result.Language = majorityLanguage(result.Sections)

	return result
}

// extractSections walks every div under the body in document order,
// computing body text, category, and language for each.
func (a *Analyzer) extractSections(root *etree.Element) []types.Section {
	var sections []types.Section
	for i, div := range root.FindElements(".//body//div") {
		heading := ""
		if head := div.FindElement(".//head"); head != nil {
			heading = strings.TrimSpace(flattenText(head))
		}
		body := joinParagraphs(div)

		sections = append(sections, types.Section{
			Heading:  heading,
			Body:     body,
			Category: a.categorizer.Categorize(heading, body),
			Language: a.detector.Detect(body),
			Index:    i,
		})
	}
	return sections
}

// majorityLanguage computes the overall document language as the majority
// vote across section detections, with unknown excluded. All-unknown or
// empty input yields unknown; a tie resolves to unknown as well.
func majorityLanguage(sections []types.Section) types.Language {
	var spanish, english int
	for _, s := range sections {
		switch s.Language {
		case types.LangSpanish:
			spanish++
		case types.LangEnglish:
			english++
		}
	}
	switch {
	case spanish > english:
		return types.LangSpanish
	case english > spanish:
		return types.LangEnglish
	default:
		return types.LangUnknown
	}
}

// AnalyzeDirectory analyzes every XML file discovered under dir, printing
// per-file progress to w. A failure on one file never aborts the batch:
// each discovered file contributes exactly one result, flagged on failure.
func (a *Analyzer) AnalyzeDirectory(dir string, w io.Writer) (types.BatchResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return types.BatchResult{}, fmt.Errorf("XML directory %s: %w", dir, err)
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.xml"))
	if err != nil {
		return types.BatchResult{}, fmt.Errorf("discovering XML files in %s: %w", dir, err)
	}
	sort.Strings(files)

	return a.AnalyzePaths(files, w), nil
}

// AnalyzePaths analyzes the given files in order, printing per-file
// progress to w.
func (a *Analyzer) AnalyzePaths(paths []string, w io.Writer) types.BatchResult {
	var batch types.BatchResult
	for _, path := range paths {
		result := a.AnalyzeFile(path)
		batch.Add(result)

		if result.Failed() {
			fmt.Fprintf(w, "failed  %s: %s\n", result.File, result.Error)
		} else {
			fmt.Fprintf(w, "analyzed %s (%d sections, %d references, %s)\n",
				result.File, len(result.Sections), len(result.References), result.Language)
		}
	}

	fmt.Fprintf(w, "\nanalyzed: %d, failed: %d (total: %d)\n",
		batch.Succeeded, batch.Failed, batch.Total())

	return batch
}
