// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value records shared across pipeline stages.
package types

// Language is the two-valued language classification assigned to a text
// sample, plus the explicit "unknown" outcome for empty or ambiguous input.
type Language string

const (
	LangSpanish Language = "spanish"
	LangEnglish Language = "english"
	LangUnknown Language = "unknown"
)

// Category is one label from the fixed academic-section enumeration.
type Category string

const (
	CatResumenAbstract  Category = "resumen_abstract"
	CatIntroduccion     Category = "introduccion"
	CatAntecedentes     Category = "antecedentes_estado_arte"
	CatObjetivos        Category = "objetivos"
	CatJustificacion    Category = "justificacion_hipotesis"
	CatMetodologia      Category = "metodologia"
	CatResultados       Category = "resultados_analisis"
	CatConclusiones     Category = "conclusiones"
	CatReferencias      Category = "referencias"
	CatOtro             Category = "otro"
)

// Categories lists every category in the preferred output order. The
// structured-XML generator emits category groups in this order.
var Categories = []Category{
	CatResumenAbstract,
	CatIntroduccion,
	CatAntecedentes,
	CatObjetivos,
	CatJustificacion,
	CatMetodologia,
	CatResultados,
	CatConclusiones,
	CatReferencias,
	CatOtro,
}

// Metadata holds the bibliographic header fields of one document. Absence
// is always an explicit empty value, never an omitted field, so consumers
// need no presence checks.
type Metadata struct {
	// Title is the document title, trimmed. Empty when the header has none.
	Title string `json:"title" yaml:"title"`

	// Authors lists author display names (forename + surname) in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// Date is the publication date at whatever granularity the source
	// provides (e.g. "2019" or "2019-06-15"). Empty when absent.
	Date string `json:"date" yaml:"date"`

	// Abstract is the concatenated abstract paragraph text.
	Abstract string `json:"abstract" yaml:"abstract"`
}

// Section is one structural division of the document body.
type Section struct {
	// Heading is the section heading text.
	Heading string `json:"heading" yaml:"heading"`

	// Body is the concatenated paragraph text within the section.
	Body string `json:"body" yaml:"body"`

	// Category is the academic category assigned by the categorizer.
	Category Category `json:"category" yaml:"category"`

	// Language is the detected language of the section body.
	Language Language `json:"language" yaml:"language"`

	// Index preserves the original document-order position of the section.
	Index int `json:"index" yaml:"index"`
}

// Reference is one bibliography entry. RawText is always populated from the
// flattened element text; the structured sub-fields are filled only when the
// source markup exposes them.
type Reference struct {
	RawText string   `json:"raw_text" yaml:"raw_text"`
	Title   string   `json:"title" yaml:"title"`
	Authors []string `json:"authors" yaml:"authors"`
	Year    string   `json:"year" yaml:"year"`
}

// AnalysisResult is the unit of output for one input file.
type AnalysisResult struct {
	// File identifies the source file (base name).
	File string `json:"file" yaml:"file"`

	Metadata   Metadata    `json:"metadata" yaml:"metadata"`
	Sections   []Section   `json:"sections" yaml:"sections"`
	References []Reference `json:"references" yaml:"references"`

	// Language is the overall document language, the majority vote across
	// section detections with unknown excluded.
	Language Language `json:"language" yaml:"language"`

	// Error carries the failure message when analysis of this file degraded
	// to an empty result. Empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether analysis of the file failed outright.
func (r AnalysisResult) Failed() bool {
	return r.Error != ""
}

// BatchResult aggregates one AnalysisResult per discovered input file.
// Every discovered file yields exactly one result; failures are represented
// by the result's Error field, never by omission.
type BatchResult struct {
	Results   []AnalysisResult `json:"results" yaml:"results"`
	Succeeded int              `json:"succeeded" yaml:"succeeded"`
	Failed    int              `json:"failed" yaml:"failed"`
}

// Total returns the number of files processed.
func (b BatchResult) Total() int {
	return b.Succeeded + b.Failed
}

// HasFailures reports whether any file in the batch failed.
func (b BatchResult) HasFailures() bool {
	return b.Failed > 0
}

// Add appends a result and updates the success/failure counts.
func (b *BatchResult) Add(r AnalysisResult) {
	b.Results = append(b.Results, r)
	if r.Failed() {
		b.Failed++
	} else {
		b.Succeeded++
	}
}
