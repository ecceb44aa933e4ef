// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"strings"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

// Marker-word tables for heuristic language detection. High-frequency
// function words that rarely overlap between the two languages; read-only
// after initialization.
var (
	spanishMarkers = markerSet(
		"de", "la", "el", "en", "que", "con", "por", "para",
		"del", "los", "las", "una", "uno", "es", "como", "más",
	)
	englishMarkers = markerSet(
		"the", "of", "and", "to", "in", "for", "with", "on",
		"at", "by", "from", "this", "that", "is", "are", "was",
	)
)

func markerSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

const (
	defaultSampleWords = 100
	defaultMinHits     = 1
)

// Detector classifies text as Spanish, English, or unknown by counting
// marker-word occurrences in a leading sample.
type Detector struct {
	// SampleWords bounds how many leading words are inspected. Zero means
	// the default of 100.
	SampleWords int

	// MinHits is the marker count the winning language must reach. Zero
	// means the default of 1.
	MinHits int
}

// Detect returns the classification for text. Empty input, input with too
// few marker hits, and exact ties all yield unknown: a short or
// numeric-only section must not be silently mislabeled.
func (d Detector) Detect(text string) types.Language {
	sample := d.SampleWords
	if sample <= 0 {
		sample = defaultSampleWords
	}
	minHits := d.MinHits
	if minHits <= 0 {
		minHits = defaultMinHits
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) > sample {
		words = words[:sample]
	}

	var spanish, english int
	for _, w := range words {
		w = strings.Trim(w, ".,;:!?¿¡()[]\"'")
		if spanishMarkers[w] {
			spanish++
		}
		if englishMarkers[w] {
			english++
		}
	}

	switch {
	case spanish > english && spanish >= minHits:
		return types.LangSpanish
	case english > spanish && english >= minHits:
		return types.LangEnglish
	default:
		return types.LangUnknown
	}
}
