// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tei analyzes TEI/XML documents produced by the GROBID extraction
// service: it normalizes the element tree, extracts bibliographic metadata,
// splits the body into sections with academic category labels and a detected
// language, and collects the reference list into one AnalysisResult.
package tei

import (
	"strings"

	"github.com/beevik/etree"
)

// NormalizeTags strips namespace qualifiers from every element tag in the
// document, recursively. GROBID emits TEI elements in the TEI namespace;
// removing the qualifier up front lets the rest of the analyzer match on
// plain tag names regardless of how the producer declared its namespaces.
// Attributes and text are left untouched, and normalizing an already
// normalized tree is a no-op.
func NormalizeTags(doc *etree.Document) {
	if root := doc.Root(); root != nil {
		normalizeElement(root)
	}
}

func normalizeElement(el *etree.Element) {
	el.Space = ""
	el.Tag = stripBraceQualifier(el.Tag)
	for _, child := range el.ChildElements() {
		normalizeElement(child)
	}
}

// stripBraceQualifier removes a leading {uri} qualifier, the convention
// some producers use instead of a prefix.
func stripBraceQualifier(tag string) string {
	if strings.HasPrefix(tag, "{") {
		if end := strings.Index(tag, "}"); end >= 0 {
			return tag[end+1:]
		}
	}
	return tag
}
