// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"github.com/beevik/etree"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

// Generate serializes an AnalysisResult into a categorized XML tree:
// metadata elements, section groups in the fixed category order, and the
// reference list. Pure function of its input; empty optional fields are
// simply omitted from the tree.
func Generate(result types.AnalysisResult) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("tesis")
	root.CreateAttr("archivo", result.File)

	meta := root.CreateElement("metadatos")
	meta.CreateElement("titulo").SetText(result.Metadata.Title)
	meta.CreateElement("idioma").SetText(string(result.Language))
	autores := meta.CreateElement("autores")
	for _, author := range result.Metadata.Authors {
		autores.CreateElement("autor").SetText(author)
	}
	if result.Metadata.Date != "" {
		meta.CreateElement("fecha").SetText(result.Metadata.Date)
	}
	if result.Metadata.Abstract != "" {
		meta.CreateElement("resumen").SetText(result.Metadata.Abstract)
	}

	contenido := root.CreateElement("contenido")
	grouped := groupByCategory(result.Sections)
	for _, cat := range types.Categories {
		sections := grouped[cat]
		if len(sections) == 0 {
			continue
		}
		group := contenido.CreateElement(string(cat))
		for _, s := range sections {
			sec := group.CreateElement("seccion")
			sec.CreateAttr("categoria", string(s.Category))
			sec.CreateAttr("idioma", string(s.Language))
			sec.CreateElement("titulo").SetText(s.Heading)
			sec.CreateElement("texto").SetText(s.Body)
		}
	}

	if len(result.References) > 0 {
		referencias := root.CreateElement("referencias")
		for _, ref := range result.References {
			r := referencias.CreateElement("referencia")
			if ref.Title != "" {
				r.CreateElement("titulo").SetText(ref.Title)
			}
			if len(ref.Authors) > 0 {
				refAutores := r.CreateElement("autores")
				for _, author := range ref.Authors {
					refAutores.CreateElement("autor").SetText(author)
				}
			}
			if ref.Year != "" {
				r.CreateElement("fecha").SetText(ref.Year)
			}
			if ref.RawText != "" {
				r.CreateElement("texto").SetText(ref.RawText)
			}
		}
	}

	doc.Indent(2)
	return doc
}

// groupByCategory buckets sections by assigned category, preserving
// document order within each bucket.
func groupByCategory(sections []types.Section) map[types.Category][]types.Section {
	grouped := make(map[types.Category][]types.Section)
	for _, s := range sections {
		grouped[s.Category] = append(grouped[s.Category], s)
	}
	return grouped
}
