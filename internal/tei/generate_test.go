// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"testing"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

func TestGenerate(t *testing.T) {
	result := types.AnalysisResult{
		File: "tesis.xml",
		Metadata: types.Metadata{
			Title:    "La lectura digital",
			Authors:  []string{"Carla Mendoza", "Luis Gómez"},
			Date:     "2021-03-01",
			Abstract: "Un estudio sobre lectura.",
		},
		Sections: []types.Section{
			{Heading: "Conclusiones", Body: "Texto final.", Category: types.CatConclusiones, Language: types.LangSpanish, Index: 2},
			{Heading: "Resumen", Body: "Texto inicial.", Category: types.CatResumenAbstract, Language: types.LangSpanish, Index: 0},
			{Heading: "Anexo", Body: "Tablas.", Category: types.CatOtro, Language: types.LangUnknown, Index: 3},
		},
		References: []types.Reference{
			{RawText: "Pérez, A. (2018). Digital reading.", Title: "Digital reading", Authors: []string{"Ana Pérez"}, Year: "2018"},
		},
		Language: types.LangSpanish,
	}

	doc := Generate(result)

	root := doc.Root()
	if root.Tag != "tesis" {
		t.Fatalf("root = %q, want tesis", root.Tag)
	}
	if got := root.SelectAttrValue("archivo", ""); got != "tesis.xml" {
		t.Errorf("archivo = %q", got)
	}

	meta := root.FindElement("metadatos")
	if meta == nil {
		t.Fatal("metadatos element missing")
	}
	if got := meta.FindElement("titulo").Text(); got != "La lectura digital" {
		t.Errorf("titulo = %q", got)
	}
	if got := meta.FindElement("idioma").Text(); got != "spanish" {
		t.Errorf("idioma = %q", got)
	}
	if autores := meta.FindElements("autores/autor"); len(autores) != 2 {
		t.Errorf("got %d autor elements, want 2", len(autores))
	}
	if got := meta.FindElement("fecha").Text(); got != "2021-03-01" {
		t.Errorf("fecha = %q", got)
	}
	if got := meta.FindElement("resumen").Text(); got != "Un estudio sobre lectura." {
		t.Errorf("resumen = %q", got)
	}

	// Section groups follow the fixed category order regardless of input
	// order, with empty categories omitted.
	contenido := root.FindElement("contenido")
	if contenido == nil {
		t.Fatal("contenido element missing")
	}
	var groups []string
	for _, child := range contenido.ChildElements() {
		groups = append(groups, child.Tag)
	}
	want := []string{"resumen_abstract", "conclusiones", "otro"}
	if len(groups) != len(want) {
		t.Fatalf("groups = %v, want %v", groups, want)
	}
	for i := range want {
		if groups[i] != want[i] {
			t.Fatalf("groups = %v, want %v", groups, want)
		}
	}

	sec := contenido.FindElement("conclusiones/seccion")
	if sec == nil {
		t.Fatal("seccion element missing")
	}
	if got := sec.SelectAttrValue("categoria", ""); got != "conclusiones" {
		t.Errorf("categoria attr = %q", got)
	}
	if got := sec.SelectAttrValue("idioma", ""); got != "spanish" {
		t.Errorf("idioma attr = %q", got)
	}
	if got := sec.FindElement("titulo").Text(); got != "Conclusiones" {
		t.Errorf("seccion titulo = %q", got)
	}
	if got := sec.FindElement("texto").Text(); got != "Texto final." {
		t.Errorf("seccion texto = %q", got)
	}

	ref := root.FindElement("referencias/referencia")
	if ref == nil {
		t.Fatal("referencia element missing")
	}
	if got := ref.FindElement("titulo").Text(); got != "Digital reading" {
		t.Errorf("referencia titulo = %q", got)
	}
	if got := ref.FindElement("fecha").Text(); got != "2018" {
		t.Errorf("referencia fecha = %q", got)
	}
}

func TestGenerate_MinimalResult(t *testing.T) {
	doc := Generate(types.AnalysisResult{File: "empty.xml", Language: types.LangUnknown})

	root := doc.Root()
	meta := root.FindElement("metadatos")
	if meta == nil {
		t.Fatal("metadatos element missing")
	}
	if meta.FindElement("fecha") != nil || meta.FindElement("resumen") != nil {
		t.Error("empty optional metadata must be omitted")
	}
	if contenido := root.FindElement("contenido"); contenido == nil {
		t.Error("contenido element missing")
	} else if n := len(contenido.ChildElements()); n != 0 {
		t.Errorf("got %d section groups, want 0", n)
	}
	if root.FindElement("referencias") != nil {
		t.Error("empty reference list must be omitted")
	}

	if _, err := doc.WriteToString(); err != nil {
		t.Fatalf("serializing: %v", err)
	}
}
