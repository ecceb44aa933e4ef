// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"reflect"
	"testing"

	"github.com/beevik/etree"
)

// parseNormalized parses XML and normalizes its tags, failing the test on
// malformed input.
func parseNormalized(t *testing.T, xml string) *etree.Document {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	NormalizeTags(doc)
	return doc
}

const headerTEI = `<TEI xmlns="http://www.tei-c.org/ns/1.0">
	<teiHeader>
		<fileDesc>
			<titleStmt><title level="a" type="main">Impacto de la lectura digital</title></titleStmt>
			<publicationStmt><date when="2019-06-15"/></publicationStmt>
			<sourceDesc><biblStruct><analytic>
				<author><persName><forename type="first">María</forename><surname>Calderón</surname></persName></author>
				<author><persName><forename type="first">José</forename><surname>Rivera</surname></persName></author>
			</analytic></biblStruct></sourceDesc>
		</fileDesc>
		<profileDesc>
			<abstract>
				<p>Este trabajo estudia la lectura digital.</p>
				<p>Se analizan sus efectos.</p>
			</abstract>
		</profileDesc>
	</teiHeader>
	<text><body/></text>
</TEI>`

func TestExtractMetadata(t *testing.T) {
	doc := parseNormalized(t, headerTEI)

	md := ExtractMetadata(doc.Root())

	if md.Title != "Impacto de la lectura digital" {
		t.Errorf("title = %q", md.Title)
	}
	wantAuthors := []string{"María Calderón", "José Rivera"}
	if !reflect.DeepEqual(md.Authors, wantAuthors) {
		t.Errorf("authors = %v, want %v", md.Authors, wantAuthors)
	}
	if md.Date != "2019-06-15" {
		t.Errorf("date = %q, want attribute fallback value", md.Date)
	}
	if md.Abstract != "Este trabajo estudia la lectura digital. Se analizan sus efectos." {
		t.Errorf("abstract = %q", md.Abstract)
	}
}

func TestExtractMetadata_DateText(t *testing.T) {
	doc := parseNormalized(t, `<TEI><teiHeader><fileDesc>
		<publicationStmt><date when="2020">June 2020</date></publicationStmt>
	</fileDesc></teiHeader></TEI>`)

	md := ExtractMetadata(doc.Root())
	if md.Date != "June 2020" {
		t.Errorf("date = %q, want element text preferred over attribute", md.Date)
	}
}

func TestExtractMetadata_MissingHeader(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"empty document", `<TEI/>`},
		{"header without fields", `<TEI><teiHeader><fileDesc/></teiHeader></TEI>`},
		{"body only", `<TEI><text><body><div><p>text</p></div></body></text></TEI>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseNormalized(t, tt.xml)

			md := ExtractMetadata(doc.Root())

			if md.Title != "" || md.Date != "" || md.Abstract != "" || len(md.Authors) != 0 {
				t.Errorf("want all-empty metadata, got %+v", md)
			}
		})
	}
}

func TestExtractMetadata_NilRoot(t *testing.T) {
	md := ExtractMetadata(nil)
	if md.Title != "" || len(md.Authors) != 0 {
		t.Errorf("want zero metadata for nil root, got %+v", md)
	}
}

func TestFlattenText_InlineElements(t *testing.T) {
	doc := parseNormalized(t, `<p>Reading <hi rend="italic">habits</hi> of <ref target="#b1">students</ref>.</p>`)

	got := flattenText(doc.Root())
	want := "Reading habits of students ."
	if got != want {
		t.Errorf("flattenText = %q, want %q", got, want)
	}
}
