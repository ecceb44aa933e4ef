package tei

import (
	"reflect"
	"testing"
)

func TestExtractReferences(t *testing.T) {
	doc := parseNormalized(t, `<TEI xmlns="http://www.tei-c.org/ns/1.0">
		<text><back><div type="references">
			<listBibl>
				<biblStruct>
					<analytic>
						<title level="a">Digital reading in higher education</title>
						<author><persName><forename>Ana</forename><surname>Pérez</surname></persName></author>
						<author><persName><forename>Luis</forename><surname>Gómez</surname></persName></author>
					</analytic>
					<monogr><imprint><date type="published" when="2018"/></imprint></monogr>
				</biblStruct>
				<biblStruct>
					<monogr>
						<title level="m">Metodología de la investigación</title>
						<imprint><date>1998</date></imprint>
					</monogr>
				</biblStruct>
			</listBibl>
		</div></back></text>
	</TEI>`)

	refs := ExtractReferences(doc.Root())
	if len(refs) != 2 {
		t.Fatalf("got %d references, want 2", len(refs))
	}

	first := refs[0]
	if first.Title != "Digital reading in higher education" {
		t.Errorf("title = %q", first.Title)
	}
	wantAuthors := []string{"Ana Pérez", "Luis Gómez"}
	if !reflect.DeepEqual(first.Authors, wantAuthors) {
		t.Errorf("authors = %v, want %v", first.Authors, wantAuthors)
	}
	if first.Year != "2018" {
		t.Errorf("year = %q, want when attribute", first.Year)
	}
	if first.RawText == "" {
		t.Error("raw text must carry the flattened entry")
	}

	second := refs[1]
	if second.Title != "Metodología de la investigación" {
		t.Errorf("title = %q", second.Title)
	}
	if len(second.Authors) != 0 {
		t.Errorf("authors = %v, want none", second.Authors)
	}
	if second.Year != "1998" {
		t.Errorf("year = %q, want date text fallback", second.Year)
	}
}

func TestExtractReferences_Empty(t *testing.T) {
	tests := []struct {
		name string
		xml  string
	}{
		{"no bibliography", `<TEI><text><body/></text></TEI>`},
		{"empty listBibl", `<TEI><text><back><listBibl/></back></text></TEI>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseNormalized(t, tt.xml)
			if refs := ExtractReferences(doc.Root()); len(refs) != 0 {
				t.Errorf("got %d references, want 0", len(refs))
			}
		})
	}
}

func TestExtractReferences_NilRoot(t *testing.T) {
	if refs := ExtractReferences(nil); refs != nil {
		t.Errorf("got %v, want nil", refs)
	}
}
