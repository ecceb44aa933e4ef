// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"testing"

	"github.com/beevik/etree"
)

func TestNormalizeTags(t *testing.T) {
	const prefixed = `<tei:TEI xmlns:tei="http://www.tei-c.org/ns/1.0">
		<tei:teiHeader>
			<tei:titleStmt><tei:title type="main">Sample</tei:title></tei:titleStmt>
		</tei:teiHeader>
	</tei:TEI>`

	doc := etree.NewDocument()
	if err := doc.ReadFromString(prefixed); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	NormalizeTags(doc)

	root := doc.Root()
	if root.Space != "" || root.Tag != "TEI" {
		t.Errorf("root = %s:%s, want TEI with no namespace", root.Space, root.Tag)
	}

	title := root.FindElement(".//titleStmt/title")
	if title == nil {
		t.Fatal("title not reachable via plain tag names after normalization")
	}
	if title.Text() != "Sample" {
		t.Errorf("title text = %q, want %q (text must be untouched)", title.Text(), "Sample")
	}
	if got := title.SelectAttrValue("type", ""); got != "main" {
		t.Errorf("title type attr = %q, want %q (attributes must be untouched)", got, "main")
	}
}

func TestNormalizeTags_BraceQualified(t *testing.T) {
	doc := etree.NewDocument()
	root := doc.CreateElement("{http://www.tei-c.org/ns/1.0}TEI")
	root.CreateElement("{http://www.tei-c.org/ns/1.0}body")

	NormalizeTags(doc)

	if doc.Root().Tag != "TEI" {
		t.Errorf("root tag = %q, want TEI", doc.Root().Tag)
	}
	if body := doc.Root().FindElement("body"); body == nil {
		t.Error("brace-qualified child tag was not normalized")
	}
}

func TestNormalizeTags_Idempotent(t *testing.T) {
	const prefixed = `<t:a xmlns:t="urn:x"><t:b attr="v">text</t:b></t:a>`

	doc := etree.NewDocument()
	if err := doc.ReadFromString(prefixed); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}

	NormalizeTags(doc)
	first, err := doc.WriteToString()
	if err != nil {
		t.Fatalf("serializing: %v", err)
	}

	NormalizeTags(doc)
	second, err := doc.WriteToString()
	if err != nil {
		t.Fatalf("serializing: %v", err)
	}

	if first != second {
		t.Errorf("normalizing an already-normalized tree changed it:\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestNormalizeTags_EmptyDocument(t *testing.T) {
	doc := etree.NewDocument()
	NormalizeTags(doc) // must not panic on a document with no root
}
