// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

// ExtractMetadata pulls title, authors, publication date, and abstract from
// the bibliographic header of a normalized tree. Every field degrades
// independently to its empty value when the expected substructure is
// missing; the function never fails.
func ExtractMetadata(root *etree.Element) types.Metadata {
	var md types.Metadata
	if root == nil {
		return md
	}

	if title := root.FindElement(".//titleStmt/title"); title != nil {
		md.Title = strings.TrimSpace(flattenText(title))
	}

	for _, author := range root.FindElements(".//sourceDesc//author") {
		if name := authorName(author); name != "" {
			md.Authors = append(md.Authors, name)
		}
	}

	if date := root.FindElement(".//publicationStmt/date"); date != nil {
		md.Date = strings.TrimSpace(date.Text())
		if md.Date == "" {
			md.Date = date.SelectAttrValue("when", "")
		}
	}

	if abstract := root.FindElement(".//abstract"); abstract != nil {
		md.Abstract = joinParagraphs(abstract)
	}

	return md
}

// authorName reduces an author element to a display name: the forename and
// surname parts concatenated with single spaces. Empty when neither part
// carries text.
func authorName(author *etree.Element) string {
	var parts []string
	for _, tag := range []string{"forename", "surname"} {
		for _, el := range author.FindElements(".//" + tag) {
			if text := strings.TrimSpace(el.Text()); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}

// joinParagraphs concatenates the text of every p descendant, joined with
// single spaces and trimmed.
func joinParagraphs(el *etree.Element) string {
	var parts []string
	for _, p := range el.FindElements(".//p") {
		if text := strings.TrimSpace(flattenText(p)); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// flattenText returns the full text content of an element including its
// descendants, with runs of whitespace collapsed to single spaces. TEI
// paragraphs are sprinkled with inline elements (ref, hi, formula) whose
// surrounding text would otherwise be lost.
func flattenText(el *etree.Element) string {
	var b strings.Builder
	collectText(el, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(el *etree.Element, b *strings.Builder) {
	for _, child := range el.Child {
		switch c := child.(type) {
		case *etree.CharData:
			b.WriteString(c.Data)
			b.WriteByte(' ')
		case *etree.Element:
			collectText(c, b)
		}
	}
}
