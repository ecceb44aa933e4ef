// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tei

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/pdiddy/thesis-analyzer/pkg/types"
)

// ExtractReferences collects the bibliography entries of a normalized tree
// in document order, one Reference per biblStruct under listBibl. A missing
// or empty bibliography yields an empty sequence.
func ExtractReferences(root *etree.Element) []types.Reference {
	if root == nil {
		return nil
	}

	var refs []types.Reference
	for _, entry := range root.FindElements(".//listBibl/biblStruct") {
		ref := types.Reference{
			RawText: strings.TrimSpace(flattenText(entry)),
		}

		if title := entry.FindElement(".//title"); title != nil {
			ref.Title = strings.TrimSpace(flattenText(title))
		}

		for _, author := range entry.FindElements(".//author") {
			if name := authorName(author); name != "" {
				ref.Authors = append(ref.Authors, name)
			}
		}

		if date := entry.FindElement(".//date"); date != nil {
			ref.Year = date.SelectAttrValue("when", "")
			if ref.Year == "" {
				ref.Year = strings.TrimSpace(date.Text())
			}
		}

		refs = append(refs, ref)
	}
	return refs
}
