package pdfgraph

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Bookmark is a top level outline item pointing at a 1-based physical page.
type Bookmark struct {
	Title string
	Page  int
}

// SetOutline replaces the document outline with a flat list of bookmarks.
func SetOutline(ctx *model.Context, bookmarks []Bookmark) error {
	if len(bookmarks) == 0 {
		return nil
	}
	pages, err := PageRefs(ctx)
	if err != nil {
		return err
	}
	catalog, err := ctx.DereferenceDict(*ctx.Root)
	if err != nil || catalog == nil {
		return fmt.Errorf("failed to read catalog: %v", err)
	}

	outlines := types.Dict{"Type": types.Name("Outlines")}
	outlinesRef, err := ctx.IndRefForNewObject(outlines)
	if err != nil {
		return fmt.Errorf("failed to add outline root: %w", err)
	}

	items := make([]types.Dict, len(bookmarks))
	refs := make([]types.IndirectRef, len(bookmarks))
	for i, b := range bookmarks {
		if b.Page < 1 || b.Page > len(pages) {
			return fmt.Errorf("bookmark %q points at page %d of %d", b.Title, b.Page, len(pages))
		}
		items[i] = types.Dict{
			"Title":  TextString(b.Title),
			"Parent": *outlinesRef,
			"Dest":   types.Array{pages[b.Page-1], types.Name("Fit")},
		}
		ref, err := ctx.IndRefForNewObject(items[i])
		if err != nil {
			return fmt.Errorf("failed to add bookmark %q: %w", b.Title, err)
		}
		refs[i] = *ref
	}
	for i, item := range items {
		if i > 0 {
			item["Prev"] = refs[i-1]
		}
		if i < len(items)-1 {
			item["Next"] = refs[i+1]
		}
	}

	outlines["First"] = refs[0]
	outlines["Last"] = refs[len(refs)-1]
	outlines["Count"] = types.Integer(len(refs))

	catalog["Outlines"] = *outlinesRef
	catalog["PageMode"] = types.Name("UseOutlines")
	return nil
}

// TextString encodes s as a PDF text string: a literal for printable ASCII,
// UTF-16BE hex otherwise.
func TextString(s string) types.Object {
	for _, r := range s {
		if r < 0x20 || r > 0x7e {
			return types.NewHexLiteral([]byte(types.EncodeUTF16String(s)))
		}
	}
	return types.StringLiteral(EscapeString(s))
}

// EscapeString escapes s for use inside a PDF literal string.
func EscapeString(s string) string {
	escaped, _ := types.Escape(s)
	return *escaped
}
