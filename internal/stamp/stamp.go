// Package stamp draws page number labels onto existing PDF pages.
package stamp

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/jackzampolin/casebundle/internal/pdfgraph"
	bundletypes "github.com/jackzampolin/casebundle/internal/types"
)

// FontResource is the resource name under which the stamp font is registered.
const FontResource = "CBHelv"

// Text renders the stamp text for one page.
func Text(label string, total int, format string) string {
	switch format {
	case bundletypes.FormatPageX:
		return "Page " + label
	case bundletypes.FormatX:
		return label
	default:
		return fmt.Sprintf("Page %s of %d", label, total)
	}
}

// Position returns the text origin for a stamp placed according to position.
func Position(position string, box pdfgraph.Box) (x, y float64) {
	w, h := box.Width(), box.Height()
	switch position {
	case bundletypes.PositionBottomCenter:
		x, y = w/2-30, 25
	case bundletypes.PositionTopCenter:
		x, y = w/2-30, h-25
	default:
		x, y = w-100, h-25
	}
	return box.LLX + x, box.LLY + y
}

// Fragment returns the content stream operators that draw text at (x, y).
func Fragment(text string, x, y, fontSize float64) []byte {
	var buf bytes.Buffer
	buf.WriteString("q\nBT\n")
	fmt.Fprintf(&buf, "/%s %s Tf\n", FontResource, num(fontSize))
	fmt.Fprintf(&buf, "%s %s Td\n", num(x), num(y))
	fmt.Fprintf(&buf, "(%s) Tj\n", pdfgraph.EscapeString(text))
	buf.WriteString("ET\nQ\n")
	return buf.Bytes()
}

func num(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// StampPage appends text to the page at pageRef. The existing content is
// isolated in its own graphics state and a new content stream replaces it.
func StampPage(ctx *model.Context, pageRef types.IndirectRef, text string, style bundletypes.PaginationStyle) error {
	page, err := ctx.DereferenceDict(pageRef)
	if err != nil {
		return fmt.Errorf("failed to read page: %w", err)
	}
	if page == nil {
		return fmt.Errorf("page %d is missing", int(pageRef.ObjectNumber))
	}

	existing, err := pdfgraph.PageContent(ctx, page)
	if err != nil {
		return err
	}

	x, y := Position(style.Position, pdfgraph.MediaBox(ctx, page))

	var buf bytes.Buffer
	if len(existing) > 0 {
		buf.WriteString("q\n")
		buf.Write(existing)
		buf.WriteString("\nQ\n")
	}
	buf.Write(Fragment(text, x, y, style.FontSize))

	if err := addFont(ctx, page); err != nil {
		return err
	}
	contents, err := pdfgraph.AddStream(ctx, buf.Bytes())
	if err != nil {
		return err
	}
	page["Contents"] = contents
	return nil
}

// addFont registers the stamp font on a copy of the page's resources.
func addFont(ctx *model.Context, page types.Dict) error {
	obj, _, err := pdfgraph.Attribute(ctx, page, "Resources")
	if err != nil {
		return err
	}
	res, err := pdfgraph.ResolveDict(ctx, obj)
	if err != nil {
		return fmt.Errorf("failed to read page resources: %w", err)
	}
	res = pdfgraph.CopyDict(res)

	fonts, err := pdfgraph.ResolveDict(ctx, res["Font"])
	if err != nil {
		return fmt.Errorf("failed to read page fonts: %w", err)
	}
	fonts = pdfgraph.CopyDict(fonts)
	fonts[FontResource] = types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name("Helvetica"),
		"Encoding": types.Name("WinAnsiEncoding"),
	}

	res["Font"] = fonts
	page["Resources"] = res
	return nil
}

// StampDocument stamps page i of ctx with labels[i].
func StampDocument(ctx *model.Context, labels []string, total int, style bundletypes.PaginationStyle) error {
	pages, err := pdfgraph.PageRefs(ctx)
	if err != nil {
		return err
	}
	if len(pages) != len(labels) {
		return fmt.Errorf("document has %d pages but %d labels were given", len(pages), len(labels))
	}
	for i, ref := range pages {
		if err := StampPage(ctx, ref, Text(labels[i], total, style.Format), style); err != nil {
			return fmt.Errorf("failed to stamp page %d: %w", i+1, err)
		}
	}
	return nil
}

// StampFile stamps the PDF at in with labels and writes the result to out.
// It returns the number of pages stamped.
func StampFile(in, out string, labels []string, total int, style bundletypes.PaginationStyle) (int, error) {
	return stampFile(in, out, total, style, func(int) []string { return labels })
}

// StampFileFrom stamps consecutive page numbers beginning at startPage.
func StampFileFrom(in, out string, startPage, total int, style bundletypes.PaginationStyle) (int, error) {
	return stampFile(in, out, total, style, func(n int) []string {
		return Sequence(startPage, n)
	})
}

func stampFile(in, out string, total int, style bundletypes.PaginationStyle, labelsFor func(int) []string) (int, error) {
	ctx, err := pdfgraph.Load(in)
	if err != nil {
		return 0, err
	}
	pages, err := pdfgraph.PageRefs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read pages of %s: %w", in, err)
	}
	if err := StampDocument(ctx, labelsFor(len(pages)), total, style); err != nil {
		return 0, fmt.Errorf("failed to stamp %s: %w", in, err)
	}
	if err := pdfgraph.Save(ctx, out); err != nil {
		return 0, err
	}
	return len(pages), nil
}

// Sequence returns n consecutive page labels starting at start.
func Sequence(start, n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(start + i)
	}
	return labels
}
