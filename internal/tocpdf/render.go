// Package tocpdf renders a bundle's table of contents as a standalone PDF.
package tocpdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/jackzampolin/casebundle/internal/toc"
	"github.com/jackzampolin/casebundle/internal/types"
)

// DefaultTitle heads the first TOC page.
const DefaultTitle = "TABLE OF CONTENTS"

// Layout in millimetres from the top-left corner of an A4 page.
const (
	pageHeight   = 297.0
	bottomMargin = 20.0
	titleY       = 27.0
	firstRowY    = 45.0
	rowY         = 27.0
	rowSpacing   = 8.0
	lineSpacing  = 5.0
	labelX       = 25.0
	descX        = 45.0
	descWidth    = 120.0
	numberRight  = 185.0
	maxDescLines = 3
	titleSize    = 16.0
	entrySize    = 11.0
	fontFamily   = "Helvetica"
)

// Renderer draws TOC entries with fpdf's core fonts.
type Renderer struct {
	// Title overrides DefaultTitle.
	Title string
}

// Render writes entries to path and returns the number of pages produced.
func (r Renderer) Render(entries []types.TOCEntry, path string) (int, error) {
	title := r.Title
	if title == "" {
		title = DefaultTitle
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("casebundle", true)
	pdf.SetAutoPageBreak(false, 0)

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", titleSize)
	pdf.Text(labelX, titleY, cp1252(title))

	y := firstRowY
	onPage := 0
	for _, e := range entries {
		pdf.SetFont(fontFamily, "", entrySize)
		lines := descriptionLines(pdf, e.Description)
		height := rowSpacing + float64(len(lines)-1)*lineSpacing

		if onPage == toc.EntriesPerPage || (onPage > 0 && y+height-rowSpacing > pageHeight-bottomMargin) {
			pdf.AddPage()
			y = rowY
			onPage = 0
		}

		pdf.SetFont(fontFamily, "B", entrySize)
		pdf.Text(labelX, y, cp1252(e.Label))

		pdf.SetFont(fontFamily, "", entrySize)
		for i, line := range lines {
			pdf.Text(descX, y+float64(i)*lineSpacing, line)
		}

		number := cp1252(printedStart(e))
		pdf.Text(numberRight-pdf.GetStringWidth(number), y, number)

		y += height
		onPage++
	}

	pages := pdf.PageNo()
	if err := pdf.OutputFileAndClose(path); err != nil {
		return 0, fmt.Errorf("failed to write table of contents %s: %w", path, err)
	}
	return pages, nil
}

// printedStart is the page label shown in the page column.
func printedStart(e types.TOCEntry) string {
	if e.FirstLabel != "" {
		return e.FirstLabel
	}
	return strconv.Itoa(e.StartPage)
}

// descriptionLines wraps the description to the column width using the
// current font, keeping at most maxDescLines lines.
func descriptionLines(pdf *fpdf.Fpdf, description string) []string {
	text := cp1252(strings.TrimSpace(description))
	if text == "" {
		return []string{""}
	}

	var lines []string
	for _, line := range pdf.SplitLines([]byte(text), descWidth) {
		lines = append(lines, string(line))
	}
	if len(lines) == 0 {
		return []string{""}
	}
	if len(lines) > maxDescLines {
		lines = lines[:maxDescLines]
		lines[maxDescLines-1] = truncate(pdf, lines[maxDescLines-1], descWidth)
	}
	return lines
}

// truncate shortens s until s plus an ellipsis fits within width.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	const ellipsis = "..."
	for len(s) > 0 && pdf.GetStringWidth(s+ellipsis) > width {
		s = s[:len(s)-1]
	}
	return strings.TrimRight(s, " ") + ellipsis
}

// cp1252 maps s onto the Windows-1252 bytes fpdf's core fonts expect.
func cp1252(s string) string {
	var b strings.Builder
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
		}
		b.WriteByte(c)
	}
	return b.String()
}
