package toc

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/jackzampolin/casebundle/internal/types"
)

// CalculateTOCWithSubNumbers lays documents out like CalculateTOCPreview, but
// treats the insertCount documents following insertAfter as late inserts.
//
// Inserted documents are labelled "Tab {insertAfter+1}A", "Tab {insertAfter+1}B", ...
// and their pages are printed as sub-numbers of the page immediately before the
// insert ("45A", "45B", ...). Every other document keeps the tab number and
// printed page numbers it had before the insert. Physical page ranges stay
// contiguous so the merged file and the entries always agree.
//
// A nil or out-of-range insertAfter, or a non-positive insertCount, yields the
// plain contiguous layout.
func CalculateTOCWithSubNumbers(
	documents []types.BundleDocument,
	tocPageCount int,
	insertAfter *int,
	insertCount int,
) []types.TOCEntry {
	if insertAfter == nil || *insertAfter < 0 || *insertAfter >= len(documents)-1 || insertCount <= 0 {
		return CalculateTOCPreview(documents, tocPageCount)
	}

	after := *insertAfter
	last := min(after+insertCount, len(documents)-1)
	inserted := last - after

	entries := make([]types.TOCEntry, 0, len(documents))
	currentPage := tocPageCount + 1
	printedPage := tocPageCount + 1 // next plain page number, ignoring inserts
	subIndex := 0                   // running index over inserted pages

	for i, doc := range documents {
		entry := types.TOCEntry{
			Description: doc.Description,
			StartPage:   currentPage,
			EndPage:     currentPage + doc.PageCount - 1,
			PageCount:   doc.PageCount,
		}

		if i > after && i <= last {
			anchor := printedPage - 1
			suffix := types.NewSubPageNumber(anchor, i-after-1).Suffix
			entry.Label = fmt.Sprintf("Tab %d%c", after+1, suffix)
			entry.FirstLabel = types.NewSubPageNumber(anchor, subIndex).String()
			entry.LastLabel = types.NewSubPageNumber(anchor, subIndex+doc.PageCount-1).String()
			subIndex += doc.PageCount
		} else {
			tab := i + 1
			if i > last {
				tab -= inserted
			}
			entry.Label = tabLabel(doc, tab)
			if printedPage != entry.StartPage {
				entry.FirstLabel = strconv.Itoa(printedPage)
				entry.LastLabel = strconv.Itoa(printedPage + doc.PageCount - 1)
			}
			printedPage += doc.PageCount
		}

		entries = append(entries, entry)
		currentPage = entry.EndPage + 1
	}

	return entries
}

// InsertedPageCount returns how many pages the late inserts described by
// insertAfter/insertCount occupy.
func InsertedPageCount(documents []types.BundleDocument, insertAfter, insertCount int) int {
	pages := 0
	for i := insertAfter + 1; i <= insertAfter+insertCount && i < len(documents); i++ {
		if i < 0 {
			continue
		}
		pages += documents[i].PageCount
	}
	return pages
}

// PageLabels returns the label printed on each page of entry, in order.
func PageLabels(entry types.TOCEntry) []string {
	labels := make([]string, 0, entry.PageCount)

	if entry.FirstLabel == "" {
		for p := entry.StartPage; p <= entry.EndPage; p++ {
			labels = append(labels, strconv.Itoa(p))
		}
		return labels
	}

	if sub, ok := ParseSubPageNumber(entry.FirstLabel); ok {
		first := int(sub.Suffix - 'A')
		for i := 0; i < entry.PageCount; i++ {
			labels = append(labels, types.NewSubPageNumber(sub.BasePage, first+i).String())
		}
		return labels
	}

	first, err := strconv.Atoi(entry.FirstLabel)
	if err != nil {
		first = entry.StartPage
	}
	for i := 0; i < entry.PageCount; i++ {
		labels = append(labels, strconv.Itoa(first+i))
	}
	return labels
}

// PrintedTotal returns the highest plain page number printed in the bundle.
// With sub-numbered inserts this is lower than the physical page count.
func PrintedTotal(entries []types.TOCEntry, tocPageCount int) int {
	total := tocPageCount
	for _, e := range entries {
		switch {
		case e.FirstLabel == "":
			total = max(total, e.EndPage)
		default:
			if n, err := strconv.Atoi(e.LastLabel); err == nil {
				total = max(total, n)
			}
		}
	}
	return total
}

// ParseSubPageNumber parses labels like "45A". Plain numbers are rejected.
func ParseSubPageNumber(s string) (types.SubPageNumber, bool) {
	if len(s) < 2 {
		return types.SubPageNumber{}, false
	}
	suffix := rune(s[len(s)-1])
	if !unicode.IsUpper(suffix) || suffix > 'Z' {
		return types.SubPageNumber{}, false
	}
	base, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return types.SubPageNumber{}, false
	}
	return types.SubPageNumber{BasePage: base, Suffix: suffix}, true
}
