package bundle

import (
	"fmt"

	"github.com/jackzampolin/casebundle/internal/toc"
	"github.com/jackzampolin/casebundle/internal/types"
)

// layoutFor selects the TOC layout for a request. Repaginate is the plain
// contiguous layout over the full document order.
func layoutFor(documents []types.BundleDocument, late *types.LateInsert) toc.Layout {
	if subNumbered(late) {
		after, count := late.After, late.Count
		return func(tocPages int) []types.TOCEntry {
			return toc.CalculateTOCWithSubNumbers(documents, tocPages, &after, count)
		}
	}
	return func(tocPages int) []types.TOCEntry {
		return toc.CalculateTOCPreview(documents, tocPages)
	}
}

// lateInsertWarnings reports sub-numbered inserts that run out of letters.
func lateInsertWarnings(documents []types.BundleDocument, late *types.LateInsert) []string {
	if !subNumbered(late) || late.Count <= 0 {
		return nil
	}
	letters := types.MaxSubPageIndex + 1

	var warnings []string
	if docs := min(late.Count, len(documents)-1-late.After); docs > letters {
		warnings = append(warnings, fmt.Sprintf(
			"Late insert has %d documents but only %d tab letters; later tabs repeat 'Z'", docs, letters))
	}
	if pages := toc.InsertedPageCount(documents, late.After, late.Count); pages > letters {
		warnings = append(warnings, fmt.Sprintf(
			"Late insert has %d pages but only %d sub-page letters; later pages repeat 'Z'", pages, letters))
	}
	return warnings
}

// subNumbered reports whether late uses lettered page numbers. Mode aliases
// accepted by types.ParseLateInsertMode count.
func subNumbered(late *types.LateInsert) bool {
	if late == nil {
		return false
	}
	mode, err := types.ParseLateInsertMode(string(late.Mode))
	return err == nil && mode == types.SubNumber
}
