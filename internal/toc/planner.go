// Package toc plans the table of contents of a bundle: page budgets,
// contiguous page ranges per document, and late-insert sub-numbering.
package toc

import (
	"fmt"

	"github.com/jackzampolin/casebundle/internal/types"
)

// EntriesPerPage is how many entries fit one rendered TOC page.
const EntriesPerPage = 25

// MaxReflows caps the re-flow loop no matter what the configuration asks for.
const MaxReflows = 3

// EstimateTOCPages returns how many pages a TOC with documentCount entries needs.
// The result is never less than 1.
func EstimateTOCPages(documentCount int) int {
	if documentCount <= 0 {
		return 1
	}
	return max(1, (documentCount+EntriesPerPage-1)/EntriesPerPage)
}

// CalculateTOCPreview lays documents out contiguously after a TOC of tocPageCount pages.
// It does not touch any PDF.
func CalculateTOCPreview(documents []types.BundleDocument, tocPageCount int) []types.TOCEntry {
	entries := make([]types.TOCEntry, 0, len(documents))
	currentPage := tocPageCount + 1

	for i, doc := range documents {
		startPage := currentPage
		endPage := currentPage + doc.PageCount - 1

		entries = append(entries, types.TOCEntry{
			Label:       tabLabel(doc, i+1),
			Description: doc.Description,
			StartPage:   startPage,
			EndPage:     endPage,
			PageCount:   doc.PageCount,
		})

		currentPage = endPage + 1
	}

	return entries
}

// TotalPages returns the last page covered by entries, or tocPageCount when there are none.
func TotalPages(entries []types.TOCEntry, tocPageCount int) int {
	if len(entries) == 0 {
		return tocPageCount
	}
	return entries[len(entries)-1].EndPage
}

// tabLabel returns the document's own label, or "Tab N".
func tabLabel(doc types.BundleDocument, n int) string {
	if doc.Label != "" {
		return doc.Label
	}
	return fmt.Sprintf("Tab %d", n)
}

// Layout computes entries for a given TOC page budget.
type Layout func(tocPageCount int) []types.TOCEntry

// RenderFunc renders entries and reports how many pages the rendered TOC occupies.
type RenderFunc func(entries []types.TOCEntry) (int, error)

// Plan is the outcome of laying out and rendering a TOC.
type Plan struct {
	Entries []types.TOCEntry
	// Budget is the TOC page count the entries were numbered against.
	Budget int
	// Rendered is the page count of the last rendered TOC.
	Rendered int
	// Reflows is how many times the layout was recomputed.
	Reflows int
}

// Settled reports whether the rendered TOC matches the numbering budget.
func (p Plan) Settled() bool {
	return p.Budget == p.Rendered
}

// Reflow renders the layout for the estimated budget. When the rendered page
// count differs, the layout is recomputed against the actual count and rendered
// again, at most maxReflows times. A mismatch left after the last pass is
// accepted; callers can detect it with Plan.Settled.
func Reflow(layout Layout, estimate int, render RenderFunc, maxReflows int) (Plan, error) {
	maxReflows = min(max(maxReflows, 0), MaxReflows)

	plan := Plan{Budget: max(estimate, 1)}
	plan.Entries = layout(plan.Budget)

	rendered, err := render(plan.Entries)
	if err != nil {
		return Plan{}, err
	}
	plan.Rendered = rendered

	for plan.Rendered != plan.Budget && plan.Reflows < maxReflows {
		plan.Budget = plan.Rendered
		plan.Entries = layout(plan.Budget)
		plan.Reflows++

		rendered, err := render(plan.Entries)
		if err != nil {
			return Plan{}, err
		}
		plan.Rendered = rendered
	}

	return plan, nil
}
