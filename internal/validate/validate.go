// Package validate checks that a bundle's table of contents describes a
// contiguous, consistent pagination, optionally against the produced PDF.
package validate

import (
	"errors"
	"fmt"
	"os"

	"github.com/jackzampolin/casebundle/internal/pdfgraph"
	"github.com/jackzampolin/casebundle/internal/types"
)

// LongTabThreshold is the page count above which a tab draws a splitting warning.
const LongTabThreshold = 100

// ValidatePagination checks entries for overlap with the TOC, gaps,
// inconsistent page counts and, when pdfPath names an existing file, the
// total page count of that file. An empty pdfPath skips the file check.
func ValidatePagination(entries []types.TOCEntry, pdfPath string) types.ValidationResult {
	result := types.ValidationResult{
		Errors:   []types.ValidationError{},
		Warnings: []string{},
	}

	if len(entries) == 0 {
		result.Errors = append(result.Errors, types.ValidationError{
			ErrorType: types.ErrEmptyBundle,
			Message:   "Bundle has no documents",
		})
	}

	expected := 0
	for i, e := range entries {
		if i == 0 {
			if e.StartPage < 2 {
				result.Errors = append(result.Errors, types.ValidationError{
					ErrorType: types.ErrTOCOverlap,
					Message:   fmt.Sprintf("First document starts on page %d, but TOC needs at least 1 page", e.StartPage),
					Page:      types.IntPtr(e.StartPage),
					Expected:  types.IntPtr(2),
					Actual:    types.IntPtr(e.StartPage),
				})
			}
		} else if e.StartPage != expected {
			kind := "gap"
			if e.StartPage < expected {
				kind = "overlap"
			}
			result.Errors = append(result.Errors, types.ValidationError{
				ErrorType: types.ErrPaginationGap,
				Message:   fmt.Sprintf("Pagination %s: expected page %d, found page %d", kind, expected, e.StartPage),
				Page:      types.IntPtr(expected),
				Expected:  types.IntPtr(expected),
				Actual:    types.IntPtr(e.StartPage),
			})
		}

		if end := e.StartPage + e.PageCount - 1; end != e.EndPage {
			result.Errors = append(result.Errors, types.ValidationError{
				ErrorType: types.ErrPageCountMismatch,
				Message: fmt.Sprintf("%s page count mismatch: %d pages should end at %d, but marked as %d",
					e.Label, e.PageCount, end, e.EndPage),
				Page:     types.IntPtr(e.StartPage),
				Expected: types.IntPtr(end),
				Actual:   types.IntPtr(e.EndPage),
			})
		}

		expected = e.EndPage + 1
	}

	if pdfPath != "" {
		checkFile(&result, entries, pdfPath)
	}

	for _, e := range entries {
		if e.PageCount > LongTabThreshold {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s has %d pages - consider splitting for easier navigation", e.Label, e.PageCount))
		}
	}

	result.IsValid = len(result.Errors) == 0
	return result
}

func checkFile(result *types.ValidationResult, entries []types.TOCEntry, pdfPath string) {
	if _, err := os.Stat(pdfPath); errors.Is(err, os.ErrNotExist) {
		return
	}

	actual, err := pdfgraph.PageCount(pdfPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Could not validate PDF: %v", err))
		return
	}

	want := 0
	if len(entries) > 0 {
		want = entries[len(entries)-1].EndPage
	}
	if actual != want {
		result.Errors = append(result.Errors, types.ValidationError{
			ErrorType: types.ErrTotalPageMismatch,
			Message:   fmt.Sprintf("TOC indicates %d total pages, but PDF has %d pages", want, actual),
			Expected:  types.IntPtr(want),
			Actual:    types.IntPtr(actual),
		})
	}
}
