package validate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/casebundle/internal/testutil"
	"github.com/jackzampolin/casebundle/internal/types"
)

func entry(label string, start, end int) types.TOCEntry {
	return types.TOCEntry{Label: label, StartPage: start, EndPage: end, PageCount: end - start + 1}
}

func errorTypes(r types.ValidationResult) []string {
	var out []string
	for _, e := range r.Errors {
		out = append(out, e.ErrorType)
	}
	return out
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name    string
		entries []types.TOCEntry
		want    []string
	}{
		{
			name:    "contiguous",
			entries: []types.TOCEntry{entry("Tab 1", 2, 6), entry("Tab 2", 7, 9)},
		},
		{
			name:    "empty",
			entries: nil,
			want:    []string{types.ErrEmptyBundle},
		},
		{
			name:    "starts on toc page",
			entries: []types.TOCEntry{entry("Tab 1", 1, 3)},
			want:    []string{types.ErrTOCOverlap},
		},
		{
			name:    "gap",
			entries: []types.TOCEntry{entry("Tab 1", 2, 5), entry("Tab 2", 7, 10)},
			want:    []string{types.ErrPaginationGap},
		},
		{
			name:    "overlap",
			entries: []types.TOCEntry{entry("Tab 1", 2, 5), entry("Tab 2", 5, 8)},
			want:    []string{types.ErrPaginationGap},
		},
		{
			name: "count mismatch",
			entries: []types.TOCEntry{
				{Label: "Tab 1", StartPage: 2, EndPage: 6, PageCount: 4},
			},
			want: []string{types.ErrPageCountMismatch},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.entries, "")
			if strings.Join(errorTypes(got), ",") != strings.Join(tt.want, ",") {
				t.Errorf("errors = %v, want %v", errorTypes(got), tt.want)
			}
			if got.IsValid != (len(tt.want) == 0) {
				t.Errorf("IsValid = %v with errors %v", got.IsValid, tt.want)
			}
		})
	}
}

func TestValidatePaginationGapDetail(t *testing.T) {
	got := ValidatePagination([]types.TOCEntry{entry("Tab 1", 2, 5), entry("Tab 2", 7, 10)}, "")
	if len(got.Errors) != 1 {
		t.Fatalf("got %d errors, want 1", len(got.Errors))
	}
	e := got.Errors[0]
	if e.Expected == nil || *e.Expected != 6 || e.Page == nil || *e.Page != 6 {
		t.Errorf("gap error = %+v, want expected page 6", e)
	}
	if e.Actual == nil || *e.Actual != 7 {
		t.Errorf("gap actual = %v, want 7", e.Actual)
	}
	if e.Message != "Pagination gap: expected page 6, found page 7" {
		t.Errorf("message = %q", e.Message)
	}
}

func TestValidatePaginationLongTab(t *testing.T) {
	tests := []struct {
		name    string
		entries []types.TOCEntry
		want    []string
	}{
		{
			name:    "exactly 100 pages",
			entries: []types.TOCEntry{entry("Tab 1", 2, 101)},
		},
		{
			name:    "101 pages",
			entries: []types.TOCEntry{entry("Tab 1", 2, 101), entry("Tab 2", 102, 202)},
			want:    []string{"Tab 2 has 101 pages"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidatePagination(tt.entries, "")
			if !got.IsValid {
				t.Fatalf("long tabs must not invalidate the bundle: %v", got.Errors)
			}
			if len(got.Warnings) != len(tt.want) {
				t.Fatalf("warnings = %v, want %v", got.Warnings, tt.want)
			}
			for i, w := range tt.want {
				if !strings.Contains(got.Warnings[i], w) {
					t.Errorf("warning %d = %q, want %q", i, got.Warnings[i], w)
				}
			}
		})
	}
}

func TestValidatePaginationFile(t *testing.T) {
	dir := t.TempDir()
	pdf := testutil.WritePDF(t, filepath.Join(dir, "bundle.pdf"), 9)

	t.Run("matching total", func(t *testing.T) {
		got := ValidatePagination([]types.TOCEntry{entry("Tab 1", 2, 6), entry("Tab 2", 7, 9)}, pdf)
		if !got.IsValid {
			t.Errorf("errors = %v", got.Errors)
		}
	})

	t.Run("total mismatch", func(t *testing.T) {
		got := ValidatePagination([]types.TOCEntry{entry("Tab 1", 2, 6)}, pdf)
		if strings.Join(errorTypes(got), ",") != types.ErrTotalPageMismatch {
			t.Fatalf("errors = %v, want total_page_mismatch", errorTypes(got))
		}
		if e := got.Errors[0]; *e.Expected != 6 || *e.Actual != 9 {
			t.Errorf("expected/actual = %d/%d, want 6/9", *e.Expected, *e.Actual)
		}
	})

	t.Run("missing file is skipped", func(t *testing.T) {
		got := ValidatePagination([]types.TOCEntry{entry("Tab 1", 2, 6)}, filepath.Join(dir, "missing.pdf"))
		if !got.IsValid || len(got.Warnings) != 0 {
			t.Errorf("got %+v, want a clean result", got)
		}
	})

	t.Run("unreadable file warns", func(t *testing.T) {
		broken := filepath.Join(dir, "broken.pdf")
		if err := os.WriteFile(broken, []byte("not a pdf"), 0o644); err != nil {
			t.Fatal(err)
		}
		got := ValidatePagination([]types.TOCEntry{entry("Tab 1", 2, 6)}, broken)
		if !got.IsValid {
			t.Errorf("unreadable file must not invalidate: %v", got.Errors)
		}
		if len(got.Warnings) != 1 || !strings.HasPrefix(got.Warnings[0], "Could not validate PDF") {
			t.Errorf("warnings = %v", got.Warnings)
		}
	})
}
