package testutil

import (
	"fmt"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// TestingT is a subset of testing.T used by fixture helpers.
type TestingT interface {
	Name() string
	Cleanup(func())
	Logf(format string, args ...any)
	Fatalf(format string, args ...any)
	Helper()
}

// FixtureText is the text drawn on page n of a fixture named name.
func FixtureText(name string, n int) string {
	return fmt.Sprintf("%s page %d", name, n)
}

// WritePDF writes an A4 PDF with the given number of pages to path. Each
// page carries FixtureText so merged output can be traced back to its source.
func WritePDF(t TestingT, path string, pages int) string {
	t.Helper()

	name := filepath.Base(path)
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(name, false)
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= pages; i++ {
		pdf.AddPage()
		pdf.Text(20, 30, FixtureText(name, i))
	}
	if err := pdf.OutputFileAndClose(path); err != nil {
		t.Fatalf("failed to write fixture %s: %v", path, err)
	}
	return path
}

// WritePDFs writes one fixture per page count into dir, named doc1.pdf, doc2.pdf, ...
func WritePDFs(t TestingT, dir string, pageCounts ...int) []string {
	t.Helper()

	paths := make([]string, len(pageCounts))
	for i, n := range pageCounts {
		paths[i] = WritePDF(t, filepath.Join(dir, fmt.Sprintf("doc%d.pdf", i+1)), n)
	}
	return paths
}
