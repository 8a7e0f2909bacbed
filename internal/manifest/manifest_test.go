package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackzampolin/casebundle/internal/testutil"
	"github.com/jackzampolin/casebundle/internal/types"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	testutil.WritePDFs(t, dir, 2, 3)

	path := writeFile(t, filepath.Join(dir, "bundle.yaml"), `
name: smith-v-jones
output_dir: out
style:
  position: bottom-center
late_insert:
  mode: sub_number
  after: 0
  count: 1
documents:
  - file: doc1.pdf
    label: Tab A
    description: Claim Form
  - file: doc2.pdf
    page_count: 3
`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.Name != "smith-v-jones" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.LateInsert == nil || m.LateInsert.Mode != types.SubNumber || m.LateInsert.Count != 1 {
		t.Errorf("LateInsert = %+v", m.LateInsert)
	}

	docs, err := m.BundleDocuments()
	if err != nil {
		t.Fatalf("BundleDocuments() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d documents", len(docs))
	}
	if docs[0].FilePath != filepath.Join(dir, "doc1.pdf") {
		t.Errorf("path not resolved against manifest dir: %s", docs[0].FilePath)
	}
	if docs[0].PageCount != 2 {
		t.Errorf("probed page count = %d, want 2", docs[0].PageCount)
	}
	if docs[0].Label != "Tab A" || docs[0].Description != "Claim Form" {
		t.Errorf("docs[0] = %+v", docs[0])
	}
	if docs[1].Description != "doc2" {
		t.Errorf("default description = %q, want doc2", docs[1].Description)
	}
	if docs[0].ID == docs[1].ID {
		t.Error("document ids not unique")
	}

	req, err := m.Request(types.DefaultPaginationStyle(), "/elsewhere")
	if err != nil {
		t.Fatalf("Request() error = %v", err)
	}
	if req.OutputDir != filepath.Join(dir, "out") {
		t.Errorf("OutputDir = %s", req.OutputDir)
	}
	if req.Style.Position != types.PositionBottomCenter || req.Style.Format != types.FormatPageXOfY {
		t.Errorf("Style = %+v", req.Style)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("request invalid: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, filepath.Join(dir, "bundle.json"),
		`{"name":"b","documents":[{"file":"/abs/missing.pdf","page_count":4}]}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	docs, err := m.BundleDocuments()
	if err != nil {
		t.Fatal(err)
	}
	if docs[0].FilePath != "/abs/missing.pdf" || docs[0].PageCount != 4 {
		t.Errorf("docs[0] = %+v", docs[0])
	}

	req, err := m.Request(types.DefaultPaginationStyle(), "/srv/out")
	if err != nil {
		t.Fatal(err)
	}
	if req.OutputDir != "/srv/out" {
		t.Errorf("OutputDir = %s, want default", req.OutputDir)
	}
	if req.LateInsert != nil {
		t.Errorf("LateInsert = %+v, want nil", req.LateInsert)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		isJSON bool
		want   string
	}{
		{"missing name", "documents: []\n", false, "schema"},
		{"name with slash", "name: a/b\ndocuments: []\n", false, "schema"},
		{"unknown field", "name: a\ndocuments: []\nextra: 1\n", false, "schema"},
		{"bad format", "name: a\nstyle:\n  format: Seite\ndocuments: []\n", false, "schema"},
		{"zero pages", "name: a\ndocuments:\n  - file: x.pdf\n    page_count: 0\n", false, "schema"},
		{"late insert without count", "name: a\nlate_insert:\n  after: 1\ndocuments: []\n", false, "schema"},
		{"broken yaml", "name: [a\n", false, "invalid YAML"},
		{"broken json", `{"name":`, true, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.isJSON)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestParseModeAlias(t *testing.T) {
	m, err := Parse([]byte("name: a\nlate_insert:\n  mode: sub-number\n  after: 0\n  count: 2\ndocuments: []\n"), false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if m.LateInsert.Mode != types.SubNumber {
		t.Errorf("Mode = %q, want sub_number", m.LateInsert.Mode)
	}

	m, err = Parse([]byte("name: a\nlate_insert:\n  after: 0\n  count: 2\ndocuments: []\n"), false)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// An unset mode is left for the configured default.
	if m.LateInsert.Mode != "" {
		t.Errorf("Mode = %q, want empty", m.LateInsert.Mode)
	}
}

func TestStyleApply(t *testing.T) {
	base := types.DefaultPaginationStyle()
	if got := (Style{}).Apply(base); got != base {
		t.Errorf("empty override changed style: %+v", got)
	}
	got := Style{Format: types.FormatX, FontSize: 12}.Apply(base)
	want := types.PaginationStyle{Format: types.FormatX, Position: base.Position, FontSize: 12}
	if got != want {
		t.Errorf("Apply() = %+v, want %+v", got, want)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("expected error")
	}
}
