package bundle

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadResult(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
	}{
		{
			name:    "yaml",
			file:    "result.yaml",
			content: "success: true\npdf_path: /tmp/b.pdf\ntoc_entries:\n  - label: Tab 1\n    start_page: 2\n    end_page: 3\n    page_count: 2\n",
		},
		{
			name:    "json",
			file:    "result.json",
			content: `{"success": true, "pdf_path": "/tmp/b.pdf", "toc_entries": [{"label": "Tab 1", "start_page": 2, "end_page": 3, "page_count": 2}]}`,
		},
		{name: "empty", file: "empty.yaml", content: "success: false\n", wantErr: true},
		{name: "garbage", file: "bad.yaml", content: "toc_entries: [", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadResult(write(tt.file, tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadResult() error = %v", err)
			}
			if got.PDFPath != "/tmp/b.pdf" || len(got.TOCEntries) != 1 || got.TOCEntries[0].EndPage != 3 {
				t.Errorf("LoadResult() = %+v", got)
			}
		})
	}

	if _, err := LoadResult(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
