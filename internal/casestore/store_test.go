package casestore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jackzampolin/casebundle/internal/testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.Context(), filepath.Join(t.TempDir(), "db", "cases.db"), true, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.Migrate(t.Context()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	return s
}

func exec(t *testing.T, s *Store, query string, args ...any) {
	t.Helper()
	if _, err := s.db.ExecContext(t.Context(), query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func addCase(t *testing.T, s *Store, id, name, created string) {
	t.Helper()
	exec(t, s, `INSERT INTO cases (id, name, case_type, created_at, updated_at) VALUES (?, ?, 'bundle', ?, ?)`,
		id, name, created, created)
}

func addFile(t *testing.T, s *Store, caseID, fileID, path, name string, pageCount any, metadata any) {
	t.Helper()
	exec(t, s, `INSERT INTO files (id, case_id, path, original_name, page_count, metadata_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, '2026-01-01T00:00:00Z')`,
		fileID, caseID, path, name, pageCount, metadata)
}

func addEntry(t *testing.T, s *Store, caseID, id string, order int, fileID any, label any) {
	t.Helper()
	rowType := "file"
	var config any
	if fileID == nil {
		rowType = "component"
		config = `{"kind":"divider"}`
	}
	exec(t, s, `INSERT INTO artifact_entries (id, case_id, sequence_order, row_type, file_id, config_json, label_override, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, '2026-01-01T00:00:00Z')`,
		id, caseID, order, rowType, fileID, config, label)
}

func TestOpen(t *testing.T) {
	t.Run("missing file without create", func(t *testing.T) {
		if _, err := Open(t.Context(), filepath.Join(t.TempDir(), "none.db"), false, nil); err == nil {
			t.Fatal("expected error for missing database")
		}
	})

	t.Run("migrate is idempotent", func(t *testing.T) {
		s := newTestStore(t)
		if err := s.Migrate(t.Context()); err != nil {
			t.Fatalf("second Migrate() error = %v", err)
		}
	})
}

func TestCases(t *testing.T) {
	s := newTestStore(t)

	cases, err := s.Cases(t.Context())
	if err != nil {
		t.Fatalf("Cases() error = %v", err)
	}
	if len(cases) != 0 {
		t.Fatalf("expected no cases, got %d", len(cases))
	}

	addCase(t, s, "c1", "Smith v Jones", "2026-01-01T00:00:00Z")
	addCase(t, s, "c2", "Re Estate of Doe", "2026-02-01T00:00:00Z")

	cases, err = s.Cases(t.Context())
	if err != nil {
		t.Fatalf("Cases() error = %v", err)
	}
	if len(cases) != 2 || cases[0].ID != "c2" || cases[1].ID != "c1" {
		t.Errorf("Cases() = %+v, want newest first", cases)
	}

	c, err := s.Case(t.Context(), "c1")
	if err != nil {
		t.Fatalf("Case() error = %v", err)
	}
	if c.Name != "Smith v Jones" || c.Type != TypeBundle {
		t.Errorf("Case() = %+v", c)
	}

	if _, err := s.Case(t.Context(), "nope"); !errors.Is(err, ErrCaseNotFound) {
		t.Errorf("Case(nope) error = %v, want ErrCaseNotFound", err)
	}
}

func TestBundleDocuments(t *testing.T) {
	s := newTestStore(t)
	dir := t.TempDir()
	paths := testutil.WritePDFs(t, dir, 2, 4)

	addCase(t, s, "c1", "Smith v Jones", "2026-01-01T00:00:00Z")
	addCase(t, s, "c2", "Other", "2026-01-01T00:00:00Z")

	addFile(t, s, "c1", "f1", paths[0], "Claim Form.pdf", 2, nil)
	addFile(t, s, "c1", "f2", paths[1], "witness.pdf", nil, `{"description":"Witness Statement of A. Smith"}`)
	addFile(t, s, "c1", "f3", filepath.Join(dir, "gone.pdf"), "gone.pdf", nil, `not json`)
	addFile(t, s, "c2", "f4", paths[0], "elsewhere.pdf", 2, nil)

	// Inserted out of order; sequence_order decides.
	addEntry(t, s, "c1", "e3", 3, "f3", nil)
	addEntry(t, s, "c1", "e1", 1, "f1", "Tab A")
	addEntry(t, s, "c1", "e2", 2, "f2", "  ")
	addEntry(t, s, "c1", "e0", 0, nil, nil) // component rows are not documents
	addEntry(t, s, "c2", "e4", 1, "f4", nil)

	docs, err := s.BundleDocuments(t.Context(), "c1")
	if err != nil {
		t.Fatalf("BundleDocuments() error = %v", err)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3: %+v", len(docs), docs)
	}

	tests := []struct {
		id, label, desc string
		pages           int
	}{
		{"e1", "Tab A", "Claim Form", 2},
		{"e2", "", "Witness Statement of A. Smith", 4}, // probed from file
		{"e3", "", "gone", 0},                          // missing file keeps zero
	}
	for i, tt := range tests {
		d := docs[i]
		if d.ID != tt.id || d.Label != tt.label || d.Description != tt.desc || d.PageCount != tt.pages {
			t.Errorf("docs[%d] = %+v, want id=%s label=%q desc=%q pages=%d",
				i, d, tt.id, tt.label, tt.desc, tt.pages)
		}
	}

	t.Run("unknown case", func(t *testing.T) {
		if _, err := s.BundleDocuments(t.Context(), "nope"); !errors.Is(err, ErrCaseNotFound) {
			t.Errorf("error = %v, want ErrCaseNotFound", err)
		}
	})

	t.Run("empty case", func(t *testing.T) {
		addCase(t, s, "c3", "Empty", "2026-03-01T00:00:00Z")
		docs, err := s.BundleDocuments(t.Context(), "c3")
		if err != nil {
			t.Fatal(err)
		}
		if docs == nil || len(docs) != 0 {
			t.Errorf("docs = %#v, want empty non-nil", docs)
		}
	})
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name, original, metadata, want string
	}{
		{"metadata wins", "a.pdf", `{"description":"Order"}`, "Order"},
		{"blank metadata", "a.pdf", `{"description":"  "}`, "a"},
		{"invalid json", "Exhibit 1.PDF", `{`, "Exhibit 1"},
		{"no metadata", "notes", "", "notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := describe(tt.original, tt.metadata); got != tt.want {
				t.Errorf("describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
