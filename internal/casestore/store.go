// Package casestore reads cases and their ordered documents from the case
// database shared with the desktop application.
package casestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jackzampolin/casebundle/internal/pdfgraph"
	"github.com/jackzampolin/casebundle/internal/types"
)

// ErrCaseNotFound is returned when a case id does not exist.
var ErrCaseNotFound = errors.New("case not found")

// Case types.
const (
	TypeBundle    = "bundle"
	TypeAffidavit = "affidavit"
)

// Case is a top-level container of documents.
type Case struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Type      string `json:"case_type" yaml:"case_type"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	UpdatedAt string `json:"updated_at" yaml:"updated_at"`
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS cases (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		case_type TEXT NOT NULL CHECK(case_type IN ('affidavit', 'bundle')),
		content_json TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS files (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL,
		path TEXT NOT NULL,
		original_name TEXT NOT NULL,
		page_count INTEGER,
		metadata_json TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (case_id) REFERENCES cases(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS artifact_entries (
		id TEXT PRIMARY KEY,
		case_id TEXT NOT NULL,
		sequence_order INTEGER NOT NULL,
		row_type TEXT NOT NULL CHECK(row_type IN ('file', 'component')),
		file_id TEXT,
		config_json TEXT,
		label_override TEXT,
		created_at TEXT NOT NULL,
		FOREIGN KEY (case_id) REFERENCES cases(id) ON DELETE CASCADE,
		FOREIGN KEY (file_id) REFERENCES files(id) ON DELETE CASCADE
	)`,
}

// Store reads the case database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens the case database at path. The file must exist unless create is
// true, in which case it is created along with its parent directory.
func Open(ctx context.Context, path string, create bool, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if _, err := os.Stat(path); err != nil {
		if !create {
			return nil, fmt.Errorf("case database %s: %w", path, err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create case database directory: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(10000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open case database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open case database: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the case tables if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	for _, ddl := range schema {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("failed to create case schema: %w", err)
		}
	}
	return nil
}

// Cases returns every case, newest first.
func (s *Store) Cases(ctx context.Context) ([]Case, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, case_type, created_at, updated_at FROM cases ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	defer rows.Close()

	cases := []Case{}
	for rows.Next() {
		var c Case
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to read case: %w", err)
		}
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

// Case returns one case. It returns ErrCaseNotFound if id does not exist.
func (s *Store) Case(ctx context.Context, id string) (*Case, error) {
	var c Case
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, case_type, created_at, updated_at FROM cases WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrCaseNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read case %s: %w", id, err)
	}
	return &c, nil
}

// BundleDocuments returns the file entries of a case in sequence order.
//
// The label is the entry's label override (empty lets the planner assign
// "Tab N"). The description is metadata_json's "description" or the original
// file name without extension. Page counts that were never recorded are read
// from the file; a file that no longer exists keeps a zero count so the
// compiler reports it as missing.
func (s *Store) BundleDocuments(ctx context.Context, caseID string) ([]types.BundleDocument, error) {
	if _, err := s.Case(ctx, caseID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT e.id, f.path, f.original_name, f.page_count, f.metadata_json, e.label_override
		FROM artifact_entries e
		JOIN files f ON f.id = e.file_id
		WHERE e.case_id = ? AND e.row_type = 'file'
		ORDER BY e.sequence_order ASC, e.created_at ASC`, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents for case %s: %w", caseID, err)
	}
	defer rows.Close()

	docs := []types.BundleDocument{}
	for rows.Next() {
		var (
			doc       types.BundleDocument
			name      string
			pageCount sql.NullInt64
			metadata  sql.NullString
			label     sql.NullString
		)
		if err := rows.Scan(&doc.ID, &doc.FilePath, &name, &pageCount, &metadata, &label); err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		doc.Label = strings.TrimSpace(label.String)
		doc.Description = describe(name, metadata.String)
		doc.PageCount = int(pageCount.Int64)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range docs {
		if docs[i].PageCount > 0 {
			continue
		}
		if _, err := os.Stat(docs[i].FilePath); err != nil {
			continue
		}
		n, err := pdfgraph.PageCount(docs[i].FilePath)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("probed page count", "document", docs[i].ID, "pages", n)
		docs[i].PageCount = n
	}
	return docs, nil
}

type fileMetadata struct {
	Description string `json:"description"`
}

func describe(originalName, metadataJSON string) string {
	if metadataJSON != "" {
		var m fileMetadata
		if err := json.Unmarshal([]byte(metadataJSON), &m); err == nil && strings.TrimSpace(m.Description) != "" {
			return strings.TrimSpace(m.Description)
		}
	}
	return strings.TrimSuffix(originalName, filepath.Ext(originalName))
}
