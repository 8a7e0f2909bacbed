// Package bundle compiles an ordered list of PDF documents into a single
// court bundle: a generated table of contents followed by every document,
// with each page stamped with its bundle page number.
package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jackzampolin/casebundle/internal/pdfgraph"
	"github.com/jackzampolin/casebundle/internal/stamp"
	"github.com/jackzampolin/casebundle/internal/toc"
	"github.com/jackzampolin/casebundle/internal/tocpdf"
	"github.com/jackzampolin/casebundle/internal/types"
	"github.com/jackzampolin/casebundle/internal/validate"
)

// DefaultCleanupAttempts is how often removal of a run directory is tried.
const DefaultCleanupAttempts = 3

// NoDocumentsMessage is reported when a compile request has no documents.
const NoDocumentsMessage = "No documents to compile"

// TOCRenderer writes a table of contents PDF and reports its page count.
type TOCRenderer interface {
	Render(entries []types.TOCEntry, path string) (int, error)
}

// DocumentSource supplies the ordered documents of a case.
type DocumentSource interface {
	BundleDocuments(ctx context.Context, caseID string) ([]types.BundleDocument, error)
}

// Config holds compiler configuration.
type Config struct {
	Logger *slog.Logger

	// TOCRenderer defaults to tocpdf.Renderer.
	TOCRenderer TOCRenderer

	// MaxReflows bounds how often the TOC is re-laid out when its rendered
	// page count differs from the budget. Values below one mean one re-flow;
	// configuration rejects them.
	MaxReflows int

	// Bookmarks adds an outline with one item per TOC entry.
	Bookmarks bool

	// CleanupAttempts defaults to DefaultCleanupAttempts.
	CleanupAttempts uint
}

// Compiler builds bundles. It is safe for concurrent use.
type Compiler struct {
	logger *slog.Logger
	locks  *pathLocks

	mu   sync.RWMutex
	opts options
}

// options are the settings Reload may change while compiles run.
type options struct {
	renderer        TOCRenderer
	maxReflows      int
	bookmarks       bool
	cleanupAttempts uint
}

func optionsFrom(cfg Config) options {
	maxReflows := cfg.MaxReflows
	if maxReflows <= 0 {
		maxReflows = 1
	}
	attempts := cfg.CleanupAttempts
	if attempts == 0 {
		attempts = DefaultCleanupAttempts
	}
	renderer := cfg.TOCRenderer
	if renderer == nil {
		renderer = tocpdf.Renderer{}
	}
	return options{
		renderer:        renderer,
		maxReflows:      min(maxReflows, toc.MaxReflows),
		bookmarks:       cfg.Bookmarks,
		cleanupAttempts: attempts,
	}
}

// New creates a compiler.
func New(cfg Config) *Compiler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Compiler{
		logger: logger,
		locks:  newPathLocks(),
		opts:   optionsFrom(cfg),
	}
}

// Reload replaces the renderer and the re-flow, bookmark and cleanup settings.
// The logger is fixed at construction. Compiles already running
// keep the settings they started with.
func (c *Compiler) Reload(cfg Config) {
	opts := optionsFrom(cfg)
	c.mu.Lock()
	c.opts = opts
	c.mu.Unlock()
}

func (c *Compiler) options() options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts
}

// Request describes one compilation.
type Request struct {
	Documents  []types.BundleDocument `json:"documents"`
	OutputDir  string                 `json:"output_dir"`
	BundleName string                 `json:"bundle_name"`
	Style      types.PaginationStyle  `json:"style"`
	LateInsert *types.LateInsert      `json:"late_insert,omitempty"`
}

// Validate checks the request fields that do not require file access.
func (r Request) Validate() error {
	if r.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if r.BundleName == "" {
		return fmt.Errorf("bundle name is required")
	}
	if strings.ContainsAny(r.BundleName, `/\`) || r.BundleName == "." || r.BundleName == ".." {
		return fmt.Errorf("bundle name %q must be a plain file name", r.BundleName)
	}
	if err := r.Style.Validate(); err != nil {
		return err
	}
	if r.LateInsert != nil {
		if err := r.LateInsert.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Preview plans the table of contents without touching any PDF.
func (c *Compiler) Preview(documents []types.BundleDocument, late *types.LateInsert) []types.TOCEntry {
	return layoutFor(documents, late)(toc.EstimateTOCPages(len(documents)))
}

// Validate checks entries and, when pdfPath exists, the compiled file.
func (c *Compiler) Validate(entries []types.TOCEntry, pdfPath string) types.ValidationResult {
	return validate.ValidatePagination(entries, pdfPath)
}

// CompileCase loads the documents of caseID from source and compiles them.
func (c *Compiler) CompileCase(ctx context.Context, source DocumentSource, caseID string, req Request) (*types.CompileResult, error) {
	docs, err := source.BundleDocuments(ctx, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents for case %s: %w", caseID, err)
	}
	req.Documents = docs
	return c.Compile(ctx, req)
}

// Compile builds the bundle described by req.
//
// Missing source files and an empty document list are reported in the
// returned result with Success false. Errors reading, stamping, merging or
// writing PDFs are returned as errors.
func (c *Compiler) Compile(ctx context.Context, req Request) (*types.CompileResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	logger := c.logger.With("bundle", req.BundleName)
	opts := c.options()

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	if missing := missingDocuments(req.Documents); len(missing) > 0 {
		logger.Warn("documents not found", "count", len(missing))
		return failed(missing...), nil
	}
	if len(req.Documents) == 0 {
		return failed(NoDocumentsMessage), nil
	}

	runID := uuid.NewString()
	runDir := filepath.Join(req.OutputDir, ".casebundle-"+runID)
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	defer cleanup(logger, runDir, opts.cleanupAttempts)

	logger.Info("compiling bundle", "run", runID, "documents", len(req.Documents))

	tocPath := filepath.Join(runDir, "_toc_temp.pdf")
	plan, err := toc.Reflow(
		layoutFor(req.Documents, req.LateInsert),
		toc.EstimateTOCPages(len(req.Documents)),
		func(entries []types.TOCEntry) (int, error) {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			return opts.renderer.Render(entries, tocPath)
		},
		opts.maxReflows,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to render table of contents: %w", err)
	}
	if plan.Reflows > 0 {
		logger.Debug("table of contents re-flowed", "reflows", plan.Reflows, "pages", plan.Budget)
	}

	var warnings []string
	if !plan.Settled() {
		warnings = append(warnings, fmt.Sprintf(
			"Table of contents renders to %d pages but %d were planned; page numbers may be off by %d",
			plan.Rendered, plan.Budget, plan.Rendered-plan.Budget))
	}
	warnings = append(warnings, lateInsertWarnings(req.Documents, req.LateInsert)...)

	printedTotal := toc.PrintedTotal(plan.Entries, plan.Budget)

	parts := make([]string, 0, len(req.Documents)+1)
	stampedTOC := filepath.Join(runDir, "_toc_stamped.pdf")
	if _, err := stamp.StampFileFrom(tocPath, stampedTOC, 1, printedTotal, req.Style); err != nil {
		return nil, fmt.Errorf("failed to stamp table of contents: %w", err)
	}
	parts = append(parts, stampedTOC)

	for i, doc := range req.Documents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := filepath.Join(runDir, fmt.Sprintf("_doc_%d_stamped.pdf", i))
		entry := plan.Entries[i]
		if _, err := stamp.StampFile(doc.FilePath, out, toc.PageLabels(entry), printedTotal, req.Style); err != nil {
			return nil, fmt.Errorf("failed to stamp %s (%s): %w", entry.Label, doc.FilePath, err)
		}
		parts = append(parts, out)
	}

	merged := filepath.Join(runDir, req.BundleName+"_merged.pdf")
	if _, err := pdfgraph.MergeFiles(parts, merged); err != nil {
		return nil, fmt.Errorf("failed to merge bundle: %w", err)
	}

	final := filepath.Join(req.OutputDir, req.BundleName+".pdf")
	if err := c.finalize(merged, final, runID, plan, opts.bookmarks); err != nil {
		return nil, err
	}

	check := validate.ValidatePagination(plan.Entries, final)
	for _, e := range check.Errors {
		warnings = append(warnings, e.Message)
	}
	warnings = append(warnings, check.Warnings...)

	total := toc.TotalPages(plan.Entries, plan.Budget)
	logger.Info("bundle compiled", "path", final, "pages", total, "warnings", len(warnings))

	return &types.CompileResult{
		Success:    true,
		PDFPath:    final,
		TOCEntries: plan.Entries,
		TotalPages: total,
		Errors:     []string{},
		Warnings:   nonNil(warnings),
	}, nil
}

// finalize runs the bookmark pass over merged and atomically replaces final.
func (c *Compiler) finalize(merged, final, runID string, plan toc.Plan, bookmarks bool) error {
	unlock := c.locks.Lock(final)
	defer unlock()

	doc, err := pdfgraph.Load(merged)
	if err != nil {
		return err
	}
	if bookmarks {
		if err := pdfgraph.SetOutline(doc, Bookmarks(plan)); err != nil {
			return fmt.Errorf("failed to add bookmarks: %w", err)
		}
	}

	tmp := filepath.Join(filepath.Dir(final), fmt.Sprintf(".%s.%s.tmp", filepath.Base(final), runID))
	if err := pdfgraph.Save(doc, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, final); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	return nil
}

// Bookmarks returns the outline for a planned bundle: the table of contents
// followed by one item per entry at its first physical page.
func Bookmarks(plan toc.Plan) []pdfgraph.Bookmark {
	shift := plan.Rendered - plan.Budget
	marks := make([]pdfgraph.Bookmark, 0, len(plan.Entries)+1)
	marks = append(marks, pdfgraph.Bookmark{Title: "Table of Contents", Page: 1})
	for _, e := range plan.Entries {
		title := e.Label
		if e.Description != "" {
			title += ": " + e.Description
		}
		marks = append(marks, pdfgraph.Bookmark{Title: title, Page: e.StartPage + shift})
	}
	return marks
}

func missingDocuments(documents []types.BundleDocument) []string {
	var missing []string
	for _, doc := range documents {
		if _, err := os.Stat(doc.FilePath); err != nil {
			missing = append(missing, fmt.Sprintf("Document not found: %s", doc.FilePath))
		}
	}
	return missing
}

func failed(errs ...string) *types.CompileResult {
	return &types.CompileResult{
		Success:    false,
		TOCEntries: []types.TOCEntry{},
		Errors:     errs,
		Warnings:   []string{},
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
