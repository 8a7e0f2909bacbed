package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/casebundle/internal/api"
	"github.com/jackzampolin/casebundle/internal/bundle"
	"github.com/jackzampolin/casebundle/internal/casestore"
	"github.com/jackzampolin/casebundle/internal/manifest"
	"github.com/jackzampolin/casebundle/internal/server/endpoints"
	"github.com/jackzampolin/casebundle/internal/types"
)

// bundleFlags select the documents of a bundle and override its settings.
type bundleFlags struct {
	manifest    string
	caseID      string
	db          string
	name        string
	out         string
	style       manifest.Style
	lateMode    string
	insertAfter int
	insertCount int
}

func (f *bundleFlags) register(cmd *cobra.Command, withOutput bool) {
	cmd.Flags().StringVarP(&f.manifest, "manifest", "m", "", "Bundle manifest (YAML or JSON)")
	cmd.Flags().StringVar(&f.caseID, "case", "", "Case ID in the case database")
	cmd.Flags().StringVar(&f.db, "db", "", "Case database (default: case_db or ~/.casebundle/cases.db)")
	cmd.Flags().StringVar(&f.lateMode, "late-mode", "", "Late insert mode: repaginate or sub_number (default: late_insert.mode)")
	cmd.Flags().IntVar(&f.insertAfter, "insert-after", 0, "Index (0-based) of the document late inserts follow")
	cmd.Flags().IntVar(&f.insertCount, "insert-count", 0, "Number of late inserted documents")
	cmd.MarkFlagsMutuallyExclusive("manifest", "case")
	cmd.MarkFlagsOneRequired("manifest", "case")
	if !withOutput {
		return
	}
	cmd.Flags().StringVar(&f.name, "name", "", "Bundle name (default: manifest name or case name)")
	cmd.Flags().StringVar(&f.out, "out", "", "Output directory (default: output.dir or ~/.casebundle/bundles)")
	cmd.Flags().StringVar(&f.style.Format, "format", "", `Page number format: "Page X of Y", "Page X" or "X"`)
	cmd.Flags().StringVar(&f.style.Position, "position", "", "Page number position: top-right, bottom-center or top-center")
	cmd.Flags().Float64Var(&f.style.FontSize, "font-size", 0, "Page number font size in points")
}

// request builds the compile request. Precedence, lowest first: effective
// config, manifest, flags.
func (f *bundleFlags) request(ctx context.Context, e *env) (bundle.Request, *casestore.Store, error) {
	cfg := e.live.Get()
	var req bundle.Request
	var store *casestore.Store

	if f.manifest != "" {
		m, err := manifest.Load(f.manifest)
		if err != nil {
			return req, nil, err
		}
		if req, err = m.Request(cfg.Pagination, e.outputDir("")); err != nil {
			return req, nil, err
		}
	} else {
		s, err := casestore.Open(ctx, e.caseDBPath(f.db), false, e.logger)
		if err != nil {
			return req, nil, err
		}
		c, err := s.Case(ctx, f.caseID)
		if err != nil {
			s.Close()
			return req, nil, err
		}
		docs, err := s.BundleDocuments(ctx, f.caseID)
		if err != nil {
			s.Close()
			return req, nil, err
		}
		store = s
		req = bundle.Request{
			Documents:  docs,
			OutputDir:  e.caseOutputDir(f.caseID),
			BundleName: endpoints.BundleNameFor(c.Name),
			Style:      cfg.Pagination,
		}
	}

	if f.name != "" {
		req.BundleName = f.name
	}
	if f.out != "" {
		req.OutputDir = f.out
	}
	req.Style = f.style.Apply(req.Style)
	if f.insertCount > 0 {
		req.LateInsert = &types.LateInsert{
			Mode:  types.LateInsertMode(f.lateMode),
			After: f.insertAfter,
			Count: f.insertCount,
		}
	} else if req.LateInsert != nil && f.lateMode != "" {
		req.LateInsert.Mode = types.LateInsertMode(f.lateMode)
	}
	req.LateInsert = cfg.ResolveLateInsert(req.LateInsert)
	return req, store, nil
}

// caseOutputDir is output.dir/{id}, or {home}/bundles/{id}.
func (e *env) caseOutputDir(caseID string) string {
	if dir := e.live.Get().Output.Dir; dir != "" {
		return filepath.Join(dir, caseID)
	}
	return e.home.CaseBundlesPath(caseID)
}

var previewFlags bundleFlags

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the planned table of contents without writing a PDF",
	Long: `Plan the table of contents of a bundle.

Page counts missing from the manifest are read from the files; nothing is
written.

Examples:
  casebundle preview -m bundle.yaml
  casebundle preview --case 7f0c --insert-after 2 --insert-count 1 --late-mode sub_number`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := loadEnv(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		req, store, err := previewFlags.request(ctx, e)
		if err != nil {
			return err
		}
		if store != nil {
			store.Close()
		}
		if req.LateInsert != nil {
			if err := req.LateInsert.Validate(); err != nil {
				return err
			}
		}

		compiler := bundle.New(e.live.Get().CompilerConfig(e.logger))
		return api.Output(endpoints.Preview(compiler, req.Documents, req.LateInsert))
	},
}

var compileFlags bundleFlags

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a bundle PDF",
	Long: `Compile a bundle: render the table of contents, stamp every page with its
bundle page number, merge, add bookmarks and write <out>/<name>.pdf.

Examples:
  casebundle compile -m bundle.yaml
  casebundle compile -m bundle.yaml --format "Page X" --position bottom-center
  casebundle compile --case 7f0c --db ~/cases.db --out ./served`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := loadEnv(ctx)
		if err != nil {
			return err
		}
		defer e.close()

		req, store, err := compileFlags.request(ctx, e)
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}

		compiler := bundle.New(e.live.Get().CompilerConfig(e.logger))
		result, err := compiler.Compile(ctx, req)
		if err != nil {
			return err
		}
		if err := api.Output(result); err != nil {
			return err
		}
		if !result.Success {
			return errors.New("bundle not compiled")
		}
		return nil
	},
}

var validatePDF string

var validateCmd = &cobra.Command{
	Use:   "validate <result.yaml|result.json>",
	Short: "Check the pagination of a compiled bundle",
	Long: `Check a saved compile result: entries must be contiguous after the table of
contents, page counts must match their ranges and the bundle PDF must have
the expected number of pages.

Examples:
  casebundle compile -m bundle.yaml > result.yaml
  casebundle validate result.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		saved, err := bundle.LoadResult(args[0])
		if err != nil {
			return err
		}
		pdfPath := saved.PDFPath
		if validatePDF != "" {
			pdfPath = validatePDF
		}

		compiler := bundle.New(bundle.Config{Logger: newLogger()})
		result := compiler.Validate(saved.TOCEntries, pdfPath)
		if err := api.Output(result); err != nil {
			return err
		}
		if !result.IsValid {
			return fmt.Errorf("%d pagination errors", len(result.Errors))
		}
		return nil
	},
}

func init() {
	previewFlags.register(previewCmd, false)
	compileFlags.register(compileCmd, true)
	validateCmd.Flags().StringVar(&validatePDF, "pdf", "", "Bundle PDF to check (default: pdf_path of the result)")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(validateCmd)
}
